package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
)

// ItemDraft is the client-supplied part of a new item.
type ItemDraft struct {
	Title  string
	Weight float64
}

type ItemService struct {
	repomanager repomanager.RepositoryManager
	writer      *WriteCoordinator
	now         func() time.Time
}

func NewItemService(m repomanager.RepositoryManager) *ItemService {
	return &ItemService{
		repomanager: m,
		writer:      NewWriteCoordinator(),
		now:         Now,
	}
}

// Now is the default clock: UTC with the microsecond precision both stores keep.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// WithClock replaces the clock used for created/updated.
func (s *ItemService) WithClock(now func() time.Time) *ItemService {
	s.now = now
	return s
}

// Create stores a new item owned by caller with created and updated both set
// to the current time.
func (s *ItemService) Create(ctx context.Context, sess dbx.Session, caller Identity, draft ItemDraft) (*models.Item, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}

	return Write(ctx, s.writer, sess, draft, WriteSteps[*models.Item]{
		Build: func(ctx context.Context, tx dbx.DBTX) (*models.Item, error) {
			now := s.now()
			item := &models.Item{
				Title:   draft.Title,
				Weight:  draft.Weight,
				Created: now,
				Updated: now,
				UserID:  caller.UserID(),
			}
			if err := item.Validate(); err != nil {
				return nil, err
			}
			return item, nil
		},
		Flush: func(ctx context.Context, tx dbx.DBTX, item *models.Item) (*models.Item, error) {
			return s.repomanager.Items(tx).Create(ctx, item)
		},
		Refresh: s.refresh,
	})
}

// Patch applies patch to item id and stamps updated. Ownership is not
// checked. An unknown id yields common.ErrorNotFound.
func (s *ItemService) Patch(ctx context.Context, sess dbx.Session, caller Identity, id int64, patch models.ItemPatch) (*models.Item, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return Write(ctx, s.writer, sess, patch, WriteSteps[*models.Item]{
		Build: func(ctx context.Context, tx dbx.DBTX) (*models.Item, error) {
			item, err := s.repomanager.Items(tx).GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			patch.Apply(item, s.now())
			return item, nil
		},
		Flush: func(ctx context.Context, tx dbx.DBTX, item *models.Item) (*models.Item, error) {
			return s.repomanager.Items(tx).Save(ctx, item)
		},
		Refresh: s.refresh,
	})
}

func (s *ItemService) refresh(ctx context.Context, db dbx.DBTX, item *models.Item) (*models.Item, error) {
	return s.repomanager.Items(db).GetByID(ctx, item.ID)
}
