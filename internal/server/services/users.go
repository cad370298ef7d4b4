package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
)

// UserDraft is the client-supplied part of a new user.
type UserDraft struct {
	Login string
	Name  string
}

type UserService struct {
	repomanager repomanager.RepositoryManager
	writer      *WriteCoordinator
}

func NewUserService(m repomanager.RepositoryManager) *UserService {
	return &UserService{repomanager: m, writer: NewWriteCoordinator()}
}

// Create persists a new user. A duplicate login comes back as
// *common.ConflictError.
func (s *UserService) Create(ctx context.Context, sess dbx.Session, caller Identity, draft UserDraft) (*models.User, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	return s.create(ctx, sess, draft)
}

func (s *UserService) create(ctx context.Context, sess dbx.Session, draft UserDraft) (*models.User, error) {
	return Write(ctx, s.writer, sess, draft, WriteSteps[*models.User]{
		Build: func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
			user := &models.User{Login: draft.Login, Name: draft.Name}
			if err := user.Validate(); err != nil {
				return nil, err
			}
			return user, nil
		},
		Flush: func(ctx context.Context, tx dbx.DBTX, user *models.User) (*models.User, error) {
			return s.repomanager.Users(tx).Create(ctx, user)
		},
		Refresh: func(ctx context.Context, db dbx.DBTX, user *models.User) (*models.User, error) {
			return s.repomanager.Users(db).GetByID(ctx, user.ID)
		},
	})
}

// Get returns common.ErrorNotFound for an unknown id.
func (s *UserService) Get(ctx context.Context, db dbx.DBTX, caller Identity, id int64) (*models.User, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}
	return s.repomanager.Users(db).GetByID(ctx, id)
}

// EnsureUser returns the user with draft.Login, creating it when missing.
// It runs before any caller exists, so no identity is required.
func (s *UserService) EnsureUser(ctx context.Context, sess dbx.Session, draft UserDraft) (*models.User, error) {
	user, err := s.repomanager.Users(sess).GetByLogin(ctx, draft.Login)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error looking up user %q: %w", draft.Login, err)
	}

	user, err = s.create(ctx, sess, draft)
	if errors.Is(err, common.ErrorConflict) {
		// another instance created it first
		return s.repomanager.Users(sess).GetByLogin(ctx, draft.Login)
	}
	return user, err
}
