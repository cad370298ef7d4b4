package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeUsersRepo struct {
	users.Repository

	mu        sync.Mutex
	byID      map[int64]*models.User
	nextID    int64
	createErr error
	getErr    error
	ambiguous map[string]bool
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*models.User{}, ambiguous: map[string]bool{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Login == u.Login {
			return nil, common.ErrorConstraintViolation
		}
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsersRepo) GetByLogin(_ context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.ambiguous[login] {
		return nil, common.ErrorAmbiguous
	}
	for _, u := range f.byID {
		if u.Login == login {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeItemsRepo struct {
	items.Repository

	mu      sync.Mutex
	byID    map[int64]*models.Item
	nextID  int64
	saveErr error
	saves   int
}

func newFakeItemsRepo() *fakeItemsRepo {
	return &fakeItemsRepo{byID: map[int64]*models.Item{}}
}

func (f *fakeItemsRepo) Create(_ context.Context, it *models.Item) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it.UserID == 0 {
		return nil, common.ErrorConstraintViolation
	}
	f.nextID++
	cp := *it
	cp.ID = f.nextID
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeItemsRepo) GetByID(_ context.Context, id int64) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *it
	return &out, nil
}

func (f *fakeItemsRepo) Save(_ context.Context, it *models.Item) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	stored, ok := f.byID[it.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Title, stored.Weight, stored.Updated = it.Title, it.Weight, it.Updated
	out := *stored
	return &out, nil
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	items *fakeItemsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), items: newFakeItemsRepo()}
}

func (m *fakeRepoManager) Open(string) (*sql.DB, error) { return nil, nil }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoManager) Items(dbx.DBTX) items.Repository { return m.items }

// newMockSession returns a sqlmock-backed session; the fake repositories
// never issue SQL, so only transaction boundaries need expectations.
func newMockSession(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func identityFor(u models.User) Identity {
	return Identity{user: u}
}
