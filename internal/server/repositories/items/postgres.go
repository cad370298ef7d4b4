package items

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type queries struct {
	create  string
	getByID string
	save    string
}

var postgresQueries = queries{
	create: `INSERT INTO item (title, weight, created, updated, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, weight, created, updated, user_id`,
	getByID: `SELECT id, title, weight, created, updated, user_id FROM item
		 WHERE id = $1`,
	save: `UPDATE item SET title = $1, weight = $2, updated = $3
		 WHERE id = $4
		 RETURNING id, title, weight, created, updated, user_id`,
}

var sqliteQueries = queries{
	create: `INSERT INTO item (title, weight, created, updated, user_id)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id, title, weight, created, updated, user_id`,
	getByID: `SELECT id, title, weight, created, updated, user_id FROM item
		 WHERE id = ?`,
	save: `UPDATE item SET title = ?, weight = ?, updated = ?
		 WHERE id = ?
		 RETURNING id, title, weight, created, updated, user_id`,
}

// SQLRepository implements Repository over any DBTX.
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

func scanItem(row *sql.Row) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(&item.ID, &item.Title, &item.Weight,
		dbx.TimeDest(&item.Created), dbx.TimeDest(&item.Updated), &item.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.WrapError(err)
	}
	return item, nil
}

func (r *SQLRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	return scanItem(r.db.QueryRowContext(ctx, r.q.create,
		item.Title, item.Weight, item.Created.UTC(), item.Updated.UTC(), item.UserID))
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	return scanItem(r.db.QueryRowContext(ctx, r.q.getByID, id))
}

func (r *SQLRepository) Save(ctx context.Context, item *models.Item) (*models.Item, error) {
	return scanItem(r.db.QueryRowContext(ctx, r.q.save,
		item.Title, item.Weight, item.Updated.UTC(), item.ID))
}
