package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type queries struct {
	create     string
	getByID    string
	getByLogin string
}

var postgresQueries = queries{
	create: `INSERT INTO "user" (login, name)
		 VALUES ($1, $2)
		 RETURNING id, login, name`,
	getByID: `SELECT id, login, name FROM "user"
		 WHERE id = $1`,
	getByLogin: `SELECT id, login, name FROM "user"
		 WHERE login = $1
		 LIMIT 2`,
}

var sqliteQueries = queries{
	create: `INSERT INTO "user" (login, name)
		 VALUES (?, ?)
		 RETURNING id, login, name`,
	getByID: `SELECT id, login, name FROM "user"
		 WHERE id = ?`,
	getByLogin: `SELECT id, login, name FROM "user"
		 WHERE login = ?
		 LIMIT 2`,
}

// SQLRepository implements Repository over any DBTX; only the placeholder
// style differs between dialects.
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

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created := &models.User{}
	err := r.db.QueryRowContext(ctx, r.q.create, user.Login, user.Name).
		Scan(&created.ID, &created.Login, &created.Name)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	return created, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, r.q.getByID, id).Scan(&user.ID, &user.Login, &user.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbx.WrapError(err)
	}
	return user, nil
}

func (r *SQLRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	rows, err := r.db.QueryContext(ctx, r.q.getByLogin, login)
	if err != nil {
		return nil, dbx.WrapError(err)
	}
	defer rows.Close()

	var found []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Login, &user.Name); err != nil {
			return nil, dbx.WrapError(err)
		}
		found = append(found, user)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.WrapError(err)
	}

	switch len(found) {
	case 0:
		return nil, common.ErrorNotFound
	case 1:
		return found[0], nil
	default:
		return nil, common.ErrorAmbiguous
	}
}
