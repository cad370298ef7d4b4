// Package users declares the server-side repository contract for users and
// its SQL implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the user and returns it with the assigned id. A duplicate
	// login yields common.ErrorConstraintViolation.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns common.ErrorNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByLogin returns common.ErrorNotFound for no match and
	// common.ErrorAmbiguous for more than one.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}
