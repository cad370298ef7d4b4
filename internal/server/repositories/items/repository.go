// Package items declares the server-side repository contract for items and
// its SQL implementations.
package items

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the item and returns the stored row. An unknown owner
	// yields common.ErrorConstraintViolation.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)

	// GetByID returns common.ErrorNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// Save writes the mutable columns (title, weight, updated) of an existing
	// item. Id, owner and created are never rewritten.
	Save(ctx context.Context, item *models.Item) (*models.Item, error)
}
