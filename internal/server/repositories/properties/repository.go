// Package properties persists rental properties. Every query is scoped to
// the owning user, so a caller can never read or touch another user's rows.
package properties

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
)

type Repository interface {
	// ListByUser returns the user's properties, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Property, error)
	Get(ctx context.Context, userID, id string) (*models.Property, error)
	// Create inserts p (its ID must be set) and fills in CreatedAt.
	Create(ctx context.Context, p *models.Property) (*models.Property, error)
	Update(ctx context.Context, userID, id string, patch *models.PropertyPatch) error
	UpdateMany(ctx context.Context, userID string, ids []string, patch *models.PropertyPatch) (int64, error)
	// ResetPaid clears the paid flag on every property of the user.
	ResetPaid(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}
