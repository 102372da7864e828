package exports

import (
	"context"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
)

// Repository describes the export log.
type Repository interface {
	// Create stores e. The key must be new.
	Create(ctx context.Context, e *models.Export) error

	// SetStatus moves the export to status. It returns common.ErrorNotFound
	// for an unknown key.
	SetStatus(ctx context.Context, key, status string) error

	// List returns exports newest first.
	List(ctx context.Context) ([]*models.Export, error)

	// ListByStatus returns exports in the given state, newest first.
	ListByStatus(ctx context.Context, status string) ([]*models.Export, error)
}
