// Package applications stores job applications and the aggregates derived
// from them.
package applications

import (
	"context"

	"github.com/dmitrijs2005/placementportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id int64) (*models.ApplicationDetails, error)
	GetStatus(ctx context.Context, id int64) (models.ApplicationStatus, error)
	// Update applies upd to application id. When expected is non-nil the row
	// is only changed while its status still equals *expected. It returns
	// common.ErrorNotFound when no row was changed.
	Update(ctx context.Context, id int64, upd models.ApplicationUpdate, expected *models.ApplicationStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationDetails, error)
	PlacementStats(ctx context.Context) (*models.PlacementStats, error)
}
