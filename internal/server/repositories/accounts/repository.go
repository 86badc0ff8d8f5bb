// Package accounts stores login identities in the students table.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/placementportal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
}
