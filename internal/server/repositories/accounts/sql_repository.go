package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/placementportal/internal/common"
	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
)

const selectAccount = `SELECT id, email, password_hash, full_name, roll_number, department, year, created_at
		 FROM students`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts account and fills in its id and creation time. A taken
// email yields common.ErrorConflict.
func (r *SQLRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO students (email, password_hash, full_name, roll_number, department, year)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	var createdAt dbx.Timestamp
	err := r.db.QueryRowContext(ctx, query,
		account.Email, account.PasswordHash, account.FullName,
		account.RollNumber, account.Department, account.Year).Scan(&account.ID, &createdAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.CreatedAt = createdAt.Time
	return account, nil
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := selectAccount + `
		 WHERE email = $1
		 `
	return r.get(ctx, query, email)
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := selectAccount + `
		 WHERE id = $1
		 `
	return r.get(ctx, query, id)
}

func (r *SQLRepository) get(ctx context.Context, query string, arg any) (*models.Account, error) {
	a := &models.Account{}
	var createdAt dbx.Timestamp

	err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Email, &a.PasswordHash,
		&a.FullName, &a.RollNumber, &a.Department, &a.Year, &createdAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	a.CreatedAt = createdAt.Time
	return a, nil
}
