package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/server/config"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/applications"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func testConfig(strict bool) *config.Config {
	return &config.Config{
		SecretKey:               testSecret,
		BcryptCost:              bcrypt.MinCost,
		StrictStatusTransitions: strict,
	}
}

// newSQLiteDB opens a migrated database in a temp dir.
func newSQLiteDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.DriverSQLite, filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm, err := repomanager.NewSQLRepositoryManager(dbx.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(ctx, db))

	return db, rm
}

// seedJob inserts a company with one job and returns the job id.
func seedJob(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	ctx := context.Background()

	var companyID, jobID int64
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO companies (name) VALUES ($1) RETURNING id`, "Acme "+title).Scan(&companyID))
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO jobs (company_id, title) VALUES ($1, $2) RETURNING id`, companyID, title).Scan(&jobID))
	return jobID
}

// seedStudent inserts an account without a password, the way an
// administrator import does.
func seedStudent(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.QueryRowContext(context.Background(),
		`INSERT INTO students (email, full_name, roll_number) VALUES ($1, $2, $3) RETURNING id`,
		email, "Seeded "+email, "SEED-"+email).Scan(&id))
	return id
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// --- fakes ---

type fakeAccountsRepo struct {
	createOut *models.Account
	createErr error

	getOut *models.Account
	getErr error
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	a.ID = 1
	return a, nil
}

func (f *fakeAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeApplicationsRepo struct {
	applications.Repository

	status    models.ApplicationStatus
	statusErr error
	updateErr error
	listErr   error
	statsErr  error

	updates []*models.ApplicationStatus
}

func (f *fakeApplicationsRepo) GetStatus(ctx context.Context, id int64) (models.ApplicationStatus, error) {
	return f.status, f.statusErr
}

func (f *fakeApplicationsRepo) Update(ctx context.Context, id int64, upd models.ApplicationUpdate, expected *models.ApplicationStatus) error {
	f.updates = append(f.updates, expected)
	return f.updateErr
}

func (f *fakeApplicationsRepo) List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationDetails, error) {
	return nil, f.listErr
}

func (f *fakeApplicationsRepo) PlacementStats(ctx context.Context) (*models.PlacementStats, error) {
	return nil, f.statsErr
}

type fakeRepoManager struct {
	a  *fakeAccountsRepo
	ap *fakeApplicationsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository         { return m.a }
func (m *fakeRepoManager) Applications(db dbx.DBTX) applications.Repository { return m.ap }
