package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/placementportal/internal/common"
	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
)

const selectDetails = `SELECT a.id, a.student_id, a.job_id, a.status, a.cover_letter, a.notes, a.applied_date, a.updated_at,
		        COALESCE(s.full_name, ''), COALESCE(s.email, ''), COALESCE(s.roll_number, ''),
		        COALESCE(j.title, ''), COALESCE(c.name, '')
		 FROM applications a
		 LEFT JOIN students s ON s.id = a.student_id
		 LEFT JOIN jobs j ON j.id = a.job_id
		 LEFT JOIN companies c ON c.id = j.company_id`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

// Create inserts app in a single statement. A second application for the
// same (student, job) pair yields common.ErrorConflict; a dangling student or
// job id yields common.ErrorValidation.
func (r *SQLRepository) Create(ctx context.Context, app *models.Application) (*models.Application, error) {

	query :=
		`INSERT INTO applications (student_id, job_id, status, cover_letter)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, applied_date, updated_at
		 `

	var applied, updated dbx.Timestamp
	err := r.db.QueryRowContext(ctx, query,
		app.StudentID, app.JobID, string(app.Status), app.CoverLetter).Scan(&app.ID, &applied, &updated)

	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorConflict
		case dbx.IsForeignKeyViolation(err):
			return nil, common.ErrorValidation
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	app.AppliedDate = applied.Time
	app.UpdatedAt = updated.Time
	return app, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.ApplicationDetails, error) {
	query := selectDetails + `
		 WHERE a.id = $1
		 `

	d, err := scanDetails(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return d, nil
}

func (r *SQLRepository) GetStatus(ctx context.Context, id int64) (models.ApplicationStatus, error) {
	query :=
		`SELECT status FROM applications
		 WHERE id = $1
		 `

	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return models.ApplicationStatus(status), nil
}

func (r *SQLRepository) Update(ctx context.Context, id int64, upd models.ApplicationUpdate, expected *models.ApplicationStatus) error {
	if upd.Empty() {
		return common.ErrorValidation
	}

	var (
		sets []string
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if upd.Status != nil {
		sets = append(sets, "status = "+arg(string(*upd.Status)))
	}
	switch {
	case upd.ClearNotes:
		sets = append(sets, "notes = ''")
	case upd.Notes != nil:
		sets = append(sets, "notes = "+arg(*upd.Notes))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	query := "UPDATE applications SET " + strings.Join(sets, ", ") + " WHERE id = " + arg(id)
	if expected != nil {
		query += " AND status = " + arg(string(*expected))
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM applications
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// List returns applications matching filter, newest first.
func (r *SQLRepository) List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationDetails, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.StudentID > 0 {
		where = append(where, "a.student_id = "+arg(filter.StudentID))
	}
	if filter.JobID > 0 {
		where = append(where, "a.job_id = "+arg(filter.JobID))
	}
	if filter.Status != "" {
		where = append(where, "a.status = "+arg(string(filter.Status)))
	}

	query := selectDetails
	if len(where) > 0 {
		query += "\n		 WHERE " + strings.Join(where, " AND ")
	}
	query += "\n		 ORDER BY a.applied_date DESC, a.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.ApplicationDetails{}
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// PlacementStats counts accounts and accounts with at least one selected
// application.
func (r *SQLRepository) PlacementStats(ctx context.Context) (*models.PlacementStats, error) {
	query :=
		`SELECT (SELECT COUNT(*) FROM students),
		        (SELECT COUNT(DISTINCT student_id) FROM applications WHERE status = $1)
		 `

	stats := &models.PlacementStats{}
	err := r.db.QueryRowContext(ctx, query, string(models.StatusSelected)).Scan(&stats.TotalStudents, &stats.PlacedStudents)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if stats.TotalStudents > 0 {
		rate := float64(stats.PlacedStudents) / float64(stats.TotalStudents) * 100
		stats.PlacementRate = math.Round(rate*100) / 100
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDetails(s scanner) (*models.ApplicationDetails, error) {
	d := &models.ApplicationDetails{}
	var (
		status           string
		applied, updated dbx.Timestamp
	)

	err := s.Scan(&d.ID, &d.StudentID, &d.JobID, &status, &d.CoverLetter, &d.Notes, &applied, &updated,
		&d.StudentName, &d.StudentEmail, &d.RollNumber, &d.JobTitle, &d.CompanyName)
	if err != nil {
		return nil, err
	}

	d.Status = models.ApplicationStatus(status)
	d.AppliedDate = applied.Time
	d.UpdatedAt = updated.Time
	return d, nil
}
