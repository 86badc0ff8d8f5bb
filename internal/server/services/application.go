package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/placementportal/internal/common"
	"github.com/dmitrijs2005/placementportal/internal/dbx"
	"github.com/dmitrijs2005/placementportal/internal/server/config"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
	"github.com/dmitrijs2005/placementportal/internal/server/repositories/repomanager"
)

var errApplicationNotFound = common.NewError(common.ErrorNotFound, "application not found")

// ApplicationService runs the application status workflow. With strict
// transitions enabled a status change must follow
// models.ApplicationStatus.CanTransitionTo; otherwise any valid status may
// replace any other.
type ApplicationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	strict      bool
}

// NewApplicationService constructs an ApplicationService using repositories
// and server config.
func NewApplicationService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ApplicationService {
	return &ApplicationService{
		db:          db,
		repomanager: m,
		strict:      cfg.StrictStatusTransitions,
	}
}

// Create files an application in state applied. A second application for
// the same (student, job) pair is a conflict.
func (s *ApplicationService) Create(ctx context.Context, studentID, jobID int64, coverLetter string) (*models.Application, error) {
	if studentID <= 0 || jobID <= 0 {
		return nil, common.NewError(common.ErrorValidation, "student_id and job_id are required")
	}

	repo := s.repomanager.Applications(s.db)
	app, err := repo.Create(ctx, &models.Application{
		StudentID:   studentID,
		JobID:       jobID,
		Status:      models.StatusApplied,
		CoverLetter: coverLetter,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorConflict):
			return nil, common.NewError(common.ErrorConflict, "already applied to this job")
		case errors.Is(err, common.ErrorValidation):
			return nil, common.NewError(common.ErrorValidation, "student or job does not exist")
		}
		return nil, fmt.Errorf("error creating application: %w", err)
	}

	return app, nil
}

// UpdateStatus changes the status and/or notes of application id. Only the
// supplied fields are written.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id int64, upd models.ApplicationUpdate) error {
	if id <= 0 {
		return common.NewError(common.ErrorValidation, "invalid application id")
	}
	if upd.Empty() {
		return common.NewError(common.ErrorValidation, "nothing to update: provide status or notes")
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return common.NewError(common.ErrorValidation, fmt.Sprintf("invalid status %q", *upd.Status))
	}

	if !s.strict || upd.Status == nil {
		err := s.repomanager.Applications(s.db).Update(ctx, id, upd, nil)
		return s.mapUpdateErr(err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Applications(tx)

		current, err := repo.GetStatus(ctx, id)
		if err != nil {
			return s.mapUpdateErr(err)
		}

		next := *upd.Status
		if !current.CanTransitionTo(next) {
			return common.NewError(common.ErrorConflict,
				fmt.Sprintf("cannot move application from %s to %s", current, next))
		}

		err = repo.Update(ctx, id, upd, &current)
		if errors.Is(err, common.ErrorNotFound) {
			// the row existed a moment ago, so its status moved under us
			return common.NewError(common.ErrorConflict, "application status changed concurrently, retry")
		}
		return s.mapUpdateErr(err)
	})
}

// Delete removes application id.
func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return common.NewError(common.ErrorValidation, "invalid application id")
	}

	err := s.repomanager.Applications(s.db).Delete(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errApplicationNotFound
		}
		return fmt.Errorf("error deleting application: %w", err)
	}
	return nil
}

// Get returns application id with student and job names.
func (s *ApplicationService) Get(ctx context.Context, id int64) (*models.ApplicationDetails, error) {
	if id <= 0 {
		return nil, common.NewError(common.ErrorValidation, "invalid application id")
	}

	d, err := s.repomanager.Applications(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errApplicationNotFound
		}
		return nil, fmt.Errorf("error reading application: %w", err)
	}
	return d, nil
}

// List returns applications matching filter, newest first.
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationDetails, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, common.NewError(common.ErrorValidation, fmt.Sprintf("invalid status %q", filter.Status))
	}

	list, err := s.repomanager.Applications(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	return list, nil
}

// PlacementStats reports how many accounts hold a selected application.
func (s *ApplicationService) PlacementStats(ctx context.Context) (*models.PlacementStats, error) {
	stats, err := s.repomanager.Applications(s.db).PlacementStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing placement stats: %w", err)
	}
	return stats, nil
}

func (s *ApplicationService) mapUpdateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return errApplicationNotFound
	case errors.Is(err, common.ErrorValidation):
		return common.NewError(common.ErrorValidation, "nothing to update: provide status or notes")
	}
	return fmt.Errorf("error updating application: %w", err)
}
