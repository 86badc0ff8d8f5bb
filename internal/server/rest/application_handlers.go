package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/placementportal/internal/common"
	"github.com/dmitrijs2005/placementportal/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type createApplicationRequest struct {
	StudentID   int64  `json:"student_id"`
	JobID       int64  `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
}

type updateApplicationRequest struct {
	Status *models.ApplicationStatus `json:"status"`
	Notes  optionalString            `json:"notes"`
}

// optionalString tells an absent field apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (r updateApplicationRequest) update() models.ApplicationUpdate {
	return models.ApplicationUpdate{
		Status:     r.Status,
		Notes:      r.Notes.Value,
		ClearNotes: r.Notes.Set && r.Notes.Value == nil,
	}
}

var errBadID = common.NewError(common.ErrorValidation, "invalid application id")

func (s *HTTPServer) createApplication(c *fiber.Ctx) error {
	var req createApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, errBadBody)
	}

	app, err := s.applications.Create(c.UserContext(), req.StudentID, req.JobID, req.CoverLetter)
	if err != nil {
		// duplicates are reported as a bad request on this endpoint
		if errors.Is(err, common.ErrorConflict) {
			return s.failWithStatus(c, fiber.StatusBadRequest, err)
		}
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusCreated, "Application submitted successfully", fiber.Map{"id": app.ID})
}

func (s *HTTPServer) updateApplication(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var req updateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, errBadBody)
	}

	err = s.applications.UpdateStatus(c.UserContext(), id, req.update())
	if err != nil {
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusOK, "Application updated successfully", nil)
}

func (s *HTTPServer) deleteApplication(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return s.fail(c, err)
	}

	if err := s.applications.Delete(c.UserContext(), id); err != nil {
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusOK, "Application deleted successfully", nil)
}

func (s *HTTPServer) getApplication(c *fiber.Ctx) error {
	id, err := applicationID(c)
	if err != nil {
		return s.fail(c, err)
	}

	app, err := s.applications.Get(c.UserContext(), id)
	if err != nil {
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusOK, "", app)
}

func (s *HTTPServer) listApplications(c *fiber.Ctx) error {
	var (
		filter models.ApplicationFilter
		err    error
	)

	if filter.StudentID, err = queryID(c, "student_id"); err != nil {
		return s.fail(c, err)
	}
	if filter.JobID, err = queryID(c, "job_id"); err != nil {
		return s.fail(c, err)
	}
	filter.Status = models.ApplicationStatus(c.Query("status"))

	list, err := s.applications.List(c.UserContext(), filter)
	if err != nil {
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusOK, "", list)
}

func (s *HTTPServer) placementStats(c *fiber.Ctx) error {
	stats, err := s.applications.PlacementStats(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusOK, "", stats)
}

func (s *HTTPServer) health(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, "Placement Portal API is running", nil)
}

func applicationID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// queryID parses an optional positive id query parameter; absent means 0.
func queryID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewError(common.ErrorValidation, "invalid "+name)
	}
	return id, nil
}
