package models

import "time"

// ApplicationStatus is the workflow state of an application.
type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "applied"
	StatusUnderReview        ApplicationStatus = "under-review"
	StatusShortlisted        ApplicationStatus = "shortlisted"
	StatusInterviewScheduled ApplicationStatus = "interview-scheduled"
	StatusSelected           ApplicationStatus = "selected"
	StatusRejected           ApplicationStatus = "rejected"
)

// forward order of the non-rejected states
var statusRank = map[ApplicationStatus]int{
	StatusApplied:            0,
	StatusUnderReview:        1,
	StatusShortlisted:        2,
	StatusInterviewScheduled: 3,
	StatusSelected:           4,
}

// Valid reports whether s is one of the six workflow states.
func (s ApplicationStatus) Valid() bool {
	if s == StatusRejected {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether s ends the workflow.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusSelected || s == StatusRejected
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
// Moves go forward along applied → under-review → shortlisted →
// interview-scheduled → selected (steps may be skipped); rejected is reachable
// from any non-terminal state; terminal states allow no further moves.
// Staying in the same state is always allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == StatusRejected {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// Application links an account to a job posting.
type Application struct {
	ID          int64             `json:"id"`
	StudentID   int64             `json:"student_id"`
	JobID       int64             `json:"job_id"`
	Status      ApplicationStatus `json:"status"`
	CoverLetter string            `json:"cover_letter"`
	Notes       string            `json:"notes"`
	AppliedDate time.Time         `json:"applied_date"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ApplicationDetails is an application joined with the names a reviewer
// needs to read it.
type ApplicationDetails struct {
	Application
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	RollNumber   string `json:"roll_number"`
	JobTitle     string `json:"job_title"`
	CompanyName  string `json:"company_name"`
}

// ApplicationFilter narrows List results; zero values mean "any".
type ApplicationFilter struct {
	StudentID int64
	JobID     int64
	Status    ApplicationStatus
}

// ApplicationUpdate carries the fields of a partial update. Nil means
// "leave unchanged". ClearNotes resets notes and wins over Notes.
type ApplicationUpdate struct {
	Status     *ApplicationStatus
	Notes      *string
	ClearNotes bool
}

// Empty reports whether the update names no field.
func (u ApplicationUpdate) Empty() bool {
	return u.Status == nil && u.Notes == nil && !u.ClearNotes
}

// PlacementStats summarises placements: accounts with at least one selected
// application over all accounts, as a percentage rounded to two decimals.
type PlacementStats struct {
	TotalStudents  int64   `json:"totalStudents"`
	PlacedStudents int64   `json:"placedStudents"`
	PlacementRate  float64 `json:"placementRate"`
}
