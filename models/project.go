package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	StatusOpen       ProjectStatus = "open"
	StatusInProgress ProjectStatus = "in progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusClosed     ProjectStatus = "closed"
)

// Valid reports whether s is one of the statuses a project document may carry.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusClosed:
		return true
	default:
		return false
	}
}

type Project struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Budget      float64            `json:"budget" bson:"budget" validate:"gt=0"`
	Deadline    time.Time          `json:"deadline" bson:"deadline" validate:"required"`
	TechStack   []string           `json:"techStack" bson:"techStack"`
	Status      ProjectStatus      `json:"status" bson:"status" validate:"oneof=open 'in progress' completed closed"`
	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"createdBy" validate:"required"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProjectView is a project with its creator expanded to a summary, as returned
// by listing and detail reads.
type ProjectView struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Budget      float64            `json:"budget" bson:"budget"`
	Deadline    time.Time          `json:"deadline" bson:"deadline"`
	TechStack   []string           `json:"techStack" bson:"techStack"`
	Status      ProjectStatus      `json:"status" bson:"status"`
	CreatedBy   *UserSummary       `json:"createdBy" bson:"createdBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewProjectView attaches the creator summary to p. creator may be nil when the
// referenced user no longer exists.
func NewProjectView(p Project, creator *UserSummary) ProjectView {
	techStack := p.TechStack
	if techStack == nil {
		techStack = []string{}
	}
	return ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Budget:      p.Budget,
		Deadline:    p.Deadline,
		TechStack:   techStack,
		Status:      p.Status,
		CreatedBy:   creator,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProjectDetail is the payload of a single project read.
type ProjectDetail struct {
	Project ProjectView `json:"project"`
	Bids    []BidView   `json:"bids"`
}

type CreateProjectRequest struct {
	Title       *string    `json:"title" validate:"required,notblank"`
	Description *string    `json:"description" validate:"required,notblank"`
	Budget      *Number    `json:"budget" validate:"required,ne=0"`
	Deadline    *Timestamp `json:"deadline" validate:"required"`
	TechStack   []string   `json:"techStack"`
}

// HasRequiredFields mirrors the "all fields are required" rule: a field counts
// as missing when it is absent or empty.
func (r CreateProjectRequest) HasRequiredFields() bool {
	if r.Deadline != nil && r.Deadline.IsZero() {
		return false
	}
	return validate.Struct(r) == nil
}

// UpdateProjectRequest carries a partial update. A nil field leaves the stored
// value unchanged; a supplied field replaces it and is validated on save.
type UpdateProjectRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Budget      *Number    `json:"budget"`
	Deadline    *Timestamp `json:"deadline"`
	TechStack   *[]string  `json:"techStack"`
}

// Apply merges the supplied fields into p.
func (r UpdateProjectRequest) Apply(p *Project) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Budget != nil {
		p.Budget = float64(*r.Budget)
	}
	if r.Deadline != nil {
		p.Deadline = r.Deadline.UTC()
	}
	if r.TechStack != nil {
		p.TechStack = *r.TechStack
	}
}

// ValidationError is returned when a project document fails the rules applied
// before it is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var ErrDeadlineInPast = &ValidationError{Field: "deadline", Message: "Deadline cannot be in the past"}

// Normalize trims text fields and fills defaults.
func (p *Project) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.Status == "" {
		p.Status = StatusOpen
	}
}

// Validate checks the document-level rules against now. It is run on create and
// update; closing a project writes the status field only and skips it.
func (p *Project) Validate(now time.Time) error {
	if err := validate.Struct(p); err != nil {
		return firstFieldError(err, projectFieldMessages)
	}
	if p.Deadline.Before(now) {
		return ErrDeadlineInPast
	}
	return nil
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
