package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var now = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

func validProject() Project {
	return Project{
		ID:          primitive.NewObjectID(),
		Title:       "Title",
		Description: "Description",
		Budget:      100,
		Deadline:    now.Add(time.Hour),
		Status:      StatusOpen,
		CreatedBy:   primitive.NewObjectID(),
	}
}

func TestProjectValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Project)
		field  string
	}{
		{"valid", func(p *Project) {}, ""},
		{"empty title", func(p *Project) { p.Title = "" }, "title"},
		{"empty description", func(p *Project) { p.Description = "" }, "description"},
		{"zero budget", func(p *Project) { p.Budget = 0 }, "budget"},
		{"negative budget", func(p *Project) { p.Budget = -1 }, "budget"},
		{"missing deadline", func(p *Project) { p.Deadline = time.Time{} }, "deadline"},
		{"unknown status", func(p *Project) { p.Status = "archived" }, "status"},
		{"in progress status", func(p *Project) { p.Status = StatusInProgress }, ""},
		{"missing owner", func(p *Project) { p.CreatedBy = primitive.NilObjectID }, "createdBy"},
		{"past deadline", func(p *Project) { p.Deadline = now.Add(-time.Second) }, "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			tt.mutate(&p)

			err := p.Validate(now)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
			if msg, ok := projectFieldMessages[tt.field]; ok && tt.name != "past deadline" {
				assert.Equal(t, msg, vErr.Message)
			}
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestProjectValidateMessages(t *testing.T) {
	p := validProject()
	p.Deadline = time.Time{}
	err := p.Validate(now)
	assert.EqualError(t, err, "Project deadline is required")

	p = validProject()
	p.Deadline = now.Add(-time.Minute)
	assert.Same(t, ErrDeadlineInPast, p.Validate(now))
}

func TestProjectNormalize(t *testing.T) {
	p := Project{Title: "  padded  ", Description: "\tdesc\n"}
	p.Normalize()

	assert.Equal(t, "padded", p.Title)
	assert.Equal(t, "desc", p.Description)
	assert.Equal(t, StatusOpen, p.Status)
	assert.NotNil(t, p.TechStack)
}

func TestCreateRequestHasRequiredFields(t *testing.T) {
	var req CreateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","description":"d","budget":5,"deadline":"2030-01-01T00:00:00Z"}`), &req))
	assert.True(t, req.HasRequiredFields())

	req.Budget = nil
	assert.False(t, req.HasRequiredFields())
}

func TestUpdateRequestApplyKeepsOmittedFields(t *testing.T) {
	p := validProject()
	p.TechStack = []string{"go"}

	var req UpdateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":"new","techStack":[]}`), &req))
	req.Apply(&p)

	assert.Equal(t, "Title", p.Title)
	assert.Equal(t, "new", p.Description)
	assert.Equal(t, 100.0, p.Budget)
	assert.Empty(t, p.TechStack)
}

func TestProjectStatusValid(t *testing.T) {
	for _, s := range []ProjectStatus{StatusOpen, StatusInProgress, StatusCompleted, StatusClosed} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ProjectStatus("draft").Valid())
}

func TestOwnsComparesByValue(t *testing.T) {
	p := validProject()
	same, err := primitive.ObjectIDFromHex(p.CreatedBy.Hex())
	require.NoError(t, err)

	assert.True(t, Identity{ID: same}.Owns(&p))
	assert.False(t, Identity{ID: primitive.NewObjectID()}.Owns(&p))
	assert.False(t, Identity{ID: same}.Owns(nil))
}

func TestNewProjectViewDefaultsTechStack(t *testing.T) {
	view := NewProjectView(validProject(), nil)
	out, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"techStack":[]`)
	assert.Contains(t, string(out), `"createdBy":null`)
	assert.Contains(t, string(out), `"_id":"`)
	assert.NotContains(t, string(out), `"id":`)
}
