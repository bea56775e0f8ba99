package tasks

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Validation runs before any database access, so these paths are
// testable on a zero-value service.

func TestCreateRejectsBlankTitle(t *testing.T) {
	s := &TaskService{}

	_, err := s.Create(uuid.New(), CreateTaskRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestCreateRejectsUnknownPriority(t *testing.T) {
	s := &TaskService{}

	_, err := s.Create(uuid.New(), CreateTaskRequest{Title: "Refill prescription", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestIsValidPriority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high"} {
		assert.True(t, isValidPriority(p), p)
	}
	for _, p := range []string{"", "urgent", "Medium", "HIGH"} {
		assert.False(t, isValidPriority(p), p)
	}
}
