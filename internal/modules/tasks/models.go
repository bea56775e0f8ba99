package tasks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task represents one to-do item on a user's list.
type Task struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Priority    string         `gorm:"size:10;default:'medium'" json:"priority"`
	DueDate     *time.Time     `gorm:"type:date" json:"due_date,omitempty"`
	Completed   bool           `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest is the payload for editing a task. Nil fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskStats summarizes task activity over a recent window.
type TaskStats struct {
	PeriodDays      int     `json:"period_days"`
	TasksCompleted  int     `json:"tasks_completed"`
	TasksOpen       int     `json:"tasks_open"`
	TasksOverdue    int     `json:"tasks_overdue"`
	CompletionRate  float64 `json:"completion_rate"`
	CompletionScore float64 `json:"completion_score_5"`
}
