package tasks

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindwellhq/mindwell-backend/internal/modules/checkin"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("task title is required")
	ErrInvalidPriority  = errors.New("priority must be low, medium, or high")
	ErrAlreadyCompleted = errors.New("task is already completed")
	ErrNotCompleted     = errors.New("task is not completed")
)

// TaskService handles task CRUD and stats.
type TaskService struct {
	db *gorm.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// Create stores a new task for a user.
func (s *TaskService) Create(userID uuid.UUID, req CreateTaskRequest) (*Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	if !isValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	task := Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List returns a user's tasks, open tasks first, newest first within
// each group.
func (s *TaskService) List(userID uuid.UUID, includeCompleted bool, limit, offset int) ([]Task, int64, error) {
	query := s.db.Model(&Task{}).Where("user_id = ?", userID)
	if !includeCompleted {
		query = query.Where("completed = false")
	}

	var total int64
	query.Count(&total)

	var list []Task
	err := query.
		Order("completed ASC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error

	return list, total, err
}

// Update edits a user's task in place.
func (s *TaskService) Update(userID, taskID uuid.UUID, req UpdateTaskRequest) (*Task, error) {
	task, err := s.owned(userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !isValidPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// Complete marks a task done and stamps the completion time.
func (s *TaskService) Complete(userID, taskID uuid.UUID) (*Task, error) {
	task, err := s.owned(userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return nil, ErrAlreadyCompleted
	}

	now := time.Now().UTC()
	task.Completed = true
	task.CompletedAt = &now

	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// Reopen marks a completed task as open again and clears the
// completion time.
func (s *TaskService) Reopen(userID, taskID uuid.UUID) (*Task, error) {
	task, err := s.owned(userID, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Completed {
		return nil, ErrNotCompleted
	}

	task.Completed = false
	task.CompletedAt = nil

	if err := s.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a user's task.
func (s *TaskService) Delete(userID, taskID uuid.UUID) error {
	task, err := s.owned(userID, taskID)
	if err != nil {
		return err
	}
	return s.db.Delete(task).Error
}

// Stats summarizes completions, open and overdue counts, and the
// completion rate over the last days.
func (s *TaskService) Stats(userID uuid.UUID, days int) (*TaskStats, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	var completed, open, overdue int64
	base := s.db.Model(&Task{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).
		Where("completed = true AND completed_at >= ?", since).
		Count(&completed).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("completed = false").
		Count(&open).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("completed = false AND due_date < ?", time.Now().UTC()).
		Count(&overdue).Error; err != nil {
		return nil, err
	}

	rate := 0.0
	if completed+open > 0 {
		rate = math.Round(float64(completed)/float64(completed+open)*1000) / 10
	}

	return &TaskStats{
		PeriodDays:      days,
		TasksCompleted:  int(completed),
		TasksOpen:       int(open),
		TasksOverdue:    int(overdue),
		CompletionRate:  rate,
		CompletionScore: checkin.ScoreTo5(rate),
	}, nil
}

func (s *TaskService) owned(userID, taskID uuid.UUID) (*Task, error) {
	var task Task
	if err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func isValidPriority(p string) bool {
	return p == "low" || p == "medium" || p == "high"
}
