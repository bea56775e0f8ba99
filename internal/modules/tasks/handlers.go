package tasks

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mindwellhq/mindwell-backend/internal/identity"
)

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	service *TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service *TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	task, err := h.service.Create(userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// List handles GET /api/v1/tasks
func (h *TaskHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > 200 {
		limit = 200
	}
	includeCompleted := c.QueryBool("include_completed", false)

	list, total, err := h.service.List(userID, includeCompleted, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to fetch tasks",
		})
	}

	return c.JSON(fiber.Map{
		"data": list, "total": total,
		"limit": limit, "offset": offset,
	})
}

// Update handles PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid task id",
		})
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	task, err := h.service.Update(userID, taskID, req)
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(task)
}

// Complete handles PUT /api/v1/tasks/:id/complete
func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid task id",
		})
	}

	task, err := h.service.Complete(userID, taskID)
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(task)
}

// Reopen handles PUT /api/v1/tasks/:id/reopen
func (h *TaskHandler) Reopen(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid task id",
		})
	}

	task, err := h.service.Reopen(userID, taskID)
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(task)
}

// Delete handles DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid task id",
		})
	}

	if err := h.service.Delete(userID, taskID); err != nil {
		return taskError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Task deleted"})
}

// Stats handles GET /api/v1/tasks/stats
func (h *TaskHandler) Stats(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days < 1 {
		days = 7
	}
	if days > 365 {
		days = 365
	}

	stats, err := h.service.Stats(userID, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to compute stats",
		})
	}
	return c.JSON(stats)
}

func taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrInvalidPriority),
		errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrNotCompleted):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Internal server error",
		})
	}
}
