package tasks

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindwellhq/mindwell-backend/internal/config"
	"gorm.io/gorm"
)

// Module implements the modules.Module interface for tasks.
type Module struct{}

// New creates a new tasks Module.
func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "tasks" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&Task{},
	}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewTaskService(db)
	handler := NewTaskHandler(service)

	router.Post("/tasks", handler.Create)
	router.Get("/tasks", handler.List)
	router.Get("/tasks/stats", handler.Stats)
	router.Put("/tasks/:id", handler.Update)
	router.Put("/tasks/:id/complete", handler.Complete)
	router.Put("/tasks/:id/reopen", handler.Reopen)
	router.Delete("/tasks/:id", handler.Delete)
}
