package checkin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindwellhq/mindwell-backend/internal/config"
	"gorm.io/gorm"
)

// Module implements the modules.Module interface for check-ins.
type Module struct{}

// New creates a new checkin Module.
func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "checkin" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&Checkin{},
	}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewCheckinService(db)
	analytics := NewAnalytics(NewRecordStore(db))
	handler := NewCheckinHandler(service, analytics)

	router.Post("/checkins", handler.Create)
	router.Get("/checkins/today", handler.Today)
	router.Get("/checkins/history", handler.History)

	router.Get("/checkins/analytics/mood", handler.MoodTrends)
	router.Get("/checkins/analytics/habits", handler.Habits)
	router.Get("/checkins/analytics/sleep", handler.Sleep)
	router.Get("/checkins/analytics/wellness", handler.Wellness)
	router.Get("/checkins/analytics/completion", handler.Completion)
	router.Get("/checkins/analytics/summary", handler.Summary)
	router.Get("/checkins/analytics/tasks", handler.TaskStats)
}
