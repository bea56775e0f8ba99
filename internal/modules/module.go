package modules

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindwellhq/mindwell-backend/internal/config"
	"gorm.io/gorm"
)

// Module defines the interface every feature module must implement.
type Module interface {
	// ID returns the unique module identifier used in logs and route prefixes.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts module-specific routes on the given Fiber group.
	// The group is already prefixed with /api/v1 and has JWT middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
