package checkin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mindwellhq/mindwell-backend/internal/identity"
)

// CheckinHandler handles HTTP requests for check-ins and analytics.
type CheckinHandler struct {
	service   *CheckinService
	analytics *Analytics
}

// NewCheckinHandler creates a new CheckinHandler.
func NewCheckinHandler(service *CheckinService, analytics *Analytics) *CheckinHandler {
	return &CheckinHandler{service: service, analytics: analytics}
}

// Create handles POST /api/v1/checkins
func (h *CheckinHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var input CheckinInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	check, err := h.service.Create(userID, &input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(check)
}

// Today handles GET /api/v1/checkins/today
func (h *CheckinHandler) Today(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	check, err := h.service.Today(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": "No check-in today",
		})
	}

	return c.JSON(check)
}

// History handles GET /api/v1/checkins/history
func (h *CheckinHandler) History(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	days := queryDays(c, 30)
	records, err := h.analytics.History(userID, days)
	if err != nil {
		return analysisError(c, err)
	}

	return c.JSON(fiber.Map{
		"period_days": days,
		"total":       len(records),
		"checkins":    records,
	})
}

// MoodTrends handles GET /api/v1/checkins/analytics/mood
func (h *CheckinHandler) MoodTrends(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	trends, err := h.analytics.MoodTrends(userID, queryDays(c, 30))
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(trends)
}

// Habits handles GET /api/v1/checkins/analytics/habits
func (h *CheckinHandler) Habits(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	analysis, err := h.analytics.HabitAnalysis(userID, queryDays(c, 30))
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(analysis)
}

// Sleep handles GET /api/v1/checkins/analytics/sleep
func (h *CheckinHandler) Sleep(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	analysis, err := h.analytics.SleepAnalysis(userID, queryDays(c, 30))
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(analysis)
}

// Wellness handles GET /api/v1/checkins/analytics/wellness
func (h *CheckinHandler) Wellness(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	score, err := h.analytics.WellnessScore(userID, queryDays(c, 7))
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(score)
}

// Completion handles GET /api/v1/checkins/analytics/completion
func (h *CheckinHandler) Completion(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	rate, err := h.analytics.CompletionRate(userID, queryDays(c, 30))
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(rate)
}

// Summary handles GET /api/v1/checkins/analytics/summary
func (h *CheckinHandler) Summary(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	fields := []string{"mood", "energy", "sleep_hours", "sleep_quality"}
	if raw := strings.TrimSpace(c.Query("fields")); raw != "" {
		fields = fields[:0]
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}

	days := queryDays(c, 30)
	summaries, err := h.analytics.QuantitativeSummaries(userID, days, fields)
	if err != nil {
		return analysisError(c, err)
	}

	return c.JSON(fiber.Map{
		"period_days": days,
		"summaries":   summaries,
	})
}

// TaskStats handles GET /api/v1/checkins/analytics/tasks
func (h *CheckinHandler) TaskStats(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	stats, err := h.analytics.TaskWeeklyStats(userID, queryDays(c, 7))
	if err != nil {
		return analysisError(c, err)
	}
	return c.JSON(stats)
}

func queryDays(c *fiber.Ctx, fallback int) int {
	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(fallback)))
	if err != nil || days < 1 {
		return fallback
	}
	if days > 365 {
		return 365
	}
	return days
}

func analysisError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNoCheckinData) || errors.Is(err, ErrNoMoodData) || errors.Is(err, ErrNoSleepData) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": true, "message": "Analysis failed",
	})
}
