package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/jobs"
	"github.com/litdebate/backend/internal/storage/sqlite"
	"github.com/litdebate/backend/pkg/logger"
)

type TasksHandler struct {
	runner  *jobs.Runner
	history *sqlite.Client
}

func NewTasksHandler(runner *jobs.Runner, history *sqlite.Client) *TasksHandler {
	return &TasksHandler{
		runner:  runner,
		history: history,
	}
}

// ListTasks returns all live job records together with per-status counts.
func (h *TasksHandler) ListTasks(c *fiber.Ctx) error {
	records, err := h.runner.List(c.Context())
	if err != nil {
		logger.Error("Failed to list jobs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list tasks",
		})
	}

	counts := map[string]int{}
	for _, record := range records {
		counts[string(record.Status)]++
	}

	return c.JSON(fiber.Map{
		"total":  len(records),
		"counts": counts,
		"tasks":  records,
	})
}

// CleanupTasks removes job records past the retention window.
func (h *TasksHandler) CleanupTasks(c *fiber.Ctx) error {
	removed, err := h.runner.SweepExpired(c.Context())
	if err != nil {
		logger.Error("Failed to sweep expired jobs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clean up tasks",
		})
	}

	return c.JSON(fiber.Map{
		"removed": removed,
	})
}

// GetHistory lists persisted analysis runs, newest first.
func (h *TasksHandler) GetHistory(c *fiber.Ctx) error {
	if h.history == nil {
		return c.JSON(fiber.Map{
			"runs": []any{},
		})
	}

	limit := c.QueryInt("limit", 0)
	runs, err := h.history.ListRuns(limit)
	if err != nil {
		logger.Error("Failed to list analysis history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load history",
		})
	}

	return c.JSON(fiber.Map{
		"runs": runs,
	})
}

// HealthCheck reports liveness.
func (h *TasksHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "litdebate-api",
	})
}
