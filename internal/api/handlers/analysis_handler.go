package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/domain"
	"github.com/litdebate/backend/internal/jobs"
	"github.com/litdebate/backend/pkg/logger"
)

type AnalysisHandler struct {
	runner *jobs.Runner
}

func NewAnalysisHandler(runner *jobs.Runner) *AnalysisHandler {
	return &AnalysisHandler{
		runner: runner,
	}
}

// SubmitAnalysis accepts book metadata, validates it and schedules a
// background analysis job. The response carries the job id for polling.
func (h *AnalysisHandler) SubmitAnalysis(c *fiber.Ctx) error {
	var book domain.BookInfo
	if err := c.BodyParser(&book); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	jobID, err := h.runner.Submit(c.Context(), book)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Error(),
				"field": verr.Field,
			})
		}
		logger.Error("Failed to submit analysis job", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit analysis",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"task_id":        jobID,
		"status":         string(jobs.StatusPending),
		"message":        "Analysis task created",
		"estimated_time": "2-5 minutes",
	})
}

// GetStatus reports the job's current progress envelope.
func (h *AnalysisHandler) GetStatus(c *fiber.Ctx) error {
	record, err := h.runner.Status(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		logger.Error("Failed to load job status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load job status",
		})
	}

	return c.JSON(record)
}

// GetResult returns the completed analysis summary. Jobs still in flight
// answer 400 so callers keep polling the status endpoint.
func (h *AnalysisHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.runner.Result(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		if errors.Is(err, jobs.ErrJobNotReady) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Analysis not completed yet",
			})
		}
		logger.Error("Failed to load job result", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load job result",
		})
	}

	return c.JSON(result)
}

// DownloadCSV streams one of the exported CSV files. The variant query
// parameter selects the basic or enriched export, defaulting to basic.
func (h *AnalysisHandler) DownloadCSV(c *fiber.Ctx) error {
	result, err := h.runner.Result(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		if errors.Is(err, jobs.ErrJobNotReady) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Analysis not completed yet",
			})
		}
		logger.Error("Failed to load job result", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load job result",
		})
	}

	path := result.CSVPath
	switch c.Query("variant", "basic") {
	case "basic":
	case "enriched":
		path = result.EnrichedCSVPath
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown variant, expected basic or enriched",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	return c.SendFile(path)
}
