package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/jobs"
	"github.com/litdebate/backend/pkg/logger"
)

const progressPollInterval = 500 * time.Millisecond

type WebSocketHandler struct {
	runner *jobs.Runner
}

func NewWebSocketHandler(runner *jobs.Runner) *WebSocketHandler {
	return &WebSocketHandler{
		runner: runner,
	}
}

// HandleConnection streams progress snapshots for one job until it reaches
// a terminal state. The job id comes from the route parameter.
func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	jobID := c.Params("id")
	logger.Info("WebSocket connection established", zap.String("job_id", jobID))

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed", zap.String("job_id", jobID))
	}()

	ctx := context.Background()
	lastMessage := ""

	for {
		record, err := h.runner.Status(ctx, jobID)
		if err != nil {
			if errors.Is(err, jobs.ErrJobNotFound) {
				h.sendError(c, "Job not found")
			} else {
				logger.Error("Failed to load job status", zap.Error(err))
				h.sendError(c, "Failed to load job status")
			}
			return
		}

		// Only push when something changed, but always push terminal states.
		if record.Message != lastMessage || record.Terminal() {
			if err := h.sendProgress(c, record); err != nil {
				logger.Error("Failed to write WebSocket message", zap.Error(err))
				return
			}
			lastMessage = record.Message
		}

		if record.Terminal() {
			return
		}

		time.Sleep(progressPollInterval)
	}
}

func (h *WebSocketHandler) sendProgress(c *websocket.Conn, record *jobs.Record) error {
	msg := map[string]interface{}{
		"type":     "progress",
		"task_id":  record.ID,
		"status":   string(record.Status),
		"progress": record.Progress,
		"message":  record.Message,
	}
	if record.Status == jobs.StatusCompleted && record.Result != nil {
		msg["type"] = "complete"
		msg["result"] = record.Result
	}
	if record.Status == jobs.StatusFailed {
		msg["type"] = "failed"
		msg["error"] = record.Error
	}

	return c.WriteJSON(msg)
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	msg := map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	}

	c.WriteJSON(msg)
}
