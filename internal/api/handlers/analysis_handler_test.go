package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litdebate/backend/internal/analyzer"
	"github.com/litdebate/backend/internal/jobs"
	"github.com/litdebate/backend/internal/topics"
)

type failingGenerator struct{}

func (failingGenerator) Generate(_ context.Context, _ string, _ int, _ float32) (string, error) {
	return "", errors.New("generation unavailable")
}

func newTestApp(t *testing.T) (*fiber.App, *jobs.Runner) {
	t.Helper()

	gen := failingGenerator{}
	runner := jobs.NewRunner(
		jobs.NewMemoryStore(),
		analyzer.New(gen, 2),
		topics.NewGenerator(gen, 2),
		nil,
		nil,
		t.TempDir(),
	)

	app := fiber.New()
	analysisHandler := NewAnalysisHandler(runner)
	tasksHandler := NewTasksHandler(runner, nil)

	api := app.Group("/api/v1")
	api.Post("/books/analyze", analysisHandler.SubmitAnalysis)
	api.Get("/books/analyze/:id/status", analysisHandler.GetStatus)
	api.Get("/books/analyze/:id/result", analysisHandler.GetResult)
	api.Get("/books/analyze/:id/csv", analysisHandler.DownloadCSV)
	api.Get("/tasks", tasksHandler.ListTasks)
	api.Delete("/tasks/cleanup", tasksHandler.CleanupTasks)
	api.Get("/history", tasksHandler.GetHistory)
	api.Get("/health", tasksHandler.HealthCheck)

	return app, runner
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func submitBook(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := postJSON(t, app, "/api/v1/books/analyze", map[string]any{
		"title":    "Holes",
		"author":   "Louis Sachar",
		"ar_level": 4.6,
	})
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	body := decodeBody(t, resp)
	jobID, _ := body["task_id"].(string)
	require.NotEmpty(t, jobID)
	return jobID
}

func waitForCompletion(t *testing.T, runner *jobs.Runner, jobID string) {
	t.Helper()

	require.Eventually(t, func() bool {
		record, err := runner.Status(context.Background(), jobID)
		return err == nil && record.Terminal()
	}, 5*time.Second, 20*time.Millisecond)
}

func TestSubmitAnalysisAccepted(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/books/analyze", map[string]any{
		"title":    "Holes",
		"author":   "Louis Sachar",
		"ar_level": 4.6,
	})

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "pending", body["status"])
	assert.NotEmpty(t, body["task_id"])
}

func TestSubmitAnalysisValidationErrors(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name      string
		payload   map[string]any
		wantField string
	}{
		{
			name:      "missing title",
			payload:   map[string]any{"author": "Louis Sachar", "ar_level": 4.6},
			wantField: "title",
		},
		{
			name:      "ar level out of range",
			payload:   map[string]any{"title": "Holes", "author": "Louis Sachar", "ar_level": 12.0},
			wantField: "ar_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/v1/books/analyze", tt.payload)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, tt.wantField, body["field"])
		})
	}
}

func TestGetStatusUnknownJob(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/api/v1/books/analyze/missing/status")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetStatusAndResultLifecycle(t *testing.T) {
	app, runner := newTestApp(t)
	jobID := submitBook(t, app)
	waitForCompletion(t, runner, jobID)

	resp := get(t, app, "/api/v1/books/analyze/"+jobID+"/status")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	status := decodeBody(t, resp)
	assert.Equal(t, "completed", status["status"])
	assert.Equal(t, 1.0, status["progress"])

	resp = get(t, app, "/api/v1/books/analyze/"+jobID+"/result")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decodeBody(t, resp)
	assert.Equal(t, 5.0, result["overall_score"])
	assert.Equal(t, 0.0, result["topics_generated"])
}

func TestGetResultUnknownJob(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/api/v1/books/analyze/missing/result")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDownloadCSVVariants(t *testing.T) {
	app, runner := newTestApp(t)
	jobID := submitBook(t, app)
	waitForCompletion(t, runner, jobID)

	resp := get(t, app, "/api/v1/books/analyze/"+jobID+"/csv")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Topic_ID")

	resp = get(t, app, "/api/v1/books/analyze/"+jobID+"/csv?variant=enriched")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Opening_Statement")

	resp = get(t, app, "/api/v1/books/analyze/"+jobID+"/csv?variant=xml")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListTasksAndCleanup(t *testing.T) {
	app, runner := newTestApp(t)
	jobID := submitBook(t, app)
	waitForCompletion(t, runner, jobID)

	resp := get(t, app, "/api/v1/tasks")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, 1.0, body["total"])

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/cleanup", nil)
	cleanupResp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, cleanupResp.StatusCode)

	// The record is fresh, so nothing is removed.
	cleanup := decodeBody(t, cleanupResp)
	assert.Equal(t, 0.0, cleanup["removed"])
}

func TestGetHistoryWithoutStore(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/api/v1/history")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Empty(t, body["runs"])
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/api/v1/health")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
}
