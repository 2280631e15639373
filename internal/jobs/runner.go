package jobs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/analyzer"
	"github.com/litdebate/backend/internal/catalog"
	"github.com/litdebate/backend/internal/domain"
	"github.com/litdebate/backend/internal/export"
	"github.com/litdebate/backend/internal/metrics"
	"github.com/litdebate/backend/internal/storage/models"
	"github.com/litdebate/backend/internal/storage/sqlite"
	"github.com/litdebate/backend/internal/topics"
	"github.com/litdebate/backend/pkg/logger"
)

const seedVocabularyMax = 15

// Runner drives the analysis pipeline for submitted jobs. Submission returns
// immediately; each job runs on its own goroutine to a terminal state. There
// is no cancellation: the context threaded through the stages is reserved
// for future use.
type Runner struct {
	store     Store
	analyzer  *analyzer.Analyzer
	materials *topics.Generator
	enricher  *catalog.Enricher
	history   *sqlite.Client
	outputDir string
}

func NewRunner(store Store, a *analyzer.Analyzer, materials *topics.Generator, enricher *catalog.Enricher, history *sqlite.Client, outputDir string) *Runner {
	return &Runner{
		store:     store,
		analyzer:  a,
		materials: materials,
		enricher:  enricher,
		history:   history,
		outputDir: outputDir,
	}
}

// Submit validates the book metadata, creates a pending job record and
// schedules the pipeline. Validation failures reject the submission before
// any record exists.
func (r *Runner) Submit(ctx context.Context, book domain.BookInfo) (string, error) {
	if err := book.Validate(); err != nil {
		return "", err
	}

	record := &Record{
		ID:        uuid.New().String(),
		Status:    StatusPending,
		Progress:  0.0,
		Message:   "Analysis task created",
		CreatedAt: time.Now(),
		Book:      book,
	}

	if err := r.store.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create job record: %w", err)
	}

	metrics.JobsSubmitted.Inc()
	logger.Info("Analysis job submitted",
		zap.String("job_id", record.ID),
		zap.String("title", book.Title),
	)

	go r.run(record.ID, book)

	return record.ID, nil
}

// Status returns the current job record.
func (r *Runner) Status(ctx context.Context, id string) (*Record, error) {
	return r.store.Get(ctx, id)
}

// Result returns the completed-job summary, or ErrJobNotReady while the job
// is still in flight.
func (r *Runner) Result(ctx context.Context, id string) (*ResultSummary, error) {
	record, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != StatusCompleted || record.Result == nil {
		return nil, ErrJobNotReady
	}
	return record.Result, nil
}

// List returns all live job records.
func (r *Runner) List(ctx context.Context) ([]*Record, error) {
	return r.store.List(ctx)
}

// SweepExpired removes job records older than the retention window.
func (r *Runner) SweepExpired(ctx context.Context) (int, error) {
	removed, err := Sweep(ctx, r.store, RetentionWindow)
	if err != nil {
		return removed, err
	}

	metrics.SweepRemoved.Add(float64(removed))
	logger.Info("Retention sweep completed", zap.Int("removed", removed))
	return removed, nil
}

func (r *Runner) run(id string, book domain.BookInfo) {
	start := time.Now()
	ctx := context.Background()

	defer func() {
		if rec := recover(); rec != nil {
			r.fail(ctx, id, fmt.Sprintf("%v", rec))
		}
	}()

	r.progress(ctx, id, StatusProcessing, 0.1, "Starting book analysis...")

	if r.enricher != nil {
		book = r.enricher.Enhance(ctx, book)
	}

	r.progress(ctx, id, StatusProcessing, 0.3, "Analyzing book content...")

	result, err := r.analyze(ctx, book)
	if err != nil {
		r.fail(ctx, id, err.Error())
		return
	}

	r.progress(ctx, id, StatusProcessing, 0.8, "Exporting results to CSV...")

	csvPath := filepath.Join(r.outputDir, fmt.Sprintf("analysis_%s.csv", id))
	if err := export.WriteBasicCSV(csvPath, result); err != nil {
		r.fail(ctx, id, err.Error())
		return
	}

	enrichedPath := filepath.Join(r.outputDir, fmt.Sprintf("analysis_%s_enriched.csv", id))
	if err := export.WriteEnrichedCSV(enrichedPath, result); err != nil {
		r.fail(ctx, id, err.Error())
		return
	}

	r.recordHistory(id, result, csvPath, enrichedPath)

	summary := &ResultSummary{
		AnalysisID:      result.AnalysisID,
		OverallScore:    result.Assessment.OverallScore,
		TopicsGenerated: result.Assessment.TotalTopicsGenerated,
		BestAreas:       result.Assessment.BestAreas,
		Book: BookSummary{
			Title:          result.Book.Title,
			Author:         result.Book.Author,
			ARLevel:        result.Book.ARLevel,
			EducationLevel: result.Book.EducationLevel(),
		},
		CSVPath:         csvPath,
		EnrichedCSVPath: enrichedPath,
	}

	record, err := r.store.Get(ctx, id)
	if err != nil {
		logger.Error("Job record vanished before completion", zap.String("job_id", id))
		return
	}

	record.Status = StatusCompleted
	record.Progress = 1.0
	record.Message = "Analysis completed successfully"
	record.Result = summary
	if err := r.store.Update(ctx, record); err != nil {
		logger.Error("Failed to mark job completed", zap.String("job_id", id), zap.Error(err))
		return
	}

	metrics.JobsCompleted.WithLabelValues(string(StatusCompleted)).Inc()
	metrics.JobDuration.Observe(time.Since(start).Seconds())
	metrics.TopicsPerRun.Observe(float64(result.Assessment.TotalTopicsGenerated))

	logger.Info("Analysis job completed",
		zap.String("job_id", id),
		zap.Float64("overall_score", result.Assessment.OverallScore),
		zap.Int("topics", result.Assessment.TotalTopicsGenerated),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// analyze runs the staged pipeline: area analyses, topic generation for
// qualifying areas, per-topic enrichment, then the overall assessment.
func (r *Runner) analyze(ctx context.Context, book domain.BookInfo) (*domain.AnalysisResult, error) {
	seedVocabulary := catalog.ExtractVocabulary(book.Summary, seedVocabularyMax)

	analyses := r.analyzer.AnalyzeAreas(ctx, book, seedVocabulary)
	for _, analysis := range analyses {
		metrics.RelevanceScore.Observe(analysis.RelevanceScore)
	}

	topicList := r.analyzer.GenerateTopics(ctx, book, analyses)
	topicList = r.materials.EnrichTopics(ctx, book, topicList)

	return &domain.AnalysisResult{
		Book:         book,
		AnalysisID:   fmt.Sprintf("analysis_%s", time.Now().Format("20060102_150405")),
		AnalysisDate: time.Now(),
		AreaAnalyses: analyses,
		Topics:       topicList,
		Assessment:   analyzer.Assess(book, analyses, len(topicList)),
	}, nil
}

func (r *Runner) recordHistory(jobID string, result *domain.AnalysisResult, csvPath, enrichedPath string) {
	if r.history == nil {
		return
	}

	areas := make([]string, 0, len(result.Assessment.BestAreas))
	for _, area := range result.Assessment.BestAreas {
		areas = append(areas, string(area))
	}

	run := &models.AnalysisRun{
		ID:              result.AnalysisID,
		JobID:           jobID,
		BookTitle:       result.Book.Title,
		BookAuthor:      result.Book.Author,
		ARLevel:         result.Book.ARLevel,
		EducationLevel:  string(result.Book.EducationLevel()),
		OverallScore:    result.Assessment.OverallScore,
		TopicsGenerated: result.Assessment.TotalTopicsGenerated,
		BestAreas:       areas,
		CSVPath:         csvPath,
		EnrichedCSVPath: enrichedPath,
		CreatedAt:       time.Now(),
	}

	if err := r.history.InsertRun(run); err != nil {
		logger.Warn("Failed to record analysis run", zap.String("job_id", jobID), zap.Error(err))
	}
}

func (r *Runner) progress(ctx context.Context, id string, status Status, progress float64, message string) {
	record, err := r.store.Get(ctx, id)
	if err != nil {
		logger.Error("Failed to load job record", zap.String("job_id", id), zap.Error(err))
		return
	}

	record.Status = status
	record.Progress = progress
	record.Message = message
	if err := r.store.Update(ctx, record); err != nil {
		logger.Error("Failed to update job progress", zap.String("job_id", id), zap.Error(err))
	}
}

func (r *Runner) fail(ctx context.Context, id, message string) {
	record, err := r.store.Get(ctx, id)
	if err != nil {
		logger.Error("Failed to load job record", zap.String("job_id", id), zap.Error(err))
		return
	}

	record.Status = StatusFailed
	record.Message = fmt.Sprintf("Analysis failed: %s", message)
	record.Error = message
	if err := r.store.Update(ctx, record); err != nil {
		logger.Error("Failed to mark job failed", zap.String("job_id", id), zap.Error(err))
	}

	metrics.JobsCompleted.WithLabelValues(string(StatusFailed)).Inc()
	logger.Error("Analysis job failed", zap.String("job_id", id), zap.String("error", message))
}
