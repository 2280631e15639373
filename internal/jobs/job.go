package jobs

import (
	"errors"
	"time"

	"github.com/litdebate/backend/internal/domain"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// RetentionWindow is how long job records are kept before a sweep removes
// them, regardless of state.
const RetentionWindow = 24 * time.Hour

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobNotReady = errors.New("job not completed yet")
)

// ResultSummary is the completed-job payload returned to pollers.
type ResultSummary struct {
	AnalysisID      string                 `json:"analysis_id"`
	OverallScore    float64                `json:"overall_score"`
	TopicsGenerated int                    `json:"topics_generated"`
	BestAreas       []domain.EducationArea `json:"best_areas"`
	Book            BookSummary            `json:"book_info"`
	CSVPath         string                 `json:"csv_path"`
	EnrichedCSVPath string                 `json:"enriched_csv_path"`
}

type BookSummary struct {
	Title          string                `json:"title"`
	Author         string                `json:"author"`
	ARLevel        float64               `json:"ar_level"`
	EducationLevel domain.EducationLevel `json:"education_level"`
}

// Record is one job's status envelope. It is created on submission, mutated
// only by the pipeline executing that job, and read by pollers.
type Record struct {
	ID        string          `json:"task_id"`
	Status    Status          `json:"status"`
	Progress  float64         `json:"progress"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"created_at"`
	Book      domain.BookInfo `json:"book_info"`
	Result    *ResultSummary  `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Terminal reports whether the record has reached a final state. There are
// no transitions out of a terminal state.
func (r *Record) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}
