package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/storage/models"
	"github.com/litdebate/backend/pkg/logger"
)

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		book_title TEXT NOT NULL,
		book_author TEXT NOT NULL,
		ar_level REAL NOT NULL,
		education_level TEXT NOT NULL,
		overall_score REAL NOT NULL,
		topics_generated INTEGER NOT NULL,
		best_areas TEXT,
		csv_path TEXT,
		enriched_csv_path TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON analysis_runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_title ON analysis_runs(book_title);
	`

	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

func (c *Client) InsertRun(run *models.AnalysisRun) error {
	query := `
		INSERT INTO analysis_runs (id, job_id, book_title, book_author, ar_level, education_level,
			overall_score, topics_generated, best_areas, csv_path, enriched_csv_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := c.db.Exec(
		query,
		run.ID,
		run.JobID,
		run.BookTitle,
		run.BookAuthor,
		run.ARLevel,
		run.EducationLevel,
		run.OverallScore,
		run.TopicsGenerated,
		strings.Join(run.BestAreas, ","),
		run.CSVPath,
		run.EnrichedCSVPath,
		run.CreatedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}

	logger.Info("Analysis run recorded",
		zap.String("run_id", run.ID),
		zap.String("book", run.BookTitle),
		zap.Float64("overall_score", run.OverallScore),
	)

	return nil
}

func (c *Client) ListRuns(limit int) ([]models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, job_id, book_title, book_author, ar_level, education_level,
			overall_score, topics_generated, best_areas, csv_path, enriched_csv_path, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := c.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []models.AnalysisRun
	for rows.Next() {
		var run models.AnalysisRun
		var bestAreas string
		var createdAt int64

		err := rows.Scan(
			&run.ID,
			&run.JobID,
			&run.BookTitle,
			&run.BookAuthor,
			&run.ARLevel,
			&run.EducationLevel,
			&run.OverallScore,
			&run.TopicsGenerated,
			&bestAreas,
			&run.CSVPath,
			&run.EnrichedCSVPath,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if bestAreas != "" {
			run.BestAreas = strings.Split(bestAreas, ",")
		}
		run.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
