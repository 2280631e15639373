package models

import "time"

// AnalysisRun is the persisted record of one completed pipeline run.
type AnalysisRun struct {
	ID              string
	JobID           string
	BookTitle       string
	BookAuthor      string
	ARLevel         float64
	EducationLevel  string
	OverallScore    float64
	TopicsGenerated int
	BestAreas       []string
	CSVPath         string
	EnrichedCSVPath string
	CreatedAt       time.Time
}
