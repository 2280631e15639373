package domain

import "fmt"

const (
	MinARLevel = 1.0
	MaxARLevel = 10.0
)

// ValidationError reports book metadata that fails domain constraints.
// It is surfaced to the submitter before any job is created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type BookInfo struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ARLevel         float64 `json:"ar_level"`
	Pages           int     `json:"pages,omitempty"`
	Genre           string  `json:"genre,omitempty"`
	PublicationYear int     `json:"publication_year,omitempty"`
	ISBN            string  `json:"isbn,omitempty"`
	Summary         string  `json:"summary,omitempty"`
}

// Validate checks the caller-supplied metadata against domain constraints.
func (b *BookInfo) Validate() error {
	if b.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if b.Author == "" {
		return &ValidationError{Field: "author", Reason: "must not be empty"}
	}
	if b.ARLevel < MinARLevel || b.ARLevel > MaxARLevel {
		return &ValidationError{
			Field:  "ar_level",
			Reason: fmt.Sprintf("must be between %.1f and %.1f", MinARLevel, MaxARLevel),
		}
	}
	return nil
}

// EducationLevel derives the program level from the AR reading score.
// Both band boundaries are inclusive on the lower band.
func (b *BookInfo) EducationLevel() EducationLevel {
	switch {
	case b.ARLevel <= 4.5:
		return LevelPreparation
	case b.ARLevel <= 5.2:
		return LevelRegular
	default:
		return LevelMastery
	}
}
