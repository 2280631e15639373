package domain

import "fmt"

type EducationLevel string

const (
	LevelPreparation EducationLevel = "preparation"
	LevelRegular     EducationLevel = "regular"
	LevelMastery     EducationLevel = "mastery"
)

type EducationArea string

const (
	AreaScienceTechnology  EducationArea = "Science & Technology"
	AreaHumanSociety       EducationArea = "Human & Society"
	AreaFutureCareers      EducationArea = "Future & Careers"
	AreaLiteratureIdentity EducationArea = "Literature & Identity"
	AreaMathThinking       EducationArea = "Mathematical Thinking"
	AreaEconomicsGlobal    EducationArea = "Economics & Global Citizenship"
)

// AllAreas returns the six education areas in their declared order.
// Area analyses are always produced and reported in this order.
func AllAreas() []EducationArea {
	return []EducationArea{
		AreaScienceTechnology,
		AreaHumanSociety,
		AreaFutureCareers,
		AreaLiteratureIdentity,
		AreaMathThinking,
		AreaEconomicsGlobal,
	}
}

// Slug converts an area name to its topic-id prefix, e.g.
// "Science & Technology" -> "science_&_technology".
func (a EducationArea) Slug() string {
	slug := make([]rune, 0, len(a))
	for _, r := range a {
		switch {
		case r >= 'A' && r <= 'Z':
			slug = append(slug, r+('a'-'A'))
		case r == ' ':
			slug = append(slug, '_')
		default:
			slug = append(slug, r)
		}
	}
	return string(slug)
}

type DebateFormat string

const (
	FormatCharacterComparison DebateFormat = "character_comparison"
	FormatMoralJudgment       DebateFormat = "moral_judgment"
	FormatIssueAnalysis       DebateFormat = "issue_analysis"
	FormatProblemSolution     DebateFormat = "problem_solution"
	FormatCauseEffect         DebateFormat = "cause_effect"
	FormatFuturePrediction    DebateFormat = "future_prediction"
)

// ParseDebateFormat validates a format tag against the closed set.
// Unrecognized tags are rejected at this boundary rather than passed through.
func ParseDebateFormat(s string) (DebateFormat, error) {
	switch DebateFormat(s) {
	case FormatCharacterComparison, FormatMoralJudgment, FormatIssueAnalysis,
		FormatProblemSolution, FormatCauseEffect, FormatFuturePrediction:
		return DebateFormat(s), nil
	}
	return "", fmt.Errorf("unknown debate format %q", s)
}

type BloomLevel string

const (
	BloomRemember   BloomLevel = "remember"
	BloomUnderstand BloomLevel = "understand"
	BloomApply      BloomLevel = "apply"
	BloomAnalyze    BloomLevel = "analyze"
	BloomEvaluate   BloomLevel = "evaluate"
	BloomCreate     BloomLevel = "create"
)

func ParseBloomLevel(s string) (BloomLevel, error) {
	switch BloomLevel(s) {
	case BloomRemember, BloomUnderstand, BloomApply, BloomAnalyze, BloomEvaluate, BloomCreate:
		return BloomLevel(s), nil
	}
	return "", fmt.Errorf("unknown bloom level %q", s)
}
