package analyzer

import (
	"math"
	"sort"

	"github.com/litdebate/backend/internal/domain"
)

var educationalValues = []string{
	"Critical thinking development",
	"English communication skills",
	"Cultural awareness",
	"Collaborative learning",
}

// Assess reduces the completed analyses and topic list into the overall
// summary. Pure function: no generation calls and no failure path. The top-3
// selection is a stable sort, so ties keep enumeration order.
func Assess(book domain.BookInfo, analyses []domain.AreaAnalysis, topicCount int) domain.OverallAssessment {
	var total float64
	for _, analysis := range analyses {
		total += analysis.RelevanceScore
	}

	var avg float64
	if len(analyses) > 0 {
		avg = total / float64(len(analyses))
	}

	ranked := make([]domain.AreaAnalysis, len(analyses))
	copy(ranked, analyses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	best := make([]domain.EducationArea, 0, 3)
	for i := 0; i < len(ranked) && i < 3; i++ {
		best = append(best, ranked[i].Area)
	}

	return domain.OverallAssessment{
		OverallScore:         math.Round(avg*100) / 100,
		TotalTopicsGenerated: topicCount,
		BestAreas:            best,
		RecommendedLevel:     book.EducationLevel(),
		ProgramDurationWeeks: topicCount * 2,
		EducationalValues:    educationalValues,
	}
}
