package analyzer

import "github.com/litdebate/backend/internal/domain"

// fallbackScore is what a failed area analysis reports. It sits below the
// topic threshold, so areas that could not be analyzed never produce topics.
const fallbackScore = 5.0

// fallbackAnalysis is the static substitute used when generation or parsing
// fails for an area. The stage contract guarantees one analysis per area, so
// failures substitute rather than omit.
func fallbackAnalysis(area domain.EducationArea, seedVocabulary []string) domain.AreaAnalysis {
	vocab := []string{"vocabulary"}
	if len(seedVocabulary) > 0 {
		vocab = seedVocabulary
	}

	return domain.AreaAnalysis{
		Area:             area,
		RelevanceScore:   fallbackScore,
		KeyThemes:        []string{"General themes"},
		DiscussionPoints: []string{"General discussion points"},
		VocabularyFocus:  vocab,
		CulturalContext:  []string{"cultural elements"},
		LocalConnections: []string{"local connections"},
	}
}
