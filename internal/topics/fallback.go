package topics

import (
	"fmt"

	"github.com/litdebate/backend/internal/domain"
)

// fallbackReadingQuestions spans the Bloom ladder so the enriched export
// always carries five question/answer pairs.
func fallbackReadingQuestions(bookTitle string) []domain.ReadingQuestion {
	blooms := []domain.BloomLevel{
		domain.BloomRemember,
		domain.BloomUnderstand,
		domain.BloomAnalyze,
		domain.BloomEvaluate,
		domain.BloomCreate,
	}
	types := []string{"factual", "inferential", "analytical", "evaluative", "creative"}

	questions := make([]domain.ReadingQuestion, len(blooms))
	for i := range blooms {
		questions[i] = domain.ReadingQuestion{
			QuestionID:   fmt.Sprintf("q_%d", i+1),
			QuestionType: types[i],
			QuestionText: fmt.Sprintf("Discuss an important aspect of %s related to this topic.", bookTitle),
			SampleAnswer: "Answers will vary; look for references to the text.",
			Points:       i + 1,
			BloomLevel:   blooms[i],
		}
	}
	return questions
}

func fallbackWritingTemplate(level domain.EducationLevel) domain.WritingTemplate {
	spec := writingSpecs[level]
	return domain.WritingTemplate{
		TemplateID: fmt.Sprintf("template_%s", level),
		Level:      level,
		Structure: map[string]string{
			"introduction": "State your position on the topic and preview your main reasons.",
			"body":         "Present your strongest argument with evidence from the book.",
			"conclusion":   "Restate your position and summarize your reasoning.",
		},
		WordCountTarget:    spec.WordCount,
		TimeLimit:          spec.TimeLimit,
		EvaluationCriteria: []string{"Content", "Organization", "Language"},
	}
}

func fallbackVocabularyExercises() []domain.VocabularyExercise {
	return []domain.VocabularyExercise{
		{
			Type:         "definition_matching",
			Instructions: "Match each word from the topic vocabulary to its definition.",
			Items:        []domain.VocabularyItem{{Word: "debate", Definition: "a structured discussion of opposing views"}},
		},
		{
			Type:         "context_clues",
			Instructions: "Use the sentence context to work out the meaning of the target word.",
			Items:        []domain.VocabularyItem{{Sentence: "The characters held a debate about the right choice.", TargetWord: "debate", Answer: "a discussion of opposing views"}},
		},
		{
			Type:         "usage_practice",
			Instructions: "Use the target words in your own sentences about the topic.",
			Items:        []domain.VocabularyItem{{Prompt: "Describe the main disagreement in the story.", TargetWords: []string{"debate"}, SampleResponse: "The story centers on a debate about loyalty."}},
		},
	}
}
