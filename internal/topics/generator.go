package topics

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/litdebate/backend/internal/domain"
	"github.com/litdebate/backend/internal/llm"
	"github.com/litdebate/backend/internal/metrics"
	"github.com/litdebate/backend/pkg/logger"
)

// DefaultConcurrency bounds how many topics are enriched at once.
const DefaultConcurrency = 3

// Generator produces the educational material bundle for each debate topic.
// The three model-backed artifacts (reading questions, writing template,
// vocabulary exercises) fail independently to their own fallbacks; the
// discussion guide and assessment rubric are static.
type Generator struct {
	gen         llm.TextGenerator
	concurrency int
}

func NewGenerator(gen llm.TextGenerator, concurrency int) *Generator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Generator{gen: gen, concurrency: concurrency}
}

// EnrichTopics attaches materials to every topic. Enrichment of distinct
// topics is independent and runs concurrently up to the configured bound.
func (g *Generator) EnrichTopics(ctx context.Context, book domain.BookInfo, topics []domain.EnhancedDebateTopic) []domain.EnhancedDebateTopic {
	enriched := make([]domain.EnhancedDebateTopic, len(topics))
	copy(enriched, topics)

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i := range enriched {
		i := i
		eg.Go(func() error {
			enriched[i].Materials = g.buildMaterials(ectx, book, enriched[i])
			return nil
		})
	}
	eg.Wait()

	return enriched
}

func (g *Generator) buildMaterials(ctx context.Context, book domain.BookInfo, topic domain.EnhancedDebateTopic) domain.EducationalMaterial {
	material := domain.EducationalMaterial{
		MaterialID:       fmt.Sprintf("materials_%s", topic.TopicID),
		TopicID:          topic.TopicID,
		DiscussionGuide:  discussionGuide(),
		AssessmentRubric: assessmentRubric(),
	}

	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		material.ReadingQuestions = g.readingQuestions(ectx, book, topic)
		return nil
	})
	eg.Go(func() error {
		material.WritingTemplate = g.writingTemplate(ectx, topic)
		return nil
	})
	eg.Go(func() error {
		material.VocabularyExercises = g.vocabularyExercises(ectx, book, topic)
		return nil
	})
	eg.Wait()

	return material
}

func (g *Generator) readingQuestions(ctx context.Context, book domain.BookInfo, topic domain.EnhancedDebateTopic) []domain.ReadingQuestion {
	prompt := fmt.Sprintf(`Create reading comprehension questions following Bloom's Taxonomy:

LEVEL 1 (Remember): Factual recall from the text
LEVEL 2 (Understand): Explain meaning and relationships
LEVEL 3 (Apply): Use information in new situations
LEVEL 4 (Analyze): Break down and examine components
LEVEL 5 (Evaluate): Make judgments and assessments
LEVEL 6 (Create): Generate new ideas and solutions

BOOK: %s by %s
TOPIC: %s
LEVEL: %s

Generate 5 reading comprehension questions in JSON format:

{
    "questions": [
        {
            "question_type": "<factual|inferential|analytical|evaluative|creative>",
            "question_text": "<clear, specific question>",
            "sample_answer": "<detailed sample answer>",
            "points": <point value 1-5>,
            "bloom_level": "<remember|understand|apply|analyze|evaluate|create>"
        }
    ]
}

Questions should progress from basic comprehension to higher-order thinking.`,
		book.Title, book.Author, topic.Title, topic.Level)

	result, err := llm.GenerateJSON(ctx, g.gen, prompt, 1500, 0.3, "questions")
	if err != nil {
		logger.Warn("Reading question generation failed, using fallback",
			zap.String("topic_id", topic.TopicID),
			zap.Error(err),
		)
		metrics.FallbacksTotal.WithLabelValues("reading_questions").Inc()
		return fallbackReadingQuestions(book.Title)
	}

	raw, ok := result["questions"].([]any)
	if !ok || len(raw) == 0 {
		metrics.FallbacksTotal.WithLabelValues("reading_questions").Inc()
		return fallbackReadingQuestions(book.Title)
	}

	questions := make([]domain.ReadingQuestion, 0, len(raw))
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		text, _ := entry["question_text"].(string)
		answer, _ := entry["sample_answer"].(string)
		bloomTag, _ := entry["bloom_level"].(string)
		bloom, err := domain.ParseBloomLevel(bloomTag)
		if text == "" || answer == "" || err != nil {
			continue
		}

		qType, _ := entry["question_type"].(string)
		points, _ := llm.Number(entry["points"])

		questions = append(questions, domain.ReadingQuestion{
			QuestionID:   fmt.Sprintf("q_%d", i+1),
			QuestionType: qType,
			QuestionText: text,
			SampleAnswer: answer,
			Points:       int(points),
			BloomLevel:   bloom,
		})
	}

	if len(questions) == 0 {
		metrics.FallbacksTotal.WithLabelValues("reading_questions").Inc()
		return fallbackReadingQuestions(book.Title)
	}

	return questions
}

func (g *Generator) writingTemplate(ctx context.Context, topic domain.EnhancedDebateTopic) domain.WritingTemplate {
	spec := writingSpecs[topic.Level]

	prompt := fmt.Sprintf(`Create a writing template that scaffolds student learning.

TOPIC: %s
LEVEL: %s
TARGET: %d words in %d minutes

Create the template in JSON format:

{
    "structure": {
        "introduction": "<template for introduction paragraph>",
        "body_paragraph_1": "<template for first body paragraph>",
        "body_paragraph_2": "<template for second body paragraph>",
        "conclusion": "<template for conclusion paragraph>"
    },
    "evaluation_criteria": [<list of evaluation criteria>]
}

Templates should include sentence starters appropriate for the level,
transition words and phrases, argument structure guidance, and evidence
integration tips.`,
		topic.Title, topic.Level, spec.WordCount, spec.TimeLimit)

	result, err := llm.GenerateJSON(ctx, g.gen, prompt, 1000, 0.3, "structure", "evaluation_criteria")
	if err != nil {
		logger.Warn("Writing template generation failed, using fallback",
			zap.String("topic_id", topic.TopicID),
			zap.Error(err),
		)
		metrics.FallbacksTotal.WithLabelValues("writing_template").Inc()
		return fallbackWritingTemplate(topic.Level)
	}

	structure := map[string]string{}
	if sm, ok := result["structure"].(map[string]any); ok {
		for k, v := range sm {
			if s, ok := v.(string); ok {
				structure[k] = s
			}
		}
	}
	if len(structure) == 0 {
		metrics.FallbacksTotal.WithLabelValues("writing_template").Inc()
		return fallbackWritingTemplate(topic.Level)
	}

	return domain.WritingTemplate{
		TemplateID:         fmt.Sprintf("template_%s", topic.Level),
		Level:              topic.Level,
		Structure:          structure,
		WordCountTarget:    spec.WordCount,
		TimeLimit:          spec.TimeLimit,
		EvaluationCriteria: llm.StringSlice(result["evaluation_criteria"]),
	}
}

func (g *Generator) vocabularyExercises(ctx context.Context, book domain.BookInfo, topic domain.EnhancedDebateTopic) []domain.VocabularyExercise {
	prompt := fmt.Sprintf(`Create vocabulary exercises for the debate topic: %s
Book: %s
Level: %s

Generate 3 different types of vocabulary exercises in JSON format:

{
    "exercises": [
        {
            "type": "definition_matching",
            "instructions": "<clear instructions>",
            "items": [
                {"word": "<vocabulary word>", "definition": "<definition>", "example_sentence": "<example from context>"}
            ]
        },
        {
            "type": "context_clues",
            "instructions": "<clear instructions>",
            "items": [
                {"sentence": "<sentence with vocabulary word>", "target_word": "<word to define>", "answer": "<meaning from context>"}
            ]
        },
        {
            "type": "usage_practice",
            "instructions": "<clear instructions>",
            "items": [
                {"prompt": "<situation requiring vocabulary use>", "target_words": [<words to use>], "sample_response": "<example response>"}
            ]
        }
    ]
}

Focus on vocabulary that will be useful for the debate topic.`,
		topic.Title, book.Title, topic.Level)

	result, err := llm.GenerateJSON(ctx, g.gen, prompt, 1200, 0.3, "exercises")
	if err != nil {
		logger.Warn("Vocabulary exercise generation failed, using fallback",
			zap.String("topic_id", topic.TopicID),
			zap.Error(err),
		)
		metrics.FallbacksTotal.WithLabelValues("vocabulary_exercises").Inc()
		return fallbackVocabularyExercises()
	}

	data, err := json.Marshal(result["exercises"])
	if err != nil {
		metrics.FallbacksTotal.WithLabelValues("vocabulary_exercises").Inc()
		return fallbackVocabularyExercises()
	}

	var exercises []domain.VocabularyExercise
	if err := json.Unmarshal(data, &exercises); err != nil || len(exercises) == 0 {
		metrics.FallbacksTotal.WithLabelValues("vocabulary_exercises").Inc()
		return fallbackVocabularyExercises()
	}

	return exercises
}
