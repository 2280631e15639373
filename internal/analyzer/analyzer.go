package analyzer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/litdebate/backend/internal/domain"
	"github.com/litdebate/backend/internal/llm"
	"github.com/litdebate/backend/internal/metrics"
	"github.com/litdebate/backend/pkg/logger"
)

// DefaultTopicsPerArea is how many debate topics are requested for each
// qualifying area when the caller does not configure a count.
const DefaultTopicsPerArea = 2

var areaAnalysisFields = []string{
	"relevance_score",
	"key_themes",
	"discussion_points",
	"vocabulary_focus",
	"cultural_context",
	"local_connections",
}

type Analyzer struct {
	gen           llm.TextGenerator
	topicsPerArea int
}

func New(gen llm.TextGenerator, topicsPerArea int) *Analyzer {
	if topicsPerArea <= 0 {
		topicsPerArea = DefaultTopicsPerArea
	}
	return &Analyzer{gen: gen, topicsPerArea: topicsPerArea}
}

// AnalyzeAreas produces exactly one analysis per education area, in the
// enumeration's declared order, substituting the fallback for any area whose
// generation or parse fails. Areas are independent and run concurrently.
func (a *Analyzer) AnalyzeAreas(ctx context.Context, book domain.BookInfo, seedVocabulary []string) []domain.AreaAnalysis {
	areas := domain.AllAreas()
	analyses := make([]domain.AreaAnalysis, len(areas))

	g, gctx := errgroup.WithContext(ctx)
	for i, area := range areas {
		i, area := i, area
		g.Go(func() error {
			analyses[i] = a.analyzeArea(gctx, book, area, seedVocabulary)
			return nil
		})
	}
	g.Wait()

	return analyses
}

func (a *Analyzer) analyzeArea(ctx context.Context, book domain.BookInfo, area domain.EducationArea, seedVocabulary []string) domain.AreaAnalysis {
	prompt := areaAnalysisPrompt(book, area, seedVocabulary)

	result, err := llm.GenerateJSON(ctx, a.gen, prompt, 1000, 0.3, areaAnalysisFields...)
	if err != nil {
		logger.Warn("Area analysis failed, using fallback",
			zap.String("area", string(area)),
			zap.Error(err),
		)
		metrics.FallbacksTotal.WithLabelValues("area_analysis").Inc()
		return fallbackAnalysis(area, seedVocabulary)
	}

	score, ok := llm.Number(result["relevance_score"])
	if !ok || score < 0 || score > 10 {
		logger.Warn("Area analysis returned invalid relevance score, using fallback",
			zap.String("area", string(area)),
		)
		metrics.FallbacksTotal.WithLabelValues("area_analysis").Inc()
		return fallbackAnalysis(area, seedVocabulary)
	}

	return domain.AreaAnalysis{
		Area:             area,
		RelevanceScore:   score,
		KeyThemes:        llm.StringSlice(result["key_themes"]),
		DiscussionPoints: llm.StringSlice(result["discussion_points"]),
		VocabularyFocus:  llm.StringSlice(result["vocabulary_focus"]),
		CulturalContext:  llm.StringSlice(result["cultural_context"]),
		LocalConnections: llm.StringSlice(result["local_connections"]),
	}
}

// GenerateTopics fans out over analyses that clear the relevance threshold
// and produces debate topics for each. Failure for one area yields zero
// topics for that area; no placeholder is substituted.
func (a *Analyzer) GenerateTopics(ctx context.Context, book domain.BookInfo, analyses []domain.AreaAnalysis) []domain.EnhancedDebateTopic {
	level := book.EducationLevel()

	var topics []domain.EnhancedDebateTopic
	for _, analysis := range analyses {
		if analysis.RelevanceScore < domain.RelevanceThreshold {
			continue
		}
		topics = append(topics, a.topicsForArea(ctx, book, analysis, level)...)
	}

	return topics
}

func (a *Analyzer) topicsForArea(ctx context.Context, book domain.BookInfo, analysis domain.AreaAnalysis, level domain.EducationLevel) []domain.EnhancedDebateTopic {
	prompt := debateTopicsPrompt(book, analysis, level, a.topicsPerArea)

	result, err := llm.GenerateJSON(ctx, a.gen, prompt, 2000, 0.4, "topics")
	if err != nil {
		logger.Warn("Topic generation failed, yielding no topics for area",
			zap.String("area", string(analysis.Area)),
			zap.Error(err),
		)
		metrics.FallbacksTotal.WithLabelValues("debate_topics").Inc()
		return nil
	}

	raw, ok := result["topics"].([]any)
	if !ok {
		metrics.FallbacksTotal.WithLabelValues("debate_topics").Inc()
		return nil
	}

	topics := make([]domain.EnhancedDebateTopic, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		topic, err := buildTopic(entry, analysis.Area, level, len(topics)+1)
		if err != nil {
			logger.Warn("Skipping invalid topic",
				zap.String("area", string(analysis.Area)),
				zap.Error(err),
			)
			continue
		}
		topics = append(topics, topic)
	}

	logger.Info("Topics generated for area",
		zap.String("area", string(analysis.Area)),
		zap.Int("count", len(topics)),
	)

	return topics
}

// buildTopic validates one decoded topic entry. Topic ids are deterministic:
// {area_slug}_{index}, 1-based within the area.
func buildTopic(entry map[string]any, area domain.EducationArea, level domain.EducationLevel, index int) (domain.EnhancedDebateTopic, error) {
	title, _ := entry["title"].(string)
	description, _ := entry["description"].(string)
	if title == "" || description == "" {
		return domain.EnhancedDebateTopic{}, fmt.Errorf("topic missing title or description")
	}

	formatTag, _ := entry["debate_format"].(string)
	format, err := domain.ParseDebateFormat(formatTag)
	if err != nil {
		return domain.EnhancedDebateTopic{}, err
	}

	pro := llm.StringSlice(entry["pro_arguments"])
	con := llm.StringSlice(entry["con_arguments"])
	if len(pro) == 0 || len(con) == 0 {
		return domain.EnhancedDebateTopic{}, fmt.Errorf("topic missing pro or con arguments")
	}

	background, _ := entry["background_info"].(string)
	timeEstimate, _ := llm.Number(entry["time_estimate"])
	difficulty, _ := llm.Number(entry["difficulty_score"])
	opening, _ := entry["opening_statement"].(string)

	counter := map[string][]string{}
	if cm, ok := entry["counter_arguments"].(map[string]any); ok {
		counter["pro"] = llm.StringSlice(cm["pro"])
		counter["con"] = llm.StringSlice(cm["con"])
	}

	return domain.EnhancedDebateTopic{
		DebateTopicSet: domain.DebateTopicSet{
			TopicID:        fmt.Sprintf("%s_%d", area.Slug(), index),
			Title:          title,
			Description:    description,
			Level:          level,
			Area:           area,
			Format:         format,
			ProArguments:   pro,
			ConArguments:   con,
			BackgroundInfo: background,
			VocabularyList: llm.StringSlice(entry["vocabulary_list"]),
			TimeEstimate:   int(timeEstimate),
		},
		OpeningStatement:      opening,
		EvidenceSources:       llm.StringSlice(entry["evidence_sources"]),
		CounterArguments:      counter,
		DifficultyScore:       difficulty,
		PrerequisiteKnowledge: llm.StringSlice(entry["prerequisite_knowledge"]),
		LearningObjectives:    llm.StringSlice(entry["learning_objectives"]),
	}, nil
}
