package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litdebate/backend/internal/domain"
)

type fakeGenerator struct {
	respond func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ int, _ float32) (string, error) {
	return f.respond(prompt)
}

func failingGenerator() *fakeGenerator {
	return &fakeGenerator{respond: func(string) (string, error) {
		return "", errors.New("generation unavailable")
	}}
}

func testBook() domain.BookInfo {
	return domain.BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 4.6}
}

func TestAnalyzeAreasAllFailures(t *testing.T) {
	a := New(failingGenerator(), 2)

	analyses := a.AnalyzeAreas(context.Background(), testBook(), nil)

	require.Len(t, analyses, len(domain.AllAreas()))
	for i, area := range domain.AllAreas() {
		assert.Equal(t, area, analyses[i].Area)
		assert.Equal(t, 5.0, analyses[i].RelevanceScore)
		assert.Equal(t, []string{"General themes"}, analyses[i].KeyThemes)
		assert.Equal(t, []string{"vocabulary"}, analyses[i].VocabularyFocus)
	}
}

func TestAnalyzeAreasSeedVocabularyInFallback(t *testing.T) {
	a := New(failingGenerator(), 2)
	seed := []string{"desert", "curse", "friendship"}

	analyses := a.AnalyzeAreas(context.Background(), testBook(), seed)

	for _, analysis := range analyses {
		assert.Equal(t, seed, analysis.VocabularyFocus)
	}
}

func TestAnalyzeAreasParsesResponse(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return `{
			"relevance_score": 8.2,
			"key_themes": ["resilience"],
			"discussion_points": ["fate versus choice"],
			"vocabulary_focus": ["destiny"],
			"cultural_context": ["family history"],
			"local_connections": ["community projects"]
		}`, nil
	}}
	a := New(gen, 2)

	analyses := a.AnalyzeAreas(context.Background(), testBook(), nil)

	require.Len(t, analyses, 6)
	for _, analysis := range analyses {
		assert.Equal(t, 8.2, analysis.RelevanceScore)
		assert.Equal(t, []string{"resilience"}, analysis.KeyThemes)
	}
}

func TestAnalyzeAreasInvalidScoreFallsBack(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return `{
			"relevance_score": 14.0,
			"key_themes": [],
			"discussion_points": [],
			"vocabulary_focus": [],
			"cultural_context": [],
			"local_connections": []
		}`, nil
	}}
	a := New(gen, 2)

	analyses := a.AnalyzeAreas(context.Background(), testBook(), nil)

	for _, analysis := range analyses {
		assert.Equal(t, 5.0, analysis.RelevanceScore)
	}
}

func topicsResponse(count int, format string) string {
	entries := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			entries += ","
		}
		entries += fmt.Sprintf(`{
			"title": "Topic %d",
			"description": "A question worth arguing",
			"debate_format": "%s",
			"pro_arguments": ["for"],
			"con_arguments": ["against"],
			"background_info": "context",
			"time_estimate": 45
		}`, i+1, format)
	}
	return `{"topics": [` + entries + `]}`
}

func TestGenerateTopicsRelevanceThreshold(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return topicsResponse(1, "moral_judgment"), nil
	}}
	a := New(gen, 2)

	analyses := []domain.AreaAnalysis{
		{Area: domain.AreaScienceTechnology, RelevanceScore: 5.999},
		{Area: domain.AreaHumanSociety, RelevanceScore: 6.0},
		{Area: domain.AreaFutureCareers, RelevanceScore: 9.1},
	}

	topics := a.GenerateTopics(context.Background(), testBook(), analyses)

	require.Len(t, topics, 2)
	assert.Equal(t, "human_&_society_1", topics[0].TopicID)
	assert.Equal(t, "future_&_careers_1", topics[1].TopicID)
}

func TestGenerateTopicsIDsPerArea(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return topicsResponse(2, "issue_analysis"), nil
	}}
	a := New(gen, 2)

	analyses := []domain.AreaAnalysis{
		{Area: domain.AreaLiteratureIdentity, RelevanceScore: 7.0},
	}

	topics := a.GenerateTopics(context.Background(), testBook(), analyses)

	require.Len(t, topics, 2)
	assert.Equal(t, "literature_&_identity_1", topics[0].TopicID)
	assert.Equal(t, "literature_&_identity_2", topics[1].TopicID)
	assert.Equal(t, domain.FormatIssueAnalysis, topics[0].Format)
	assert.Equal(t, domain.LevelRegular, topics[0].Level)
}

func TestGenerateTopicsUnknownFormatSkipped(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return topicsResponse(1, "open_discussion"), nil
	}}
	a := New(gen, 2)

	analyses := []domain.AreaAnalysis{
		{Area: domain.AreaHumanSociety, RelevanceScore: 8.0},
	}

	topics := a.GenerateTopics(context.Background(), testBook(), analyses)
	assert.Empty(t, topics)
}

func TestGenerateTopicsFailureYieldsNoTopics(t *testing.T) {
	a := New(failingGenerator(), 2)

	analyses := []domain.AreaAnalysis{
		{Area: domain.AreaHumanSociety, RelevanceScore: 8.0},
		{Area: domain.AreaFutureCareers, RelevanceScore: 7.0},
	}

	topics := a.GenerateTopics(context.Background(), testBook(), analyses)
	assert.Empty(t, topics)
}

func TestGenerateTopicsMissingArgumentsSkipped(t *testing.T) {
	gen := &fakeGenerator{respond: func(string) (string, error) {
		return `{"topics": [{
			"title": "Topic",
			"description": "desc",
			"debate_format": "moral_judgment",
			"pro_arguments": [],
			"con_arguments": ["against"]
		}]}`, nil
	}}
	a := New(gen, 2)

	analyses := []domain.AreaAnalysis{
		{Area: domain.AreaHumanSociety, RelevanceScore: 8.0},
	}

	topics := a.GenerateTopics(context.Background(), testBook(), analyses)
	assert.Empty(t, topics)
}
