package analyzer

import (
	"fmt"
	"strings"

	"github.com/litdebate/backend/internal/domain"
)

var areaRubrics = map[domain.EducationArea]string{
	domain.AreaScienceTechnology: `Analyze this book from a Science & Technology perspective:
- Scientific thinking and methodology
- Technology's impact on society
- Innovation and discovery themes
- Ethical considerations in science/tech`,
	domain.AreaHumanSociety: `Analyze this book from a Human & Society perspective:
- Social relationships and conflicts
- Community vs individual needs
- Cultural diversity and inclusion
- Social justice and equality themes`,
	domain.AreaFutureCareers: `Analyze this book from a Future & Careers perspective:
- Skills and competencies for the future
- Career exploration and development
- Entrepreneurship and innovation
- Global career opportunities`,
	domain.AreaLiteratureIdentity: `Analyze this book from a Literature & Identity perspective:
- Character development and identity
- Cultural identity and belonging
- Personal growth and self-discovery
- Literary themes and symbolism`,
	domain.AreaMathThinking: `Analyze this book from a Mathematical Thinking perspective:
- Logical reasoning and problem-solving
- Pattern recognition and analysis
- Systematic thinking approaches
- Mathematical concepts in daily life`,
	domain.AreaEconomicsGlobal: `Analyze this book from an Economics & Global Citizenship perspective:
- Economic systems and decision-making
- Global interconnectedness
- Social responsibility and sustainability
- Cross-cultural understanding`,
}

var levelGuidelines = map[domain.EducationLevel]string{
	domain.LevelPreparation: `- Use simple, clear language
- Focus on basic character comparisons
- Provide structured debate formats
- Include vocabulary support`,
	domain.LevelRegular: `- Use intermediate complexity
- Include moral and ethical dimensions
- Encourage critical thinking
- Balance structure with creativity`,
	domain.LevelMastery: `- Use advanced analytical thinking
- Include multiple perspectives
- Encourage independent reasoning
- Focus on complex themes`,
}

func areaAnalysisPrompt(book domain.BookInfo, area domain.EducationArea, seedVocabulary []string) string {
	summary := book.Summary
	if summary == "" {
		summary = "Not available"
	}

	var vocabHint string
	if len(seedVocabulary) > 0 {
		vocabHint = fmt.Sprintf("\nCandidate vocabulary from the book: %s\n", strings.Join(seedVocabulary, ", "))
	}

	return fmt.Sprintf(`Book: %q by %s
AR Level: %.1f
Summary: %s

%s
%s
Please provide analysis in the following JSON format:
{
    "relevance_score": <0-10 score>,
    "key_themes": [<list of 3-5 key themes>],
    "discussion_points": [<list of 4-6 discussion points>],
    "vocabulary_focus": [<list of 10-15 key vocabulary words>],
    "cultural_context": [<list of cultural elements>],
    "local_connections": [<list of connections to the students' local context>]
}

Focus on educational value for students learning English through debate.`,
		book.Title, book.Author, book.ARLevel, summary, areaRubrics[area], vocabHint)
}

func debateTopicsPrompt(book domain.BookInfo, analysis domain.AreaAnalysis, level domain.EducationLevel, numTopics int) string {
	summary := book.Summary
	if summary == "" {
		summary = "Not provided"
	}

	return fmt.Sprintf(`You are an expert in creating debate topics for students learning English through literature.

BOOK INFORMATION:
Title: %s
Author: %s
AR Level: %.1f
Summary: %s

AREA FOCUS: %s
Key Themes: %s
Discussion Points: %s

LEVEL GUIDELINES (%s):
%s

TASK: Generate %d debate topics in JSON format:

{
    "topics": [
        {
            "title": "<engaging debate topic title>",
            "description": "<detailed description of the debate>",
            "debate_format": "<one of: character_comparison, moral_judgment, issue_analysis, problem_solution, cause_effect, future_prediction>",
            "opening_statement": "<clear opening statement to frame the debate>",
            "pro_arguments": [<3-4 strong pro arguments>],
            "con_arguments": [<3-4 strong con arguments>],
            "background_info": "<background information needed>",
            "vocabulary_list": [<8-12 key vocabulary words>],
            "evidence_sources": [<specific scenes, quotes, or examples from the book>],
            "counter_arguments": {
                "pro": [<potential counter-arguments to con side>],
                "con": [<potential counter-arguments to pro side>]
            },
            "difficulty_score": <1-10 difficulty rating>,
            "time_estimate": <estimated time in minutes>,
            "prerequisite_knowledge": [<background knowledge needed>],
            "learning_objectives": [<specific learning goals>]
        }
    ]
}

Ensure topics are culturally sensitive, engaging, connected to real-world
applications, appropriate for the specified level, and designed to promote
critical thinking.`,
		book.Title, book.Author, book.ARLevel, summary,
		analysis.Area,
		strings.Join(analysis.KeyThemes, ", "),
		strings.Join(analysis.DiscussionPoints, ", "),
		level, levelGuidelines[level], numTopics)
}
