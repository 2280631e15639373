package domain

import "time"

// RelevanceThreshold gates topic generation: only areas whose analysis
// scores at or above it produce debate topics. The comparison is inclusive.
const RelevanceThreshold = 6.0

type AreaAnalysis struct {
	Area             EducationArea `json:"area"`
	RelevanceScore   float64       `json:"relevance_score"`
	KeyThemes        []string      `json:"key_themes"`
	DiscussionPoints []string      `json:"discussion_points"`
	VocabularyFocus  []string      `json:"vocabulary_focus"`
	CulturalContext  []string      `json:"cultural_context"`
	LocalConnections []string      `json:"local_connections"`
}

type DebateTopicSet struct {
	TopicID        string         `json:"topic_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Level          EducationLevel `json:"level"`
	Area           EducationArea  `json:"area"`
	Format         DebateFormat   `json:"debate_format"`
	ProArguments   []string       `json:"pro_arguments"`
	ConArguments   []string       `json:"con_arguments"`
	BackgroundInfo string         `json:"background_info"`
	VocabularyList []string       `json:"vocabulary_list"`
	TimeEstimate   int            `json:"time_estimate"`
}

// EnhancedDebateTopic is a DebateTopicSet plus the debate scaffolding and the
// educational material bundle produced by the enrichment stage.
type EnhancedDebateTopic struct {
	DebateTopicSet

	OpeningStatement string              `json:"opening_statement"`
	EvidenceSources  []string            `json:"evidence_sources"`
	CounterArguments map[string][]string `json:"counter_arguments"`

	Materials EducationalMaterial `json:"educational_materials"`

	DifficultyScore       float64  `json:"difficulty_score"`
	PrerequisiteKnowledge []string `json:"prerequisite_knowledge"`
	LearningObjectives    []string `json:"learning_objectives"`
}

type OverallAssessment struct {
	OverallScore         float64         `json:"overall_score"`
	TotalTopicsGenerated int             `json:"total_topics_generated"`
	BestAreas            []EducationArea `json:"best_areas"`
	RecommendedLevel     EducationLevel  `json:"recommended_level"`
	ProgramDurationWeeks int             `json:"estimated_program_duration"`
	EducationalValues    []string        `json:"key_educational_values"`
}

// AnalysisResult is the root aggregate for one pipeline run. It is built once
// and never mutated after export.
type AnalysisResult struct {
	Book         BookInfo              `json:"book_info"`
	AnalysisID   string                `json:"analysis_id"`
	AnalysisDate time.Time             `json:"analysis_date"`
	AreaAnalyses []AreaAnalysis        `json:"area_analyses"`
	Topics       []EnhancedDebateTopic `json:"debate_topics"`
	Assessment   OverallAssessment     `json:"overall_assessment"`
}
