package domain

type ReadingQuestion struct {
	QuestionID   string     `json:"question_id"`
	QuestionType string     `json:"question_type"`
	QuestionText string     `json:"question_text"`
	SampleAnswer string     `json:"sample_answer"`
	Points       int        `json:"points"`
	BloomLevel   BloomLevel `json:"bloom_level"`
}

type WritingTemplate struct {
	TemplateID         string            `json:"template_id"`
	Level              EducationLevel    `json:"level"`
	Structure          map[string]string `json:"structure"`
	WordCountTarget    int               `json:"word_count_target"`
	TimeLimit          int               `json:"time_limit"`
	EvaluationCriteria []string          `json:"evaluation_criteria"`
}

type VocabularyItem struct {
	Word            string   `json:"word,omitempty"`
	Definition      string   `json:"definition,omitempty"`
	ExampleSentence string   `json:"example_sentence,omitempty"`
	Sentence        string   `json:"sentence,omitempty"`
	TargetWord      string   `json:"target_word,omitempty"`
	Answer          string   `json:"answer,omitempty"`
	Prompt          string   `json:"prompt,omitempty"`
	TargetWords     []string `json:"target_words,omitempty"`
	SampleResponse  string   `json:"sample_response,omitempty"`
}

type VocabularyExercise struct {
	Type         string           `json:"type"`
	Instructions string           `json:"instructions"`
	Items        []VocabularyItem `json:"items"`
}

type DiscussionPhase struct {
	Name           string   `json:"name"`
	TimeAllocation int      `json:"time_allocation"`
	Activities     []string `json:"activities"`
}

type DiscussionGuide struct {
	Phases       []DiscussionPhase `json:"phases"`
	TeacherNotes []string          `json:"teacher_notes"`
}

type RubricCriterion struct {
	Name  string            `json:"name"`
	Bands map[string]string `json:"bands"`
}

type AssessmentRubric struct {
	Criteria []RubricCriterion `json:"criteria"`
}

// EducationalMaterial bundles all per-topic artifacts. It is owned by exactly
// one EnhancedDebateTopic.
type EducationalMaterial struct {
	MaterialID          string               `json:"material_id"`
	TopicID             string               `json:"topic_id"`
	ReadingQuestions    []ReadingQuestion    `json:"reading_questions"`
	WritingTemplate     WritingTemplate      `json:"writing_template"`
	VocabularyExercises []VocabularyExercise `json:"vocabulary_exercises"`
	DiscussionGuide     DiscussionGuide      `json:"discussion_guide"`
	AssessmentRubric    AssessmentRubric     `json:"assessment_rubric"`
}
