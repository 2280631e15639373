package topics

import "github.com/litdebate/backend/internal/domain"

type writingSpec struct {
	WordCount int
	TimeLimit int
}

// writingSpecs fixes the word-count target and time limit per level. Only the
// paragraph templates come from generation.
var writingSpecs = map[domain.EducationLevel]writingSpec{
	domain.LevelPreparation: {WordCount: 150, TimeLimit: 30},
	domain.LevelRegular:     {WordCount: 250, TimeLimit: 40},
	domain.LevelMastery:     {WordCount: 400, TimeLimit: 50},
}

// discussionGuide returns the fixed four-phase debate session plan. The phase
// allocations sum to 55 minutes.
func discussionGuide() domain.DiscussionGuide {
	return domain.DiscussionGuide{
		Phases: []domain.DiscussionPhase{
			{
				Name:           "preparation_phase",
				TimeAllocation: 15,
				Activities: []string{
					"Review key vocabulary",
					"Read background information",
					"Organize arguments and evidence",
					"Practice key phrases",
				},
			},
			{
				Name:           "opening_phase",
				TimeAllocation: 10,
				Activities: []string{
					"Opening statement (2 minutes per side)",
					"Position clarification",
					"Ground rules reminder",
				},
			},
			{
				Name:           "main_debate",
				TimeAllocation: 20,
				Activities: []string{
					"First arguments (3 minutes per side)",
					"Cross-examination (2 minutes per side)",
					"Rebuttal (2 minutes per side)",
					"Final statements (1 minute per side)",
				},
			},
			{
				Name:           "reflection_phase",
				TimeAllocation: 10,
				Activities: []string{
					"Self-assessment",
					"Peer feedback",
					"Key learning points",
					"Language reflection",
				},
			},
		},
		TeacherNotes: []string{
			"Monitor language use and provide support",
			"Encourage respectful disagreement",
			"Focus on evidence-based arguments",
			"Celebrate effort and improvement",
		},
	}
}

// assessmentRubric returns the fixed four-criterion rubric with four quality
// bands each.
func assessmentRubric() domain.AssessmentRubric {
	return domain.AssessmentRubric{
		Criteria: []domain.RubricCriterion{
			{
				Name: "content_knowledge",
				Bands: map[string]string{
					"excellent":         "Demonstrates deep understanding of the topic with accurate, relevant details",
					"good":              "Shows solid understanding with mostly accurate information",
					"satisfactory":      "Basic understanding with some accurate details",
					"needs_improvement": "Limited understanding with few accurate details",
				},
			},
			{
				Name: "argumentation",
				Bands: map[string]string{
					"excellent":         "Presents clear, logical arguments with strong evidence",
					"good":              "Presents mostly clear arguments with adequate evidence",
					"satisfactory":      "Presents basic arguments with some evidence",
					"needs_improvement": "Arguments are unclear or lack evidence",
				},
			},
			{
				Name: "language_use",
				Bands: map[string]string{
					"excellent":         "Uses varied vocabulary and complex structures accurately",
					"good":              "Uses appropriate vocabulary with mostly correct structures",
					"satisfactory":      "Uses basic vocabulary with simple structures",
					"needs_improvement": "Limited vocabulary with frequent errors",
				},
			},
			{
				Name: "participation",
				Bands: map[string]string{
					"excellent":         "Actively engages, listens respectfully, builds on others' ideas",
					"good":              "Participates regularly with respectful interaction",
					"satisfactory":      "Participates occasionally with basic interaction",
					"needs_improvement": "Limited participation or disrespectful behavior",
				},
			},
		},
	}
}
