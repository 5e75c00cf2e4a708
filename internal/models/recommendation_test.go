// internal/models/recommendation_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendation_JSONRoundTrip(t *testing.T) {
	original := Recommendation{
		InternshipID:     "INT001",
		Title:            "Data Science Intern",
		OrganizationName: "Acme Analytics",
		Domain:           "Data Science",
		Location:         "Bangalore",
		Duration:         "6 months",
		Stipend:          25000,
		Rank:             1,
		Scores: Scores{
			SuccessProbability: 0.0123,
			SkillMatch:         0.82,
			EmployabilityBoost: 0.76,
			FairnessAdjustment: -0.03,
		},
		Explanations: []string{
			"Strong skill match: Python, SQL",
			"Located in your preferred city Bangalore",
		},
		MissingSkills: []string{"Tableau"},
		CourseSuggestions: []CourseSuggestion{
			{
				Skill:             "Tableau",
				CourseName:        "Tableau for Beginners",
				Platform:          "Coursera",
				CourseLink:        "https://example.test/t1",
				Difficulty:        "Beginner",
				DurationHours:     12,
				ReadinessScore:    0.84,
				PrereqCoverage:    1.0,
				ContentAlignment:  0.8,
				DifficultyPenalty: 1.0,
			},
		},
		SkillGapAnalysis: SkillGapAnalysis{
			Status:             GapStatusSkillsNeeded,
			Message:            "Focus on 1 skill to strengthen this application",
			SkillsNeeded:       1,
			RecommendedCourses: 1,
			PrioritySkills:     []string{"Tableau"},
		},
		Partial: true,
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Recommendation
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, original, decoded)
}

func TestRecommendationList_JSONRoundTrip(t *testing.T) {
	original := RecommendationList{
		StudentID:            "STU001",
		TotalRecommendations: 1,
		RequestedCount:       10,
		Recommendations: []Recommendation{
			{
				InternshipID: "INT001",
				Rank:         1,
				Explanations: []string{},
			},
		},
		GeneratedAt: "2026-08-31T10:00:00Z",
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded RecommendationList
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, original, decoded)
}
