// internal/engine/skill-gap/annotator_test.go
package skillgap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pmis-recommender/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestStudent() *models.StudentProfile {
	return &models.StudentProfile{
		StudentID: "STU001",
		Skills:    []string{"Python", "SQL"},
		Interests: []string{"Data Visualization"},
	}
}

func createTestInternship() *models.InternshipListing {
	return &models.InternshipListing{
		InternshipID:   "INT001",
		RequiredSkills: []string{"Python", "SQL", "Tableau"},
	}
}

func createTestCatalog() []models.CourseCandidate {
	return []models.CourseCandidate{
		{
			Skill:           "Tableau",
			CourseName:      "Tableau for Beginners",
			Platform:        "Coursera",
			Difficulty:      "Beginner",
			Prerequisites:   nil,
			ContentKeywords: []string{"tableau", "data visualization"},
			DurationHours:   12,
		},
		{
			Skill:           "Tableau",
			CourseName:      "Advanced Tableau Dashboards",
			Platform:        "Udemy",
			Difficulty:      "Advanced",
			Prerequisites:   []string{"Tableau", "SQL"},
			ContentKeywords: []string{"tableau", "dashboards"},
			DurationHours:   20,
		},
		{
			Skill:           "Tableau",
			CourseName:      "Tableau Essentials",
			Platform:        "edX",
			Difficulty:      "Intermediate",
			Prerequisites:   []string{"SQL"},
			ContentKeywords: []string{"tableau", "sql"},
			DurationHours:   16,
		},
	}
}

// ==========================
// Tests
// ==========================

func TestAnnotate_MissingSkillComputation(t *testing.T) {
	annotator := NewAnnotator(nil, createTestCatalog())

	annotation := annotator.Annotate(createTestStudent(), createTestInternship())

	assert.Equal(t, []string{"Tableau"}, annotation.MissingSkills)
	assert.Equal(t, models.GapStatusSkillsNeeded, annotation.Analysis.Status)
	assert.Equal(t, 1, annotation.Analysis.SkillsNeeded)
	assert.Equal(t, []string{"Tableau"}, annotation.Analysis.PrioritySkills)
}

func TestAnnotate_NoGaps(t *testing.T) {
	annotator := NewAnnotator(nil, createTestCatalog())
	student := createTestStudent()
	student.Skills = []string{"Python", "SQL", "Tableau"}

	annotation := annotator.Annotate(student, createTestInternship())

	assert.Empty(t, annotation.MissingSkills)
	assert.Empty(t, annotation.CourseSuggestions)
	assert.Equal(t, models.GapStatusNoGaps, annotation.Analysis.Status)
	assert.NotEmpty(t, annotation.Analysis.Message)
}

func TestAnnotate_SkillMatchingIsCaseInsensitive(t *testing.T) {
	annotator := NewAnnotator(nil, nil)
	student := createTestStudent()
	student.Skills = []string{"python", "sql", "TABLEAU"}

	annotation := annotator.Annotate(student, createTestInternship())
	assert.Equal(t, models.GapStatusNoGaps, annotation.Analysis.Status)
}

func TestAnnotate_CoursesPerSkillCapped(t *testing.T) {
	annotator := NewAnnotator(nil, createTestCatalog())

	annotation := annotator.Annotate(createTestStudent(), createTestInternship())

	// Three Tableau courses in the catalog, at most two surfaced.
	assert.LessOrEqual(t, len(annotation.CourseSuggestions), 2)
	assert.NotEmpty(t, annotation.CourseSuggestions)
}

func TestAnnotate_PrioritySkillsCapped(t *testing.T) {
	annotator := NewAnnotator(nil, nil)
	internship := &models.InternshipListing{
		InternshipID:   "INT002",
		RequiredSkills: []string{"Go", "Rust", "Kafka", "Terraform", "Kubernetes"},
	}
	student := &models.StudentProfile{StudentID: "STU002"}

	annotation := annotator.Annotate(student, internship)

	assert.Len(t, annotation.MissingSkills, 5)
	assert.Equal(t, 5, annotation.Analysis.SkillsNeeded)
	assert.Equal(t, []string{"Go", "Rust", "Kafka"}, annotation.Analysis.PrioritySkills)
}

func TestAnnotate_PrereqGateWithholdsCourse(t *testing.T) {
	catalog := []models.CourseCandidate{
		{
			Skill:         "Tableau",
			CourseName:    "Advanced Tableau Dashboards",
			Platform:      "Udemy",
			Difficulty:    "Advanced",
			Prerequisites: []string{"Tableau", "Power BI", "Statistics"},
		},
	}
	annotator := NewAnnotator(nil, catalog)
	student := createTestStudent() // covers none of the three prereqs

	annotation := annotator.Annotate(student, createTestInternship())
	assert.Empty(t, annotation.CourseSuggestions)
	assert.Equal(t, 0, annotation.Analysis.RecommendedCourses)
}

func TestAnnotate_Deterministic(t *testing.T) {
	annotator := NewAnnotator(nil, createTestCatalog())
	student := createTestStudent()
	internship := createTestInternship()

	first := annotator.Annotate(student, internship)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, annotator.Annotate(student, internship))
	}
}

func TestComputeReadiness_NoPrereqsFullCoverage(t *testing.T) {
	course := &models.CourseCandidate{
		Skill:      "Tableau",
		Difficulty: "Beginner",
	}
	r := ComputeReadiness(map[string]bool{}, map[string]bool{}, course)
	assert.Equal(t, 1.0, r.PrereqCoverage)
	assert.Equal(t, 1.0, r.DifficultyPenalty)
}

func TestComputeReadiness_DifficultyPenaltyTable(t *testing.T) {
	tests := []struct {
		difficulty string
		coverage   float64
		expected   float64
	}{
		{"Beginner", 0.0, 1.0},
		{"Intermediate", 0.6, 0.9},
		{"Intermediate", 0.5, 0.7},
		{"Advanced", 0.8, 0.85},
		{"Advanced", 0.5, 0.6},
		{"", 1.0, 0.8},
		{"expert", 1.0, 0.8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, difficultyPenalty(tt.difficulty, tt.coverage),
			"difficulty=%q coverage=%v", tt.difficulty, tt.coverage)
	}
}

func TestComputeReadiness_PartialPrereqCoverage(t *testing.T) {
	course := &models.CourseCandidate{
		Skill:         "Tableau",
		Difficulty:    "Intermediate",
		Prerequisites: []string{"SQL", "Statistics"},
	}
	possessed := map[string]bool{"sql": true}

	r := ComputeReadiness(possessed, nil, course)
	assert.Equal(t, 0.5, r.PrereqCoverage)
	// Coverage below 0.6 takes the harsher intermediate penalty.
	assert.Equal(t, 0.7, r.DifficultyPenalty)
}
