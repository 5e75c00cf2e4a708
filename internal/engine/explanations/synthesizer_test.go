// internal/engine/explanations/synthesizer_test.go
package explanations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pmis-recommender/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestStudent() *models.StudentProfile {
	return &models.StudentProfile{
		StudentID:         "STU001",
		Stream:            "Computer Science",
		CGPA:              8.7,
		Skills:            []string{"Python", "SQL"},
		Interests:         []string{"Data Science"},
		PreferredLocation: "Bangalore",
	}
}

func createTestInternship() *models.InternshipListing {
	return &models.InternshipListing{
		InternshipID:   "INT001",
		Domain:         "Data Science",
		Location:       "Bangalore",
		RequiredSkills: []string{"Python", "SQL", "Tableau"},
	}
}

func createTestSignal() *models.PairSignal {
	return &models.PairSignal{
		CollaborativeScore:     0.8,
		CollaborativeAvailable: true,
	}
}

// ==========================
// Tests
// ==========================

func TestSynthesize_CapsAtThree(t *testing.T) {
	// This pair qualifies for five reasons; only three survive.
	reasons := Synthesize(createTestStudent(), createTestInternship(), createTestSignal())
	assert.Len(t, reasons, MaxExplanations)
}

func TestSynthesize_PriorityOrder(t *testing.T) {
	reasons := Synthesize(createTestStudent(), createTestInternship(), createTestSignal())

	assert.Contains(t, reasons[0], "Python and SQL")
	assert.Contains(t, reasons[1], "Data Science")
	assert.Contains(t, reasons[2], "8.7")
}

func TestSynthesize_Deterministic(t *testing.T) {
	student := createTestStudent()
	internship := createTestInternship()
	signal := createTestSignal()

	first := Synthesize(student, internship, signal)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Synthesize(student, internship, signal))
	}
}

func TestSynthesize_NoFabricatedReasons(t *testing.T) {
	student := &models.StudentProfile{
		StudentID: "STU002",
		Stream:    "History",
		CGPA:      6.0,
	}
	internship := &models.InternshipListing{
		InternshipID:   "INT002",
		Domain:         "Data Science",
		Location:       "Pune",
		RequiredSkills: []string{"Python"},
	}

	reasons := Synthesize(student, internship, nil)
	assert.Empty(t, reasons)
}

func TestSynthesize_NoCollaborativeReasonWhenUnavailable(t *testing.T) {
	signal := &models.PairSignal{CollaborativeScore: 0.9, CollaborativeAvailable: false}
	student := &models.StudentProfile{StudentID: "STU003", CGPA: 5.0}
	internship := &models.InternshipListing{InternshipID: "INT003"}

	reasons := Synthesize(student, internship, signal)
	for _, reason := range reasons {
		assert.NotContains(t, reason, "similar profiles")
	}
}

func TestSynthesize_SolidAcademicRecordLowerPriority(t *testing.T) {
	student := createTestStudent()
	student.CGPA = 7.8
	student.Skills = nil
	student.Stream = "History"
	student.Interests = nil

	reasons := Synthesize(student, createTestInternship(), nil)
	assert.Len(t, reasons, 2)
	assert.Contains(t, reasons[0], "solid academic record")
	assert.Contains(t, reasons[1], "Bangalore")
}

func TestSynthesize_LocationSubstringMatch(t *testing.T) {
	student := &models.StudentProfile{
		StudentID:         "STU004",
		PreferredLocation: "Bangalore",
	}
	internship := createTestInternship()
	internship.Location = "Bangalore Rural"

	reasons := Synthesize(student, internship, nil)
	var found bool
	for _, reason := range reasons {
		if strings.Contains(reason, "Bangalore Rural") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestJoinSkills(t *testing.T) {
	assert.Equal(t, "Python", joinSkills([]string{"Python"}))
	assert.Equal(t, "Python and SQL", joinSkills([]string{"Python", "SQL"}))
	assert.Equal(t, "Python, SQL and Tableau", joinSkills([]string{"Python", "SQL", "Tableau"}))
	assert.Equal(t, "A, B and C", joinSkills([]string{"A", "B", "C", "D"}))
}
