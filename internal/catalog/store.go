// internal/catalog/store.go

// Package catalog provides the student, internship and course data stores
// backing the scoring pipeline. The Postgres implementations are the system
// of record; the Redis decorators add read-through caching.
package catalog

import (
	"context"

	"pmis-recommender/internal/models"
)

// StudentStore loads student profiles.
type StudentStore interface {
	GetStudent(ctx context.Context, studentID string) (*models.StudentProfile, error)
	ListStudents(ctx context.Context, limit int) ([]*models.StudentProfile, error)
}

// InternshipStore loads internship listings.
type InternshipStore interface {
	GetInternship(ctx context.Context, internshipID string) (*models.InternshipListing, error)
	// ListOpenInternships returns the candidate set for a ranking pass:
	// every listing still accepting applications.
	ListOpenInternships(ctx context.Context) ([]*models.InternshipListing, error)
}

// CourseStore loads the course catalog used by the skill-gap annotator.
type CourseStore interface {
	ListCourses(ctx context.Context) ([]models.CourseCandidate, error)
}
