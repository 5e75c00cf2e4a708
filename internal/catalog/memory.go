// internal/catalog/memory.go
package catalog

import (
	"context"
	"sort"
	"time"

	stderrors "pmis-recommender/internal/common/errors"
	"pmis-recommender/internal/models"
)

// MemoryCatalog is an in-memory implementation of all three stores, used
// in tests and local development without a database.
type MemoryCatalog struct {
	students    map[string]*models.StudentProfile
	internships map[string]*models.InternshipListing
	courses     []models.CourseCandidate
	now         func() time.Time
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		students:    make(map[string]*models.StudentProfile),
		internships: make(map[string]*models.InternshipListing),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryCatalog) AddStudent(student *models.StudentProfile) {
	m.students[student.StudentID] = student
}

func (m *MemoryCatalog) AddInternship(internship *models.InternshipListing) {
	m.internships[internship.InternshipID] = internship
}

func (m *MemoryCatalog) AddCourses(courses ...models.CourseCandidate) {
	m.courses = append(m.courses, courses...)
}

func (m *MemoryCatalog) GetStudent(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	student, ok := m.students[studentID]
	if !ok {
		return nil, stderrors.NewStudentNotFoundError(studentID)
	}
	return student, nil
}

func (m *MemoryCatalog) ListStudents(ctx context.Context, limit int) ([]*models.StudentProfile, error) {
	ids := make([]string, 0, len(m.students))
	for id := range m.students {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	students := make([]*models.StudentProfile, 0, len(ids))
	for _, id := range ids {
		students = append(students, m.students[id])
	}
	return students, nil
}

func (m *MemoryCatalog) GetInternship(ctx context.Context, internshipID string) (*models.InternshipListing, error) {
	internship, ok := m.internships[internshipID]
	if !ok {
		return nil, stderrors.NewInternshipNotFoundError(internshipID)
	}
	return internship, nil
}

func (m *MemoryCatalog) ListOpenInternships(ctx context.Context) ([]*models.InternshipListing, error) {
	ids := make([]string, 0, len(m.internships))
	for id := range m.internships {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ref := m.now()
	var open []*models.InternshipListing
	for _, id := range ids {
		if m.internships[id].IsAcceptingApplications(ref) {
			open = append(open, m.internships[id])
		}
	}
	return open, nil
}

func (m *MemoryCatalog) ListCourses(ctx context.Context) ([]models.CourseCandidate, error) {
	return m.courses, nil
}
