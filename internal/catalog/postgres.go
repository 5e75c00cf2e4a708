// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	stderrors "pmis-recommender/internal/common/errors"
	"pmis-recommender/internal/common/logger"
	"pmis-recommender/internal/models"
)

// PostgresCatalog implements all three stores on one connection pool.
type PostgresCatalog struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresCatalog(db *sql.DB, log logger.Logger) *PostgresCatalog {
	return &PostgresCatalog{db: db, logger: log}
}

const studentColumns = `student_id, name, university, stream, cgpa, skills,
	interests, preferred_location, rural_urban, college_tier, gender, updated_at`

func (c *PostgresCatalog) GetStudent(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1`, studentID)

	student, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewStudentNotFoundError(studentID)
	}
	if err != nil {
		return nil, stderrors.NewCatalogQueryFailedError("student", err)
	}
	return student, nil
}

func (c *PostgresCatalog) ListStudents(ctx context.Context, limit int) ([]*models.StudentProfile, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY student_id LIMIT $1`, limit)
	if err != nil {
		return nil, stderrors.NewCatalogQueryFailedError("students", err)
	}
	defer rows.Close()

	var students []*models.StudentProfile
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, stderrors.NewCatalogQueryFailedError("students", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewCatalogQueryFailedError("students", err)
	}
	return students, nil
}

const internshipColumns = `internship_id, title, organization_name, domain,
	location, required_skills, description, stipend, duration,
	application_deadline, positions_available, applicants_total, updated_at`

func (c *PostgresCatalog) GetInternship(ctx context.Context, internshipID string) (*models.InternshipListing, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT `+internshipColumns+` FROM internships WHERE internship_id = $1`, internshipID)

	internship, err := scanInternship(row)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewInternshipNotFoundError(internshipID)
	}
	if err != nil {
		return nil, stderrors.NewCatalogQueryFailedError("internship", err)
	}
	return internship, nil
}

func (c *PostgresCatalog) ListOpenInternships(ctx context.Context) ([]*models.InternshipListing, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT `+internshipColumns+` FROM internships
		 WHERE application_deadline IS NULL OR application_deadline >= CURRENT_DATE
		 ORDER BY internship_id`)
	if err != nil {
		return nil, stderrors.NewCatalogQueryFailedError("internships", err)
	}
	defer rows.Close()

	var internships []*models.InternshipListing
	for rows.Next() {
		internship, err := scanInternship(rows)
		if err != nil {
			return nil, stderrors.NewCatalogQueryFailedError("internships", err)
		}
		internships = append(internships, internship)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewCatalogQueryFailedError("internships", err)
	}
	return internships, nil
}

func (c *PostgresCatalog) ListCourses(ctx context.Context) ([]models.CourseCandidate, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT skill, course_name, platform, course_link, difficulty,
		        prerequisites, content_keywords, duration_hours, rating
		 FROM courses ORDER BY skill, course_name`)
	if err != nil {
		return nil, stderrors.NewCatalogQueryFailedError("courses", err)
	}
	defer rows.Close()

	var courses []models.CourseCandidate
	for rows.Next() {
		var course models.CourseCandidate
		var link sql.NullString
		var rating sql.NullFloat64
		if err := rows.Scan(
			&course.Skill,
			&course.CourseName,
			&course.Platform,
			&link,
			&course.Difficulty,
			pq.Array(&course.Prerequisites),
			pq.Array(&course.ContentKeywords),
			&course.DurationHours,
			&rating,
		); err != nil {
			return nil, stderrors.NewCatalogQueryFailedError("courses", err)
		}
		course.CourseLink = link.String
		course.Rating = rating.Float64
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewCatalogQueryFailedError("courses", err)
	}
	return courses, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStudent(row rowScanner) (*models.StudentProfile, error) {
	var student models.StudentProfile
	var ruralUrban, collegeTier, gender sql.NullString
	var updatedAt sql.NullTime
	if err := row.Scan(
		&student.StudentID,
		&student.Name,
		&student.University,
		&student.Stream,
		&student.CGPA,
		pq.Array(&student.Skills),
		pq.Array(&student.Interests),
		&student.PreferredLocation,
		&ruralUrban,
		&collegeTier,
		&gender,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	student.Protected = models.ProtectedAttributes{
		RuralUrban:  ruralUrban.String,
		CollegeTier: collegeTier.String,
		Gender:      gender.String,
	}
	if updatedAt.Valid {
		student.UpdatedAt = updatedAt.Time
	}
	return &student, nil
}

func scanInternship(row rowScanner) (*models.InternshipListing, error) {
	var internship models.InternshipListing
	var deadline, updatedAt sql.NullTime
	var positions, applicants sql.NullInt64
	if err := row.Scan(
		&internship.InternshipID,
		&internship.Title,
		&internship.OrganizationName,
		&internship.Domain,
		&internship.Location,
		pq.Array(&internship.RequiredSkills),
		&internship.Description,
		&internship.Stipend,
		&internship.Duration,
		&deadline,
		&positions,
		&applicants,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	if deadline.Valid {
		internship.ApplicationDeadline = deadline.Time
	}
	internship.PositionsAvailable = int(positions.Int64)
	internship.ApplicantsTotal = int(applicants.Int64)
	if updatedAt.Valid {
		internship.UpdatedAt = updatedAt.Time
	}
	return &internship, nil
}
