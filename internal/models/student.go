// internal/models/student.go
package models

import (
	"strconv"
	"time"
)

// ProtectedAttributes carries externally supplied equity attributes. They
// are inputs to the fairness adjuster, never derived or synthesized here.
type ProtectedAttributes struct {
	RuralUrban  string `json:"ruralUrban"`  // "rural" or "urban"
	CollegeTier string `json:"collegeTier"` // "tier-1", "tier-2", "tier-3"
	Gender      string `json:"gender"`
}

// StudentProfile is immutable once loaded for a scoring pass.
type StudentProfile struct {
	StudentID         string              `json:"studentId"`
	Name              string              `json:"name"`
	University        string              `json:"university"`
	Stream            string              `json:"stream"`
	CGPA              float64             `json:"cgpa"` // 0-10 scale
	Skills            []string            `json:"skills"`
	Interests         []string            `json:"interests"`
	PreferredLocation string              `json:"preferredLocation"`
	Protected         ProtectedAttributes `json:"protectedAttributes"`
	UpdatedAt         time.Time           `json:"updatedAt,omitempty"`
}

// VersionToken identifies this profile revision for cache keys. A profile
// edit changes the token, so cached values derived from an older revision
// can never be served again.
func (s *StudentProfile) VersionToken() string {
	if s.UpdatedAt.IsZero() {
		return "0"
	}
	return strconv.FormatInt(s.UpdatedAt.Unix(), 10)
}

// FairnessGroups returns the group keys the fairness adjuster looks up for
// this student, in a fixed order.
func (s *StudentProfile) FairnessGroups() []string {
	groups := make([]string, 0, 3)
	if s.Protected.RuralUrban != "" {
		groups = append(groups, s.Protected.RuralUrban)
	}
	if s.Protected.CollegeTier != "" {
		groups = append(groups, s.Protected.CollegeTier)
	}
	if s.Protected.Gender != "" {
		groups = append(groups, s.Protected.Gender)
	}
	return groups
}
