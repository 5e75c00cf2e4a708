// internal/models/internship.go
package models

import (
	"strconv"
	"time"
)

// InternshipListing describes one internship from the catalog.
type InternshipListing struct {
	InternshipID        string    `json:"internshipId"`
	Title               string    `json:"title"`
	OrganizationName    string    `json:"organizationName"`
	Domain              string    `json:"domain"`
	Location            string    `json:"location"`
	RequiredSkills      []string  `json:"requiredSkills"`
	Description         string    `json:"description"`
	Stipend             float64   `json:"stipend"`
	Duration            string    `json:"duration"`
	ApplicationDeadline time.Time `json:"applicationDeadline"`
	PositionsAvailable  int       `json:"positionsAvailable,omitempty"`
	ApplicantsTotal     int       `json:"applicantsTotal,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt,omitempty"`
}

// VersionToken identifies this listing revision for cache keys.
func (i *InternshipListing) VersionToken() string {
	if i.UpdatedAt.IsZero() {
		return "0"
	}
	return strconv.FormatInt(i.UpdatedAt.Unix(), 10)
}

// IsAcceptingApplications reports whether the listing is still open at the
// given reference time. Listings without a deadline are always open.
func (i *InternshipListing) IsAcceptingApplications(ref time.Time) bool {
	if i.ApplicationDeadline.IsZero() {
		return true
	}
	deadline := i.ApplicationDeadline
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	deadlineDay := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	return !deadlineDay.Before(refDay)
}
