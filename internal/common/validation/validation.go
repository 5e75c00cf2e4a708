// internal/common/validation/validation.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (r *ValidationResult) add(field, message, code string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, Code: code})
}

// Summary joins the individual errors into one human-readable string.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateRankingRequest checks the rank-recommendations inputs before any
// scoring work begins.
func ValidateRankingRequest(studentID string, topN, maxTopN int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if studentID == "" {
		result.add("student_id", "required field missing", "REQUIRED_FIELD_MISSING")
	} else if !idPattern.MatchString(studentID) {
		result.add("student_id", "must match pattern ^[A-Za-z0-9_-]{1,64}$", "PATTERN_MISMATCH")
	}

	if topN < 1 {
		result.add("top_n", "must be >= 1", "MINIMUM_VIOLATION")
	} else if topN > maxTopN {
		result.add("top_n", fmt.Sprintf("must be <= %d", maxTopN), "MAXIMUM_VIOLATION")
	}

	return result
}

// ValidatePairRequest checks the single-pair prediction inputs.
func ValidatePairRequest(studentID, internshipID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if studentID == "" {
		result.add("student_id", "required field missing", "REQUIRED_FIELD_MISSING")
	} else if !idPattern.MatchString(studentID) {
		result.add("student_id", "must match pattern ^[A-Za-z0-9_-]{1,64}$", "PATTERN_MISMATCH")
	}

	if internshipID == "" {
		result.add("internship_id", "required field missing", "REQUIRED_FIELD_MISSING")
	} else if !idPattern.MatchString(internshipID) {
		result.add("internship_id", "must match pattern ^[A-Za-z0-9_-]{1,64}$", "PATTERN_MISMATCH")
	}

	return result
}
