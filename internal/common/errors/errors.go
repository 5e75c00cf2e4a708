// Package errors provides the standardized error taxonomy for the
// recommendation service: validation failures, missing catalog entities,
// unavailable model artifacts, and degraded per-pair signals.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeStudentNotFound    ErrorCode = "STUDENT_NOT_FOUND"
	ErrCodeInternshipNotFound ErrorCode = "INTERNSHIP_NOT_FOUND"

	ErrCodeModelUnavailable     ErrorCode = "MODEL_UNAVAILABLE"
	ErrCodeArtifactLoadFailed   ErrorCode = "ARTIFACT_LOAD_FAILED"
	ErrCodeArtifactInvalid      ErrorCode = "ARTIFACT_INVALID"
	ErrCodeCatalogQueryFailed   ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeCatalogQueryTimeout  ErrorCode = "CATALOG_QUERY_TIMEOUT"
	ErrCodePartialSignal        ErrorCode = "PARTIAL_SIGNAL"
	ErrCodePredictorTimeout     ErrorCode = "PREDICTOR_TIMEOUT"
	ErrCodeCollaborativeMissing ErrorCode = "COLLABORATIVE_SIGNAL_MISSING"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStudentNotFoundError creates a non-retryable missing-student error.
func NewStudentNotFoundError(studentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStudentNotFound,
		Message:   "Student not found in catalog",
		Details:   fmt.Sprintf("studentId: %s", studentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternshipNotFoundError creates a non-retryable missing-internship error.
func NewInternshipNotFoundError(internshipID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternshipNotFound,
		Message:   "Internship not found in catalog",
		Details:   fmt.Sprintf("internshipId: %s", internshipID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelUnavailableError marks the whole ranking capability unhealthy.
// Surfaced through the health endpoint, never per request.
func NewModelUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelUnavailable,
		Message:   "Model artifacts are not loaded",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewArtifactLoadFailedError creates a retryable artifact read error.
func NewArtifactLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactLoadFailed,
		Message:   "Failed to read model artifact",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewArtifactInvalidError creates a non-retryable artifact schema error.
func NewArtifactInvalidError(path, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactInvalid,
		Message:   "Model artifact failed schema validation",
		Details:   fmt.Sprintf("path: %s, %s", path, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogQueryFailedError creates a retryable catalog query error.
func NewCatalogQueryFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogQueryFailed,
		Message:   "Catalog query error",
		Details:   fmt.Sprintf("entity: %s, error: %s", entity, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPartialSignalError records a degraded sub-signal for one pair. It is
// recovered locally by the ranker and never propagates to the caller.
func NewPartialSignalError(signal, studentID, internshipID string, err error) *StandardError {
	details := fmt.Sprintf("signal: %s, studentId: %s, internshipId: %s", signal, studentID, internshipID)
	if err != nil {
		details = fmt.Sprintf("%s, error: %s", details, err.Error())
	}
	return &StandardError{
		Code:      ErrCodePartialSignal,
		Message:   "Sub-signal could not be computed, substituting default",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Classification helpers
// ==========================

// IsNotFound reports whether err represents a missing catalog entity.
func IsNotFound(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == ErrCodeStudentNotFound || stdErr.Code == ErrCodeInternshipNotFound
	}
	return false
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == ErrCodeValidationFailed
	}
	return false
}

// HTTPStatus maps an error to the HTTP status code the API layer returns.
func HTTPStatus(err error) int {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) {
		return http.StatusInternalServerError
	}
	switch stdErr.Code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeStudentNotFound, ErrCodeInternshipNotFound:
		return http.StatusNotFound
	case ErrCodeModelUnavailable, ErrCodeArtifactLoadFailed, ErrCodeArtifactInvalid:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
