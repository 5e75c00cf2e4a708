// internal/common/validation/validation_test.go
package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRankingRequest_Valid(t *testing.T) {
	result := ValidateRankingRequest("STU001", 10, 50)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateRankingRequest_TopNBounds(t *testing.T) {
	assert.False(t, ValidateRankingRequest("STU001", 0, 50).Valid)
	assert.False(t, ValidateRankingRequest("STU001", 51, 50).Valid)
	assert.True(t, ValidateRankingRequest("STU001", 1, 50).Valid)
	assert.True(t, ValidateRankingRequest("STU001", 50, 50).Valid)
}

func TestValidateRankingRequest_StudentID(t *testing.T) {
	assert.False(t, ValidateRankingRequest("", 10, 50).Valid)
	assert.False(t, ValidateRankingRequest("bad id!", 10, 50).Valid)
	assert.False(t, ValidateRankingRequest(strings.Repeat("a", 65), 10, 50).Valid)
	assert.True(t, ValidateRankingRequest("STU_001-x", 10, 50).Valid)
}

func TestValidatePairRequest(t *testing.T) {
	assert.True(t, ValidatePairRequest("STU001", "INT001").Valid)
	assert.False(t, ValidatePairRequest("", "INT001").Valid)
	assert.False(t, ValidatePairRequest("STU001", "").Valid)
	assert.False(t, ValidatePairRequest("STU001", "int/001").Valid)
}

func TestSummary(t *testing.T) {
	result := ValidateRankingRequest("", 0, 50)
	summary := result.Summary()
	assert.Contains(t, summary, "student_id")
	assert.Contains(t, summary, "top_n")
}
