// internal/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmis-recommender/internal/common/config"
	stderrors "pmis-recommender/internal/common/errors"
	"pmis-recommender/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

const validFactorsJSON = `{
	"factors": 2,
	"user_ids": ["STU001"],
	"item_ids": ["INT001"],
	"user_factors": [[0.1, 0.2]],
	"item_factors": [[0.3, 0.4]],
	"score_min": -1.0,
	"score_max": 1.0
}`

const validPredictorJSON = `{
	"feature_names": ["content_score", "cgpa_norm"],
	"coefficients": [1.5, 0.5],
	"intercept": -4.0,
	"collaborative_default": 0.4
}`

func writeArtifacts(t *testing.T, factors, predictor string) *config.ArtifactsConfig {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "latent_factors.json"), []byte(factors), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "predictor_model.json"), []byte(predictor), 0o644))
	return &config.ArtifactsConfig{
		Dir:             dir,
		LatentFactors:   "latent_factors.json",
		PredictorModel:  "predictor_model.json",
		SnapshotVersion: "v-test",
	}
}

// ==========================
// Tests
// ==========================

func TestLoad_ValidArtifacts(t *testing.T) {
	reg := New(writeArtifacts(t, validFactorsJSON, validPredictorJSON), logger.NewNoOpLogger())

	require.NoError(t, reg.Load())

	factors, err := reg.Factors()
	require.NoError(t, err)
	assert.Equal(t, 1, factors.Users())

	predictor, err := reg.Predictor()
	require.NoError(t, err)
	assert.NotNil(t, predictor)

	health := reg.Health()
	assert.True(t, health.Loaded)
	assert.Equal(t, "v-test", health.SnapshotVersion)
	assert.Equal(t, 1, health.Users)
	assert.NotEmpty(t, health.LoadedAt)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg := writeArtifacts(t, validFactorsJSON, validPredictorJSON)
	cfg.LatentFactors = "does-not-exist.json"
	reg := New(cfg, logger.NewNoOpLogger())

	err := reg.Load()
	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeArtifactLoadFailed, stdErr.Code)
}

func TestLoad_SchemaViolation(t *testing.T) {
	// factors must be an integer >= 1
	bad := `{
		"factors": 0,
		"user_ids": ["STU001"],
		"item_ids": ["INT001"],
		"user_factors": [[0.1]],
		"item_factors": [[0.3]],
		"score_min": -1.0,
		"score_max": 1.0
	}`
	reg := New(writeArtifacts(t, bad, validPredictorJSON), logger.NewNoOpLogger())

	err := reg.Load()
	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeArtifactInvalid, stdErr.Code)
}

func TestLoad_PredictorCoefficientMismatch(t *testing.T) {
	// Passes the JSON schema but fails semantic validation.
	bad := `{
		"feature_names": ["content_score", "cgpa_norm"],
		"coefficients": [1.5],
		"intercept": -4.0
	}`
	reg := New(writeArtifacts(t, validFactorsJSON, bad), logger.NewNoOpLogger())

	err := reg.Load()
	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeArtifactInvalid, stdErr.Code)
}

func TestLoad_FailureLeavesRegistryUntouched(t *testing.T) {
	cfg := writeArtifacts(t, validFactorsJSON, validPredictorJSON)
	reg := New(cfg, logger.NewNoOpLogger())
	require.NoError(t, reg.Load())

	// Corrupt the predictor and reload: the previous models must survive.
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Dir, "predictor_model.json"), []byte(`{broken`), 0o644))
	assert.Error(t, reg.Load())

	_, err := reg.Predictor()
	assert.NoError(t, err)
	assert.True(t, reg.Health().Loaded)
}

func TestAccessorsBeforeLoad(t *testing.T) {
	reg := New(writeArtifacts(t, validFactorsJSON, validPredictorJSON), logger.NewNoOpLogger())

	_, err := reg.Factors()
	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeModelUnavailable, stdErr.Code)

	_, err = reg.Predictor()
	assert.Error(t, err)
	assert.False(t, reg.Health().Loaded)
}
