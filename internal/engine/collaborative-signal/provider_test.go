// internal/engine/collaborative-signal/provider_test.go
package collaborativesignal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestArtifact() *factorArtifact {
	return &factorArtifact{
		Factors: 2,
		UserIDs: []string{"STU001", "STU002"},
		ItemIDs: []string{"INT001", "INT002", "INT003"},
		UserFactors: [][]float64{
			{1.0, 0.0},
			{0.0, 1.0},
		},
		ItemFactors: [][]float64{
			{1.0, 0.0},
			{0.0, 1.0},
			{0.5, 0.5},
		},
		ScoreMin: -1.0,
		ScoreMax: 1.0,
	}
}

func createTestProvider(t *testing.T) *Provider {
	store, err := NewFactorStore(createTestArtifact())
	require.NoError(t, err)
	return NewProvider(store)
}

// ==========================
// Tests
// ==========================

func TestLookup_KnownPair(t *testing.T) {
	provider := createTestProvider(t)

	signal := provider.Lookup("STU001", "INT001")
	assert.True(t, signal.Available)
	// dot = 1.0, rescaled from [-1,1] to [0,1] gives 1.0.
	assert.InDelta(t, 1.0, signal.Score, 1e-12)
}

func TestLookup_ScoresRescaledToUnitInterval(t *testing.T) {
	provider := createTestProvider(t)

	for _, studentID := range []string{"STU001", "STU002"} {
		for _, internshipID := range []string{"INT001", "INT002", "INT003"} {
			signal := provider.Lookup(studentID, internshipID)
			assert.True(t, signal.Available)
			assert.GreaterOrEqual(t, signal.Score, 0.0)
			assert.LessOrEqual(t, signal.Score, 1.0)
		}
	}
}

func TestLookup_ColdStartStudent(t *testing.T) {
	provider := createTestProvider(t)

	signal := provider.Lookup("STU999", "INT001")
	assert.False(t, signal.Available)
}

func TestLookup_ColdStartInternship(t *testing.T) {
	provider := createTestProvider(t)

	signal := provider.Lookup("STU001", "INT999")
	assert.False(t, signal.Available)
}

func TestLookup_NilStore(t *testing.T) {
	provider := NewProvider(nil)

	signal := provider.Lookup("STU001", "INT001")
	assert.False(t, signal.Available)
}

func TestNewFactorStore_RejectsShapeMismatches(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *factorArtifact)
	}{
		{"zero factors", func(a *factorArtifact) { a.Factors = 0 }},
		{"empty user ids", func(a *factorArtifact) { a.UserIDs = nil }},
		{"user row count mismatch", func(a *factorArtifact) { a.UserFactors = a.UserFactors[:1] }},
		{"item row count mismatch", func(a *factorArtifact) { a.ItemFactors = a.ItemFactors[:1] }},
		{"ragged user row", func(a *factorArtifact) { a.UserFactors[0] = []float64{1.0} }},
		{"inverted score bounds", func(a *factorArtifact) { a.ScoreMin, a.ScoreMax = 1.0, -1.0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := createTestArtifact()
			tt.mutate(artifact)
			_, err := NewFactorStore(artifact)
			assert.Error(t, err)
		})
	}
}

func TestParseFactorStore_ValidJSON(t *testing.T) {
	raw := []byte(`{
		"factors": 1,
		"user_ids": ["STU001"],
		"item_ids": ["INT001"],
		"user_factors": [[0.5]],
		"item_factors": [[0.4]],
		"score_min": 0.0,
		"score_max": 1.0
	}`)

	store, err := ParseFactorStore(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Users())
	assert.Equal(t, 1, store.Items())
}

func TestParseFactorStore_MalformedJSON(t *testing.T) {
	_, err := ParseFactorStore([]byte(`{not json`))
	assert.Error(t, err)
}
