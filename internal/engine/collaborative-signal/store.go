// internal/engine/collaborative-signal/store.go
package collaborativesignal

import (
	"encoding/json"
	"fmt"
	"os"
)

// FactorStore holds the trained latent-factor matrices and id↔index
// mappings. Immutable after Load; concurrent reads need no locking.
type FactorStore struct {
	Factors     int
	UserFactors [][]float64
	ItemFactors [][]float64

	userIndex map[string]int
	itemIndex map[string]int

	// Rescaling bounds fixed at training time. Recomputing them per
	// request would make scores non-comparable across requests.
	ScoreMin float64
	ScoreMax float64
}

// factorArtifact is the on-disk JSON layout produced by training.
type factorArtifact struct {
	Factors     int         `json:"factors"`
	UserIDs     []string    `json:"user_ids"`
	ItemIDs     []string    `json:"item_ids"`
	UserFactors [][]float64 `json:"user_factors"`
	ItemFactors [][]float64 `json:"item_factors"`
	ScoreMin    float64     `json:"score_min"`
	ScoreMax    float64     `json:"score_max"`
}

// LoadFactorStore reads and validates a latent-factor artifact.
func LoadFactorStore(path string) (*FactorStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read latent factors: %w", err)
	}
	return ParseFactorStore(raw)
}

// ParseFactorStore builds a FactorStore from raw artifact bytes.
func ParseFactorStore(raw []byte) (*FactorStore, error) {
	var artifact factorArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("parse latent factors: %w", err)
	}
	return NewFactorStore(&artifact)
}

// NewFactorStore validates the artifact shape and builds the id indexes.
func NewFactorStore(artifact *factorArtifact) (*FactorStore, error) {
	if artifact.Factors <= 0 {
		return nil, fmt.Errorf("latent factors: non-positive factor count %d", artifact.Factors)
	}
	if len(artifact.UserIDs) == 0 || len(artifact.ItemIDs) == 0 {
		return nil, fmt.Errorf("latent factors: empty id mapping")
	}
	if len(artifact.UserFactors) != len(artifact.UserIDs) {
		return nil, fmt.Errorf("latent factors: %d user rows for %d user ids",
			len(artifact.UserFactors), len(artifact.UserIDs))
	}
	if len(artifact.ItemFactors) != len(artifact.ItemIDs) {
		return nil, fmt.Errorf("latent factors: %d item rows for %d item ids",
			len(artifact.ItemFactors), len(artifact.ItemIDs))
	}
	if artifact.ScoreMax <= artifact.ScoreMin {
		return nil, fmt.Errorf("latent factors: invalid score bounds [%v, %v]",
			artifact.ScoreMin, artifact.ScoreMax)
	}
	for i, row := range artifact.UserFactors {
		if len(row) != artifact.Factors {
			return nil, fmt.Errorf("latent factors: user row %d has %d factors, want %d", i, len(row), artifact.Factors)
		}
	}
	for i, row := range artifact.ItemFactors {
		if len(row) != artifact.Factors {
			return nil, fmt.Errorf("latent factors: item row %d has %d factors, want %d", i, len(row), artifact.Factors)
		}
	}

	store := &FactorStore{
		Factors:     artifact.Factors,
		UserFactors: artifact.UserFactors,
		ItemFactors: artifact.ItemFactors,
		ScoreMin:    artifact.ScoreMin,
		ScoreMax:    artifact.ScoreMax,
		userIndex:   make(map[string]int, len(artifact.UserIDs)),
		itemIndex:   make(map[string]int, len(artifact.ItemIDs)),
	}
	for i, id := range artifact.UserIDs {
		store.userIndex[id] = i
	}
	for i, id := range artifact.ItemIDs {
		store.itemIndex[id] = i
	}
	return store, nil
}

func (s *FactorStore) UserIndex(studentID string) (int, bool) {
	i, ok := s.userIndex[studentID]
	return i, ok
}

func (s *FactorStore) ItemIndex(internshipID string) (int, bool) {
	i, ok := s.itemIndex[internshipID]
	return i, ok
}

func (s *FactorStore) Users() int { return len(s.userIndex) }
func (s *FactorStore) Items() int { return len(s.itemIndex) }
