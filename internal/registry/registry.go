// internal/registry/registry.go
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"pmis-recommender/internal/common/config"
	"pmis-recommender/internal/common/errors"
	"pmis-recommender/internal/common/logger"
	collaborativesignal "pmis-recommender/internal/engine/collaborative-signal"
	successprediction "pmis-recommender/internal/engine/success-prediction"
)

// Registry owns the trained model artifacts with an explicit lifecycle:
// Load() once at startup, read-only afterwards. Requests that arrive
// before a successful Load see a model-unavailable error, never partial
// artifacts.
type Registry struct {
	config *config.ArtifactsConfig
	logger logger.Logger

	mu        sync.RWMutex
	factors   *collaborativesignal.FactorStore
	predictor *successprediction.Predictor
	loadedAt  time.Time
}

// Health is the registry snapshot surfaced by the health endpoint.
type Health struct {
	Loaded          bool   `json:"models_loaded"`
	SnapshotVersion string `json:"snapshot_version"`
	Users           int    `json:"collaborative_users"`
	Items           int    `json:"collaborative_items"`
	LoadedAt        string `json:"loaded_at,omitempty"`
}

func New(cfg *config.ArtifactsConfig, log logger.Logger) *Registry {
	return &Registry{config: cfg, logger: log}
}

// Load reads, schema-validates and parses both artifacts. It either
// installs a complete model set or leaves the registry untouched.
func (r *Registry) Load() error {
	factorsPath := filepath.Join(r.config.Dir, r.config.LatentFactors)
	predictorPath := filepath.Join(r.config.Dir, r.config.PredictorModel)

	factorsRaw, err := readAndValidate(factorsPath, latentFactorsSchema)
	if err != nil {
		return err
	}
	factors, err := collaborativesignal.ParseFactorStore(factorsRaw)
	if err != nil {
		return errors.NewArtifactInvalidError(factorsPath, err.Error())
	}

	predictorRaw, err := readAndValidate(predictorPath, predictorModelSchema)
	if err != nil {
		return err
	}
	predictor, err := successprediction.ParsePredictor(predictorRaw)
	if err != nil {
		return errors.NewArtifactInvalidError(predictorPath, err.Error())
	}

	r.mu.Lock()
	r.factors = factors
	r.predictor = predictor
	r.loadedAt = time.Now().UTC()
	r.mu.Unlock()

	r.logger.Info("model artifacts loaded", map[string]interface{}{
		"snapshotVersion": r.config.SnapshotVersion,
		"users":           factors.Users(),
		"items":           factors.Items(),
		"features":        "logistic",
	})
	return nil
}

// Factors returns the latent-factor store, or an error when no load has
// succeeded yet.
func (r *Registry) Factors() (*collaborativesignal.FactorStore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.factors == nil {
		return nil, errors.NewModelUnavailableError("latent factors not loaded")
	}
	return r.factors, nil
}

// Predictor returns the success predictor, or an error when no load has
// succeeded yet.
func (r *Registry) Predictor() (*successprediction.Predictor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.predictor == nil {
		return nil, errors.NewModelUnavailableError("predictor model not loaded")
	}
	return r.predictor, nil
}

// SnapshotVersion identifies the training snapshot, used in cache keys so
// stale cached signals never outlive a model swap.
func (r *Registry) SnapshotVersion() string {
	return r.config.SnapshotVersion
}

func (r *Registry) Health() Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h := Health{
		Loaded:          r.factors != nil && r.predictor != nil,
		SnapshotVersion: r.config.SnapshotVersion,
	}
	if r.factors != nil {
		h.Users = r.factors.Users()
		h.Items = r.factors.Items()
	}
	if !r.loadedAt.IsZero() {
		h.LoadedAt = r.loadedAt.Format(time.RFC3339)
	}
	return h
}

func readAndValidate(path, schema string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewArtifactLoadFailedError(path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, errors.NewArtifactInvalidError(path, err.Error())
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, issue := range result.Errors() {
			issues = append(issues, issue.String())
		}
		return nil, errors.NewArtifactInvalidError(path,
			fmt.Sprintf("schema violations: %s", strings.Join(issues, "; ")))
	}
	return raw, nil
}
