// internal/engine/ranker/config.go
package ranker

import "time"

type Config struct {
	// Hybrid blend of content and collaborative signals.
	ContentWeight       float64
	CollaborativeWeight float64

	// Final blend of the hybrid score and the success probability.
	HybridWeight  float64
	SuccessWeight float64

	// PredictorTimeout bounds each success-predictor call. A pair whose
	// prediction misses the deadline is degraded, never dropped.
	PredictorTimeout time.Duration

	// Parallelism is the number of concurrent scoring workers.
	Parallelism int
}

func DefaultConfig() *Config {
	return &Config{
		ContentWeight:       0.6,
		CollaborativeWeight: 0.4,
		HybridWeight:        0.7,
		SuccessWeight:       0.3,
		PredictorTimeout:    500 * time.Millisecond,
		Parallelism:         8,
	}
}
