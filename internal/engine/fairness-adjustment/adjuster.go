// internal/engine/fairness-adjustment/adjuster.go
package fairnessadjustment

import (
	"math"
	"strings"
)

// Config holds the per-group adjustment table. Adjustments come from
// configuration, not from anything learned online.
type Config struct {
	Enabled      bool
	MaxMagnitude float64
	Groups       map[string]float64
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MaxMagnitude: 0.05,
		Groups: map[string]float64{
			"rural":  0.03,
			"tier-2": 0.02,
			"tier-3": 0.03,
		},
	}
}

// Result reports the applied adjustment alongside the adjusted score.
type Result struct {
	Adjusted   float64
	Adjustment float64
}

// Adjuster applies a bounded additive nudge per candidate. Each
// candidate's adjustment depends only on its own groups and score, never
// on the rest of the batch, so calls are order-independent and idempotent.
type Adjuster struct {
	config *Config
}

func NewAdjuster(config *Config) *Adjuster {
	if config == nil {
		config = DefaultConfig()
	}
	return &Adjuster{config: config}
}

// Apply adjusts a pre-fairness score for a student in the given groups.
// The summed group adjustment is clamped to ±MaxMagnitude and the adjusted
// score is clamped back into [0,1]. A nudge this small can reorder
// near-ties but cannot override a quality gap larger than MaxMagnitude.
func (a *Adjuster) Apply(score float64, groups []string) Result {
	if !a.config.Enabled {
		return Result{Adjusted: clip01(score)}
	}

	var adjustment float64
	for _, group := range groups {
		if delta, ok := a.config.Groups[normalizeGroup(group)]; ok {
			adjustment += delta
		}
	}

	adjustment = math.Max(-a.config.MaxMagnitude, math.Min(a.config.MaxMagnitude, adjustment))

	adjusted := clip01(score + adjustment)
	// Report the effective adjustment after clamping to [0,1] so the
	// breakdown always reconciles with the final score.
	return Result{Adjusted: adjusted, Adjustment: adjusted - clip01(score)}
}

// MaxMagnitude exposes the bound for monotonicity checks.
func (a *Adjuster) MaxMagnitude() float64 {
	if !a.config.Enabled {
		return 0
	}
	return a.config.MaxMagnitude
}

func normalizeGroup(group string) string {
	return strings.ToLower(strings.TrimSpace(group))
}

func clip01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
