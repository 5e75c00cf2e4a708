// internal/engine/collaborative-signal/provider.go
package collaborativesignal

import "math"

// Signal is the result of one collaborative lookup. Available is false for
// cold-start pairs; the score is meaningless in that case and the caller
// must fall back to content-only scoring, not treat the pair as a worst
// match.
type Signal struct {
	Score     float64
	Available bool
}

// Provider looks up latent-factor compatibility scores from a trained
// FactorStore.
type Provider struct {
	store *FactorStore
}

func NewProvider(store *FactorStore) *Provider {
	return &Provider{store: store}
}

// Lookup computes dot(user_factors[i], item_factors[j]) rescaled to [0,1]
// with the bounds fixed at training time.
func (p *Provider) Lookup(studentID, internshipID string) Signal {
	if p.store == nil {
		return Signal{}
	}

	i, ok := p.store.UserIndex(studentID)
	if !ok {
		return Signal{}
	}
	j, ok := p.store.ItemIndex(internshipID)
	if !ok {
		return Signal{}
	}

	var dot float64
	user := p.store.UserFactors[i]
	item := p.store.ItemFactors[j]
	for k := 0; k < p.store.Factors; k++ {
		dot += user[k] * item[k]
	}

	normalized := (dot - p.store.ScoreMin) / (p.store.ScoreMax - p.store.ScoreMin)
	return Signal{
		Score:     math.Max(0.0, math.Min(1.0, normalized)),
		Available: true,
	}
}
