// internal/engine/success-prediction/predictor.go
package successprediction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

var ErrUnknownFeature = errors.New("unknown feature name in model artifact")

// Predictor scores a fixed-order feature vector with a trained logistic
// model. Inference is pure arithmetic over the loaded coefficients: the
// same features always produce the same probability, bit for bit.
type Predictor struct {
	featureNames         []string
	coefficients         []float64
	intercept            float64
	collaborativeDefault float64
	successPrior         float64
	tierFactors          map[string]float64
}

// LoadPredictor reads and validates a trained classifier artifact.
func LoadPredictor(path string) (*Predictor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read predictor model: %w", err)
	}
	return ParsePredictor(raw)
}

// ParsePredictor builds a Predictor from raw artifact bytes.
func ParsePredictor(raw []byte) (*Predictor, error) {
	var artifact modelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("parse predictor model: %w", err)
	}
	return NewPredictor(&artifact)
}

func NewPredictor(artifact *modelArtifact) (*Predictor, error) {
	if len(artifact.FeatureNames) == 0 {
		return nil, fmt.Errorf("predictor model: empty feature list")
	}
	if len(artifact.FeatureNames) != len(artifact.Coefficients) {
		return nil, fmt.Errorf("predictor model: %d feature names for %d coefficients",
			len(artifact.FeatureNames), len(artifact.Coefficients))
	}
	if artifact.CollaborativeDefault < 0 || artifact.CollaborativeDefault > 1 {
		return nil, fmt.Errorf("predictor model: collaborative_default %v outside [0,1]",
			artifact.CollaborativeDefault)
	}
	if artifact.SuccessPrior < 0 || artifact.SuccessPrior > 1 {
		return nil, fmt.Errorf("predictor model: success_prior %v outside [0,1]",
			artifact.SuccessPrior)
	}

	p := &Predictor{
		featureNames:         artifact.FeatureNames,
		coefficients:         artifact.Coefficients,
		intercept:            artifact.Intercept,
		collaborativeDefault: artifact.CollaborativeDefault,
		successPrior:         artifact.SuccessPrior,
		tierFactors:          artifact.TierFactors,
	}
	if p.tierFactors == nil {
		p.tierFactors = map[string]float64{"tier-1": 1.0, "tier-2": 0.85, "tier-3": 0.70}
	}
	// Older artifacts omit the base rate. The intercept alone is the model's
	// output for an all-zero feature vector, which serves the same role.
	if p.successPrior == 0 {
		p.successPrior = sigmoid(p.intercept)
	}

	// Reject artifacts whose feature list we cannot serve.
	for _, name := range p.featureNames {
		if _, err := p.featureValue(name, &PairFeatures{}); err != nil {
			return nil, fmt.Errorf("predictor model: %w: %s", ErrUnknownFeature, name)
		}
	}
	return p, nil
}

// Predict returns the calibrated selection probability for one pair. The
// context bounds the call; a cancelled or expired context returns its error
// so the caller can degrade to the partial-signal path.
func (p *Predictor) Predict(ctx context.Context, features *PairFeatures) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	z := p.intercept
	for i, name := range p.featureNames {
		v, err := p.featureValue(name, features)
		if err != nil {
			return 0, err
		}
		z += p.coefficients[i] * v
	}

	return sigmoid(z), nil
}

// CollaborativeDefault is the documented substitute for a missing
// collaborative score: the population mean fixed at training time.
func (p *Predictor) CollaborativeDefault() float64 {
	return p.collaborativeDefault
}

// SuccessPrior is the population selection base rate fixed at training
// time. Callers substitute it when a per-pair prediction is unavailable,
// which keeps degraded pairs on the same scale as fully scored ones.
func (p *Predictor) SuccessPrior() float64 {
	return p.successPrior
}

func (p *Predictor) featureValue(name string, f *PairFeatures) (float64, error) {
	switch name {
	case "content_score":
		return f.ContentScore, nil
	case "collaborative_score":
		if !f.CollaborativeAvailable {
			return p.collaborativeDefault, nil
		}
		return f.CollaborativeScore, nil
	case "cgpa_norm":
		return math.Max(0.0, math.Min(1.0, f.CGPA/10.0)), nil
	case "location_match":
		return boolFeature(f.LocationMatch), nil
	case "stipend_present":
		return boolFeature(f.StipendPresent), nil
	case "domain_match":
		return boolFeature(f.DomainMatch), nil
	case "rural_background":
		return boolFeature(f.RuralBackground), nil
	case "tier_factor":
		if factor, ok := p.tierFactors[f.CollegeTier]; ok {
			return factor, nil
		}
		return p.tierFactors["tier-3"], nil
	default:
		return 0, ErrUnknownFeature
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
