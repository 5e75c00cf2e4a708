// internal/engine/success-prediction/models.go
package successprediction

// PairFeatures is the fixed-order feature input for one prediction. The
// collaborative score may be absent; the model substitutes its trained
// population mean in that case.
type PairFeatures struct {
	ContentScore           float64
	CollaborativeScore     float64
	CollaborativeAvailable bool
	CGPA                   float64 // 0-10 scale
	LocationMatch          bool
	StipendPresent         bool
	DomainMatch            bool
	RuralBackground        bool
	CollegeTier            string // "tier-1", "tier-2", "tier-3"
}

// modelArtifact is the on-disk JSON layout of the trained classifier.
type modelArtifact struct {
	FeatureNames         []string           `json:"feature_names"`
	Coefficients         []float64          `json:"coefficients"`
	Intercept            float64            `json:"intercept"`
	CollaborativeDefault float64            `json:"collaborative_default"` // population mean
	SuccessPrior         float64            `json:"success_prior"`         // population base rate
	TierFactors          map[string]float64 `json:"tier_factors"`
}
