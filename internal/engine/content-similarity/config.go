// internal/engine/content-similarity/config.go
package contentsimilarity

type Config struct {
	LexicalWeight  float64
	MetadataWeight float64

	DegreeWeight    float64
	LevelWeight     float64
	LocationWeight  float64
	CGPAWeight      float64
	TierBonusWeight float64
}

func DefaultConfig() *Config {
	return &Config{
		LexicalWeight:   0.7,
		MetadataWeight:  0.3,
		DegreeWeight:    0.30,
		LevelWeight:     0.25,
		LocationWeight:  0.25,
		CGPAWeight:      0.15,
		TierBonusWeight: 0.05,
	}
}
