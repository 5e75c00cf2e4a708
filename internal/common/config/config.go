// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Fairness  FairnessConfig  `mapstructure:"fairness"`
	SkillGap  SkillGapConfig  `mapstructure:"skill_gap"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
	MaxTopN         int `mapstructure:"max_top_n"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

// ArtifactsConfig points at the trained model artifacts loaded at startup.
type ArtifactsConfig struct {
	Dir             string `mapstructure:"dir"`
	LatentFactors   string `mapstructure:"latent_factors"`
	PredictorModel  string `mapstructure:"predictor_model"`
	SnapshotVersion string `mapstructure:"snapshot_version"`
}

// ScoringConfig holds the hybrid scoring weights. All weight pairs/groups
// must sum to 1.0; Load() rejects configurations that do not.
type ScoringConfig struct {
	// Content score = lexical_weight*cosine + metadata_weight*metadata.
	LexicalWeight  float64 `mapstructure:"lexical_weight"`
	MetadataWeight float64 `mapstructure:"metadata_weight"`

	// Metadata sub-weights.
	DegreeWeight    float64 `mapstructure:"degree_weight"`
	LevelWeight     float64 `mapstructure:"level_weight"`
	LocationWeight  float64 `mapstructure:"location_weight"`
	CGPAWeight      float64 `mapstructure:"cgpa_weight"`
	TierBonusWeight float64 `mapstructure:"tier_bonus_weight"`

	// Hybrid = content_weight*content + collaborative_weight*collaborative.
	ContentWeight       float64 `mapstructure:"content_weight"`
	CollaborativeWeight float64 `mapstructure:"collaborative_weight"`

	// Final = hybrid_weight*hybrid + success_weight*success_probability.
	HybridWeight  float64 `mapstructure:"hybrid_weight"`
	SuccessWeight float64 `mapstructure:"success_weight"`

	// Predictor call deadline per pair.
	PredictorTimeout int `mapstructure:"predictor_timeout"` // milliseconds

	// Scoring fan-out across candidates.
	Parallelism int `mapstructure:"parallelism"`
}

// FairnessConfig holds the per-group score adjustments. Each adjustment is
// clamped to [-max_magnitude, +max_magnitude] before being applied.
type FairnessConfig struct {
	Enabled      bool               `mapstructure:"enabled"`
	MaxMagnitude float64            `mapstructure:"max_magnitude"`
	Groups       map[string]float64 `mapstructure:"groups"`
}

// SkillGapConfig bounds the size of the skill-gap annotations.
type SkillGapConfig struct {
	MaxSkills          int     `mapstructure:"max_skills"`
	MaxCoursesPerSkill int     `mapstructure:"max_courses_per_skill"`
	PrereqGate         float64 `mapstructure:"prereq_gate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
