// internal/common/config/loader.go
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_POSTGRES_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when absent.
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from the usual locations so the binary works from cmd/, the
// repo root, and test directories alike.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pmis-recommender"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if cfg.Server.MaxTopN == 0 {
		cfg.Server.MaxTopN = 50
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Redis.CacheTTL == 0 {
		cfg.Database.Redis.CacheTTL = 300
	}

	if cfg.Artifacts.Dir == "" {
		cfg.Artifacts.Dir = "artifacts"
	}
	if cfg.Artifacts.LatentFactors == "" {
		cfg.Artifacts.LatentFactors = "latent_factors.json"
	}
	if cfg.Artifacts.PredictorModel == "" {
		cfg.Artifacts.PredictorModel = "success_predictor.json"
	}
	if cfg.Artifacts.SnapshotVersion == "" {
		cfg.Artifacts.SnapshotVersion = "v1"
	}

	sc := &cfg.Scoring
	if sc.LexicalWeight == 0 && sc.MetadataWeight == 0 {
		sc.LexicalWeight = 0.7
		sc.MetadataWeight = 0.3
	}
	if sc.DegreeWeight == 0 && sc.LevelWeight == 0 && sc.LocationWeight == 0 &&
		sc.CGPAWeight == 0 && sc.TierBonusWeight == 0 {
		sc.DegreeWeight = 0.30
		sc.LevelWeight = 0.25
		sc.LocationWeight = 0.25
		sc.CGPAWeight = 0.15
		sc.TierBonusWeight = 0.05
	}
	if sc.ContentWeight == 0 && sc.CollaborativeWeight == 0 {
		sc.ContentWeight = 0.6
		sc.CollaborativeWeight = 0.4
	}
	if sc.HybridWeight == 0 && sc.SuccessWeight == 0 {
		sc.HybridWeight = 0.7
		sc.SuccessWeight = 0.3
	}
	if sc.PredictorTimeout == 0 {
		sc.PredictorTimeout = 500
	}
	if sc.Parallelism == 0 {
		sc.Parallelism = 8
	}

	if cfg.Fairness.MaxMagnitude == 0 {
		cfg.Fairness.MaxMagnitude = 0.05
	}
	if cfg.Fairness.Groups == nil {
		cfg.Fairness.Groups = map[string]float64{
			"rural":  0.03,
			"tier-2": 0.02,
			"tier-3": 0.03,
		}
	}

	if cfg.SkillGap.MaxSkills == 0 {
		cfg.SkillGap.MaxSkills = 3
	}
	if cfg.SkillGap.MaxCoursesPerSkill == 0 {
		cfg.SkillGap.MaxCoursesPerSkill = 2
	}
	if cfg.SkillGap.PrereqGate == 0 {
		cfg.SkillGap.PrereqGate = 0.5
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func weightsSumToOne(weights ...float64) bool {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	return math.Abs(sum-1.0) < 1e-9
}

func validateConfig(cfg *Config) error {
	sc := cfg.Scoring

	if !weightsSumToOne(sc.LexicalWeight, sc.MetadataWeight) {
		return fmt.Errorf("lexical_weight + metadata_weight must sum to 1.0, got %v",
			sc.LexicalWeight+sc.MetadataWeight)
	}
	if !weightsSumToOne(sc.DegreeWeight, sc.LevelWeight, sc.LocationWeight, sc.CGPAWeight, sc.TierBonusWeight) {
		return fmt.Errorf("metadata sub-weights must sum to 1.0")
	}
	if !weightsSumToOne(sc.ContentWeight, sc.CollaborativeWeight) {
		return fmt.Errorf("content_weight + collaborative_weight must sum to 1.0, got %v",
			sc.ContentWeight+sc.CollaborativeWeight)
	}
	if !weightsSumToOne(sc.HybridWeight, sc.SuccessWeight) {
		return fmt.Errorf("hybrid_weight + success_weight must sum to 1.0, got %v",
			sc.HybridWeight+sc.SuccessWeight)
	}

	if cfg.Fairness.MaxMagnitude < 0 || cfg.Fairness.MaxMagnitude > 0.5 {
		return fmt.Errorf("fairness max_magnitude must be in [0, 0.5], got %v", cfg.Fairness.MaxMagnitude)
	}

	if cfg.Server.MaxTopN < 1 {
		return fmt.Errorf("server max_top_n must be >= 1, got %d", cfg.Server.MaxTopN)
	}

	if cfg.Scoring.Parallelism < 1 {
		return fmt.Errorf("scoring parallelism must be >= 1, got %d", cfg.Scoring.Parallelism)
	}

	return nil
}
