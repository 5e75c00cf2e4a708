// test/e2e/e2e_test.go

// End-to-end exercise of the full recommendation pipeline: artifacts on
// disk, registry load, scoring, fairness, ranking and enrichment, all the
// way through the HTTP layer.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmis-recommender/internal/catalog"
	"pmis-recommender/internal/common/config"
	"pmis-recommender/internal/common/logger"
	collaborativesignal "pmis-recommender/internal/engine/collaborative-signal"
	contentsimilarity "pmis-recommender/internal/engine/content-similarity"
	fairnessadjustment "pmis-recommender/internal/engine/fairness-adjustment"
	"pmis-recommender/internal/engine/ranker"
	skillgap "pmis-recommender/internal/engine/skill-gap"
	"pmis-recommender/internal/models"
	"pmis-recommender/internal/registry"
	"pmis-recommender/internal/server"
)

// ==========================
// Test Fixtures
// ==========================

const factorsArtifact = `{
	"factors": 2,
	"user_ids": ["STU001", "STU002"],
	"item_ids": ["INT001", "INT002", "INT003"],
	"user_factors": [[0.9, 0.1], [0.2, 0.8]],
	"item_factors": [[0.8, 0.2], [0.1, 0.9], [0.5, 0.5]],
	"score_min": 0.0,
	"score_max": 1.0
}`

const predictorArtifact = `{
	"feature_names": ["content_score", "collaborative_score", "cgpa_norm",
		"location_match", "stipend_present", "domain_match", "tier_factor"],
	"coefficients": [1.5, 0.8, 0.5, 0.3, 0.2, 0.4, 0.3],
	"intercept": -5.0,
	"collaborative_default": 0.4,
	"tier_factors": {"tier-1": 1.0, "tier-2": 0.85, "tier-3": 0.70}
}`

func buildServer(t *testing.T) *server.Server {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "latent_factors.json"), []byte(factorsArtifact), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "predictor_model.json"), []byte(predictorArtifact), 0o644))

	reg := registry.New(&config.ArtifactsConfig{
		Dir:             dir,
		LatentFactors:   "latent_factors.json",
		PredictorModel:  "predictor_model.json",
		SnapshotVersion: "e2e",
	}, logger.NewNoOpLogger())
	require.NoError(t, reg.Load())

	mem := catalog.NewMemoryCatalog()
	mem.AddStudent(&models.StudentProfile{
		StudentID:         "STU001",
		Name:              "Asha Verma",
		University:        "NIT Trichy",
		Stream:            "Computer Science Engineering",
		CGPA:              8.7,
		Skills:            []string{"Python", "SQL", "Machine Learning"},
		Interests:         []string{"Data Science"},
		PreferredLocation: "Bangalore",
		Protected:         models.ProtectedAttributes{RuralUrban: "rural", CollegeTier: "tier-2"},
	})
	mem.AddStudent(&models.StudentProfile{
		StudentID:         "STU002",
		Name:              "Rohan Patil",
		Stream:            "Mechanical Engineering",
		CGPA:              7.1,
		Skills:            []string{"AutoCAD", "SolidWorks"},
		PreferredLocation: "Pune",
		Protected:         models.ProtectedAttributes{RuralUrban: "urban", CollegeTier: "tier-1"},
	})
	for i, listing := range []*models.InternshipListing{
		{
			Title: "Data Science Intern", OrganizationName: "Acme Analytics",
			Domain: "Data Science", Location: "Bangalore",
			RequiredSkills: []string{"Python", "SQL", "Tableau"},
			Stipend:        25000, Duration: "6 months",
		},
		{
			Title: "Design Engineering Intern", OrganizationName: "Gears Ltd",
			Domain: "Mechanical Design", Location: "Pune",
			RequiredSkills: []string{"AutoCAD", "SolidWorks"},
			Stipend:        12000, Duration: "3 months",
		},
		{
			Title: "Analytics Intern", OrganizationName: "DataWorks",
			Domain: "Data Science", Location: "Remote",
			RequiredSkills: []string{"Python", "Statistics"},
			Stipend:        8000, Duration: "2 months",
		},
	} {
		listing.InternshipID = fmt.Sprintf("INT%03d", i+1)
		mem.AddInternship(listing)
	}
	mem.AddCourses(models.CourseCandidate{
		Skill: "Tableau", CourseName: "Tableau for Beginners",
		Platform: "Coursera", Difficulty: "Beginner",
		ContentKeywords: []string{"tableau", "data visualization"},
	})

	factors, err := reg.Factors()
	require.NoError(t, err)
	predictor, err := reg.Predictor()
	require.NoError(t, err)

	pipeline := ranker.NewRanker(
		nil,
		contentsimilarity.NewEngine(nil),
		collaborativesignal.NewProvider(factors),
		predictor,
		fairnessadjustment.NewAdjuster(nil),
		skillgap.NewAnnotator(nil, mustCourses(t, mem)),
		logger.NewNoOpLogger(),
	)

	cfg := &config.Config{
		App:    config.AppConfig{Name: "pmis-recommender", Version: "e2e"},
		Server: config.ServerConfig{MaxTopN: 50},
	}
	return server.New(cfg, logger.NewNoOpLogger(), server.Deps{
		Students: mem,
		Listings: mem,
		Ranker:   pipeline,
		Registry: reg,
	})
}

func mustCourses(t *testing.T, mem *catalog.MemoryCatalog) []models.CourseCandidate {
	courses, err := mem.ListCourses(context.Background())
	require.NoError(t, err)
	return courses
}

func getRecommendations(t *testing.T, srv *server.Server, path string) models.RecommendationList {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var list models.RecommendationList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

// ==========================
// Tests
// ==========================

func TestE2E_FullRankingPass(t *testing.T) {
	srv := buildServer(t)

	list := getRecommendations(t, srv, "/recommendations/STU001?top_n=3")
	require.Len(t, list.Recommendations, 3)

	top := list.Recommendations[0]
	assert.Equal(t, "INT001", top.InternshipID, "the data-science listing should lead for STU001")
	assert.Equal(t, 1, top.Rank)
	assert.NotEmpty(t, top.Explanations)
	assert.Contains(t, top.MissingSkills, "Tableau")
	require.NotEmpty(t, top.CourseSuggestions)
	assert.Equal(t, "Tableau for Beginners", top.CourseSuggestions[0].CourseName)

	for i, rec := range list.Recommendations {
		assert.Equal(t, i+1, rec.Rank)
		assert.GreaterOrEqual(t, rec.Scores.SuccessProbability, 0.0)
		assert.LessOrEqual(t, rec.Scores.SuccessProbability, 1.0)
	}
}

func TestE2E_DifferentStudentsGetDifferentRankings(t *testing.T) {
	srv := buildServer(t)

	asha := getRecommendations(t, srv, "/recommendations/STU001?top_n=1")
	rohan := getRecommendations(t, srv, "/recommendations/STU002?top_n=1")

	require.Len(t, asha.Recommendations, 1)
	require.Len(t, rohan.Recommendations, 1)
	assert.Equal(t, "INT001", asha.Recommendations[0].InternshipID)
	assert.Equal(t, "INT002", rohan.Recommendations[0].InternshipID)
}

func TestE2E_DeterministicAcrossServerInstances(t *testing.T) {
	first := getRecommendations(t, buildServer(t), "/recommendations/STU001?top_n=3")
	second := getRecommendations(t, buildServer(t), "/recommendations/STU001?top_n=3")

	require.Len(t, second.Recommendations, len(first.Recommendations))
	for i := range first.Recommendations {
		assert.Equal(t, first.Recommendations[i].InternshipID, second.Recommendations[i].InternshipID)
		assert.Equal(t, first.Recommendations[i].Scores, second.Recommendations[i].Scores)
		assert.Equal(t, first.Recommendations[i].Explanations, second.Recommendations[i].Explanations)
	}
}

func TestE2E_PairPrediction(t *testing.T) {
	srv := buildServer(t)

	req := httptest.NewRequest(http.MethodGet, "/success/STU001/INT001", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var prediction models.PairPrediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prediction))
	assert.Greater(t, prediction.SuccessProbability, 0.0)
	assert.Less(t, prediction.SuccessProbability, 1.0)
	assert.NotEmpty(t, prediction.ConfidenceLevel)
}

func TestE2E_HealthReportsLoadedModels(t *testing.T) {
	srv := buildServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string          `json:"status"`
		Models registry.Health `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, body.Models.Loaded)
	assert.Equal(t, 2, body.Models.Users)
	assert.Equal(t, 3, body.Models.Items)
}
