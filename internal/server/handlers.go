// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	stderrors "pmis-recommender/internal/common/errors"
	"pmis-recommender/internal/common/metrics"
	"pmis-recommender/internal/common/validation"
	"pmis-recommender/internal/models"
)

const defaultTopN = 10

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": s.config.App.Name,
		"version": s.config.App.Version,
		"endpoints": map[string]string{
			"recommendations": "/recommendations/{student_id}?top_n=N",
			"success":         "/success/{student_id}/{internship_id}",
			"students":        "/students?limit=N",
			"health":          "/health",
			"metrics":         "/metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.registry.Health()

	status := http.StatusOK
	state := "healthy"
	if !health.Loaded {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	s.writeJSON(w, status, map[string]interface{}{
		"status": state,
		"models": health,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	studentID := mux.Vars(r)["student_id"]

	topN := defaultTopN
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, "recommendations", stderrors.NewValidationError("top_n: must be an integer"))
			return
		}
		topN = parsed
	}

	if result := validation.ValidateRankingRequest(studentID, topN, s.config.Server.MaxTopN); !result.Valid {
		s.writeError(w, r, "recommendations", stderrors.NewValidationError(result.Summary()))
		return
	}

	if _, err := s.registry.Predictor(); err != nil {
		s.writeError(w, r, "recommendations", err)
		return
	}

	student, err := s.students.GetStudent(r.Context(), studentID)
	if err != nil {
		s.writeError(w, r, "recommendations", err)
		return
	}

	candidates, err := s.listings.ListOpenInternships(r.Context())
	if err != nil {
		s.writeError(w, r, "recommendations", err)
		return
	}

	list, err := s.ranker.Rank(r.Context(), student, candidates, topN)
	if err != nil {
		s.writeError(w, r, "recommendations", err)
		return
	}

	metrics.RecommendationsServed.WithLabelValues("recommendations", "ok").Inc()
	metrics.RankingDuration.WithLabelValues("recommendations").Observe(time.Since(start).Seconds())
	s.recordRequest(r.Context(), "recommendations", "ok", start)
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePairPrediction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)
	studentID := vars["student_id"]
	internshipID := vars["internship_id"]

	if result := validation.ValidatePairRequest(studentID, internshipID); !result.Valid {
		s.writeError(w, r, "success", stderrors.NewValidationError(result.Summary()))
		return
	}

	if _, err := s.registry.Predictor(); err != nil {
		s.writeError(w, r, "success", err)
		return
	}

	student, err := s.students.GetStudent(r.Context(), studentID)
	if err != nil {
		s.writeError(w, r, "success", err)
		return
	}
	internship, err := s.listings.GetInternship(r.Context(), internshipID)
	if err != nil {
		s.writeError(w, r, "success", err)
		return
	}

	signal := s.lookupSignal(r.Context(), student, internship)

	prediction := &models.PairPrediction{
		StudentID:          studentID,
		InternshipID:       internshipID,
		SuccessProbability: signal.SuccessProbability,
		ConfidenceLevel:    confidenceLevel(signal.SuccessProbability),
		Recommendation:     adviceFor(signal.SuccessProbability),
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
	}

	metrics.RecommendationsServed.WithLabelValues("success", "ok").Inc()
	s.recordRequest(r.Context(), "success", "ok", start)
	s.writeJSON(w, http.StatusOK, prediction)
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, r, "students", stderrors.NewValidationError("limit: must be a positive integer"))
			return
		}
		limit = parsed
	}

	students, err := s.students.ListStudents(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, "students", err)
		return
	}

	summaries := make([]map[string]interface{}, 0, len(students))
	for _, student := range students {
		summaries = append(summaries, map[string]interface{}{
			"student_id": student.StudentID,
			"name":       student.Name,
			"stream":     student.Stream,
			"cgpa":       student.CGPA,
		})
	}

	s.recordRequest(r.Context(), "students", "ok", start)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":    len(summaries),
		"students": summaries,
	})
}

// lookupSignal consults the pair-signal cache before recomputing. Signals
// are deterministic for a given (student, internship, model) revision and
// the cache is keyed by all three, so a cached entry is interchangeable
// with a fresh computation.
func (s *Server) lookupSignal(ctx context.Context, student *models.StudentProfile, internship *models.InternshipListing) *models.PairSignal {
	if s.signals != nil {
		if cached, ok := s.signals.Get(ctx, student, internship); ok {
			return cached
		}
	}

	signal := s.ranker.ScorePair(ctx, student, internship)
	if s.signals != nil && !signal.Partial {
		s.signals.Put(ctx, signal, student, internship)
	}
	return signal
}

// confidenceLevel buckets a raw selection probability. Base rates are low
// (many applicants per seat), so the thresholds are far below 0.5.
func confidenceLevel(probability float64) string {
	switch {
	case probability > 0.01:
		return "high"
	case probability > 0.005:
		return "medium"
	default:
		return "low"
	}
}

func adviceFor(probability float64) string {
	switch {
	case probability > 0.01:
		return "Strong match - apply with confidence"
	case probability > 0.005:
		return "Good potential - worth applying"
	default:
		return "Consider strengthening the highlighted skills before applying"
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encoding failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	metrics.RecommendationsServed.WithLabelValues(endpoint, "error").Inc()
	s.recordRequest(r.Context(), endpoint, "error", time.Now())
	s.errors.WriteError(w, err)
}

func (s *Server) recordRequest(ctx context.Context, endpoint, status string, start time.Time) {
	if s.obs == nil {
		return
	}
	s.obs.RecordRequest(ctx, endpoint, status)
	s.obs.RecordRequestDuration(ctx, time.Since(start), endpoint)
}
