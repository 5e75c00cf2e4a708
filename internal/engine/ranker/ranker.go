// internal/engine/ranker/ranker.go
package ranker

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pmis-recommender/internal/common/logger"
	"pmis-recommender/internal/common/metrics"
	collaborativesignal "pmis-recommender/internal/engine/collaborative-signal"
	contentsimilarity "pmis-recommender/internal/engine/content-similarity"
	"pmis-recommender/internal/engine/explanations"
	fairnessadjustment "pmis-recommender/internal/engine/fairness-adjustment"
	skillgap "pmis-recommender/internal/engine/skill-gap"
	successprediction "pmis-recommender/internal/engine/success-prediction"
	"pmis-recommender/internal/models"
)

// State labels one phase of a ranking pass, surfaced in logs.
type State string

const (
	StateCollectingCandidates State = "collecting_candidates"
	StateScoring              State = "scoring"
	StateFairnessAdjusting    State = "fairness_adjusting"
	StateSorting              State = "sorting"
	StateEnrichingTopN        State = "enriching_top_n"
	StateDone                 State = "done"
)

// Ranker runs the full scoring pipeline for one student over a candidate
// set. All model state it touches is read-only, so a single Ranker serves
// concurrent requests.
type Ranker struct {
	config        *Config
	content       *contentsimilarity.Engine
	collaborative *collaborativesignal.Provider
	predictor     *successprediction.Predictor
	fairness      *fairnessadjustment.Adjuster
	skillGap      *skillgap.Annotator
	logger        logger.Logger
}

func NewRanker(
	config *Config,
	content *contentsimilarity.Engine,
	collaborative *collaborativesignal.Provider,
	predictor *successprediction.Predictor,
	fairness *fairnessadjustment.Adjuster,
	skillGap *skillgap.Annotator,
	log logger.Logger,
) *Ranker {
	if config == nil {
		config = DefaultConfig()
	}
	return &Ranker{
		config:        config,
		content:       content,
		collaborative: collaborative,
		predictor:     predictor,
		fairness:      fairness,
		skillGap:      skillGap,
		logger:        log,
	}
}

// Rank scores every candidate, applies fairness, sorts, and enriches the
// top-N. An empty candidate set yields an empty list, not an error.
// Identical inputs always produce an identical list.
func (r *Ranker) Rank(ctx context.Context, student *models.StudentProfile, candidates []*models.InternshipListing, topN int) (*models.RecommendationList, error) {
	start := time.Now()

	r.logState(StateCollectingCandidates, student.StudentID, map[string]interface{}{
		"candidates": len(candidates),
		"topN":       topN,
	})

	list := &models.RecommendationList{
		StudentID:       student.StudentID,
		RequestedCount:  topN,
		Recommendations: []models.Recommendation{},
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if len(candidates) == 0 {
		r.logState(StateDone, student.StudentID, map[string]interface{}{
			"returned":   0,
			"durationMs": time.Since(start).Milliseconds(),
		})
		return list, nil
	}

	r.logState(StateScoring, student.StudentID, nil)
	signals := r.scoreAll(ctx, student, candidates)
	metrics.CandidatesScored.Observe(float64(len(signals)))

	r.logState(StateFairnessAdjusting, student.StudentID, nil)
	groups := student.FairnessGroups()
	for _, signal := range signals {
		result := r.fairness.Apply(signal.FinalScore, groups)
		signal.FairnessAdjustment = result.Adjustment
		signal.FinalScore = result.Adjusted
	}

	r.logState(StateSorting, student.StudentID, nil)
	order := make([]int, len(signals))
	for i := range order {
		order[i] = i
	}
	// Ties break on ascending internship id so equal scores always land in
	// the same order.
	sort.SliceStable(order, func(a, b int) bool {
		if signals[order[a]].FinalScore != signals[order[b]].FinalScore {
			return signals[order[a]].FinalScore > signals[order[b]].FinalScore
		}
		return signals[order[a]].InternshipID < signals[order[b]].InternshipID
	})

	if topN > len(order) {
		topN = len(order)
	}

	r.logState(StateEnrichingTopN, student.StudentID, map[string]interface{}{"topN": topN})
	for rank := 1; rank <= topN; rank++ {
		idx := order[rank-1]
		list.Recommendations = append(list.Recommendations,
			r.enrich(student, candidates[idx], signals[idx], rank))
	}
	list.TotalRecommendations = len(list.Recommendations)

	r.logState(StateDone, student.StudentID, map[string]interface{}{
		"returned":   list.TotalRecommendations,
		"durationMs": time.Since(start).Milliseconds(),
	})
	return list, nil
}

// ScorePair computes the full signal set for a single pair. Used by both
// the ranking loop and the single-pair prediction endpoint.
func (r *Ranker) ScorePair(ctx context.Context, student *models.StudentProfile, internship *models.InternshipListing) *models.PairSignal {
	signal := &models.PairSignal{
		StudentID:    student.StudentID,
		InternshipID: internship.InternshipID,
	}

	signal.ContentScore = r.content.Score(student, internship)

	collab := r.collaborative.Lookup(student.StudentID, internship.InternshipID)
	signal.CollaborativeScore = collab.Score
	signal.CollaborativeAvailable = collab.Available

	// Cold-start pairs fall back to the content score alone rather than
	// blending in a fabricated zero.
	if collab.Available {
		signal.HybridScore = r.config.ContentWeight*signal.ContentScore +
			r.config.CollaborativeWeight*signal.CollaborativeScore
	} else {
		signal.HybridScore = signal.ContentScore
	}

	predictCtx, cancel := context.WithTimeout(ctx, r.config.PredictorTimeout)
	defer cancel()

	probability, err := r.predictor.Predict(predictCtx, r.pairFeatures(student, internship, signal))
	if err != nil {
		// Degrade, never drop: substitute the trained base rate for the
		// missing prediction so the blend stays on the same scale as
		// fully scored peers.
		signal.Partial = true
		signal.PartialReason = "success_predictor: " + err.Error()
		signal.SuccessProbability = r.predictor.SuccessPrior()
		signal.FinalScore = r.config.HybridWeight*signal.HybridScore +
			r.config.SuccessWeight*signal.SuccessProbability
		metrics.PartialSignals.WithLabelValues("success_predictor").Inc()
		r.logger.Warn("success predictor degraded to partial signal", map[string]interface{}{
			"studentId":    student.StudentID,
			"internshipId": internship.InternshipID,
			"error":        err.Error(),
		})
		return signal
	}

	signal.SuccessProbability = probability
	signal.FinalScore = r.config.HybridWeight*signal.HybridScore +
		r.config.SuccessWeight*signal.SuccessProbability
	return signal
}

// scoreAll fans candidates out across a bounded worker pool. Results land
// at the candidate's own index, so worker scheduling cannot change the
// output.
func (r *Ranker) scoreAll(ctx context.Context, student *models.StudentProfile, candidates []*models.InternshipListing) []*models.PairSignal {
	signals := make([]*models.PairSignal, len(candidates))

	workers := r.config.Parallelism
	if workers < 1 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				signals[idx] = r.ScorePair(ctx, student, candidates[idx])
			}
		}()
	}
	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return signals
}

func (r *Ranker) pairFeatures(student *models.StudentProfile, internship *models.InternshipListing, signal *models.PairSignal) *successprediction.PairFeatures {
	return &successprediction.PairFeatures{
		ContentScore:           signal.ContentScore,
		CollaborativeScore:     signal.CollaborativeScore,
		CollaborativeAvailable: signal.CollaborativeAvailable,
		CGPA:                   student.CGPA,
		LocationMatch:          locationMatches(student.PreferredLocation, internship.Location),
		StipendPresent:         internship.Stipend > 0,
		DomainMatch:            domainMatches(student, internship),
		RuralBackground:        strings.EqualFold(student.Protected.RuralUrban, "rural"),
		CollegeTier:            strings.ToLower(student.Protected.CollegeTier),
	}
}

// enrich attaches the wire-level breakdown, explanations and skill-gap
// analysis for one ranked candidate.
func (r *Ranker) enrich(student *models.StudentProfile, internship *models.InternshipListing, signal *models.PairSignal, rank int) models.Recommendation {
	annotation := r.skillGap.Annotate(student, internship)
	reasons := explanations.Synthesize(student, internship, signal)
	if reasons == nil {
		reasons = []string{}
	}

	return models.Recommendation{
		InternshipID:     internship.InternshipID,
		Title:            internship.Title,
		OrganizationName: internship.OrganizationName,
		Domain:           internship.Domain,
		Location:         internship.Location,
		Duration:         internship.Duration,
		Stipend:          internship.Stipend,
		Rank:             rank,
		Scores: models.Scores{
			SuccessProbability: signal.SuccessProbability,
			SkillMatch:         signal.ContentScore,
			EmployabilityBoost: signal.HybridScore,
			FairnessAdjustment: signal.FairnessAdjustment,
		},
		Explanations:      reasons,
		MissingSkills:     annotation.MissingSkills,
		CourseSuggestions: annotation.CourseSuggestions,
		SkillGapAnalysis:  annotation.Analysis,
		Partial:           signal.Partial,
	}
}

func (r *Ranker) logState(state State, studentID string, extra map[string]interface{}) {
	fields := map[string]interface{}{
		"state":     string(state),
		"studentId": studentID,
	}
	for k, v := range extra {
		fields[k] = v
	}
	r.logger.Debug("ranking state", fields)
}

func locationMatches(preferred, actual string) bool {
	preferred = strings.ToLower(strings.TrimSpace(preferred))
	actual = strings.ToLower(strings.TrimSpace(actual))
	if preferred == "" || actual == "" {
		return false
	}
	return preferred == actual ||
		strings.Contains(actual, preferred) ||
		strings.Contains(preferred, actual)
}

func domainMatches(student *models.StudentProfile, internship *models.InternshipListing) bool {
	domain := strings.ToLower(strings.TrimSpace(internship.Domain))
	if domain == "" {
		return false
	}
	stream := strings.ToLower(student.Stream)
	if stream != "" && (strings.Contains(stream, domain) || strings.Contains(domain, stream)) {
		return true
	}
	for _, interest := range student.Interests {
		if strings.Contains(strings.ToLower(interest), domain) {
			return true
		}
	}
	return false
}
