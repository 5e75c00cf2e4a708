// internal/models/recommendation.go
package models

// PairSignal holds every score computed for one (student, internship) pair.
// Computed on demand; recomputation with identical inputs yields identical
// values.
type PairSignal struct {
	StudentID    string `json:"studentId"`
	InternshipID string `json:"internshipId"`

	ContentScore float64 `json:"contentScore"` // [0,1]

	// CollaborativeScore is only meaningful when CollaborativeAvailable is
	// true. A cold-start pair keeps false here and the ranker falls back to
	// the content score alone.
	CollaborativeScore     float64 `json:"collaborativeScore"` // [0,1]
	CollaborativeAvailable bool    `json:"collaborativeAvailable"`

	SuccessProbability float64 `json:"successProbability"` // [0,1]
	HybridScore        float64 `json:"hybridScore"`        // [0,1]
	FairnessAdjustment float64 `json:"fairnessAdjustment"` // signed, bounded
	FinalScore         float64 `json:"finalScore"`         // [0,1]

	// Partial marks a pair whose success predictor signal was substituted
	// with a default. Degraded, not dropped.
	Partial       bool   `json:"partial"`
	PartialReason string `json:"partialReason,omitempty"`
}

// Scores is the per-recommendation score breakdown on the wire.
type Scores struct {
	SuccessProbability float64 `json:"success_probability"`
	SkillMatch         float64 `json:"skill_match"`
	EmployabilityBoost float64 `json:"employability_boost"`
	FairnessAdjustment float64 `json:"fairness_adjustment"`
}

// SkillGapAnalysis summarizes the gap between possessed and required skills.
type SkillGapAnalysis struct {
	Status             string   `json:"status"` // "no_gaps" or "skills_needed"
	Message            string   `json:"message"`
	SkillsNeeded       int      `json:"skills_needed"`
	RecommendedCourses int      `json:"recommended_courses"`
	PrioritySkills     []string `json:"priority_skills"`
}

const (
	GapStatusNoGaps       = "no_gaps"
	GapStatusSkillsNeeded = "skills_needed"
)

// Recommendation is one ranked internship with its full enrichment.
type Recommendation struct {
	InternshipID      string             `json:"internship_id"`
	Title             string             `json:"title"`
	OrganizationName  string             `json:"organization_name"`
	Domain            string             `json:"domain"`
	Location          string             `json:"location"`
	Duration          string             `json:"duration"`
	Stipend           float64            `json:"stipend"`
	Rank              int                `json:"rank"` // 1-based, contiguous
	Scores            Scores             `json:"scores"`
	Explanations      []string           `json:"explanations"` // at most 3
	MissingSkills     []string           `json:"missing_skills"`
	CourseSuggestions []CourseSuggestion `json:"course_suggestions"`
	SkillGapAnalysis  SkillGapAnalysis   `json:"skill_gap_analysis"`
	Partial           bool               `json:"partial,omitempty"`
}

// RecommendationList is the response envelope for a ranking pass.
type RecommendationList struct {
	StudentID            string           `json:"student_id"`
	TotalRecommendations int              `json:"total_recommendations"`
	RequestedCount       int              `json:"requested_count"`
	Recommendations      []Recommendation `json:"recommendations"`
	GeneratedAt          string           `json:"generated_at"`
}

// PairPrediction is the response for a single-pair probability lookup.
type PairPrediction struct {
	StudentID          string  `json:"student_id"`
	InternshipID       string  `json:"internship_id"`
	SuccessProbability float64 `json:"success_probability"`
	ConfidenceLevel    string  `json:"confidence_level"`
	Recommendation     string  `json:"recommendation"`
	GeneratedAt        string  `json:"generated_at"`
}
