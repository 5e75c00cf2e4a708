// internal/models/course.go
package models

// CourseCandidate is one catalog course that can close a skill gap.
type CourseCandidate struct {
	Skill           string   `json:"skill"`
	CourseName      string   `json:"courseName"`
	Platform        string   `json:"platform"`
	CourseLink      string   `json:"courseLink,omitempty"`
	Difficulty      string   `json:"difficulty"` // Beginner / Intermediate / Advanced
	Prerequisites   []string `json:"prerequisites"`
	ContentKeywords []string `json:"contentKeywords"`
	DurationHours   float64  `json:"durationHours"`
	Rating          float64  `json:"rating,omitempty"`
}

// CourseSuggestion is a CourseCandidate scored against one student.
type CourseSuggestion struct {
	Skill             string  `json:"skill"`
	CourseName        string  `json:"courseName"`
	Platform          string  `json:"platform"`
	CourseLink        string  `json:"courseLink,omitempty"`
	Difficulty        string  `json:"difficulty"`
	DurationHours     float64 `json:"durationHours"`
	ReadinessScore    float64 `json:"readinessScore"`
	PrereqCoverage    float64 `json:"prereqCoverage"`
	ContentAlignment  float64 `json:"contentAlignment"`
	DifficultyPenalty float64 `json:"difficultyPenalty"`
}
