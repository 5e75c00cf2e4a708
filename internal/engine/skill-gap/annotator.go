// internal/engine/skill-gap/annotator.go
package skillgap

import (
	"fmt"
	"sort"
	"strings"

	"pmis-recommender/internal/models"
)

type Config struct {
	MaxSkills          int
	MaxCoursesPerSkill int
	PrereqGate         float64
}

func DefaultConfig() *Config {
	return &Config{
		MaxSkills:          3,
		MaxCoursesPerSkill: 2,
		PrereqGate:         0.5,
	}
}

// Annotation is the full skill-gap output for one (student, internship)
// pair.
type Annotation struct {
	MissingSkills     []string
	CourseSuggestions []models.CourseSuggestion
	Analysis          models.SkillGapAnalysis
}

// Annotator computes missing skills and ranks course suggestions against a
// skill→courses index built once at startup.
type Annotator struct {
	config  *Config
	courses map[string][]models.CourseCandidate
}

// NewAnnotator builds an annotator over the given course catalog. Keys of
// the index are normalized skill names.
func NewAnnotator(config *Config, catalog []models.CourseCandidate) *Annotator {
	if config == nil {
		config = DefaultConfig()
	}

	index := make(map[string][]models.CourseCandidate)
	for _, course := range catalog {
		key := normalizeSkill(course.Skill)
		if key == "" {
			continue
		}
		index[key] = append(index[key], course)
	}

	return &Annotator{config: config, courses: index}
}

// Annotate computes the set difference required − possessed and attaches
// ranked course suggestions for the highest-priority missing skills.
// A student with no gaps gets an explicit no-gaps status, not a bare empty
// list.
func (a *Annotator) Annotate(student *models.StudentProfile, internship *models.InternshipListing) Annotation {
	possessed := normalizeSkillSet(student.Skills)
	interests := normalizeSkillSet(student.Interests)

	// Preserve the listing's own ordering of required skills so the
	// missing list is deterministic.
	var missing []string
	seen := make(map[string]bool)
	for _, required := range internship.RequiredSkills {
		key := normalizeSkill(required)
		if key == "" || possessed[key] || seen[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, strings.TrimSpace(required))
	}

	if len(missing) == 0 {
		return Annotation{
			MissingSkills:     []string{},
			CourseSuggestions: []models.CourseSuggestion{},
			Analysis: models.SkillGapAnalysis{
				Status:         models.GapStatusNoGaps,
				Message:        "You already have all the required skills for this role",
				PrioritySkills: []string{},
			},
		}
	}

	priority := missing
	if len(priority) > a.config.MaxSkills {
		priority = priority[:a.config.MaxSkills]
	}

	var suggestions []models.CourseSuggestion
	for _, skill := range priority {
		suggestions = append(suggestions, a.suggestForSkill(skill, possessed, interests)...)
	}

	return Annotation{
		MissingSkills:     missing,
		CourseSuggestions: suggestions,
		Analysis: models.SkillGapAnalysis{
			Status: models.GapStatusSkillsNeeded,
			Message: fmt.Sprintf("Develop %d skill(s) to strengthen your application",
				len(missing)),
			SkillsNeeded:       len(missing),
			RecommendedCourses: len(suggestions),
			PrioritySkills:     append([]string{}, priority...),
		},
	}
}

// suggestForSkill ranks the catalog courses for one missing skill by
// readiness and returns the top MaxCoursesPerSkill.
func (a *Annotator) suggestForSkill(skill string, possessed, interests map[string]bool) []models.CourseSuggestion {
	candidates := a.courses[normalizeSkill(skill)]

	scored := make([]models.CourseSuggestion, 0, len(candidates))
	for _, course := range candidates {
		readiness := ComputeReadiness(possessed, interests, &course)

		// Courses the student is not ready for are withheld entirely.
		if readiness.PrereqCoverage < a.config.PrereqGate {
			continue
		}

		scored = append(scored, models.CourseSuggestion{
			Skill:             skill,
			CourseName:        course.CourseName,
			Platform:          course.Platform,
			CourseLink:        course.CourseLink,
			Difficulty:        course.Difficulty,
			DurationHours:     course.DurationHours,
			ReadinessScore:    readiness.ReadinessScore,
			PrereqCoverage:    readiness.PrereqCoverage,
			ContentAlignment:  readiness.ContentAlignment,
			DifficultyPenalty: readiness.DifficultyPenalty,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].ReadinessScore != scored[j].ReadinessScore {
			return scored[i].ReadinessScore > scored[j].ReadinessScore
		}
		return scored[i].CourseName < scored[j].CourseName
	})

	if len(scored) > a.config.MaxCoursesPerSkill {
		scored = scored[:a.config.MaxCoursesPerSkill]
	}
	return scored
}

// Readiness carries the explainable components of a course readiness score.
type Readiness struct {
	ReadinessScore    float64
	PrereqCoverage    float64
	ContentAlignment  float64
	DifficultyPenalty float64
}

// ComputeReadiness scores how prepared a student is for one course:
// prerequisite coverage, content alignment (Jaccard over keywords), and a
// difficulty penalty keyed off the coverage.
func ComputeReadiness(possessed, interests map[string]bool, course *models.CourseCandidate) Readiness {
	prereqs := normalizeSkillSet(course.Prerequisites)
	keywords := normalizeSkillSet(course.ContentKeywords)

	coverage := 1.0 // no prerequisites means fully ready
	if len(prereqs) > 0 {
		have := 0
		for p := range prereqs {
			if possessed[p] {
				have++
			}
		}
		coverage = float64(have) / float64(len(prereqs))
	}

	alignment := 0.0
	if len(keywords) > 0 {
		knowledge := make(map[string]bool, len(possessed)+len(interests))
		for s := range possessed {
			knowledge[s] = true
		}
		for s := range interests {
			knowledge[s] = true
		}
		if len(knowledge) > 0 {
			intersection := 0
			union := len(keywords)
			for k := range knowledge {
				if keywords[k] {
					intersection++
				} else {
					union++
				}
			}
			alignment = float64(intersection) / float64(union)
		}
	}

	penalty := difficultyPenalty(course.Difficulty, coverage)

	return Readiness{
		ReadinessScore:    clip01((0.6*coverage + 0.3*alignment) * penalty),
		PrereqCoverage:    clip01(coverage),
		ContentAlignment:  clip01(alignment),
		DifficultyPenalty: clip01(penalty),
	}
}

func difficultyPenalty(difficulty string, prereqCoverage float64) float64 {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "beginner":
		return 1.0
	case "intermediate":
		if prereqCoverage >= 0.6 {
			return 0.9
		}
		return 0.7
	case "advanced":
		if prereqCoverage >= 0.75 {
			return 0.85
		}
		return 0.6
	default:
		return 0.8
	}
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

func normalizeSkillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		key := normalizeSkill(s)
		if key != "" {
			set[key] = true
		}
	}
	return set
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
