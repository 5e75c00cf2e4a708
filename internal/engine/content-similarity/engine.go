// internal/engine/content-similarity/engine.go
package contentsimilarity

import (
	"math"
	"sort"
	"strings"

	"pmis-recommender/internal/models"
)

// Engine computes the content-match score between a student profile and an
// internship listing. All inputs are read-only; the same token sets always
// produce the same score.
type Engine struct {
	config *Config
}

func NewEngine(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{config: config}
}

// Score returns the content score in [0,1]:
// lexical cosine similarity blended with a weighted metadata match.
func (e *Engine) Score(student *models.StudentProfile, internship *models.InternshipListing) float64 {
	lexical := Cosine(studentTokens(student), internshipTokens(internship))
	metadata := e.metadataScore(student, internship)

	score := e.config.LexicalWeight*lexical + e.config.MetadataWeight*metadata
	return clip01(score)
}

// Breakdown exposes the two components for explanation synthesis.
func (e *Engine) Breakdown(student *models.StudentProfile, internship *models.InternshipListing) (lexical, metadata float64) {
	lexical = Cosine(studentTokens(student), internshipTokens(internship))
	metadata = e.metadataScore(student, internship)
	return lexical, metadata
}

func (e *Engine) metadataScore(student *models.StudentProfile, internship *models.InternshipListing) float64 {
	degree := degreeMatch(student, internship)
	level := levelMatch(student.CGPA, internship.Stipend)
	location := locationMatch(student.PreferredLocation, internship.Location)
	tier := tierBonus(student.Protected.CollegeTier)
	cgpa := clip01(student.CGPA / 10.0)

	return clip01(e.config.DegreeWeight*clip01(degree) +
		e.config.LevelWeight*clip01(level) +
		e.config.LocationWeight*clip01(location) +
		e.config.CGPAWeight*cgpa +
		e.config.TierBonusWeight*clip01(tier))
}

// degreeMatch grades how well the internship domain fits the student's
// stream and interests.
func degreeMatch(student *models.StudentProfile, internship *models.InternshipListing) float64 {
	domain := strings.ToLower(strings.TrimSpace(internship.Domain))
	if domain == "" {
		return 0.3
	}

	stream := strings.ToLower(student.Stream)
	if stream != "" && (strings.Contains(stream, domain) || strings.Contains(domain, stream)) {
		return 1.0
	}
	for _, interest := range student.Interests {
		if strings.Contains(strings.ToLower(interest), domain) {
			return 1.0
		}
	}

	technical := []string{"engineering", "science", "technology"}
	for _, kw := range technical {
		if strings.Contains(stream, kw) {
			return 0.7
		}
	}
	return 0.3
}

// levelMatch pairs stronger academic records with better-paying listings.
func levelMatch(cgpa, stipend float64) float64 {
	switch {
	case cgpa >= 8.5 && stipend >= 20000:
		return 1.0
	case cgpa >= 7.5 && stipend >= 10000:
		return 0.8
	case cgpa >= 6.5:
		return 0.6
	default:
		return 0.4
	}
}

func locationMatch(preferred, actual string) float64 {
	preferred = strings.ToLower(strings.TrimSpace(preferred))
	actual = strings.ToLower(strings.TrimSpace(actual))

	if preferred == "" || actual == "" {
		return 0.3
	}
	if preferred == actual {
		return 1.0
	}
	if strings.Contains(actual, preferred) || strings.Contains(preferred, actual) {
		return 0.7
	}
	return 0.3
}

func tierBonus(collegeTier string) float64 {
	switch strings.ToLower(collegeTier) {
	case "tier-2", "tier-3":
		return 0.2
	default:
		return 0.0
	}
}

// studentTokens builds the lexical term-frequency vector for a student from
// skills, interests and stream.
func studentTokens(student *models.StudentProfile) map[string]float64 {
	tokens := make(map[string]float64)
	for _, skill := range student.Skills {
		addTokens(tokens, skill)
	}
	for _, interest := range student.Interests {
		addTokens(tokens, interest)
	}
	addTokens(tokens, student.Stream)
	return tokens
}

// internshipTokens builds the lexical term-frequency vector for a listing
// from required skills, title, domain and description.
func internshipTokens(internship *models.InternshipListing) map[string]float64 {
	tokens := make(map[string]float64)
	for _, skill := range internship.RequiredSkills {
		addTokens(tokens, skill)
	}
	addTokens(tokens, internship.Title)
	addTokens(tokens, internship.Domain)
	addTokens(tokens, internship.Description)
	return tokens
}

func addTokens(tokens map[string]float64, text string) {
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '+' || r == '#')
	}) {
		if len(tok) < 2 && tok != "r" && tok != "c" {
			continue
		}
		tokens[tok]++
	}
}

// Cosine computes the cosine similarity between two term-frequency vectors.
// Either vector being empty yields 0.0, the cold-start fallback. Terms are
// summed in sorted order so repeated calls are bit-for-bit identical.
func Cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for _, tok := range sortedKeys(a) {
		wa := a[tok]
		normA += wa * wa
		if wb, ok := b[tok]; ok {
			dot += wa * wb
		}
	}
	for _, tok := range sortedKeys(b) {
		wb := b[tok]
		normB += wb * wb
	}

	if dot == 0 || normA == 0 || normB == 0 {
		return 0.0
	}
	return clip01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clip01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
