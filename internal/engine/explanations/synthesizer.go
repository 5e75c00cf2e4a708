// internal/engine/explanations/synthesizer.go
package explanations

import (
	"fmt"
	"sort"
	"strings"

	"pmis-recommender/internal/models"
)

// MaxExplanations caps the reason strings attached to one recommendation.
const MaxExplanations = 3

// candidate is one potential reason with its fixed priority. Higher wins.
type candidate struct {
	priority int
	text     string
}

// Synthesize produces at most MaxExplanations human-readable reasons for a
// scored pair, in fixed priority order: skill overlap, domain fit, academic
// strength, collaborative signal, location match. Every reason is grounded
// in an attribute the pair actually has; nothing is fabricated for pairs
// with weak signals, so the slice may be empty.
func Synthesize(student *models.StudentProfile, internship *models.InternshipListing, signal *models.PairSignal) []string {
	var candidates []candidate

	if overlap := skillOverlap(student.Skills, internship.RequiredSkills); len(overlap) > 0 {
		candidates = append(candidates, candidate{
			priority: 10,
			text: fmt.Sprintf("Your skills in %s match the role requirements",
				joinSkills(overlap)),
		})
	}

	if domainFits(student, internship) {
		candidates = append(candidates, candidate{
			priority: 9,
			text: fmt.Sprintf("The %s domain aligns with your background and interests",
				internship.Domain),
		})
	}

	switch {
	case student.CGPA >= 8.5:
		candidates = append(candidates, candidate{
			priority: 8,
			text:     fmt.Sprintf("Your strong academic record (CGPA %.1f) stands out for this role", student.CGPA),
		})
	case student.CGPA >= 7.5:
		candidates = append(candidates, candidate{
			priority: 7,
			text:     fmt.Sprintf("Your solid academic record (CGPA %.1f) supports this application", student.CGPA),
		})
	}

	if signal != nil && signal.CollaborativeAvailable && signal.CollaborativeScore >= 0.6 {
		candidates = append(candidates, candidate{
			priority: 6,
			text:     "Students with similar profiles engaged well with this internship",
		})
	}

	if locationAligns(student.PreferredLocation, internship.Location) {
		candidates = append(candidates, candidate{
			priority: 5,
			text:     fmt.Sprintf("Located in %s, matching your preferred location", internship.Location),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	if len(candidates) > MaxExplanations {
		candidates = candidates[:MaxExplanations]
	}

	reasons := make([]string, 0, len(candidates))
	for _, c := range candidates {
		reasons = append(reasons, c.text)
	}
	return reasons
}

// skillOverlap returns the student's skills that the listing requires,
// preserving the listing's ordering and original casing.
func skillOverlap(possessed, required []string) []string {
	have := make(map[string]bool, len(possessed))
	for _, s := range possessed {
		have[normalize(s)] = true
	}

	var overlap []string
	seen := make(map[string]bool)
	for _, r := range required {
		key := normalize(r)
		if key == "" || !have[key] || seen[key] {
			continue
		}
		seen[key] = true
		overlap = append(overlap, strings.TrimSpace(r))
	}
	return overlap
}

func domainFits(student *models.StudentProfile, internship *models.InternshipListing) bool {
	domain := normalize(internship.Domain)
	if domain == "" {
		return false
	}
	stream := normalize(student.Stream)
	if stream != "" && (strings.Contains(stream, domain) || strings.Contains(domain, stream)) {
		return true
	}
	for _, interest := range student.Interests {
		if strings.Contains(normalize(interest), domain) {
			return true
		}
	}
	return false
}

func locationAligns(preferred, actual string) bool {
	preferred = normalize(preferred)
	actual = normalize(actual)
	if preferred == "" || actual == "" {
		return false
	}
	return preferred == actual ||
		strings.Contains(actual, preferred) ||
		strings.Contains(preferred, actual)
}

// joinSkills renders up to three skill names as a readable list.
func joinSkills(skills []string) string {
	if len(skills) > 3 {
		skills = skills[:3]
	}
	switch len(skills) {
	case 1:
		return skills[0]
	case 2:
		return skills[0] + " and " + skills[1]
	default:
		return strings.Join(skills[:len(skills)-1], ", ") + " and " + skills[len(skills)-1]
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
