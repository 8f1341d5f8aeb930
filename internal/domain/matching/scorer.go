package matching

import (
	"encoding/json"
	"math"
	"strings"
)

// SimilarityScore returns the percentage of a job's required skills
// present in the candidate's skill set, in [0,100]. Comparison is
// case-insensitive on trimmed values; duplicate candidate skills count
// once. A job with no stated requirements is a full match.
func SimilarityScore(candidateSkills, requiredSkills []string) int {
	candidate := normalizeSet(candidateSkills)
	required := normalizeSet(requiredSkills)

	if len(required) == 0 {
		return 100
	}

	intersection := 0
	for s := range candidate {
		if _, ok := required[s]; ok {
			intersection++
		}
	}

	score := float64(intersection) / float64(len(required)) * 100
	return int(math.Round(score))
}

// ParseRequiredSkills normalizes a job's skills_required column to a
// list of trimmed, non-empty strings. The column historically holds
// either a JSON array or a comma-separated string.
func ParseRequiredSkills(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			return cleanList(arr)
		}
	}

	return cleanList(strings.Split(raw, ","))
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func normalizeSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}
