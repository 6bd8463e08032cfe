package interview

import (
	"math"
	"strings"
)

// MatchScore returns the percentage of a job's required skills present in the
// candidate's declared skill set. Comparison is case-insensitive and
// duplicates collapse. An empty required set scores 0, not 100.
func MatchScore(requiredSkills, candidateSkills []string) float64 {
	required := toSet(requiredSkills)
	if len(required) == 0 {
		return 0.0
	}

	candidate := toSet(candidateSkills)
	matched := 0
	for s := range required {
		if candidate[s] {
			matched++
		}
	}

	return round2(float64(matched) / float64(len(required)) * 100)
}

func toSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s)] = true
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
