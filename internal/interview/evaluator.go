package interview

import (
	"fmt"
	"math"
	"strings"
)

// EvaluateAnswer scores free text against a question's expected keywords plus
// a length heuristic: base 5.0, up to 3.0 for keyword coverage, up to 2.0 for
// length, capped at 10.0 and rounded to 2 decimals. Each keyword counts once
// no matter how often it occurs. The returned notes summarize the breakdown.
//
// This is a monotonic heuristic, not a semantic evaluator.
func EvaluateAnswer(expectedKeywords []string, answerText string) (float64, string) {
	answerLower := strings.ToLower(answerText)
	found := 0
	for _, kw := range expectedKeywords {
		if strings.Contains(answerLower, kw) {
			found++
		}
	}

	denom := len(expectedKeywords)
	if denom < 1 {
		denom = 1
	}
	words := len(strings.Fields(answerText))

	base := 5.0
	keywordBonus := float64(found) / float64(denom) * 3.0
	lengthBonus := math.Min(float64(words)/50.0, 2.0)

	score := round2(math.Min(base+keywordBonus+lengthBonus, 10.0))
	notes := fmt.Sprintf("matched %d/%d keywords, %d words", found, len(expectedKeywords), words)

	return score, notes
}
