package interview_test

import (
	"strings"
	"testing"

	"github.com/hireloop/hireloop/internal/interview"
)

var probeKeywords = []string{"python", "experience", "project"}

func TestEvaluateAnswerBounds(t *testing.T) {
	cases := []string{
		"",
		"no",
		"I used Python in a project",
		strings.Repeat("python experience project ", 100),
	}
	for _, text := range cases {
		score, _ := interview.EvaluateAnswer(probeKeywords, text)
		if score < 0 || score > 10 {
			t.Fatalf("score %v out of [0,10] for %q", score, text)
		}
	}
}

func TestEvaluateAnswerKeywordBonus(t *testing.T) {
	low, _ := interview.EvaluateAnswer(probeKeywords, "no")
	high, _ := interview.EvaluateAnswer(probeKeywords, "I used Python in a project")
	if high <= low {
		t.Fatalf("expected keyword-bearing answer to score higher: %v <= %v", high, low)
	}

	// one keyword vs two keywords, same word count
	one, _ := interview.EvaluateAnswer(probeKeywords, "python aa bb cc")
	two, _ := interview.EvaluateAnswer(probeKeywords, "python project bb cc")
	if two <= one {
		t.Fatalf("expected more keywords to score higher: %v <= %v", two, one)
	}
}

func TestEvaluateAnswerKeywordCountedOnce(t *testing.T) {
	once, _ := interview.EvaluateAnswer(probeKeywords, "python aa bb")
	thrice, _ := interview.EvaluateAnswer(probeKeywords, "python python python")
	if once != thrice {
		t.Fatalf("duplicate keyword occurrences changed the score: %v != %v", once, thrice)
	}
}

func TestEvaluateAnswerLengthBonus(t *testing.T) {
	short, _ := interview.EvaluateAnswer(probeKeywords, "words words words")
	long, _ := interview.EvaluateAnswer(probeKeywords, strings.Repeat("words ", 40))
	if long <= short {
		t.Fatalf("expected longer answer to score higher: %v <= %v", long, short)
	}

	// length bonus caps at 2.0: 100 words and 500 words score the same
	hundred, _ := interview.EvaluateAnswer(probeKeywords, strings.Repeat("words ", 100))
	fiveHundred, _ := interview.EvaluateAnswer(probeKeywords, strings.Repeat("words ", 500))
	if hundred != fiveHundred {
		t.Fatalf("length bonus not capped: %v != %v", hundred, fiveHundred)
	}
}

func TestEvaluateAnswerExactValues(t *testing.T) {
	cases := []struct {
		name     string
		keywords []string
		text     string
		want     float64
	}{
		// base 5 + 0 keywords + 1/50 length
		{"single word", probeKeywords, "no", 5.02},
		// base 5 + 3*(3/3) + 50/50 -> capped components: 5 + 3 + 1 = 9
		{"all keywords fifty words", probeKeywords, "python experience project " + strings.Repeat("w ", 47), 9.0},
		// full marks: all keywords and >= 100 words
		{"full marks", probeKeywords, "python experience project " + strings.Repeat("w ", 97), 10.0},
		// no keywords configured: denominator clamps to 1
		{"no keywords", nil, "hello there", 5.04},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := interview.EvaluateAnswer(tc.keywords, tc.text)
			if got != tc.want {
				t.Fatalf("EvaluateAnswer(%v, %d words) = %v, want %v", tc.keywords, len(strings.Fields(tc.text)), got, tc.want)
			}
		})
	}
}

func TestEvaluateAnswerNotes(t *testing.T) {
	_, notes := interview.EvaluateAnswer(probeKeywords, "I used Python in a project")
	if notes == "" {
		t.Fatalf("expected non-empty evaluation notes")
	}
	if !strings.Contains(notes, "2/3") {
		t.Fatalf("notes %q should report 2/3 keyword matches", notes)
	}
}
