package cvparse_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/hireloop/hireloop/internal/cvparse"
)

func TestParseRecognizedSkills(t *testing.T) {
	p, err := cvparse.New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text := "Senior engineer with 5 years of experience in Python and Docker. " +
		"Bachelor of Science. Fluent in English and Portuguese."
	got, err := p.Parse(context.Background(), text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !reflect.DeepEqual(got.Skills, []string{"Python", "Docker"}) {
		t.Fatalf("skills = %v", got.Skills)
	}
	if got.ExperienceYears != 5 {
		t.Fatalf("experience = %d, want 5", got.ExperienceYears)
	}
	if got.Education != "Bachelor's Degree" {
		t.Fatalf("education = %q", got.Education)
	}
	if !reflect.DeepEqual(got.Languages, []string{"English", "Portuguese"}) {
		t.Fatalf("languages = %v", got.Languages)
	}
}

func TestParseFallbackProfile(t *testing.T) {
	p, err := cvparse.New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := p.Parse(context.Background(), "lorem ipsum dolor sit amet")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got.Skills) == 0 {
		t.Fatalf("fallback profile has no skills")
	}
	if got.ExperienceYears != 3 {
		t.Fatalf("fallback experience = %d, want 3", got.ExperienceYears)
	}
}

func TestParseDeterministic(t *testing.T) {
	p, err := cvparse.New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text := "Python developer, 2 years, master's in CS, speaks German"
	a, err := p.Parse(context.Background(), text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := p.Parse(context.Background(), text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("parsing is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestParseKeepsLargestYearCount(t *testing.T) {
	p, err := cvparse.New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := p.Parse(context.Background(), "Go developer: 2 years at Acme, then 7 years at Globex")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.ExperienceYears != 7 {
		t.Fatalf("experience = %d, want 7", got.ExperienceYears)
	}
}
