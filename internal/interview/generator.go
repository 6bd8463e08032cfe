package interview

import (
	"fmt"
	"strings"

	"github.com/hireloop/hireloop/pkg/models"
)

// maxQuestions caps an interview at one probe question for each of the first
// five required skills.
const maxQuestions = 5

const questionTemplate = "Can you describe your experience with %s?"

// GenerateQuestions builds one probe question per required skill, in the job's
// stored skill order, capped at maxQuestions. Output is deterministic for a
// given job/candidate snapshot; order is 1-indexed.
func GenerateQuestions(interviewID int64, job *models.JobPosting, candidate *models.Candidate) []models.Question {
	skills := job.RequiredSkills
	if len(skills) > maxQuestions {
		skills = skills[:maxQuestions]
	}

	questions := make([]models.Question, 0, len(skills))
	for i, skill := range skills {
		questions = append(questions, models.Question{
			InterviewID:      interviewID,
			Text:             fmt.Sprintf(questionTemplate, skill),
			Difficulty:       determineDifficulty(skill, candidate),
			SkillEvaluated:   skill,
			ExpectedKeywords: []string{strings.ToLower(skill), "experience", "project"},
			Order:            i + 1,
		})
	}

	return questions
}

// determineDifficulty picks the probe difficulty for one skill: a skill the
// candidate already claims gets a hard question, otherwise overall experience
// decides.
func determineDifficulty(skill string, candidate *models.Candidate) models.Difficulty {
	skillLower := strings.ToLower(skill)
	for _, s := range candidate.Skills {
		if strings.ToLower(s) == skillLower {
			return models.DifficultyHard
		}
	}
	if candidate.ExperienceYears >= 3 {
		return models.DifficultyMedium
	}
	return models.DifficultyEasy
}
