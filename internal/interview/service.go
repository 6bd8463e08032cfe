package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

// ErrNotFound indicates a referenced job, candidate, interview or question
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidState indicates an operation attempted from a status that forbids
// it, e.g. starting a non-pending interview.
var ErrInvalidState = errors.New("invalid state")

// Final score blend: 40% skill match, 60% normalized average answer score.
const (
	finalWeightSkillMatch = 0.4
	finalWeightAnswers    = 0.6
)

// Recommendation tiers on the final score.
const (
	RecommendationHigh    = "Highly Recommended: Excellent match with strong technical skills."
	RecommendationGood    = "Recommended: Good candidate with solid qualifications."
	RecommendationCaution = "Consider with Caution: Meets basic requirements but may need development."
	RecommendationNo      = "Not Recommended: Significant gaps in required skills and experience."
)

// Service is the interview orchestrator: it owns the pending -> in_progress ->
// completed state machine and every mutation of interviews, questions and
// answers. It is stateless; all state lives behind the injected repositories.
type Service struct {
	jobs       repository.JobPostingRepo
	candidates repository.CandidateRepo
	interviews repository.InterviewRepo
	questions  repository.QuestionRepo
	answers    repository.AnswerRepo
	logger     *slog.Logger
}

func NewService(
	jobs repository.JobPostingRepo,
	candidates repository.CandidateRepo,
	interviews repository.InterviewRepo,
	questions repository.QuestionRepo,
	answers repository.AnswerRepo,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		jobs:       jobs,
		candidates: candidates,
		interviews: interviews,
		questions:  questions,
		answers:    answers,
		logger:     logger,
	}
}

// Create inserts a pending interview for the given job and candidate. The
// skill match score is computed once here, from the current job/candidate
// snapshot; later skill edits do not retroactively update it.
func (s *Service) Create(ctx context.Context, jobPostingID, candidateID int64, channel string) (*models.Interview, error) {
	job, err := s.jobs.GetJobPostingByID(ctx, jobPostingID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.candidates.GetCandidateByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if job == nil || candidate == nil {
		return nil, ErrNotFound
	}

	if channel == "" {
		channel = "web"
	}

	iv := &models.Interview{
		JobPostingID:    jobPostingID,
		CandidateID:     candidateID,
		Status:          models.InterviewPending,
		Channel:         channel,
		SkillMatchScore: MatchScore(job.RequiredSkills, candidate.Skills),
	}

	id, err := s.interviews.CreateInterview(ctx, iv)
	if err != nil {
		return nil, err
	}
	iv.ID = id

	s.logger.Info("interview created",
		"interview_id", id,
		"job_posting_id", jobPostingID,
		"candidate_id", candidateID,
		"skill_match_score", iv.SkillMatchScore,
	)

	return iv, nil
}

// Start moves a pending interview to in_progress and generates its questions.
// Question generation happens exactly once: any other starting status is
// rejected with ErrInvalidState.
func (s *Service) Start(ctx context.Context, id int64) (*models.Interview, error) {
	iv, err := s.interviews.GetInterviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, ErrNotFound
	}
	if iv.Status != models.InterviewPending {
		return nil, fmt.Errorf("start interview %d from status %q: %w", id, iv.Status, ErrInvalidState)
	}

	started := nowMilli()
	iv.Status = models.InterviewInProgress
	iv.StartedAt = &started
	if err := s.interviews.UpdateInterview(ctx, iv); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetJobPostingByID(ctx, iv.JobPostingID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.candidates.GetCandidateByID(ctx, iv.CandidateID)
	if err != nil {
		return nil, err
	}
	if job == nil || candidate == nil {
		return nil, ErrNotFound
	}

	questions := GenerateQuestions(iv.ID, job, candidate)
	for _, q := range questions {
		if _, err := s.questions.CreateQuestion(ctx, &q); err != nil {
			return nil, fmt.Errorf("create question %d: %w", q.Order, err)
		}
	}

	s.logger.Info("interview started", "interview_id", id, "questions", len(questions))

	return iv, nil
}

// SubmitAnswer scores and stores one answer. Answers are write-once per
// question; submissions to completed or cancelled interviews are rejected.
// When the last open question is answered the interview finalizes.
func (s *Service) SubmitAnswer(ctx context.Context, questionID int64, text string) (*models.Answer, error) {
	q, err := s.questions.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrNotFound
	}

	iv, err := s.interviews.GetInterviewByID(ctx, q.InterviewID)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, ErrNotFound
	}
	if iv.Status == models.InterviewCompleted || iv.Status == models.InterviewCancelled {
		return nil, fmt.Errorf("submit answer to %s interview %d: %w", iv.Status, iv.ID, ErrInvalidState)
	}

	existing, err := s.answers.GetAnswerByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("question %d already answered: %w", questionID, ErrInvalidState)
	}

	score, notes := EvaluateAnswer(q.ExpectedKeywords, text)
	a := &models.Answer{QuestionID: questionID, Text: text, Score: &score, Notes: notes}
	aid, err := s.answers.CreateAnswer(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = aid

	total, err := s.questions.CountQuestionsByInterview(ctx, iv.ID)
	if err != nil {
		return nil, err
	}
	answered, err := s.answers.CountAnswersByInterview(ctx, iv.ID)
	if err != nil {
		return nil, err
	}

	if total > 0 && answered == total {
		// Re-read status so two racing final answers converge on a single
		// completion; finalize itself is deterministic over stored answers.
		cur, err := s.interviews.GetInterviewByID(ctx, iv.ID)
		if err != nil {
			return nil, err
		}
		if cur != nil && cur.Status != models.InterviewCompleted && cur.Status != models.InterviewCancelled {
			if _, err := s.finalize(ctx, cur); err != nil {
				return nil, err
			}
		}
	}

	return a, nil
}

// Complete manually finalizes an interview, with whatever answers exist.
// Completing an already-completed interview recomputes the same aggregate and
// keeps the original completion timestamp. Cancelled interviews are rejected.
func (s *Service) Complete(ctx context.Context, id int64) (*models.Interview, error) {
	iv, err := s.interviews.GetInterviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, ErrNotFound
	}
	if iv.Status == models.InterviewCancelled {
		return nil, fmt.Errorf("complete cancelled interview %d: %w", id, ErrInvalidState)
	}

	return s.finalize(ctx, iv)
}

// Cancel terminates a pending or in_progress interview.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.Interview, error) {
	iv, err := s.interviews.GetInterviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, ErrNotFound
	}
	if iv.Status == models.InterviewCompleted || iv.Status == models.InterviewCancelled {
		return nil, fmt.Errorf("cancel %s interview %d: %w", iv.Status, id, ErrInvalidState)
	}

	iv.Status = models.InterviewCancelled
	if err := s.interviews.UpdateInterview(ctx, iv); err != nil {
		return nil, err
	}

	s.logger.Info("interview cancelled", "interview_id", id)

	return iv, nil
}

// finalize aggregates stored answer scores into the final score and
// recommendation. With no answers the final score and recommendation stay
// unset. Deterministic: repeated invocations over unchanged answers yield the
// same result.
func (s *Service) finalize(ctx context.Context, iv *models.Interview) (*models.Interview, error) {
	answers, err := s.answers.ListAnswersByInterview(ctx, iv.ID)
	if err != nil {
		return nil, err
	}

	iv.Status = models.InterviewCompleted
	if iv.CompletedAt == nil {
		ts := nowMilli()
		iv.CompletedAt = &ts
	}

	if len(answers) > 0 {
		var sum float64
		for _, a := range answers {
			if a.Score != nil {
				sum += *a.Score
			}
		}
		avg := sum / float64(len(answers))
		final := round2(iv.SkillMatchScore*finalWeightSkillMatch + avg*10*finalWeightAnswers)
		iv.FinalScore = &final
		iv.Recommendation = recommendationFor(final)
	}

	if err := s.interviews.UpdateInterview(ctx, iv); err != nil {
		return nil, err
	}

	s.logger.Info("interview completed",
		"interview_id", iv.ID,
		"answers", len(answers),
		"final_score", iv.FinalScore,
	)

	return iv, nil
}

func recommendationFor(finalScore float64) string {
	switch {
	case finalScore >= 80:
		return RecommendationHigh
	case finalScore >= 60:
		return RecommendationGood
	case finalScore >= 40:
		return RecommendationCaution
	default:
		return RecommendationNo
	}
}

func nowMilli() int64 {
	return time.Now().UTC().UnixMilli()
}
