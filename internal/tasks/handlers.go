package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/hireloop/hireloop/internal/cvparse"
	"github.com/hireloop/hireloop/internal/interview"
	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

// GenerateQuestionsPayload drives TypeGenerateQuestions.
type GenerateQuestionsPayload struct {
	InterviewID int64 `json:"interview_id"`
}

// FinalizePayload drives TypeFinalizeInterview.
type FinalizePayload struct {
	InterviewID int64 `json:"interview_id"`
}

// ParseCVPayload drives TypeParseCV.
type ParseCVPayload struct {
	CandidateID int64  `json:"candidate_id"`
	Text        string `json:"text"`
}

// NotificationPayload drives TypeSendNotification.
type NotificationPayload struct {
	InterviewID int64  `json:"interview_id"`
	Channel     string `json:"channel"`
	Message     string `json:"message"`
}

// Handlers binds task types to the interview service, the CV parser and the
// candidate store.
type Handlers struct {
	svc        *interview.Service
	candidates repository.CandidateRepo
	parser     *cvparse.Parser
	queue      repository.TaskRepo
	logger     *slog.Logger
}

func NewHandlers(
	svc *interview.Service,
	candidates repository.CandidateRepo,
	parser *cvparse.Parser,
	queue repository.TaskRepo,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{svc: svc, candidates: candidates, parser: parser, queue: queue, logger: logger}
}

// Map returns the handler table keyed by task type.
func (h *Handlers) Map() map[string]Handler {
	return map[string]Handler{
		TypeGenerateQuestions: h.GenerateQuestions,
		TypeFinalizeInterview: h.FinalizeInterview,
		TypeParseCV:           h.ParseCV,
		TypeSendNotification:  h.SendNotification,
	}
}

// GenerateQuestions starts the interview, which generates its question set.
// An interview that is gone or no longer pending makes the task a no-op
// rather than a retry: retrying cannot change either condition.
func (h *Handlers) GenerateQuestions(ctx context.Context, t *models.Task) error {
	var p GenerateQuestionsPayload
	if err := json.Unmarshal(t.Payload, &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	_, err := h.svc.Start(ctx, p.InterviewID)
	if errors.Is(err, interview.ErrNotFound) || errors.Is(err, interview.ErrInvalidState) {
		h.logger.Warn("question generation skipped", "interview_id", p.InterviewID, "reason", err)
		return nil
	}
	return err
}

// FinalizeInterview completes the interview and queues the result
// notification.
func (h *Handlers) FinalizeInterview(ctx context.Context, t *models.Task) error {
	var p FinalizePayload
	if err := json.Unmarshal(t.Payload, &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	iv, err := h.svc.Complete(ctx, p.InterviewID)
	if errors.Is(err, interview.ErrNotFound) || errors.Is(err, interview.ErrInvalidState) {
		h.logger.Warn("finalization skipped", "interview_id", p.InterviewID, "reason", err)
		return nil
	}
	if err != nil {
		return err
	}

	return h.enqueue(ctx, TypeSendNotification, NotificationPayload{
		InterviewID: iv.ID,
		Channel:     iv.Channel,
		Message:     iv.Recommendation,
	})
}

// ParseCV extracts a profile from the submitted CV text and applies it to the
// candidate record.
func (h *Handlers) ParseCV(ctx context.Context, t *models.Task) error {
	var p ParseCVPayload
	if err := json.Unmarshal(t.Payload, &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	cand, err := h.candidates.GetCandidateByID(ctx, p.CandidateID)
	if err != nil {
		return err
	}
	if cand == nil {
		h.logger.Warn("cv parse skipped, candidate gone", "candidate_id", p.CandidateID)
		return nil
	}

	profile, err := h.parser.Parse(ctx, p.Text)
	if err != nil {
		return fmt.Errorf("parse cv for candidate %d: %w", p.CandidateID, err)
	}

	cand.Skills = profile.Skills
	cand.ExperienceYears = profile.ExperienceYears
	cand.Education = profile.Education
	return h.candidates.UpdateCandidate(ctx, cand)
}

// SendNotification records the outbound message. Actual delivery over the
// chat channels is handled by the webhook integrations, which currently only
// acknowledge.
func (h *Handlers) SendNotification(ctx context.Context, t *models.Task) error {
	var p NotificationPayload
	if err := json.Unmarshal(t.Payload, &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	h.logger.Info("notification dispatched",
		"interview_id", p.InterviewID,
		"channel", p.Channel,
		"message", p.Message,
	)
	return nil
}

func (h *Handlers) enqueue(ctx context.Context, typ string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := &models.Task{Type: typ, Payload: b, MaxAttempts: 5, ScheduledAt: time.Now()}
	_, err = h.queue.EnqueueTask(ctx, task)
	return err
}
