package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hireloop/hireloop/internal/interview"
	"github.com/hireloop/hireloop/internal/tasks"
	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

type InterviewsHandler struct {
	svc           *interview.Service
	queue         TaskQueue
	interviewRepo repository.InterviewRepo
	questionRepo  repository.QuestionRepo
	answerRepo    repository.AnswerRepo
	candidateRepo repository.CandidateRepo
	companyRepo   repository.CompanyRepo
	jobRepo       repository.JobPostingRepo
}

func NewInterviewsHandler(
	svc *interview.Service,
	q TaskQueue,
	ir repository.InterviewRepo,
	qr repository.QuestionRepo,
	ar repository.AnswerRepo,
	car repository.CandidateRepo,
	cor repository.CompanyRepo,
	jr repository.JobPostingRepo,
) *InterviewsHandler {
	return &InterviewsHandler{
		svc:           svc,
		queue:         q,
		interviewRepo: ir,
		questionRepo:  qr,
		answerRepo:    ar,
		candidateRepo: car,
		companyRepo:   cor,
		jobRepo:       jr,
	}
}

// svcError maps service sentinels onto HTTP statuses.
func svcError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, interview.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type createInterviewRequest struct {
	JobPostingID int64  `json:"job_posting_id"`
	CandidateID  int64  `json:"candidate_id,omitempty"`
	Channel      string `json:"channel,omitempty"`
}

// CreateInterview registers the interview and queues question generation.
// Candidates apply to a posting themselves; companies schedule a specific
// candidate for one of their own postings.
func (h *InterviewsHandler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.JobPostingID <= 0 {
		http.Error(w, "job_posting_id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	candidateID := req.CandidateID

	switch currentRole(r) {
	case string(models.RoleCandidate):
		cand, err := h.candidateRepo.GetCandidateByUserID(ctx, userID)
		if err != nil || cand == nil {
			http.Error(w, "candidate profile required", http.StatusForbidden)
			return
		}
		candidateID = cand.ID
	case string(models.RoleCompany):
		if candidateID <= 0 {
			http.Error(w, "candidate_id is required", http.StatusBadRequest)
			return
		}
		company, err := h.companyRepo.GetCompanyByUserID(ctx, userID)
		if err != nil || company == nil {
			http.Error(w, "company profile required", http.StatusForbidden)
			return
		}
		job, err := h.jobRepo.GetJobPostingByID(ctx, req.JobPostingID)
		if err != nil {
			http.Error(w, "failed to load job", http.StatusInternalServerError)
			return
		}
		if job == nil {
			http.Error(w, "job not found", http.StatusNotFound)
			return
		}
		if job.CompanyID != company.ID {
			http.Error(w, "not your posting", http.StatusForbidden)
			return
		}
	default:
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	iv, err := h.svc.Create(ctx, req.JobPostingID, candidateID, req.Channel)
	if err != nil {
		svcError(w, err)
		return
	}

	// question generation runs in the background; the interview is already
	// visible as pending
	if _, err := h.queue.Enqueue(ctx, tasks.TypeGenerateQuestions, tasks.GenerateQuestionsPayload{InterviewID: iv.ID}, 100, 5); err != nil {
		logger.Error("enqueue question generation", "err", err, "interview_id", iv.ID)
	}

	writeJSON(w, iv, http.StatusCreated)
}

// ListInterviews is role-scoped: candidates see their own pipeline, companies
// see interviews for one of their postings (job_id query parameter).
func (h *InterviewsHandler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	switch currentRole(r) {
	case string(models.RoleCandidate):
		cand, err := h.candidateRepo.GetCandidateByUserID(ctx, userID)
		if err != nil || cand == nil {
			http.Error(w, "candidate profile required", http.StatusForbidden)
			return
		}
		items, err := h.interviewRepo.ListInterviewsByCandidate(ctx, cand.ID)
		if err != nil {
			http.Error(w, "failed to list interviews", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []models.Interview{}
		}
		writeJSON(w, map[string]any{"items": items, "total": len(items)}, http.StatusOK)

	case string(models.RoleCompany):
		jobID, err := strconv.ParseInt(r.URL.Query().Get("job_id"), 10, 64)
		if err != nil || jobID <= 0 {
			http.Error(w, "job_id is required", http.StatusBadRequest)
			return
		}
		company, err := h.companyRepo.GetCompanyByUserID(ctx, userID)
		if err != nil || company == nil {
			http.Error(w, "company profile required", http.StatusForbidden)
			return
		}
		job, err := h.jobRepo.GetJobPostingByID(ctx, jobID)
		if err != nil {
			http.Error(w, "failed to load job", http.StatusInternalServerError)
			return
		}
		if job == nil {
			http.Error(w, "job not found", http.StatusNotFound)
			return
		}
		if job.CompanyID != company.ID {
			http.Error(w, "not your posting", http.StatusForbidden)
			return
		}
		items, err := h.interviewRepo.ListInterviewsByJob(ctx, jobID)
		if err != nil {
			http.Error(w, "failed to list interviews", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []models.Interview{}
		}
		writeJSON(w, map[string]any{"items": items, "total": len(items)}, http.StatusOK)

	default:
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
}

type interviewDetailResponse struct {
	Interview *models.Interview `json:"interview"`
	Questions []models.Question `json:"questions"`
	Answers   []models.Answer   `json:"answers"`
}

func (h *InterviewsHandler) GetInterview(w http.ResponseWriter, r *http.Request) {
	iv := h.authorizedInterview(w, r)
	if iv == nil {
		return
	}

	ctx := r.Context()

	questions, err := h.questionRepo.ListQuestionsByInterview(ctx, iv.ID)
	if err != nil {
		http.Error(w, "failed to load questions", http.StatusInternalServerError)
		return
	}
	answers, err := h.answerRepo.ListAnswersByInterview(ctx, iv.ID)
	if err != nil {
		http.Error(w, "failed to load answers", http.StatusInternalServerError)
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	if answers == nil {
		answers = []models.Answer{}
	}

	writeJSON(w, interviewDetailResponse{Interview: iv, Questions: questions, Answers: answers}, http.StatusOK)
}

// StartInterview begins the question flow synchronously so the caller gets
// the questions in the response.
func (h *InterviewsHandler) StartInterview(w http.ResponseWriter, r *http.Request) {
	iv := h.authorizedInterview(w, r)
	if iv == nil {
		return
	}

	started, err := h.svc.Start(r.Context(), iv.ID)
	if err != nil {
		svcError(w, err)
		return
	}

	questions, err := h.questionRepo.ListQuestionsByInterview(r.Context(), started.ID)
	if err != nil {
		http.Error(w, "failed to load questions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, interviewDetailResponse{Interview: started, Questions: questions, Answers: []models.Answer{}}, http.StatusOK)
}

type submitAnswerRequest struct {
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
}

func (h *InterviewsHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	iv := h.authorizedInterview(w, r)
	if iv == nil {
		return
	}

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.QuestionID <= 0 {
		http.Error(w, "question_id is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	q, err := h.questionRepo.GetQuestionByID(ctx, req.QuestionID)
	if err != nil {
		http.Error(w, "failed to load question", http.StatusInternalServerError)
		return
	}
	if q == nil || q.InterviewID != iv.ID {
		http.Error(w, "question not found", http.StatusNotFound)
		return
	}

	answer, err := h.svc.SubmitAnswer(ctx, req.QuestionID, req.Text)
	if err != nil {
		svcError(w, err)
		return
	}

	writeJSON(w, answer, http.StatusCreated)
}

// CompleteInterview queues finalization; scoring runs in the background.
func (h *InterviewsHandler) CompleteInterview(w http.ResponseWriter, r *http.Request) {
	iv := h.authorizedInterview(w, r)
	if iv == nil {
		return
	}
	if iv.Status == models.InterviewCancelled {
		http.Error(w, "interview is cancelled", http.StatusConflict)
		return
	}

	if _, err := h.queue.Enqueue(r.Context(), tasks.TypeFinalizeInterview, tasks.FinalizePayload{InterviewID: iv.ID}, 100, 5); err != nil {
		http.Error(w, "failed to queue finalization", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": "finalizing"}, http.StatusAccepted)
}

func (h *InterviewsHandler) CancelInterview(w http.ResponseWriter, r *http.Request) {
	iv := h.authorizedInterview(w, r)
	if iv == nil {
		return
	}

	cancelled, err := h.svc.Cancel(r.Context(), iv.ID)
	if err != nil {
		svcError(w, err)
		return
	}

	writeJSON(w, cancelled, http.StatusOK)
}

// authorizedInterview loads the interview from the path and verifies the
// caller is its candidate or the posting's company. It writes the error
// response itself on failure.
func (h *InterviewsHandler) authorizedInterview(w http.ResponseWriter, r *http.Request) *models.Interview {
	userID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil
	}

	ctx := r.Context()

	iv, err := h.interviewRepo.GetInterviewByID(ctx, id)
	if err != nil {
		http.Error(w, "failed to load interview", http.StatusInternalServerError)
		return nil
	}
	if iv == nil {
		http.Error(w, "interview not found", http.StatusNotFound)
		return nil
	}

	switch currentRole(r) {
	case string(models.RoleCandidate):
		cand, err := h.candidateRepo.GetCandidateByUserID(ctx, userID)
		if err == nil && cand != nil && cand.ID == iv.CandidateID {
			return iv
		}
	case string(models.RoleCompany):
		company, err := h.companyRepo.GetCompanyByUserID(ctx, userID)
		if err == nil && company != nil {
			job, err := h.jobRepo.GetJobPostingByID(ctx, iv.JobPostingID)
			if err == nil && job != nil && job.CompanyID == company.ID {
				return iv
			}
		}
	}

	http.Error(w, "not your interview", http.StatusForbidden)
	return nil
}
