package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hireloop/hireloop/internal/tasks"
	"github.com/hireloop/hireloop/pkg/repository"
)

type CandidatesHandler struct {
	candidateRepo repository.CandidateRepo
	queue         TaskQueue
}

func NewCandidatesHandler(cr repository.CandidateRepo, q TaskQueue) *CandidatesHandler {
	return &CandidatesHandler{candidateRepo: cr, queue: q}
}

type submitCVRequest struct {
	CVText      string `json:"cv_text"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
}

type submitCVResponse struct {
	TaskID int64 `json:"task_id"`
}

// SubmitCV stores the raw CV text against the candidate profile and queues
// extraction; the profile skills update asynchronously.
func (h *CandidatesHandler) SubmitCV(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req submitCVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.CVText = strings.TrimSpace(req.CVText)
	if req.CVText == "" {
		http.Error(w, "cv_text is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	cand, err := h.candidateRepo.GetCandidateByUserID(ctx, userID)
	if err != nil {
		http.Error(w, "failed to load candidate", http.StatusInternalServerError)
		return
	}
	if cand == nil {
		http.Error(w, "candidate profile required", http.StatusForbidden)
		return
	}

	cand.CVFile = req.CVText
	if req.LinkedinURL != "" {
		cand.LinkedinURL = req.LinkedinURL
	}
	if err := h.candidateRepo.UpdateCandidate(ctx, cand); err != nil {
		http.Error(w, "failed to store cv", http.StatusInternalServerError)
		return
	}

	taskID, err := h.queue.Enqueue(ctx, tasks.TypeParseCV, tasks.ParseCVPayload{
		CandidateID: cand.ID,
		Text:        req.CVText,
	}, 100, 5)
	if err != nil {
		http.Error(w, "failed to queue cv parsing", http.StatusInternalServerError)
		return
	}

	writeJSON(w, submitCVResponse{TaskID: taskID}, http.StatusAccepted)
}
