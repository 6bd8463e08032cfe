package api

import (
	"net/http"

	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

type UsersHandler struct {
	userRepo      repository.UserRepo
	companyRepo   repository.CompanyRepo
	candidateRepo repository.CandidateRepo
}

func NewUsersHandler(ur repository.UserRepo, cor repository.CompanyRepo, car repository.CandidateRepo) *UsersHandler {
	return &UsersHandler{userRepo: ur, companyRepo: cor, candidateRepo: car}
}

type meResponse struct {
	User      *models.User      `json:"user"`
	Company   *models.Company   `json:"company,omitempty"`
	Candidate *models.Candidate `json:"candidate,omitempty"`
}

// Me returns the authenticated account with its role profile.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		http.Error(w, "failed to load user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	user.PasswordHash = ""

	resp := meResponse{User: user}
	switch user.Role {
	case models.RoleCompany:
		company, err := h.companyRepo.GetCompanyByUserID(ctx, userID)
		if err != nil {
			http.Error(w, "failed to load profile", http.StatusInternalServerError)
			return
		}
		resp.Company = company
	case models.RoleCandidate:
		candidate, err := h.candidateRepo.GetCandidateByUserID(ctx, userID)
		if err != nil {
			http.Error(w, "failed to load profile", http.StatusInternalServerError)
			return
		}
		resp.Candidate = candidate
	}

	writeJSON(w, resp, http.StatusOK)
}
