package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

type JobsHandler struct {
	jobRepo     repository.JobPostingRepo
	companyRepo repository.CompanyRepo
}

func NewJobsHandler(jr repository.JobPostingRepo, cr repository.CompanyRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr, companyRepo: cr}
}

type jobRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired int      `json:"experience_required"`
	Location           string   `json:"location,omitempty"`
	SalaryRange        string   `json:"salary_range,omitempty"`
	Status             string   `json:"status,omitempty"`
}

// ownCompany resolves the company profile of the authenticated user, writing
// the error response itself on failure.
func (h *JobsHandler) ownCompany(w http.ResponseWriter, r *http.Request) *models.Company {
	userID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	company, err := h.companyRepo.GetCompanyByUserID(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to load company", http.StatusInternalServerError)
		return nil
	}
	if company == nil {
		http.Error(w, "company profile required", http.StatusForbidden)
		return nil
	}
	return company
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	company := h.ownCompany(w, r)
	if company == nil {
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	status := models.JobDraft
	if req.Status != "" {
		parsed, err := models.ParseJobStatus(req.Status)
		if err != nil {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		status = parsed
	}

	job := &models.JobPosting{
		CompanyID:          company.ID,
		Title:              req.Title,
		Description:        req.Description,
		RequiredSkills:     req.RequiredSkills,
		ExperienceRequired: req.ExperienceRequired,
		Location:           req.Location,
		SalaryRange:        req.SalaryRange,
		Status:             status,
	}

	id, err := h.jobRepo.CreateJobPosting(r.Context(), job)
	if err != nil {
		http.Error(w, "failed to create job", http.StatusInternalServerError)
		return
	}
	job.ID = id

	writeJSON(w, job, http.StatusCreated)
}

// ListJobs returns postings visible to any authenticated account, optionally
// filtered by status.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	var status models.JobStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := models.ParseJobStatus(s)
		if err != nil {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		status = parsed
	}

	jobs, err := h.jobRepo.ListJobPostings(r.Context(), status)
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.JobPosting{}
	}

	writeJSON(w, map[string]any{"items": jobs, "total": len(jobs)}, http.StatusOK)
}

// MyJobs lists the authenticated company's own postings, drafts included.
func (h *JobsHandler) MyJobs(w http.ResponseWriter, r *http.Request) {
	company := h.ownCompany(w, r)
	if company == nil {
		return
	}

	jobs, err := h.jobRepo.ListJobPostingsByCompany(r.Context(), company.ID)
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.JobPosting{}
	}

	writeJSON(w, map[string]any{"items": jobs, "total": len(jobs)}, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	job, err := h.jobRepo.GetJobPostingByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	job := h.ownJob(w, r)
	if job == nil {
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	job.Title = req.Title
	job.Description = req.Description
	job.RequiredSkills = req.RequiredSkills
	job.ExperienceRequired = req.ExperienceRequired
	job.Location = req.Location
	job.SalaryRange = req.SalaryRange
	if req.Status != "" {
		status, err := models.ParseJobStatus(req.Status)
		if err != nil {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		job.Status = status
	}

	if err := h.jobRepo.UpdateJobPosting(r.Context(), job); err != nil {
		http.Error(w, "failed to update job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

type jobStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobsHandler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	job := h.ownJob(w, r)
	if job == nil {
		return
	}

	var req jobStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	status, err := models.ParseJobStatus(req.Status)
	if err != nil {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	if err := h.jobRepo.UpdateJobPostingStatus(r.Context(), job.ID, status); err != nil {
		http.Error(w, "failed to update status", http.StatusInternalServerError)
		return
	}
	job.Status = status

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	job := h.ownJob(w, r)
	if job == nil {
		return
	}

	if err := h.jobRepo.DeleteJobPosting(r.Context(), job.ID); err != nil {
		http.Error(w, "failed to delete job", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownJob loads the posting from the path and verifies the authenticated
// company owns it.
func (h *JobsHandler) ownJob(w http.ResponseWriter, r *http.Request) *models.JobPosting {
	company := h.ownCompany(w, r)
	if company == nil {
		return nil
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil
	}

	job, err := h.jobRepo.GetJobPostingByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return nil
	}
	if job == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return nil
	}
	if job.CompanyID != company.ID {
		http.Error(w, "not your posting", http.StatusForbidden)
		return nil
	}
	return job
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
