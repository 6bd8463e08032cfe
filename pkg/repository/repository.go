package repository

import (
	"context"

	"github.com/hireloop/hireloop/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Lookups return (nil, nil) when the entity does not exist.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type CompanyRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (int64, error)
	GetCompanyByID(ctx context.Context, id int64) (*models.Company, error)
	GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error)
}

type CandidateRepo interface {
	CreateCandidate(ctx context.Context, c *models.Candidate) (int64, error)
	GetCandidateByID(ctx context.Context, id int64) (*models.Candidate, error)
	GetCandidateByUserID(ctx context.Context, userID int64) (*models.Candidate, error)
	UpdateCandidate(ctx context.Context, c *models.Candidate) error
}

type JobPostingRepo interface {
	CreateJobPosting(ctx context.Context, j *models.JobPosting) (int64, error)
	GetJobPostingByID(ctx context.Context, id int64) (*models.JobPosting, error)
	ListJobPostings(ctx context.Context, status models.JobStatus) ([]models.JobPosting, error)
	ListJobPostingsByCompany(ctx context.Context, companyID int64) ([]models.JobPosting, error)
	UpdateJobPosting(ctx context.Context, j *models.JobPosting) error
	UpdateJobPostingStatus(ctx context.Context, id int64, status models.JobStatus) error
	DeleteJobPosting(ctx context.Context, id int64) error
}

type InterviewRepo interface {
	CreateInterview(ctx context.Context, iv *models.Interview) (int64, error)
	GetInterviewByID(ctx context.Context, id int64) (*models.Interview, error)
	ListInterviewsByCandidate(ctx context.Context, candidateID int64) ([]models.Interview, error)
	ListInterviewsByJob(ctx context.Context, jobPostingID int64) ([]models.Interview, error)
	UpdateInterview(ctx context.Context, iv *models.Interview) error
}

type QuestionRepo interface {
	CreateQuestion(ctx context.Context, q *models.Question) (int64, error)
	GetQuestionByID(ctx context.Context, id int64) (*models.Question, error)
	ListQuestionsByInterview(ctx context.Context, interviewID int64) ([]models.Question, error)
	CountQuestionsByInterview(ctx context.Context, interviewID int64) (int64, error)
}

type AnswerRepo interface {
	CreateAnswer(ctx context.Context, a *models.Answer) (int64, error)
	GetAnswerByQuestionID(ctx context.Context, questionID int64) (*models.Answer, error)
	ListAnswersByInterview(ctx context.Context, interviewID int64) ([]models.Answer, error)
	CountAnswersByInterview(ctx context.Context, interviewID int64) (int64, error)
}

type TaskRepo interface {
	EnqueueTask(ctx context.Context, t *models.Task) (int64, error)
	FetchNextTask(ctx context.Context) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	MoveTaskToDeadLetter(ctx context.Context, t *models.Task) error
}
