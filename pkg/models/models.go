package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Domain models matching the database schema in db/migrations/0001_init.sql

// Role is the closed set of account roles. It gates which profile record
// (Company or Candidate) belongs to a user.
type Role string

const (
	RoleCompany   Role = "company"
	RoleCandidate Role = "candidate"
)

// ParseRole validates a role string coming from the request boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCompany, RoleCandidate:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
	Phone        string `json:"phone,omitempty" db:"phone"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

type Company struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"user_id" db:"user_id"`
	CompanyName string `json:"company_name" db:"company_name"`
	Industry    string `json:"industry,omitempty" db:"industry"`
	Size        string `json:"size,omitempty" db:"size"`
	Description string `json:"description,omitempty" db:"description"`
	Website     string `json:"website,omitempty" db:"website"`
	Created     int64  `json:"created" db:"created"`
	Updated     int64  `json:"updated" db:"updated"`
}

type Candidate struct {
	ID              int64    `json:"id" db:"id"`
	UserID          int64    `json:"user_id" db:"user_id"`
	FullName        string   `json:"full_name" db:"full_name"`
	CVFile          string   `json:"cv_file,omitempty" db:"cv_file"`
	CVParsedData    string   `json:"cv_parsed_data,omitempty" db:"cv_parsed_data"`
	Skills          []string `json:"skills" db:"skills"`
	ExperienceYears int      `json:"experience_years" db:"experience_years"`
	Education       string   `json:"education,omitempty" db:"education"`
	LinkedinURL     string   `json:"linkedin_url,omitempty" db:"linkedin_url"`
	Created         int64    `json:"created" db:"created"`
	Updated         int64    `json:"updated" db:"updated"`
}

// JobStatus is the lifecycle of a posting, not of an interview.
type JobStatus string

const (
	JobDraft  JobStatus = "draft"
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

func ParseJobStatus(s string) (JobStatus, error) {
	switch JobStatus(s) {
	case JobDraft, JobActive, JobClosed:
		return JobStatus(s), nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

type JobPosting struct {
	ID                 int64     `json:"id" db:"id"`
	CompanyID          int64     `json:"company_id" db:"company_id"`
	Title              string    `json:"title" db:"title"`
	Description        string    `json:"description" db:"description"`
	RequiredSkills     []string  `json:"required_skills" db:"required_skills"`
	ExperienceRequired int       `json:"experience_required" db:"experience_required"`
	Location           string    `json:"location,omitempty" db:"location"`
	SalaryRange        string    `json:"salary_range,omitempty" db:"salary_range"`
	Status             JobStatus `json:"status" db:"status"`
	Created            int64     `json:"created" db:"created"`
	Updated            int64     `json:"updated" db:"updated"`
}

type InterviewStatus string

const (
	InterviewPending    InterviewStatus = "pending"
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewCancelled  InterviewStatus = "cancelled"
)

type Interview struct {
	ID              int64           `json:"id" db:"id"`
	JobPostingID    int64           `json:"job_posting_id" db:"job_posting_id"`
	CandidateID     int64           `json:"candidate_id" db:"candidate_id"`
	Status          InterviewStatus `json:"status" db:"status"`
	Channel         string          `json:"channel" db:"channel"`
	SkillMatchScore float64         `json:"skill_match_score" db:"skill_match_score"`
	FinalScore      *float64        `json:"final_score,omitempty" db:"final_score"`
	Recommendation  string          `json:"recommendation,omitempty" db:"recommendation"`
	StartedAt       *int64          `json:"started_at,omitempty" db:"started_at"`
	CompletedAt     *int64          `json:"completed_at,omitempty" db:"completed_at"`
	Created         int64           `json:"created" db:"created"`
	Updated         int64           `json:"updated" db:"updated"`
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Question struct {
	ID               int64      `json:"id" db:"id"`
	InterviewID      int64      `json:"interview_id" db:"interview_id"`
	Text             string     `json:"text" db:"text"`
	Difficulty       Difficulty `json:"difficulty" db:"difficulty"`
	SkillEvaluated   string     `json:"skill_evaluated" db:"skill_evaluated"`
	ExpectedKeywords []string   `json:"expected_keywords" db:"expected_keywords"`
	Order            int        `json:"order" db:"ord"`
	Created          int64      `json:"created" db:"created"`
}

// Task is a queued unit of background work processed by internal/tasks.
type Task struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      string          `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	Priority    int             `json:"priority"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	NextTryAt   *time.Time      `json:"next_try_at,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	Created     time.Time       `json:"created"`
	Updated     time.Time       `json:"updated"`
}

type Answer struct {
	ID         int64    `json:"id" db:"id"`
	QuestionID int64    `json:"question_id" db:"question_id"`
	Text       string   `json:"text" db:"text"`
	Score      *float64 `json:"score,omitempty" db:"score"`
	Notes      string   `json:"notes,omitempty" db:"notes"`
	Created    int64    `json:"created" db:"created"`
}
