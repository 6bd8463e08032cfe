package mock

import (
	"context"
	"sort"

	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

// Store is an in-memory stand-in for the sqlite repositories, used by service
// tests. Not safe for concurrent use.
type Store struct {
	Users      map[int64]*models.User
	Companies  map[int64]*models.Company
	Jobs       map[int64]*models.JobPosting
	Candidates map[int64]*models.Candidate
	Interviews map[int64]*models.Interview
	Questions  map[int64]*models.Question
	Answers    map[int64]*models.Answer

	nextID int64

	// CreateAnswerErr forces CreateAnswer to fail, for error-path tests.
	CreateAnswerErr error
}

var _ repository.UserRepo = (*Store)(nil)
var _ repository.CompanyRepo = (*Store)(nil)
var _ repository.JobPostingRepo = (*Store)(nil)
var _ repository.CandidateRepo = (*Store)(nil)
var _ repository.InterviewRepo = (*Store)(nil)
var _ repository.QuestionRepo = (*Store)(nil)
var _ repository.AnswerRepo = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		Users:      map[int64]*models.User{},
		Companies:  map[int64]*models.Company{},
		Jobs:       map[int64]*models.JobPosting{},
		Candidates: map[int64]*models.Candidate{},
		Interviews: map[int64]*models.Interview{},
		Questions:  map[int64]*models.Question{},
		Answers:    map[int64]*models.Answer{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// Seed helpers

func (s *Store) AddJob(j *models.JobPosting) *models.JobPosting {
	if j.ID == 0 {
		j.ID = s.id()
	}
	s.Jobs[j.ID] = j
	return j
}

func (s *Store) AddCandidate(c *models.Candidate) *models.Candidate {
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.Candidates[c.ID] = c
	return c
}

// UserRepo

func (s *Store) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	cp := *u
	cp.ID = s.id()
	s.Users[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := s.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// CompanyRepo

func (s *Store) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	cp := *c
	cp.ID = s.id()
	s.Companies[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	if c, ok := s.Companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	for _, c := range s.Companies {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// JobPostingRepo

func (s *Store) CreateJobPosting(ctx context.Context, j *models.JobPosting) (int64, error) {
	cp := *j
	cp.ID = s.id()
	s.Jobs[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetJobPostingByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	if j, ok := s.Jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) ListJobPostings(ctx context.Context, status models.JobStatus) ([]models.JobPosting, error) {
	var out []models.JobPosting
	for _, j := range s.Jobs {
		if status == "" || j.Status == status {
			out = append(out, *j)
		}
	}
	sortByID(out, func(j models.JobPosting) int64 { return j.ID })
	return out, nil
}

func (s *Store) ListJobPostingsByCompany(ctx context.Context, companyID int64) ([]models.JobPosting, error) {
	var out []models.JobPosting
	for _, j := range s.Jobs {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	sortByID(out, func(j models.JobPosting) int64 { return j.ID })
	return out, nil
}

func (s *Store) UpdateJobPosting(ctx context.Context, j *models.JobPosting) error {
	cp := *j
	s.Jobs[j.ID] = &cp
	return nil
}

func (s *Store) UpdateJobPostingStatus(ctx context.Context, id int64, status models.JobStatus) error {
	if j, ok := s.Jobs[id]; ok {
		j.Status = status
	}
	return nil
}

func (s *Store) DeleteJobPosting(ctx context.Context, id int64) error {
	delete(s.Jobs, id)
	return nil
}

// CandidateRepo

func (s *Store) CreateCandidate(ctx context.Context, c *models.Candidate) (int64, error) {
	cp := *c
	cp.ID = s.id()
	s.Candidates[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetCandidateByID(ctx context.Context, id int64) (*models.Candidate, error) {
	if c, ok := s.Candidates[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) GetCandidateByUserID(ctx context.Context, userID int64) (*models.Candidate, error) {
	for _, c := range s.Candidates {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	cp := *c
	s.Candidates[c.ID] = &cp
	return nil
}

// InterviewRepo

func (s *Store) CreateInterview(ctx context.Context, iv *models.Interview) (int64, error) {
	cp := *iv
	cp.ID = s.id()
	if cp.Status == "" {
		cp.Status = models.InterviewPending
	}
	if cp.Channel == "" {
		cp.Channel = "web"
	}
	s.Interviews[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetInterviewByID(ctx context.Context, id int64) (*models.Interview, error) {
	if iv, ok := s.Interviews[id]; ok {
		cp := *iv
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) ListInterviewsByCandidate(ctx context.Context, candidateID int64) ([]models.Interview, error) {
	var out []models.Interview
	for _, iv := range s.Interviews {
		if iv.CandidateID == candidateID {
			out = append(out, *iv)
		}
	}
	sortByID(out, func(iv models.Interview) int64 { return iv.ID })
	return out, nil
}

func (s *Store) ListInterviewsByJob(ctx context.Context, jobPostingID int64) ([]models.Interview, error) {
	var out []models.Interview
	for _, iv := range s.Interviews {
		if iv.JobPostingID == jobPostingID {
			out = append(out, *iv)
		}
	}
	sortByID(out, func(iv models.Interview) int64 { return iv.ID })
	return out, nil
}

func (s *Store) UpdateInterview(ctx context.Context, iv *models.Interview) error {
	cp := *iv
	s.Interviews[iv.ID] = &cp
	return nil
}

// QuestionRepo

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	cp := *q
	cp.ID = s.id()
	s.Questions[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	if q, ok := s.Questions[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) ListQuestionsByInterview(ctx context.Context, interviewID int64) ([]models.Question, error) {
	var out []models.Question
	for _, q := range s.Questions {
		if q.InterviewID == interviewID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *Store) CountQuestionsByInterview(ctx context.Context, interviewID int64) (int64, error) {
	qs, _ := s.ListQuestionsByInterview(ctx, interviewID)
	return int64(len(qs)), nil
}

// AnswerRepo

func (s *Store) CreateAnswer(ctx context.Context, a *models.Answer) (int64, error) {
	if s.CreateAnswerErr != nil {
		return 0, s.CreateAnswerErr
	}
	cp := *a
	cp.ID = s.id()
	s.Answers[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) GetAnswerByQuestionID(ctx context.Context, questionID int64) (*models.Answer, error) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) ListAnswersByInterview(ctx context.Context, interviewID int64) ([]models.Answer, error) {
	var out []models.Answer
	for _, a := range s.Answers {
		q, ok := s.Questions[a.QuestionID]
		if ok && q.InterviewID == interviewID {
			out = append(out, *a)
		}
	}
	sortByID(out, func(a models.Answer) int64 { return a.ID })
	return out, nil
}

func (s *Store) CountAnswersByInterview(ctx context.Context, interviewID int64) (int64, error) {
	as, _ := s.ListAnswersByInterview(ctx, interviewID)
	return int64(len(as)), nil
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
