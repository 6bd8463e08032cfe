package api

import (
	"github.com/gorilla/mux"

	"github.com/hireloop/hireloop/internal/config"
	"github.com/hireloop/hireloop/internal/interview"
	"github.com/hireloop/hireloop/pkg/repository"
)

// Repos bundles the storage interfaces the handlers need.
type Repos struct {
	Users      repository.UserRepo
	Companies  repository.CompanyRepo
	Candidates repository.CandidateRepo
	Jobs       repository.JobPostingRepo
	Interviews repository.InterviewRepo
	Questions  repository.QuestionRepo
	Answers    repository.AnswerRepo
}

func SetupRoutes(cfg *config.Config, version, buildTime string, repos Repos, svc *interview.Service, queue TaskQueue) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repos.Users, repos.Companies, repos.Candidates, cfg.JWTSecret, cfg.TokenDuration)
	usersHandler := NewUsersHandler(repos.Users, repos.Companies, repos.Candidates)
	jobsHandler := NewJobsHandler(repos.Jobs, repos.Companies)
	candidatesHandler := NewCandidatesHandler(repos.Candidates, queue)
	interviewsHandler := NewInterviewsHandler(svc, queue, repos.Interviews, repos.Questions, repos.Answers, repos.Candidates, repos.Companies, repos.Jobs)
	webhooksHandler := NewWebhooksHandler(cfg.WebhookVerifyToken)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// Channel callbacks authenticate with their own tokens, not ours
	r.HandleFunc("/v1/webhooks/whatsapp", webhooksHandler.VerifyWhatsApp).Methods("GET")
	r.HandleFunc("/v1/webhooks/whatsapp", webhooksHandler.ReceiveWhatsApp).Methods("POST")
	r.HandleFunc("/v1/webhooks/telegram", webhooksHandler.ReceiveTelegram).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Account
	apiV1.HandleFunc("/users/me", usersHandler.Me).Methods("GET")

	// Job postings
	apiV1.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	apiV1.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	apiV1.HandleFunc("/jobs/my-jobs", jobsHandler.MyJobs).Methods("GET")
	apiV1.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.GetJob).Methods("GET")
	apiV1.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.UpdateJob).Methods("PUT")
	apiV1.HandleFunc("/jobs/{id:[0-9]+}/status", jobsHandler.UpdateJobStatus).Methods("PATCH")
	apiV1.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.DeleteJob).Methods("DELETE")

	// Candidate CV intake
	apiV1.HandleFunc("/candidates/cv", candidatesHandler.SubmitCV).Methods("POST")

	// Interviews
	apiV1.HandleFunc("/interviews", interviewsHandler.CreateInterview).Methods("POST")
	apiV1.HandleFunc("/interviews", interviewsHandler.ListInterviews).Methods("GET")
	apiV1.HandleFunc("/interviews/{id:[0-9]+}", interviewsHandler.GetInterview).Methods("GET")
	apiV1.HandleFunc("/interviews/{id:[0-9]+}/start", interviewsHandler.StartInterview).Methods("POST")
	apiV1.HandleFunc("/interviews/{id:[0-9]+}/answers", interviewsHandler.SubmitAnswer).Methods("POST")
	apiV1.HandleFunc("/interviews/{id:[0-9]+}/complete", interviewsHandler.CompleteInterview).Methods("POST")
	apiV1.HandleFunc("/interviews/{id:[0-9]+}/cancel", interviewsHandler.CancelInterview).Methods("POST")

	return r
}
