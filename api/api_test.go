package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hireloop/hireloop/api"
	"github.com/hireloop/hireloop/internal/config"
	"github.com/hireloop/hireloop/internal/interview"
	"github.com/hireloop/hireloop/pkg/repository/mock"
)

const testSecret = "testsecret"

// queuedTask records one Enqueue call made by a handler.
type queuedTask struct {
	Type        string
	Payload     []byte
	Priority    int
	MaxAttempts int
}

// captureQueue implements api.TaskQueue and records enqueued tasks instead of
// running them.
type captureQueue struct {
	tasks []queuedTask
	err   error
}

var _ api.TaskQueue = (*captureQueue)(nil)

func (q *captureQueue) Enqueue(ctx context.Context, typ string, payload any, priority, maxAttempts int) (int64, error) {
	if q.err != nil {
		return 0, q.err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	q.tasks = append(q.tasks, queuedTask{Type: typ, Payload: raw, Priority: priority, MaxAttempts: maxAttempts})
	return int64(len(q.tasks)), nil
}

func (q *captureQueue) byType(typ string) []queuedTask {
	var out []queuedTask
	for _, t := range q.tasks {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// testEnv wires the full router against the in-memory store so tests exercise
// routes, middleware and handlers together.
type testEnv struct {
	store  *mock.Store
	queue  *captureQueue
	server *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := mock.NewStore()
	queue := &captureQueue{}
	svc := interview.NewService(store, store, store, store, store, nil)

	cfg := &config.Config{
		Addr:               ":0",
		JWTSecret:          testSecret,
		APITimeout:         5 * time.Second,
		DatabasePath:       ":memory:",
		TokenDuration:      time.Hour,
		WorkerCount:        1,
		WebhookVerifyToken: "hook-token",
	}

	repos := api.Repos{
		Users:      store,
		Companies:  store,
		Candidates: store,
		Jobs:       store,
		Interviews: store,
		Questions:  store,
		Answers:    store,
	}

	router := api.SetupRoutes(cfg, "test", "now", repos, svc, queue)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{store: store, queue: queue, server: server}
}

// do sends a JSON request to the test server, attaching the bearer token when
// one is given, and returns the status code and raw body.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, rd)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return res.StatusCode, b
}

// signupCompany registers a company account and returns its token.
func (e *testEnv) signupCompany(t *testing.T, username, companyName string) string {
	t.Helper()
	return e.signup(t, map[string]any{
		"username":     username,
		"email":        username + "@example.com",
		"password":     "secret123",
		"role":         "company",
		"company_name": companyName,
	})
}

// signupCandidate registers a candidate account and returns its token.
func (e *testEnv) signupCandidate(t *testing.T, username, fullName string) string {
	t.Helper()
	return e.signup(t, map[string]any{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "secret123",
		"role":      "candidate",
		"full_name": fullName,
	})
}

func (e *testEnv) signup(t *testing.T, body map[string]any) string {
	t.Helper()

	status, raw := e.do(t, http.MethodPost, "/v1/auth/signup", "", body)
	if status != http.StatusCreated {
		t.Fatalf("signup %v: expected 201, got %d: %s", body["username"], status, raw)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("signup returned empty token")
	}
	return resp.Token
}
