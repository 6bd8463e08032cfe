package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireloop/hireloop/api"
	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository/mock"
)

func TestAuthHandlers(t *testing.T) {
	tokenDur := 1 * time.Hour

	tests := []struct {
		name       string
		handler    string // signup | signin | signout
		body       any
		prepare    func(s *mock.Store)
		wantStatus int
	}{
		{
			name:    "signup company ok",
			handler: "signup",
			body: map[string]any{
				"username": "acme", "email": "acme@example.com",
				"password": "secret123", "role": "company", "company_name": "Acme",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:    "signup candidate ok",
			handler: "signup",
			body: map[string]any{
				"username": "jo", "email": "jo@example.com",
				"password": "secret123", "role": "candidate", "full_name": "Jo Doe",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "signup missing fields",
			handler:    "signup",
			body:       map[string]any{"username": "x"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "signup unknown role",
			handler: "signup",
			body: map[string]any{
				"username": "x", "email": "x@example.com",
				"password": "secret123", "role": "admin",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "signup company without company_name",
			handler: "signup",
			body: map[string]any{
				"username": "x", "email": "x@example.com",
				"password": "secret123", "role": "company",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "signup candidate without full_name",
			handler: "signup",
			body: map[string]any{
				"username": "x", "email": "x@example.com",
				"password": "secret123", "role": "candidate",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "signup duplicate username",
			handler: "signup",
			body: map[string]any{
				"username": "taken", "email": "fresh@example.com",
				"password": "secret123", "role": "candidate", "full_name": "Jo",
			},
			prepare: func(s *mock.Store) {
				_, _ = s.CreateUser(context.Background(), &models.User{
					Username: "taken", Email: "taken@example.com", Role: models.RoleCandidate,
				})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:    "signup duplicate email",
			handler: "signup",
			body: map[string]any{
				"username": "fresh", "email": "taken@example.com",
				"password": "secret123", "role": "candidate", "full_name": "Jo",
			},
			prepare: func(s *mock.Store) {
				_, _ = s.CreateUser(context.Background(), &models.User{
					Username: "taken", Email: "taken@example.com", Role: models.RoleCandidate,
				})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:    "signin ok",
			handler: "signin",
			body:    map[string]any{"username": "jo", "password": "secret123"},
			prepare: func(s *mock.Store) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
				_, _ = s.CreateUser(context.Background(), &models.User{
					Username: "jo", Email: "jo@example.com",
					PasswordHash: string(hash), Role: models.RoleCandidate,
				})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "signin wrong password",
			handler: "signin",
			body:    map[string]any{"username": "jo", "password": "wrong"},
			prepare: func(s *mock.Store) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
				_, _ = s.CreateUser(context.Background(), &models.User{
					Username: "jo", Email: "jo@example.com",
					PasswordHash: string(hash), Role: models.RoleCandidate,
				})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "signin unknown user",
			handler:    "signin",
			body:       map[string]any{"username": "ghost", "password": "secret123"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "signin missing fields",
			handler:    "signin",
			body:       map[string]any{"username": "jo"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "signout ok",
			handler:    "signout",
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := mock.NewStore()
			if tc.prepare != nil {
				tc.prepare(store)
			}
			h := api.NewAuthHandler(store, store, store, testSecret, tokenDur)

			raw := []byte{}
			if tc.body != nil {
				var err error
				raw, err = json.Marshal(tc.body)
				if err != nil {
					t.Fatalf("marshal body: %v", err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/v1/auth/"+tc.handler, bytes.NewReader(raw))
			w := httptest.NewRecorder()

			switch tc.handler {
			case "signup":
				h.Signup(w, req)
			case "signin":
				h.Signin(w, req)
			case "signout":
				h.Signout(w, req)
			default:
				t.Fatalf("unknown handler %q", tc.handler)
			}

			res := w.Result()
			defer res.Body.Close()
			if res.StatusCode != tc.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tc.wantStatus, res.StatusCode, w.Body.String())
			}
		})
	}
}

func TestSignupTokenClaims(t *testing.T) {
	store := mock.NewStore()
	h := api.NewAuthHandler(store, store, store, testSecret, time.Hour)

	body := `{"username":"acme","email":"acme@example.com","password":"secret123","role":"company","company_name":"Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not verify: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("expected map claims, got %T", token.Claims)
	}
	if claims["role"] != "company" {
		t.Fatalf("expected role claim company, got %v", claims["role"])
	}
	if _, ok := claims["user_id"].(float64); !ok {
		t.Fatalf("expected numeric user_id claim, got %v", claims["user_id"])
	}
	if _, ok := claims["exp"].(float64); !ok {
		t.Fatalf("expected exp claim, got %v", claims["exp"])
	}

	// signup also created the company profile
	if len(store.Companies) != 1 {
		t.Fatalf("expected one company profile, got %d", len(store.Companies))
	}
}

func TestUsersMe(t *testing.T) {
	env := newTestEnv(t)

	token := env.signupCandidate(t, "jo", "Jo Doe")

	status, raw := env.do(t, http.MethodGet, "/v1/users/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, raw)
	}

	var resp struct {
		User      *models.User      `json:"user"`
		Candidate *models.Candidate `json:"candidate"`
		Company   *models.Company   `json:"company"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User == nil || resp.User.Username != "jo" {
		t.Fatalf("expected user jo, got %+v", resp.User)
	}
	if resp.User.PasswordHash != "" {
		t.Fatalf("password hash must not leak in /users/me")
	}
	if resp.Candidate == nil || resp.Candidate.FullName != "Jo Doe" {
		t.Fatalf("expected candidate profile, got %+v", resp.Candidate)
	}
	if resp.Company != nil {
		t.Fatalf("candidate account should not carry a company profile")
	}

	status, _ = env.do(t, http.MethodGet, "/v1/users/me", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}
