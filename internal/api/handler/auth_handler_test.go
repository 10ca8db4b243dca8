package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/typesprint/internal/api/dto"
)

func TestRegister(t *testing.T) {
	env := setupTestEnv(t)

	w := env.makeRequest(t, http.MethodPost, "/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp dto.MessageResponse
	parseJSON(t, w, &resp)
	if resp.Message != "User registered successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}

	tests := []struct {
		name            string
		body            any
		expectedMessage string
	}{
		{
			name:            "duplicate email",
			body:            gin.H{"username": "bob", "email": "alice@example.com", "password": "other12"},
			expectedMessage: "Email already exists",
		},
		{
			name:            "short password",
			body:            gin.H{"username": "bob", "email": "bob@example.com", "password": "12345"},
			expectedMessage: "Password must be at least 6 characters long",
		},
		{
			name:            "invalid email",
			body:            gin.H{"username": "bob", "email": "bob@example", "password": "secret1"},
			expectedMessage: "Invalid email format",
		},
		{
			name:            "whitespace username",
			body:            gin.H{"username": "   ", "email": "bob@example.com", "password": "secret1"},
			expectedMessage: "Username, email and password are required",
		},
		{
			name:            "missing field",
			body:            gin.H{"username": "bob", "email": "bob@example.com"},
			expectedMessage: "Username, email and password are required",
		},
		{
			name:            "malformed json",
			body:            `{"username":`,
			expectedMessage: "Username, email and password are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.makeRequest(t, http.MethodPost, "/register", tt.body, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			errResp := parseErrorResponse(t, w)
			if errResp.Message != tt.expectedMessage {
				t.Errorf("expected message %q, got %q", tt.expectedMessage, errResp.Message)
			}
			if errResp.Code != http.StatusBadRequest {
				t.Errorf("expected code 400, got %d", errResp.Code)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	env := setupTestEnv(t)
	env.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	t.Run("wrong password", func(t *testing.T) {
		w := env.makeRequest(t, http.MethodPost, "/login", gin.H{"email": "alice@example.com", "password": "wrong"}, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if msg := parseErrorResponse(t, w).Message; msg != "Invalid credentials" {
			t.Errorf("unexpected message: %s", msg)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		w := env.makeRequest(t, http.MethodPost, "/login", gin.H{"email": "bob@example.com", "password": "secret1"}, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	credentialTests := []struct {
		name string
		body any
	}{
		{"empty password", gin.H{"email": "alice@example.com", "password": ""}},
		{"missing password", gin.H{"email": "alice@example.com"}},
		{"unknown email with empty password", gin.H{"email": "bob@example.com", "password": ""}},
		{"empty object", gin.H{}},
	}
	for _, tt := range credentialTests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.makeRequest(t, http.MethodPost, "/login", tt.body, "")
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
			}
			if msg := parseErrorResponse(t, w).Message; msg != "Invalid credentials" {
				t.Errorf("unexpected message: %s", msg)
			}
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		w := env.makeRequest(t, http.MethodPost, "/login", `{"email":`, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if msg := parseErrorResponse(t, w).Message; msg != "Invalid request body" {
			t.Errorf("unexpected message: %s", msg)
		}
	})

	t.Run("success", func(t *testing.T) {
		w := env.makeRequest(t, http.MethodPost, "/login", gin.H{"email": "alice@example.com", "password": "secret1"}, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp dto.TokenResponse
		parseJSON(t, w, &resp)
		if resp.AccessToken == "" {
			t.Error("expected non-empty access token")
		}
		if resp.TokenType != "Bearer" || resp.ExpiresIn != 3600 {
			t.Errorf("unexpected token response: %+v", resp)
		}
	})
}
