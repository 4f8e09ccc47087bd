package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"globetrotter/core"
	"globetrotter/handlers/auth"
)

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserID(r.Context())))
	})
}

func TestIdentify(t *testing.T) {
	auth.Init("middleware-secret")
	valid, err := auth.IssueToken(&core.User{Subject: "user-7"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() failed: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{"No header is anonymous", "", http.StatusOK, core.AnonymousUserID},
		{"Valid token", "Bearer " + valid, http.StatusOK, "user-7"},
		{"Lowercase scheme", "bearer " + valid, http.StatusOK, "user-7"},
		{"Invalid token", "Bearer nope", http.StatusUnauthorized, ""},
		{"Wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
		{"Missing token", "Bearer", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			Identify(echoUser()).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rr.Body.String() != tt.wantUser {
				t.Errorf("user = %q, want %q", rr.Body.String(), tt.wantUser)
			}
		})
	}
}

func TestUserID_Default(t *testing.T) {
	if got := UserID(context.Background()); got != core.AnonymousUserID {
		t.Errorf("UserID() = %q, want %q", got, core.AnonymousUserID)
	}
}
