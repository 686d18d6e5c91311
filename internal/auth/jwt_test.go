package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"purchasing-backend/internal/domain"
)

const testSecret = "unit-test-secret"

func testUser() *domain.User {
	return &domain.User{ID: 7, Username: "tester", Role: RolePlanning}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, testUser())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "tester" || claims.Role != RolePlanning {
		t.Fatalf("claims = %+v, want user 7 tester/planning", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, testUser())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := ParseToken("another-secret", token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RolePlanning, RoleSales, RoleCustomer, RoleEngineer} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	if ValidRole("admin") {
		t.Error("ValidRole(admin) = true, want false")
	}
}

func protectedEndpoint(t *testing.T, secret string, gate func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok {
			t.Fatal("claims missing from request context")
		}
		w.Write([]byte(claims.Username))
	})
	if gate != nil {
		return Middleware(secret)(gate(inner))
	}
	return Middleware(secret)(inner)
}

func TestMiddleware(t *testing.T) {
	handler := protectedEndpoint(t, testSecret, nil)
	token, err := GenerateToken(testSecret, testUser())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && rec.Body.String() != "tester" {
				t.Fatalf("body = %q, want username from claims", rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	token, err := GenerateToken(testSecret, testUser())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := []struct {
		name       string
		roles      []string
		wantStatus int
	}{
		{"allowed role", []string{RolePlanning}, http.StatusOK},
		{"one of several", []string{RoleSales, RolePlanning}, http.StatusOK},
		{"wrong role", []string{RoleSales}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := protectedEndpoint(t, testSecret, RequireRole(tt.roles...))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
