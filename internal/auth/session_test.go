package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"intel-archive/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func newTestSessions(now time.Time) *SessionService {
	s := NewSessionService("test-secret", SessionTTL)
	s.now = func() time.Time { return now }
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := newTestSessions(issuedAt)

	token, err := sessions.Issue("17", "vega", models.ClearanceOperational)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	session, err := sessions.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if session.AgentID != "17" {
		t.Errorf("agent id = %q, want %q", session.AgentID, "17")
	}
	if session.Username != "vega" {
		t.Errorf("username = %q, want %q", session.Username, "vega")
	}
	if session.Clearance != models.ClearanceOperational {
		t.Errorf("clearance = %s, want %s", session.Clearance, models.ClearanceOperational)
	}
	if !session.ExpiresAt.Equal(issuedAt.Add(SessionTTL)) {
		t.Errorf("expiry = %v, want issued-at + TTL", session.ExpiresAt)
	}
}

func TestSessionExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := newTestSessions(issuedAt)

	token, err := sessions.Issue("17", "vega", models.ClearanceMinimal)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// One second before expiry the token still verifies.
	sessions.now = func() time.Time { return issuedAt.Add(SessionTTL - time.Second) }
	if _, err := sessions.Verify(token); err != nil {
		t.Errorf("Verify just before expiry: %v", err)
	}

	// One second after expiry it fails with the expiry error specifically.
	sessions.now = func() time.Time { return issuedAt.Add(SessionTTL + time.Second) }
	_, err = sessions.Verify(token)
	if !errors.Is(err, models.ErrSessionExpired) {
		t.Errorf("Verify after expiry = %v, want ErrSessionExpired", err)
	}
}

func TestSessionVerifyRejectsBadTokens(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := newTestSessions(now)

	valid, err := sessions.Issue("17", "vega", models.ClearanceMinimal)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	otherService := newTestSessions(now)
	otherService.secret = []byte("a-different-secret")
	foreign, err := otherService.Issue("17", "vega", models.ClearanceMinimal)
	if err != nil {
		t.Fatalf("Issue with other secret: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered", valid + "x"},
		{"wrong signature", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sessions.Verify(tt.token)
			if !errors.Is(err, models.ErrSessionInvalid) {
				t.Errorf("Verify(%s) = %v, want ErrSessionInvalid", tt.name, err)
			}
		})
	}
}

func TestSessionVerifyRejectsMissingClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := newTestSessions(now)

	// Well-signed token with no subject and no username.
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sessions.secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := sessions.Verify(token); !errors.Is(err, models.ErrSessionInvalid) {
		t.Errorf("Verify = %v, want ErrSessionInvalid for missing claims", err)
	}
}

func TestTokenFromRequestCookieWinsOverHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	r.Header.Set("Authorization", "Bearer header-token")

	if got := TokenFromRequest(r); got != "cookie-token" {
		t.Errorf("TokenFromRequest = %q, want cookie token to take precedence", got)
	}
}

func TestTokenFromRequestBearerFallback(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := TokenFromRequest(r); got != tt.want {
				t.Errorf("TokenFromRequest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionFromRequestNoToken(t *testing.T) {
	sessions := newTestSessions(time.Now())
	r := httptest.NewRequest(http.MethodGet, "/api/all", nil)

	session, err := sessions.SessionFromRequest(r)
	if err != nil {
		t.Fatalf("SessionFromRequest: %v", err)
	}
	if session != nil {
		t.Errorf("expected nil session for a request with no token, got %+v", session)
	}
}
