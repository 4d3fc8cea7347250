package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"intel-archive/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie is the cookie carrying the session token.
	SessionCookie = "archive_session"

	// SessionTTL is how long an issued session stays valid. There is no
	// server-side revocation: logout only deletes the client's copy, and a
	// token remains verifiable until it expires naturally.
	SessionTTL = 8 * time.Hour
)

// SessionClaims is the signed payload of a session token.
type SessionClaims struct {
	Username  string           `json:"username"`
	Clearance models.Clearance `json:"clearance"`
	jwt.RegisteredClaims
}

// Session is the verified identity a request acts under. It is reconstructed
// from the token on every request; nothing is retained between requests.
type Session struct {
	AgentID   string
	Username  string
	Clearance models.Clearance
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionService issues and verifies self-contained signed session tokens.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a session service signing with the given secret.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token embedding the agent's identity and clearance,
// valid from now until now plus the session TTL.
func (s *SessionService) Issue(agentID, username string, clearance models.Clearance) (string, error) {
	now := s.now()
	claims := SessionClaims{
		Username:  username,
		Clearance: clearance,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   agentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token. It returns
// models.ErrSessionExpired once the current time has reached the embedded
// expiry, and models.ErrSessionInvalid for a bad signature or a malformed
// payload.
func (s *SessionService) Verify(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrSessionExpired
		}
		return nil, models.ErrSessionInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, models.ErrSessionInvalid
	}
	if claims.Subject == "" || claims.Username == "" || claims.ExpiresAt == nil {
		return nil, models.ErrSessionInvalid
	}

	session := &Session{
		AgentID:   claims.Subject,
		Username:  claims.Username,
		Clearance: claims.Clearance,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}

// TokenFromRequest extracts the session token from the session cookie or,
// failing that, from a bearer Authorization header. The cookie wins when
// both are present. Returns the empty string when neither carries a token.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SessionFromRequest extracts and verifies the session presented on a
// request. A request carrying no token at all yields (nil, nil); a request
// carrying a bad or expired token yields the verification error.
func (s *SessionService) SessionFromRequest(r *http.Request) (*Session, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, nil
	}
	return s.Verify(token)
}
