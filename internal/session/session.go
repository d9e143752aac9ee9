// Package session issues and verifies the signed cookie that links the details
// submission to the later quiz submission within one browser session.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the candidate session token.
const CookieName = "intake_session"

// ErrInvalidToken indicates the token failed signature or claim validation.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the candidate state bound to a browser session.
type Claims struct {
	CandidateID uint
	FullName    string
}

// Manager signs and parses candidate session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager constructs a session manager. The secret must stay stable across
// restarts for previously issued tokens to remain valid.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token binding the candidate record to the browser session.
func (m *Manager) Issue(candidateID uint, fullName string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(candidateID), 10),
		"name": fullName,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Parse validates a token and extracts the candidate claims.
func (m *Manager) Parse(tokenString string) (Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Claims{}, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{}
	if subject, err := mapClaims.GetSubject(); err == nil {
		if id, err := strconv.ParseUint(subject, 10, 64); err == nil {
			claims.CandidateID = uint(id)
		}
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.FullName = name
	}

	if claims.CandidateID == 0 {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
