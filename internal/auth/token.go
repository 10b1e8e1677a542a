// safemap/internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/waseok/safemap/config"
)

const (
	// SessionTTL bounds how long an issued student session stays valid.
	SessionTTL = 24 * time.Hour
	// JoinTicketTTL bounds the window between join phase 1 and phase 2.
	JoinTicketTTL = 10 * time.Minute

	sessionSubject = "student_session"
	ticketSubject  = "join_ticket"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims carry the joined student's identity. Handlers trust
// these instead of client-supplied IDs in request bodies.
type SessionClaims struct {
	ClassID string `json:"class_id"`
	jwt.RegisteredClaims
}

// TicketClaims bind join phase 2 to the class resolved in phase 1.
type TicketClaims struct {
	ClassID string `json:"class_id"`
	jwt.RegisteredClaims
}

// IssueSessionToken mints a signed session token for a student. The
// returned jti is persisted on the student row as its session_id.
func IssueSessionToken(studentID, classID uuid.UUID) (token string, jti string, err error) {
	return issueSessionToken(studentID, classID, SessionTTL)
}

func issueSessionToken(studentID, classID uuid.UUID, ttl time.Duration) (string, string, error) {
	jti := uuid.NewString()
	now := time.Now()
	claims := SessionClaims{
		ClassID: classID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   studentID.String(),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Audience:  jwt.ClaimStrings{sessionSubject},
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParseSessionToken validates signature, expiry and audience, and
// returns the claims.
func ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc,
		jwt.WithAudience(sessionSubject))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.ClassID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueJoinTicket mints the short-lived ticket returned by join
// phase 1.
func IssueJoinTicket(classID uuid.UUID) (string, error) {
	token, _, err := issueJoinTicket(classID, JoinTicketTTL)
	return token, err
}

func issueJoinTicket(classID uuid.UUID, ttl time.Duration) (string, string, error) {
	jti := uuid.NewString()
	now := time.Now()
	claims := TicketClaims{
		ClassID: classID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Audience:  jwt.ClaimStrings{ticketSubject},
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JwtKey)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ParseJoinTicket validates a phase-1 ticket and returns its claims.
func ParseJoinTicket(tokenStr string) (*TicketClaims, error) {
	claims := &TicketClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc,
		jwt.WithAudience(ticketSubject))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.ClassID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return config.JwtKey, nil
}
