package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoEmailClaim = errors.New("token carries no email claim")

// Session is the authenticated identity threaded through the wizard. It is
// passed explicitly to the components that need it; nothing reads it from
// global state.
type Session struct {
	// Email identifies the user on the backend. It doubles as the resume
	// reference when the user reuses a previously stored resume.
	Email string
	// Token is the raw bearer token sent on every request.
	Token string
	// Paid reports the subscription tier. Unpaid users pass through the
	// upgrade gate before downloading.
	Paid bool
}

// NewSession builds a session from an already-known identity.
func NewSession(email, token string) Session {
	return Session{Email: email, Token: token}
}

// FromToken extracts the session identity from a bearer token. The token is
// not verified here; verification is the backend's job, the client only
// needs the claims.
func FromToken(raw string) (Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Session{}, err
	}

	s := Session{Token: raw}
	if email, ok := claims["email"].(string); ok && email != "" {
		s.Email = email
	} else if sub, err := claims.GetSubject(); err == nil && sub != "" {
		s.Email = sub
	} else {
		return Session{}, ErrNoEmailClaim
	}
	if paid, ok := claims["premium"].(bool); ok {
		s.Paid = paid
	}
	return s, nil
}
