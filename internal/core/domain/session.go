package domain

import "time"

// AuthState is the state of the workstation session
type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticating
	Authenticated
)

func (s AuthState) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is an authenticated sign-in issued by the remote service
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}
