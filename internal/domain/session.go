package domain

import "time"

// Session is the server-side authenticated context behind an opaque cookie
// token. It carries a point-in-time identity snapshot; role or approval
// changes take effect at the next login, not mid-session.
type Session struct {
	Token      string         `json:"token"`
	IdentityID string         `json:"identity_id"`
	Role       Role           `json:"role"`
	Email      string         `json:"email"`
	Status     ApprovalStatus `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	ExpiresAt  time.Time      `json:"expires_at"`
}

// Expired reports whether the session has passed its absolute expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
