package domain

import "time"

// CredentialState — состояние OAuth2 конкретного адаптера; хранится только в памяти.
type CredentialState struct {
	AccessToken  string
	ExpiresAt    time.Time
	RefreshToken string
}

// Valid — токен есть и не истекает в ближайшие skew.
func (c *CredentialState) Valid(now time.Time, skew time.Duration) bool {
	if c == nil || c.AccessToken == "" {
		return false
	}
	if c.ExpiresAt.IsZero() {
		return true
	}
	return now.Add(skew).Before(c.ExpiresAt)
}
