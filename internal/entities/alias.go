package entities

import "time"

// Alias represents a shortened URL record. Records are never deleted or
// expired in place; expiry is evaluated against ExpiresAt at access time.
type Alias struct {
	ID          string       `json:"id"` // UUID
	ShortCode   string       `json:"short_code"`
	OriginalURL string       `json:"original_url"`
	ClickCount  int          `json:"click_count"`
	CreatedAt   time.Time    `json:"created_at"`
	ExpiresAt   time.Time    `json:"expires_at"`
	ClickEvents []ClickEvent `json:"click_events"`
}

// ClickEvent is one recorded access to a still-valid alias.
type ClickEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Location  string    `json:"location"`
}

// ExpiredAt reports whether the alias is past its validity window at the
// given instant. The boundary is exclusive: an access at exactly ExpiresAt
// still succeeds.
func (a *Alias) ExpiredAt(t time.Time) bool {
	return t.After(a.ExpiresAt)
}
