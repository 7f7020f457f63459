package models

import (
	"time"

	"snaplink/internal/entities"
)

// AliasResponse is the serialized form of an alias record at the HTTP
// boundary. Timestamps render as RFC 3339.
type AliasResponse struct {
	ID          string                `json:"id"`
	ShortCode   string                `json:"short_code"`
	OriginalURL string                `json:"original_url"`
	ShortURL    string                `json:"short_url"` // Full short URL (base URL + short code)
	ClickCount  int                   `json:"click_count"`
	CreatedAt   time.Time             `json:"created_at"`
	ExpiresAt   time.Time             `json:"expires_at"`
	ClickEvents []entities.ClickEvent `json:"click_events"`
}

// NewAliasResponse converts an alias record to its response form.
func NewAliasResponse(alias *entities.Alias, baseURL string) *AliasResponse {
	events := alias.ClickEvents
	if events == nil {
		events = []entities.ClickEvent{}
	}
	return &AliasResponse{
		ID:          alias.ID,
		ShortCode:   alias.ShortCode,
		OriginalURL: alias.OriginalURL,
		ShortURL:    baseURL + "/" + alias.ShortCode,
		ClickCount:  alias.ClickCount,
		CreatedAt:   alias.CreatedAt,
		ExpiresAt:   alias.ExpiresAt,
		ClickEvents: events,
	}
}
