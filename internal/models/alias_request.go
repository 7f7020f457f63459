package models

// ShortenRequest represents the request body for creating a short link
type ShortenRequest struct {
	URL             string `json:"url"`
	ValidityMinutes *int   `json:"validity_minutes,omitempty"` // Optional, defaults to the configured validity
	CustomCode      string `json:"custom_code,omitempty"`      // Optional custom short code
}
