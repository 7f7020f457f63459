package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"snaplink/internal/analytics"
	"snaplink/internal/enrich"
	"snaplink/internal/entities"
	"snaplink/internal/store"
	"snaplink/internal/validate"
)

// CodeGenerator produces candidate short codes. Uniqueness is not its
// concern; the store enforces that on insert.
type CodeGenerator interface {
	Generate() (string, error)
}

// AliasService defines the interface for the alias lifecycle engine
type AliasService interface {
	// Shorten validates the input, picks a short code (custom or generated)
	// and creates the alias record.
	Shorten(originalURL string, validityMinutes int, customCode string) (*entities.Alias, error)

	// Resolve looks up a short code, rejects expired aliases, records the
	// click and returns the redirect target.
	Resolve(shortCode string, accessCtx enrich.AccessContext) (string, error)

	// Lookup returns the record for a short code without recording a click.
	Lookup(shortCode string) (*entities.Alias, error)

	// Report returns every record ever created, in creation order.
	Report() []entities.Alias
}

type aliasService struct {
	store    *store.Store
	gen      CodeGenerator
	enricher enrich.Resolver
	mirror   analytics.Mirror
	now      func() time.Time
}

// NewAliasService creates the engine. The mirror may be nil (no analytics
// mirroring).
func NewAliasService(st *store.Store, gen CodeGenerator, enricher enrich.Resolver, mirror analytics.Mirror) AliasService {
	return &aliasService{
		store:    st,
		gen:      gen,
		enricher: enricher,
		mirror:   mirror,
		now:      time.Now,
	}
}

// Shorten creates a new alias record. Validation short-circuits on the
// first failing check. Only a custom code is pre-checked for uniqueness;
// a generated code relies on the store's atomic insert, so a rare collision
// surfaces as ErrCodeTaken and the caller may simply retry for a fresh draw.
func (s *aliasService) Shorten(originalURL string, validityMinutes int, customCode string) (*entities.Alias, error) {
	if originalURL == "" {
		return nil, ErrEmptyURL
	}
	if !validate.IsValidURL(originalURL) {
		return nil, ErrInvalidURL
	}
	if validityMinutes < 1 {
		return nil, ErrInvalidValidity
	}

	var shortCode string
	if customCode != "" {
		if _, err := s.store.FindByCode(customCode); err == nil {
			return nil, ErrCodeTaken
		}
		shortCode = customCode
	} else {
		code, err := s.gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate short code: %w", err)
		}
		shortCode = code
	}

	createdAt := s.now().UTC()
	alias := entities.Alias{
		ID:          uuid.NewString(),
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(time.Duration(validityMinutes) * time.Minute),
		ClickCount:  0,
		ClickEvents: []entities.ClickEvent{},
	}

	if err := s.store.Insert(alias); err != nil {
		return nil, err
	}

	return &alias, nil
}

// Resolve returns the redirect target for a short code and records the
// access. Expiry is evaluated against the wall clock at this instant; an
// expired or missing code records nothing.
func (s *aliasService) Resolve(shortCode string, accessCtx enrich.AccessContext) (string, error) {
	alias, err := s.store.FindByCode(shortCode)
	if err != nil {
		return "", ErrCodeNotFound
	}

	accessedAt := s.now().UTC()
	if alias.ExpiredAt(accessedAt) {
		return "", ErrLinkExpired
	}

	source, location := s.enricher.Resolve(accessCtx)
	event := entities.ClickEvent{
		Timestamp: accessedAt,
		Source:    source,
		Location:  location,
	}

	if err := s.store.RecordClick(shortCode, event); err != nil {
		// The code was found a moment ago and records are never deleted, so
		// a miss here is an engine defect, not a user error.
		log.Printf("ERROR: failed to record click for %s after successful lookup: %v", shortCode, err)
		return "", fmt.Errorf("failed to record click: %w", err)
	}

	if s.mirror != nil {
		go func() {
			if err := s.mirror.RecordClick(context.Background(), shortCode, accessedAt); err != nil {
				log.Printf("Warning: failed to mirror click for %s: %v", shortCode, err)
			}
		}()
	}

	return alias.OriginalURL, nil
}

// Lookup is read-only inspection; unlike Resolve it records nothing.
func (s *aliasService) Lookup(shortCode string) (*entities.Alias, error) {
	alias, err := s.store.FindByCode(shortCode)
	if err != nil {
		return nil, ErrCodeNotFound
	}
	return alias, nil
}

// Report returns all records in creation order, expired ones included.
func (s *aliasService) Report() []entities.Alias {
	return s.store.All()
}
