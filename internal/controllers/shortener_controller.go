package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"snaplink/internal/enrich"
	"snaplink/internal/entities"
	"snaplink/internal/models"
	"snaplink/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sethvargo/go-retry"
)

// generateRetries bounds how often a shorten request is retried when an
// auto-generated code collides. Each retry draws a fresh random code.
const generateRetries = 3

type ShortenerController struct {
	aliasService    service.AliasService
	baseURL         string
	defaultValidity int
}

func NewShortenerController(aliasService service.AliasService, baseURL string, defaultValidity int) *ShortenerController {
	return &ShortenerController{
		aliasService:    aliasService,
		baseURL:         baseURL,
		defaultValidity: defaultValidity,
	}
}

// CreateShortURL handles POST /api/v1/shorten
func (sc *ShortenerController) CreateShortURL(c *gin.Context) {
	var req models.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	validity := sc.defaultValidity
	if req.ValidityMinutes != nil {
		validity = *req.ValidityMinutes
	}

	// A collision on a generated code is a rare, retryable conflict: the
	// engine fails the whole operation and the next attempt draws a fresh
	// code. Custom-code conflicts are surfaced to the caller instead.
	var alias *entities.Alias
	backoff := retry.WithMaxRetries(generateRetries, retry.NewConstant(time.Millisecond))
	err := retry.Do(c.Request.Context(), backoff, func(ctx context.Context) error {
		var err error
		alias, err = sc.aliasService.Shorten(req.URL, validity, req.CustomCode)
		if err != nil && req.CustomCode == "" && errors.Is(err, service.ErrCodeTaken) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		c.JSON(shortenErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.NewAliasResponse(alias, sc.baseURL))
}

// RedirectToURL handles GET /:shortCode - redirects to the destination URL
func (sc *ShortenerController) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("shortCode")

	accessCtx := enrich.AccessContext{}
	if c.GetHeader("Referer") != "" {
		accessCtx.Source = "referral"
	}

	targetURL, err := sc.aliasService.Resolve(shortCode, accessCtx)
	if err != nil {
		c.JSON(resolveErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	// 302 so clients keep coming back through the engine; a cached 301
	// would stop clicks from being counted.
	c.Redirect(http.StatusFound, targetURL)
}

// GetAliasDetails handles GET /api/v1/url/:shortCode - returns the record
// without recording a click
func (sc *ShortenerController) GetAliasDetails(c *gin.Context) {
	shortCode := c.Param("shortCode")

	alias, err := sc.aliasService.Lookup(shortCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Short URL not found",
		})
		return
	}

	c.JSON(http.StatusOK, models.NewAliasResponse(alias, sc.baseURL))
}

// GetAllAliases handles GET /api/v1/urls - returns every record in creation
// order, expired ones included
func (sc *ShortenerController) GetAllAliases(c *gin.Context) {
	aliases := sc.aliasService.Report()

	responses := make([]*models.AliasResponse, len(aliases))
	for i := range aliases {
		responses[i] = models.NewAliasResponse(&aliases[i], sc.baseURL)
	}

	c.JSON(http.StatusOK, responses)
}

func shortenErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyURL),
		errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrInvalidValidity):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCodeTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func resolveErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrLinkExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
