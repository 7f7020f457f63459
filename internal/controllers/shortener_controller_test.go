package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snaplink/internal/codegen"
	"snaplink/internal/enrich"
	"snaplink/internal/entities"
	"snaplink/internal/models"
	"snaplink/internal/service"
	"snaplink/internal/store"
)

const testBaseURL = "http://sho.rt"

func newTestRouter(t *testing.T, svc service.AliasService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sc := NewShortenerController(svc, testBaseURL, 30)
	qc := NewQRCodeController(svc, testBaseURL)

	router := gin.New()
	router.GET("/:shortCode", sc.RedirectToURL)
	api := router.Group("/api/v1")
	{
		api.POST("/shorten", sc.CreateShortURL)
		api.GET("/urls", sc.GetAllAliases)
		api.GET("/url/:shortCode", sc.GetAliasDetails)
		api.GET("/qrcode/:shortCode", qc.GenerateQRCode)
	}
	return router
}

func newEngine(t *testing.T) service.AliasService {
	t.Helper()
	return service.NewAliasService(store.New(), codegen.NewGenerator(6), enrich.NewStatic(), nil)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateShortURL(t *testing.T) {
	router := newTestRouter(t, newEngine(t))

	w := doJSON(router, http.MethodPost, "/api/v1/shorten",
		`{"url":"https://example.com","validity_minutes":30}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.AliasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.ShortCode, 6)
	assert.Equal(t, "https://example.com", resp.OriginalURL)
	assert.Equal(t, testBaseURL+"/"+resp.ShortCode, resp.ShortURL)
	assert.Equal(t, 0, resp.ClickCount)
	assert.NotNil(t, resp.ClickEvents)
	assert.Equal(t, 30*time.Minute, resp.ExpiresAt.Sub(resp.CreatedAt))
}

func TestCreateShortURLDefaultValidity(t *testing.T) {
	router := newTestRouter(t, newEngine(t))

	w := doJSON(router, http.MethodPost, "/api/v1/shorten", `{"url":"https://example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.AliasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30*time.Minute, resp.ExpiresAt.Sub(resp.CreatedAt))
}

func TestCreateShortURLInputErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "invalid url",
			body: `{"url":"not-a-url","validity_minutes":30}`,
		},
		{
			name: "empty url",
			body: `{"url":"","validity_minutes":30}`,
		},
		{
			name: "zero validity",
			body: `{"url":"https://example.com","validity_minutes":0}`,
		},
		{
			name: "malformed json",
			body: `{"url":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, newEngine(t))
			w := doJSON(router, http.MethodPost, "/api/v1/shorten", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateShortURLCustomCodeConflict(t *testing.T) {
	router := newTestRouter(t, newEngine(t))

	w := doJSON(router, http.MethodPost, "/api/v1/shorten",
		`{"url":"https://a.com","validity_minutes":30,"custom_code":"abc123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/shorten",
		`{"url":"https://b.com","validity_minutes":30,"custom_code":"abc123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRedirect(t *testing.T) {
	engine := newEngine(t)
	router := newTestRouter(t, engine)

	alias, err := engine.Shorten("https://example.com", 30, "")
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/"+alias.ShortCode, "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Location"))

	got, err := engine.Lookup(alias.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ClickCount)
}

func TestRedirectUnknownCode(t *testing.T) {
	router := newTestRouter(t, newEngine(t))

	w := doJSON(router, http.MethodGet, "/nope42", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedirectExpired(t *testing.T) {
	svc := &stubService{resolveErr: service.ErrLinkExpired}
	router := newTestRouter(t, svc)

	w := doJSON(router, http.MethodGet, "/gone99", "")
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestGeneratedCollisionIsRetried(t *testing.T) {
	svc := &stubService{shortenFailures: 2, shortenErr: service.ErrCodeTaken}
	router := newTestRouter(t, svc)

	w := doJSON(router, http.MethodPost, "/api/v1/shorten",
		`{"url":"https://example.com","validity_minutes":30}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	// Two collisions plus the winning attempt.
	assert.Equal(t, 3, svc.shortenCalls)
}

func TestCustomCodeConflictIsNotRetried(t *testing.T) {
	svc := &stubService{shortenFailures: 2, shortenErr: service.ErrCodeTaken}
	router := newTestRouter(t, svc)

	w := doJSON(router, http.MethodPost, "/api/v1/shorten",
		`{"url":"https://example.com","validity_minutes":30,"custom_code":"mine"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, svc.shortenCalls)
}

func TestGetAliasDetails(t *testing.T) {
	engine := newEngine(t)
	router := newTestRouter(t, engine)

	alias, err := engine.Shorten("https://example.com", 30, "abc123")
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/v1/url/"+alias.ShortCode, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AliasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abc123", resp.ShortCode)
	// Inspection must not count as a click.
	assert.Equal(t, 0, resp.ClickCount)

	w = doJSON(router, http.MethodGet, "/api/v1/url/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllAliases(t *testing.T) {
	engine := newEngine(t)
	router := newTestRouter(t, engine)

	_, err := engine.Shorten("https://a.com", 30, "aaa111")
	require.NoError(t, err)
	_, err = engine.Shorten("https://b.com", 30, "bbb222")
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/v1/urls", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []models.AliasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "aaa111", resp[0].ShortCode)
	assert.Equal(t, "bbb222", resp[1].ShortCode)
}

func TestGenerateQRCode(t *testing.T) {
	engine := newEngine(t)
	router := newTestRouter(t, engine)

	alias, err := engine.Shorten("https://example.com", 30, "")
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/v1/qrcode/"+alias.ShortCode, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())

	w = doJSON(router, http.MethodGet, "/api/v1/qrcode/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// stubService scripts engine responses for error-path tests.
type stubService struct {
	shortenCalls    int
	shortenFailures int
	shortenErr      error
	resolveErr      error
}

func (s *stubService) Shorten(originalURL string, validityMinutes int, customCode string) (*entities.Alias, error) {
	s.shortenCalls++
	if s.shortenCalls <= s.shortenFailures {
		return nil, s.shortenErr
	}
	now := time.Now().UTC()
	return &entities.Alias{
		ID:          "stub-id",
		ShortCode:   "stub42",
		OriginalURL: originalURL,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Duration(validityMinutes) * time.Minute),
		ClickEvents: []entities.ClickEvent{},
	}, nil
}

func (s *stubService) Resolve(shortCode string, _ enrich.AccessContext) (string, error) {
	if s.resolveErr != nil {
		return "", s.resolveErr
	}
	return "https://example.com", nil
}

func (s *stubService) Lookup(shortCode string) (*entities.Alias, error) {
	return nil, service.ErrCodeNotFound
}

func (s *stubService) Report() []entities.Alias {
	return nil
}
