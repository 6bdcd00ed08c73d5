package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paycheckout/config"
	"paycheckout/internal/auth"
	"paycheckout/internal/checkout"
	"paycheckout/internal/models"
	"paycheckout/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func sessionEngine(cfg *config.Config, repo *repository.SessionRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoadSession(cfg, repo))
	r.GET("/open", func(c *gin.Context) {
		_, ok := GetCheckout(c)
		c.JSON(http.StatusOK, gin.H{"loaded": ok, "sid": GetSessionID(c)})
	})
	r.GET("/guarded", SessionRequired(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestLoadSession(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Secret: "k", TTL: time.Minute, Issuer: "test"}}
	repo := repository.NewSessionRepository(time.Minute)
	id := repo.Create(checkout.New(models.CheckoutOrder{}, nil, ""))
	token, err := auth.GenerateSessionToken(&cfg.Session, id)
	require.NoError(t, err)

	r := sessionEngine(cfg, repo)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"loaded":true,"sid":"`+id+`"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoadSession_Missing(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Secret: "k", TTL: time.Minute, Issuer: "test"}}
	repo := repository.NewSessionRepository(time.Minute)
	r := sessionEngine(cfg, repo)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.JSONEq(t, `{"loaded":false,"sid":""}`, rec.Body.String())

	token, err := auth.GenerateSessionToken(&cfg.Session, "gone")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "unknown sessions are not refreshed")
}

func TestLoadSession_RefreshesCookie(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{Secret: "k", TTL: time.Hour, Issuer: "test"}}
	repo := repository.NewSessionRepository(time.Hour)
	id := repo.Create(checkout.New(models.CheckoutOrder{}, nil, ""))

	nearExpiry := cfg.Session
	nearExpiry.TTL = 5 * time.Second
	token, err := auth.GenerateSessionToken(&nearExpiry, id)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	sessionEngine(cfg, repo).ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, int(time.Hour.Seconds()), cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := auth.ParseSessionToken(&cfg.Session, cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(30*time.Minute)))
}

type obsRecorder struct {
	method, path string
	status       int
}

func (o *obsRecorder) Request(method, path string, status int, _ time.Duration) {
	o.method, o.path, o.status = method, path, status
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	obs := &obsRecorder{}

	r := gin.New()
	r.Use(RequestLogger(zap.New(core), obs))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/7", nil))

	assert.Equal(t, "/items/:id", obs.path)
	assert.Equal(t, http.StatusNotFound, obs.status)
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "/items/7", entries[0].ContextMap()["path"])
}
