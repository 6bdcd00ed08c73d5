package middleware

import (
	"net/http"

	"paycheckout/config"
	"paycheckout/internal/auth"
	"paycheckout/internal/checkout"
	"paycheckout/internal/repository"

	"github.com/gin-gonic/gin"
)

const SessionCookie = "checkout_session"

const (
	ctxSessionID = "session_id"
	ctxCheckout  = "checkout"
)

// LoadSession resolves the session cookie into a checkout controller when it
// can. It never aborts; handlers decide what a missing session means.
// A resolved session gets a freshly signed cookie, so the token expires on
// the same idle clock as the session store.
func LoadSession(cfg *config.Config, sessions *repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		claims, err := auth.ParseSessionToken(&cfg.Session, raw)
		if err != nil {
			c.Next()
			return
		}
		ctrl, err := sessions.Get(claims.SessionID)
		if err != nil {
			c.Next()
			return
		}
		if token, err := auth.GenerateSessionToken(&cfg.Session, claims.SessionID); err == nil {
			SetSessionCookie(c, token, int(cfg.Session.TTL.Seconds()), cfg.IsProduction())
		}
		c.Set(ctxSessionID, claims.SessionID)
		c.Set(ctxCheckout, ctrl)
		c.Next()
	}
}

// SetSessionCookie writes the session cookie. A negative maxAge clears it.
func SetSessionCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, value, maxAge, "/", "", secure, true)
}

// SessionRequired rejects API calls that arrive without a live session.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetCheckout(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "checkout session missing or expired"})
			return
		}
		c.Next()
	}
}

// GetCheckout returns the controller stored by LoadSession.
func GetCheckout(c *gin.Context) (*checkout.Controller, bool) {
	v, ok := c.Get(ctxCheckout)
	if !ok {
		return nil, false
	}
	ctrl, ok := v.(*checkout.Controller)
	return ctrl, ok
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
