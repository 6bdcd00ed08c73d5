package router

import (
	"paycheckout/config"
	"paycheckout/internal/handler"
	"paycheckout/internal/metrics"
	"paycheckout/internal/middleware"
	"paycheckout/internal/repository"
	"paycheckout/internal/view"
	"paycheckout/pkg/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Sessions *repository.SessionRepository
	Provider payment.HashProvider
	Limiter  *middleware.InMemoryRateLimiter
	Metrics  *metrics.Metrics
	Log      *zap.Logger
}

func Setup(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log, d.Metrics))
	r.SetHTMLTemplate(view.Templates())

	checkoutHandler := handler.NewCheckoutHandler(cfg, d.Sessions, d.Provider, d.Metrics, d.Log)
	sessionMw := middleware.LoadSession(cfg, d.Sessions)

	r.GET("/", handler.Status)
	r.GET("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	co := r.Group("/checkout")
	co.Use(middleware.RateLimit(d.Limiter), sessionMw)
	{
		co.GET("", checkoutHandler.Show)
		co.POST("", checkoutHandler.Submit)
		co.PATCH("/fields", middleware.SessionRequired(), checkoutHandler.UpdateField)
	}

	return r
}
