package handler

import (
	"errors"
	"net/http"

	"paycheckout/config"
	"paycheckout/internal/auth"
	"paycheckout/internal/checkout"
	"paycheckout/internal/middleware"
	"paycheckout/internal/models"
	"paycheckout/internal/repository"
	"paycheckout/internal/view"
	"paycheckout/pkg/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const checkoutPath = "/checkout"

type CheckoutHandler struct {
	cfg      *config.Config
	sessions *repository.SessionRepository
	provider payment.HashProvider
	rec      checkout.Recorder
	log      *zap.Logger
}

func NewCheckoutHandler(
	cfg *config.Config,
	sessions *repository.SessionRepository,
	provider payment.HashProvider,
	rec checkout.Recorder,
	log *zap.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		cfg:      cfg,
		sessions: sessions,
		provider: provider,
		rec:      rec,
		log:      log,
	}
}

// Show starts a new checkout session and renders the form with its defaults.
func (h *CheckoutHandler) Show(c *gin.Context) {
	if old := middleware.GetSessionID(c); old != "" {
		h.sessions.Delete(old)
	}
	ctrl := checkout.New(
		checkout.DefaultOrder(h.cfg.Merchant),
		h.provider,
		h.cfg.Gateway.CheckoutURL,
		checkout.WithLogger(h.log),
		checkout.WithRecorder(h.rec),
	)
	id := h.sessions.Create(ctrl)
	token, err := auth.GenerateSessionToken(&h.cfg.Session, id)
	if err != nil {
		h.sessions.Delete(id)
		h.log.Error("sign session token", zap.Error(err))
		c.String(http.StatusInternalServerError, "could not start checkout")
		return
	}
	h.setCookie(c, token, int(h.cfg.Session.TTL.Seconds()))
	c.HTML(http.StatusOK, view.CheckoutTemplate, view.NewFormPage(checkoutPath, ctrl.State(), nil))
}

// UpdateField applies a single field edit and returns the re-validated order.
func (h *CheckoutHandler) UpdateField(c *gin.Context) {
	ctrl, _ := middleware.GetCheckout(c)
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ctrl.SetField(req.Field, req.Value); err != nil {
		switch {
		case errors.Is(err, checkout.ErrUnknownField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrSubmitting):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrFinalized):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	res := ctrl.Validate()
	st := ctrl.State()
	c.JSON(http.StatusOK, gin.H{
		"order":  st.Order,
		"errors": st.Errors,
		"valid":  res.Valid(),
	})
}

// Submit applies the posted fields and runs the submit sequence. A successful
// run answers with a self-submitting form that posts the order to the gateway.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	ctrl, ok := middleware.GetCheckout(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, checkoutPath)
		return
	}

	values := make(map[string]string, len(models.FieldNames))
	for _, name := range models.FieldNames {
		if v, ok := c.GetPostForm(name); ok {
			values[name] = v
		}
	}
	out, err := ctrl.SubmitWith(c.Request.Context(), values)
	switch {
	case errors.Is(err, checkout.ErrFinalized):
		c.Redirect(http.StatusSeeOther, checkoutPath)
		return
	case err != nil:
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	switch out.Kind {
	case checkout.OutcomeRedirect:
		h.sessions.Delete(middleware.GetSessionID(c))
		h.setCookie(c, "", -1)
		c.HTML(http.StatusOK, view.RedirectTemplate, view.NewRedirectPage(out.Redirect))
	case checkout.OutcomeInvalid, checkout.OutcomeMissingHash:
		c.HTML(http.StatusUnprocessableEntity, view.CheckoutTemplate, view.NewFormPage(checkoutPath, ctrl.State(), out.Errors))
	case checkout.OutcomeInProgress:
		c.HTML(http.StatusConflict, view.CheckoutTemplate, view.NewFormPage(checkoutPath, ctrl.State(), out.Errors))
	case checkout.OutcomeBackendFailure:
		_ = c.Error(out.Err)
		c.HTML(http.StatusBadGateway, view.CheckoutTemplate, view.NewFormPage(checkoutPath, ctrl.State(), out.Errors))
	}
}

func (h *CheckoutHandler) setCookie(c *gin.Context, value string, maxAge int) {
	middleware.SetSessionCookie(c, value, maxAge, h.cfg.IsProduction())
}
