// Package checkout holds the per-session checkout form state: field edits,
// validation, the hash round trip and the final gateway redirect.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"paycheckout/config"
	"paycheckout/internal/domain"
	"paycheckout/internal/models"
	"paycheckout/internal/validation"
	"paycheckout/pkg/payment"

	"go.uber.org/zap"
)

var (
	ErrUnknownField = errors.New("unknown checkout field")
	ErrSubmitting   = errors.New("submission in progress")
	ErrFinalized    = errors.New("checkout already redirected")
)

type OutcomeKind int

const (
	OutcomeRedirect OutcomeKind = iota
	OutcomeInvalid
	OutcomeMissingHash
	OutcomeBackendFailure
	OutcomeInProgress
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRedirect:
		return "redirect"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeMissingHash:
		return "missing_hash"
	case OutcomeBackendFailure:
		return "backend_failure"
	case OutcomeInProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

// Redirect is the browser POST that hands the order to the gateway.
type Redirect struct {
	Action string
	Fields []models.FormField
}

// Outcome is the result of one Submit call. Redirect is set only for
// OutcomeRedirect; Err carries the backend error for OutcomeBackendFailure.
type Outcome struct {
	Kind     OutcomeKind
	Errors   validation.Errors
	Redirect *Redirect
	Err      error
}

// Recorder receives submit and hash fetch observations.
type Recorder interface {
	Submission(outcome string)
	HashFetch(ok bool, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Submission(string)             {}
func (nopRecorder) HashFetch(bool, time.Duration) {}

type Option func(*Controller)

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		if r != nil {
			c.rec = r
		}
	}
}

// Controller owns one CheckoutOrder. Amount is stored once on the order; the
// rendered input and the backend payload both read it from there.
type Controller struct {
	mu         sync.Mutex
	order      models.CheckoutOrder
	errors     validation.Errors
	submitting bool
	finalized  bool

	provider   payment.HashProvider
	gatewayURL string
	log        *zap.Logger
	rec        Recorder
}

// DefaultOrder builds the sample order a new checkout starts with.
func DefaultOrder(m config.MerchantConfig) models.CheckoutOrder {
	return models.CheckoutOrder{
		MerchantID: m.ID,
		ReturnURL:  m.BaseURL + "?status=" + domain.StatusReturn,
		CancelURL:  m.BaseURL + "?status=" + domain.StatusCancel,
		NotifyURL:  m.NotifyURL,
		OrderID:    domain.DefaultOrderID,
		Items:      domain.DefaultItems,
		Currency:   domain.DefaultCurrency,
		Amount:     domain.DefaultAmount,
		FirstName:  domain.DefaultFirstName,
		LastName:   domain.DefaultLastName,
		Email:      domain.DefaultEmail,
		Phone:      domain.DefaultPhone,
		Address:    domain.DefaultAddress,
		City:       domain.DefaultCity,
		Country:    domain.DefaultCountry,
	}
}

func New(order models.CheckoutOrder, provider payment.HashProvider, gatewayURL string, opts ...Option) *Controller {
	c := &Controller{
		order:      order,
		errors:     validation.Errors{},
		provider:   provider,
		gatewayURL: gatewayURL,
		log:        zap.NewNop(),
		rec:        nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State is a copy of the controller's state for rendering.
type State struct {
	Order      models.CheckoutOrder
	Errors     validation.Errors
	Submitting bool
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Order: c.order, Errors: copyErrors(c.errors), Submitting: c.submitting}
}

// SetField updates one field, visible or hidden.
func (c *Controller) SetField(name, value string) error {
	return c.Apply(map[string]string{name: value})
}

// Apply updates several fields at once. Nothing is written if any name is
// unknown.
func (c *Controller) Apply(values map[string]string) error {
	for name := range values {
		if !models.IsField(name) {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finalized {
		return ErrFinalized
	}
	if c.submitting {
		return ErrSubmitting
	}
	for name, v := range values {
		*c.order.Field(name) = v
	}
	return nil
}

// Validate re-runs validation and replaces the active errors with the result.
func (c *Controller) Validate() validation.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := validation.Validate(c.order)
	c.errors = res.Errors
	if c.errors == nil {
		c.errors = validation.Errors{}
	}
	return res
}

// Submit validates the order, fetches its hash and, when one comes back,
// attaches it and returns the gateway redirect. The only returned error is
// ErrFinalized; every other failure is reported through the Outcome.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	return c.SubmitWith(ctx, nil)
}

// SubmitWith applies values and submits in one critical section, so a
// concurrent edit cannot land between the two. Values are dropped when a
// submit is already in flight.
func (c *Controller) SubmitWith(ctx context.Context, values map[string]string) (Outcome, error) {
	for name := range values {
		if !models.IsField(name) {
			return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	c.mu.Lock()
	if c.finalized {
		c.mu.Unlock()
		return Outcome{}, ErrFinalized
	}
	if c.submitting {
		c.mu.Unlock()
		c.rec.Submission(OutcomeInProgress.String())
		return Outcome{
			Kind:   OutcomeInProgress,
			Errors: validation.Errors{domain.FormErrorKey: domain.MsgSubmitInProgress},
		}, nil
	}
	for name, v := range values {
		*c.order.Field(name) = v
	}
	res := validation.Validate(c.order)
	if !res.Valid() {
		c.errors = res.Errors
		out := Outcome{Kind: OutcomeInvalid, Errors: copyErrors(res.Errors)}
		c.mu.Unlock()
		c.log.Info("checkout invalid", zap.Any("errors", out.Errors))
		c.rec.Submission(out.Kind.String())
		return out, nil
	}
	c.submitting = true
	orderID := c.order.OrderID
	req := payment.HashRequest{Amount: c.order.Amount}
	c.mu.Unlock()

	start := time.Now()
	resp, err := c.provider.FetchHash(ctx, req)
	c.rec.HashFetch(err == nil, time.Since(start))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	var out Outcome
	switch {
	case err != nil:
		c.errors = validation.Errors{domain.FormErrorKey: domain.MsgBackendUnavailable}
		out = Outcome{Kind: OutcomeBackendFailure, Errors: copyErrors(c.errors), Err: err}
		c.log.Error("hash fetch failed", zap.String("order_id", orderID), zap.Error(err))
	case resp == nil || strings.TrimSpace(resp.Hash) == "":
		c.errors = validation.Errors{models.FieldHash: domain.MsgHashEmpty}
		out = Outcome{Kind: OutcomeMissingHash, Errors: copyErrors(c.errors)}
		c.log.Warn("hash backend returned no hash", zap.String("order_id", orderID))
	default:
		c.order.Hash = resp.Hash
		c.errors = validation.Errors{}
		c.finalized = true
		out = Outcome{
			Kind:     OutcomeRedirect,
			Errors:   validation.Errors{},
			Redirect: &Redirect{Action: c.gatewayURL, Fields: c.order.FormFields()},
		}
		c.log.Info("redirecting to gateway",
			zap.String("order_id", orderID),
			zap.String("amount", req.Amount),
			zap.String("currency", c.order.Currency),
		)
	}
	c.rec.Submission(out.Kind.String())
	return out, nil
}

func copyErrors(in validation.Errors) validation.Errors {
	out := make(validation.Errors, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
