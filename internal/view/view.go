// Package view renders the checkout pages from embedded templates.
package view

import (
	"embed"
	"html/template"

	"paycheckout/internal/checkout"
	"paycheckout/internal/domain"
	"paycheckout/internal/models"
	"paycheckout/internal/validation"
)

const (
	CheckoutTemplate = "checkout.html"
	RedirectTemplate = "redirect.html"
	StatusTemplate   = "status.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses every page template. It panics on a bad template, which
// can only happen at build time.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// visibleFields are rendered as text inputs; everything else is hidden.
var visibleFields = map[string]bool{
	models.FieldAmount:    true,
	models.FieldFirstName: true,
	models.FieldLastName:  true,
	models.FieldEmail:     true,
	models.FieldHash:      true,
}

type FieldView struct {
	Name   string
	Label  string
	Value  string
	Error  string
	Hidden bool
}

type FormPage struct {
	Action     string
	Fields     []FieldView
	FormError  string
	Submitting bool
}

// NewFormPage builds the form from a controller snapshot. errs overrides the
// snapshot's errors when non-nil.
func NewFormPage(action string, st checkout.State, errs validation.Errors) FormPage {
	if errs == nil {
		errs = st.Errors
	}
	page := FormPage{
		Action:     action,
		FormError:  errs[domain.FormErrorKey],
		Submitting: st.Submitting,
		Fields:     make([]FieldView, 0, len(models.FieldNames)),
	}
	for _, f := range st.Order.FormFields() {
		page.Fields = append(page.Fields, FieldView{
			Name:   f.Name,
			Label:  validation.Labels[f.Name],
			Value:  f.Value,
			Error:  errs[f.Name],
			Hidden: !visibleFields[f.Name],
		})
	}
	return page
}

type RedirectPage struct {
	Action string
	Fields []models.FormField
}

func NewRedirectPage(r *checkout.Redirect) RedirectPage {
	return RedirectPage{Action: r.Action, Fields: r.Fields}
}

type StatusPage struct {
	Status  string
	Title   string
	Message string
}

func NewStatusPage(status string) StatusPage {
	switch status {
	case domain.StatusReturn:
		return StatusPage{Status: status, Title: "Payment submitted", Message: "Thank you. Your payment is being confirmed by the gateway."}
	case domain.StatusCancel:
		return StatusPage{Status: status, Title: "Payment cancelled", Message: "The payment was cancelled. No charge was made."}
	default:
		return StatusPage{Status: status, Title: "PayHere Checkout", Message: "Start a checkout to pay with PayHere."}
	}
}
