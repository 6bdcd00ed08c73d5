package validation

import (
	"errors"
	"reflect"
	"strings"

	"paycheckout/internal/domain"
	"paycheckout/internal/models"

	"github.com/go-playground/validator/v10"
)

// Labels are the human names used in field error messages.
var Labels = map[string]string{
	models.FieldMerchantID: "Merchant ID",
	models.FieldReturnURL:  "Return URL",
	models.FieldCancelURL:  "Cancel URL",
	models.FieldNotifyURL:  "Notify URL",
	models.FieldOrderID:    "Order ID",
	models.FieldItems:      "Items",
	models.FieldCurrency:   "Currency",
	models.FieldAmount:     "Amount",
	models.FieldFirstName:  "First name",
	models.FieldLastName:   "Last name",
	models.FieldEmail:      "Email",
	models.FieldPhone:      "Phone",
	models.FieldAddress:    "Address",
	models.FieldCity:       "City",
	models.FieldCountry:    "Country",
	models.FieldHash:       "Hash",
}

// Errors maps a field name to its single active message.
type Errors map[string]string

// Result is either a validated order or the field errors that rejected it.
type Result struct {
	Order  *models.CheckoutOrder
	Errors Errors
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field except hash. Values are trimmed before the
// required check so whitespace-only input counts as empty.
func Validate(order models.CheckoutOrder) Result {
	trimmed := order
	for _, name := range models.FieldNames {
		p := trimmed.Field(name)
		*p = strings.TrimSpace(*p)
	}

	err := validate.Struct(trimmed)
	if err == nil {
		return Result{Order: &order}
	}

	errs := Errors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[domain.FormErrorKey] = err.Error()
		return Result{Errors: errs}
	}
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := errs[name]; seen {
			continue
		}
		errs[name] = message(name, fe.Tag())
	}
	return Result{Errors: errs}
}

func message(field, tag string) string {
	switch tag {
	case "email":
		return domain.MsgInvalidEmail
	case "required":
		return Labels[field] + " is required"
	}
	return Labels[field] + " is invalid"
}
