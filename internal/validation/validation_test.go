package validation

import (
	"testing"

	"paycheckout/internal/domain"
	"paycheckout/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() models.CheckoutOrder {
	return models.CheckoutOrder{
		MerchantID: "1221149",
		ReturnURL:  "http://localhost:5173/?status=return",
		CancelURL:  "http://localhost:5173/?status=cancel",
		NotifyURL:  "https://example.ngrok.app/payhere/notify",
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

func TestValidate_DefaultsAreValid(t *testing.T) {
	res := Validate(validOrder())
	require.True(t, res.Valid(), "unexpected errors: %v", res.Errors)
	require.NotNil(t, res.Order)
	assert.Equal(t, domain.DefaultAmount, res.Order.Amount)
}

func TestValidate_HashNotRequired(t *testing.T) {
	o := validOrder()
	o.Hash = ""
	assert.True(t, Validate(o).Valid())
}

func TestValidate_EachEmptyField(t *testing.T) {
	for _, name := range models.FieldNames {
		if name == models.FieldHash {
			continue
		}
		t.Run(name, func(t *testing.T) {
			o := validOrder()
			*o.Field(name) = ""

			res := Validate(o)
			require.False(t, res.Valid())
			assert.Nil(t, res.Order)
			assert.Len(t, res.Errors, 1)
			assert.Contains(t, res.Errors, name)
		})
	}
}

func TestValidate_WhitespaceIsEmpty(t *testing.T) {
	o := validOrder()
	o.City = "   "
	res := Validate(o)
	assert.Equal(t, "City is required", res.Errors[models.FieldCity])
}

func TestValidate_MerchantMessage(t *testing.T) {
	o := validOrder()
	o.MerchantID = ""
	assert.Equal(t, "Merchant ID is required", Validate(o).Errors[models.FieldMerchantID])
}

func TestValidate_InvalidEmail(t *testing.T) {
	tests := []string{
		"saman",
		"saman@",
		"@gmail.com",
		"saman gmail.com",
		"saman@@gmail.com",
	}
	for _, email := range tests {
		t.Run(email, func(t *testing.T) {
			o := validOrder()
			o.Email = email
			res := Validate(o)
			require.False(t, res.Valid())
			assert.Equal(t, domain.MsgInvalidEmail, res.Errors[models.FieldEmail])
		})
	}
}

func TestValidate_EmptyEmailIsRequired(t *testing.T) {
	o := validOrder()
	o.Email = ""
	assert.Equal(t, "Email is required", Validate(o).Errors[models.FieldEmail])
}

func TestValidate_MultipleErrors(t *testing.T) {
	o := validOrder()
	o.FirstName = ""
	o.Email = "nope"
	o.Amount = ""

	res := Validate(o)
	assert.Len(t, res.Errors, 3)
	assert.Equal(t, "First name is required", res.Errors[models.FieldFirstName])
	assert.Equal(t, "Amount is required", res.Errors[models.FieldAmount])
	assert.Equal(t, domain.MsgInvalidEmail, res.Errors[models.FieldEmail])
}
