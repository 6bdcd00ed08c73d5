package models

import "net/url"

// Gateway field names. Names and casing are fixed by PayHere.
const (
	FieldMerchantID = "merchant_id"
	FieldReturnURL  = "return_url"
	FieldCancelURL  = "cancel_url"
	FieldNotifyURL  = "notify_url"
	FieldOrderID    = "order_id"
	FieldItems      = "items"
	FieldCurrency   = "currency"
	FieldAmount     = "amount"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldCountry    = "country"
	FieldHash       = "hash"
)

// FieldNames lists every gateway field in the order it is rendered and posted.
var FieldNames = []string{
	FieldMerchantID,
	FieldReturnURL,
	FieldCancelURL,
	FieldNotifyURL,
	FieldOrderID,
	FieldItems,
	FieldCurrency,
	FieldAmount,
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldCity,
	FieldCountry,
	FieldHash,
}

// CheckoutOrder is one payment attempt. All values are strings because the
// gateway takes a form-encoded POST.
type CheckoutOrder struct {
	MerchantID string `json:"merchant_id" form:"merchant_id" validate:"required"`
	ReturnURL  string `json:"return_url"  form:"return_url"  validate:"required"`
	CancelURL  string `json:"cancel_url"  form:"cancel_url"  validate:"required"`
	NotifyURL  string `json:"notify_url"  form:"notify_url"  validate:"required"`
	OrderID    string `json:"order_id"    form:"order_id"    validate:"required"`
	Items      string `json:"items"       form:"items"       validate:"required"`
	Currency   string `json:"currency"    form:"currency"    validate:"required"`
	Amount     string `json:"amount"      form:"amount"      validate:"required"`
	FirstName  string `json:"first_name"  form:"first_name"  validate:"required"`
	LastName   string `json:"last_name"   form:"last_name"   validate:"required"`
	Email      string `json:"email"       form:"email"       validate:"required,email"`
	Phone      string `json:"phone"       form:"phone"       validate:"required"`
	Address    string `json:"address"     form:"address"     validate:"required"`
	City       string `json:"city"        form:"city"        validate:"required"`
	Country    string `json:"country"     form:"country"     validate:"required"`
	Hash       string `json:"hash"        form:"hash"`
}

// Field returns a pointer to the named field, or nil when the name is unknown.
func (o *CheckoutOrder) Field(name string) *string {
	switch name {
	case FieldMerchantID:
		return &o.MerchantID
	case FieldReturnURL:
		return &o.ReturnURL
	case FieldCancelURL:
		return &o.CancelURL
	case FieldNotifyURL:
		return &o.NotifyURL
	case FieldOrderID:
		return &o.OrderID
	case FieldItems:
		return &o.Items
	case FieldCurrency:
		return &o.Currency
	case FieldAmount:
		return &o.Amount
	case FieldFirstName:
		return &o.FirstName
	case FieldLastName:
		return &o.LastName
	case FieldEmail:
		return &o.Email
	case FieldPhone:
		return &o.Phone
	case FieldAddress:
		return &o.Address
	case FieldCity:
		return &o.City
	case FieldCountry:
		return &o.Country
	case FieldHash:
		return &o.Hash
	}
	return nil
}

// IsField reports whether name is a gateway field.
func IsField(name string) bool {
	return (&CheckoutOrder{}).Field(name) != nil
}

// Get returns the value of the named field and whether the name is known.
func (o *CheckoutOrder) Get(name string) (string, bool) {
	p := o.Field(name)
	if p == nil {
		return "", false
	}
	return *p, true
}

// FormField is one name/value pair in gateway order.
type FormField struct {
	Name  string
	Value string
}

// FormFields returns every field in FieldNames order.
func (o CheckoutOrder) FormFields() []FormField {
	out := make([]FormField, 0, len(FieldNames))
	for _, name := range FieldNames {
		v, _ := o.Get(name)
		out = append(out, FormField{Name: name, Value: v})
	}
	return out
}

// FormValues encodes the order as the gateway POST body.
func (o CheckoutOrder) FormValues() url.Values {
	vals := make(url.Values, len(FieldNames))
	for _, f := range o.FormFields() {
		vals.Set(f.Name, f.Value)
	}
	return vals
}
