package domain

// Sample order and payer used to seed a new checkout.
const (
	DefaultOrderID   = "order12345"
	DefaultItems     = "Sample Item"
	DefaultCurrency  = "LKR"
	DefaultAmount    = "2000"
	DefaultFirstName = "Saman"
	DefaultLastName  = "Prasad"
	DefaultEmail     = "saman@gmail.com"
	DefaultPhone     = "0771234567"
	DefaultAddress   = "157/A Kandy"
	DefaultCity      = "Kandy"
	DefaultCountry   = "Sri Lanka"
)

// Query values appended to the app base URL for gateway return/cancel.
const (
	StatusReturn = "return"
	StatusCancel = "cancel"
)

const (
	MsgHashEmpty          = "hash cannot be empty"
	MsgInvalidEmail       = "Invalid email address"
	MsgBackendUnavailable = "Could not reach the payment service. Please try again."
	MsgSubmitInProgress   = "Your payment is already being processed."
)

// FormErrorKey carries errors that do not belong to a single field.
const FormErrorKey = "_form"
