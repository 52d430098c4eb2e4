package checkout

import (
	"strings"

	"eggshop/internal/pricing"
)

// Method is how the customer receives the order.
type Method string

const (
	MethodUnset    Method = ""
	MethodPickup   Method = "pickup"
	MethodDelivery Method = "delivery"
)

// Logistics is the transient checkout state of one session: never persisted,
// reset whenever the checkout UI closes or an order goes out.
type Logistics struct {
	Method   Method `json:"method"`
	Address  string `json:"address"`
	RegionID string `json:"regionId"`
	Date     string `json:"date"`
	Payment  string `json:"payment"`
	Notes    string `json:"notes"`
}

// Validation fields, also used as scroll anchors by the storefront.
const (
	FieldMethod  = "method"
	FieldAddress = "address"
	FieldRegion  = "region"
	FieldDate    = "date"
	FieldPayment = "payment"
)

// FieldError is a user-correctable validation failure targeting one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

const minAddressLen = 5

// Validate checks the logistics fields in fixed priority order: method,
// then address and region when delivering, then date, then payment. The
// first unmet requirement is returned so the storefront can scroll to it.
func (l Logistics) Validate() *FieldError {
	switch l.Method {
	case MethodPickup, MethodDelivery:
	default:
		return &FieldError{Field: FieldMethod, Message: "escolha retirada ou entrega"}
	}

	if l.Method == MethodDelivery {
		if len(strings.TrimSpace(l.Address)) < minAddressLen {
			return &FieldError{Field: FieldAddress, Message: "informe o endereço de entrega"}
		}
		if _, ok := pricing.RegionByID(l.RegionID); !ok {
			return &FieldError{Field: FieldRegion, Message: "escolha a cidade de entrega"}
		}
	}

	if strings.TrimSpace(l.Date) == "" {
		return &FieldError{Field: FieldDate, Message: "escolha a data"}
	}

	if strings.TrimSpace(l.Payment) == "" {
		return &FieldError{Field: FieldPayment, Message: "escolha a forma de pagamento"}
	}

	return nil
}
