package cart

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type PaymentInfo struct {
	CardholderName string `json:"cardholder_name" validate:"required"`
	CardNumber     string `json:"card_number" validate:"required"`
	Expiration     string `json:"expiration" validate:"required"`
	CVV            string `json:"cvv,omitempty" validate:"required"`
}

type ShippingInfo struct {
	StreetAddress string `json:"street_address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Zip           string `json:"zip" validate:"required"`
}

// Form field names, in the order the checkout form presents them.
const (
	FieldCardholderName = "cardholder_name"
	FieldCardNumber     = "card_number"
	FieldExpiration     = "expiration"
	FieldCVV            = "cvv"
	FieldStreetAddress  = "street_address"
	FieldCity           = "city"
	FieldState          = "state"
	FieldZip            = "zip"
)

var FieldLabels = map[string]string{
	FieldCardholderName: "Cardholder Name",
	FieldCardNumber:     "Card Number",
	FieldExpiration:     "Expiration Date",
	FieldCVV:            "CVV",
	FieldStreetAddress:  "Street Address",
	FieldCity:           "City",
	FieldState:          "State",
	FieldZip:            "Zip Code",
}

// ValidationError lists the required checkout fields left blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required fields missing: " + strings.Join(e.Fields, ", ")
}

type checkoutForm struct {
	Payment  PaymentInfo
	Shipping ShippingInfo
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateForm checks that every field is present. Content is not checked:
// no card number format, expiry or Luhn validation happens here.
func ValidateForm(shipping ShippingInfo, payment PaymentInfo) error {
	form := checkoutForm{Payment: payment.normalized(), Shipping: shipping.normalized()}

	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// Checkout validates the form, issues a receipt at rate and empties the
// ledger. On any error the ledger is left as it was.
func (l *Ledger) Checkout(shipping ShippingInfo, payment PaymentInfo, rate decimal.Decimal, now time.Time) (Receipt, error) {
	if rate.IsNegative() {
		return Receipt{}, ErrInvalidRate
	}
	if err := ValidateForm(shipping, payment); err != nil {
		return Receipt{}, err
	}
	if l.Len() == 0 {
		return Receipt{}, ErrEmptyCart
	}

	r := newReceipt(l, shipping.normalized(), payment.normalized(), rate, now)
	l.clear()
	return r, nil
}

func (p PaymentInfo) normalized() PaymentInfo {
	return PaymentInfo{
		CardholderName: strings.TrimSpace(p.CardholderName),
		CardNumber:     strings.TrimSpace(p.CardNumber),
		Expiration:     strings.TrimSpace(p.Expiration),
		CVV:            strings.TrimSpace(p.CVV),
	}
}

func (s ShippingInfo) normalized() ShippingInfo {
	return ShippingInfo{
		StreetAddress: strings.TrimSpace(s.StreetAddress),
		City:          strings.TrimSpace(s.City),
		State:         strings.TrimSpace(s.State),
		Zip:           strings.TrimSpace(s.Zip),
	}
}
