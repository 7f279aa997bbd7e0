package cart

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func validShipping() ShippingInfo {
	return ShippingInfo{StreetAddress: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"}
}

func validPayment() PaymentInfo {
	return PaymentInfo{CardholderName: "Ada Lovelace", CardNumber: "4111111111111111", Expiration: "12/29", CVV: "123"}
}

func TestValidateForm_AllMissing(t *testing.T) {
	err := ValidateForm(ShippingInfo{}, PaymentInfo{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{
		FieldCardholderName, FieldCardNumber, FieldExpiration, FieldCVV,
		FieldStreetAddress, FieldCity, FieldState, FieldZip,
	}, verr.Fields)
	for _, f := range verr.Fields {
		require.NotEmpty(t, FieldLabels[f])
	}
}

func TestValidateForm_WhitespaceIsBlank(t *testing.T) {
	ship := validShipping()
	ship.City = "   "
	pay := validPayment()
	pay.CVV = "\t"

	var verr *ValidationError
	require.ErrorAs(t, ValidateForm(ship, pay), &verr)
	require.Equal(t, []string{FieldCVV, FieldCity}, verr.Fields)
}

func TestValidateForm_NoFormatChecks(t *testing.T) {
	pay := validPayment()
	pay.CardNumber = "not-a-card"
	pay.Expiration = "whenever"
	require.NoError(t, ValidateForm(validShipping(), pay))
}

func TestCheckout_ValidationFailureLeavesLedger(t *testing.T) {
	l := NewLedger()
	l.AddItem(1, "PS5", ps5Price)
	l.AddItem(1, "PS5", ps5Price)

	ship := validShipping()
	ship.Zip = ""

	_, err1 := l.Checkout(ship, validPayment(), taxRate, issuedAt)
	_, err2 := l.Checkout(ship, validPayment(), taxRate, issuedAt)

	var v1, v2 *ValidationError
	require.ErrorAs(t, err1, &v1)
	require.ErrorAs(t, err2, &v2)
	require.Equal(t, []string{FieldZip}, v1.Fields)
	require.Equal(t, v1.Fields, v2.Fields)

	require.Len(t, l.Lines(), 1)
	ln, _ := l.Line(1)
	require.Equal(t, 2, ln.Quantity)
}

func TestCheckout_EmptyCartAndBadRate(t *testing.T) {
	l := NewLedger()
	_, err := l.Checkout(validShipping(), validPayment(), taxRate, issuedAt)
	require.ErrorIs(t, err, ErrEmptyCart)

	l.AddItem(1, "PS5", ps5Price)
	_, err = l.Checkout(validShipping(), validPayment(), dec("-0.01"), issuedAt)
	require.ErrorIs(t, err, ErrInvalidRate)
	require.Equal(t, 1, l.Len())
}

func TestCheckout_Success(t *testing.T) {
	l := NewLedger()
	l.AddItem(1, "PS5", ps5Price)
	l.AddItem(1, "PS5", ps5Price)

	r, err := l.Checkout(validShipping(), validPayment(), taxRate, issuedAt)
	require.NoError(t, err)

	require.Empty(t, l.Lines())
	require.Zero(t, l.Len())

	require.True(t, strings.HasPrefix(r.ID, "r_"))
	require.Equal(t, issuedAt, r.IssuedAt)
	require.Len(t, r.Lines, 1)
	require.Equal(t, 2, r.Lines[0].Quantity)
	requireDecimal(t, "939.98", r.Subtotal)
	requireDecimal(t, "65.80", r.Tax)
	requireDecimal(t, "1005.78", r.Total)
	requireDecimal(t, "0.07", r.Rate)

	require.Equal(t, "Ada Lovelace", r.Payment.CardholderName)
	require.Empty(t, r.Payment.CVV)
	require.Equal(t, validShipping(), r.Shipping)
}

func TestCheckout_TrimsEchoedFields(t *testing.T) {
	l := NewLedger()
	l.AddItem(2, "Dell XPS", xpsPrice)

	pay := validPayment()
	pay.CardholderName = "  Ada Lovelace "

	r, err := l.Checkout(validShipping(), pay, taxRate, issuedAt)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", r.Payment.CardholderName)
}

func TestReceiptText(t *testing.T) {
	l := NewLedger()
	l.AddItem(1, "PS5", ps5Price)
	l.AddItem(1, "PS5", ps5Price)

	r, err := l.Checkout(validShipping(), validPayment(), taxRate, issuedAt)
	require.NoError(t, err)

	text := r.Text()
	require.Contains(t, text, "Cardholder Name: Ada Lovelace")
	require.Contains(t, text, "Zip Code: 62701")
	require.Contains(t, text, "PS5 - $469.99 x 2")
	require.Contains(t, text, "Subtotal: $939.98")
	require.Contains(t, text, "Tax: $65.80")
	require.Contains(t, text, "Total: $1005.78")
	require.NotContains(t, text, "123")
	require.Less(t, strings.Index(text, "Payment Information"), strings.Index(text, "Shipping Information"))
	require.Less(t, strings.Index(text, "Shipping Information"), strings.Index(text, "Order Summary"))
}
