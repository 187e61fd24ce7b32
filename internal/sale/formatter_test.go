package sale

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func cart() SaleInput {
	return SaleInput{
		CustomerID: 1,
		EmployeeID: 2,
		Products: []LineInput{
			{ProductID: 1, Qty: 2, Price: 1000},
			{ProductID: 2, Qty: 1, Price: 500},
		},
	}
}

func TestFormat_DerivesAllTotals(t *testing.T) {
	payload, err := Format(cart())
	assert.NoError(t, err)

	assert.Equal(t, 2500.0, payload.Subtotal)
	assert.Equal(t, 2500.0, payload.Pay)
	assert.Equal(t, 0.0, payload.MoneyChange)
	assert.Equal(t, 2000.0, payload.Products[0].Total)
	assert.Equal(t, 500.0, payload.Products[1].Total)
}

func TestFormat_ExplicitPayDoesNotAlterSubtotal(t *testing.T) {
	in := cart()
	in.Pay = 3000

	payload, err := Format(in)
	assert.NoError(t, err)

	assert.Equal(t, 2500.0, payload.Subtotal)
	assert.Equal(t, 3000.0, payload.Pay)
	assert.Equal(t, 500.0, payload.MoneyChange)
}

func TestFormat_ExplicitLineTotalPreserved(t *testing.T) {
	in := cart()
	in.Products[0].Total = 1800 // discounted line

	payload, err := Format(in)
	assert.NoError(t, err)

	assert.Equal(t, 1800.0, payload.Products[0].Total)
	assert.Equal(t, 2300.0, payload.Subtotal)
}

func TestFormat_ExplicitSubtotalPreserved(t *testing.T) {
	in := cart()
	in.Subtotal = 2400 // caller-side discount

	payload, err := Format(in)
	assert.NoError(t, err)

	assert.Equal(t, 2400.0, payload.Subtotal)
	assert.Equal(t, 2400.0, payload.Pay, "pay must default to the effective subtotal")
}

func TestFormat_Preconditions(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*SaleInput)
		wantErr error
	}{
		{"missing customer", func(in *SaleInput) { in.CustomerID = 0 }, ErrMissingCustomer},
		{"missing employee", func(in *SaleInput) { in.EmployeeID = 0 }, ErrMissingEmployee},
		{"empty cart", func(in *SaleInput) { in.Products = nil }, ErrEmptyCart},
		{"zero quantity line", func(in *SaleInput) { in.Products[0].Qty = 0 }, ErrInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := cart()
			tc.mutate(&in)

			_, err := Format(in)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestSaleInput_CoercesQuotedNumbers(t *testing.T) {
	raw := `{
		"cus_id": "1",
		"emp_id": "2",
		"pay": "3000",
		"products": [
			{"proid": "1", "qty": "2", "price": "1000"},
			{"proid": 2, "qty": 1, "price": 500}
		]
	}`

	var in SaleInput
	assert.NoError(t, json.Unmarshal([]byte(raw), &in))

	payload, err := Format(in)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, payload.CustomerID)
	assert.Equal(t, 2500.0, payload.Subtotal)
	assert.Equal(t, 3000.0, payload.Pay)
	assert.Equal(t, 500.0, payload.MoneyChange)
}

func TestSaleInput_RejectsNonNumericStrings(t *testing.T) {
	var in SaleInput
	err := json.Unmarshal([]byte(`{"cus_id":"abc","emp_id":1,"products":[]}`), &in)
	assert.Error(t, err)
}
