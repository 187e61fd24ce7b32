package sale

import (
	"errors"
	"fmt"

	"pos_gateway/internal/posapi"
)

// Validation errors, all raised before any network call.
var (
	ErrMissingCustomer = errors.New("missing customer id")
	ErrMissingEmployee = errors.New("missing employee id")
	ErrEmptyCart       = errors.New("sale has no products")
	ErrInvalidQuantity = errors.New("line quantity must be at least 1")
)

// IsValidation reports whether err is a client-side input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingCustomer) ||
		errors.Is(err, ErrMissingEmployee) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInvalidQuantity)
}

// Format validates the raw cart and produces the wire payload. A line's
// total defaults to price×qty, then the remaining defaults apply in order:
// subtotal from the line totals, pay from subtotal, money_change from
// pay−subtotal. The order matters since each later default depends on the
// previous result. Explicit non-zero inputs are never overridden.
func Format(in SaleInput) (posapi.SalePayload, error) {
	if in.CustomerID <= 0 {
		return posapi.SalePayload{}, ErrMissingCustomer
	}
	if in.EmployeeID <= 0 {
		return posapi.SalePayload{}, ErrMissingEmployee
	}
	if len(in.Products) == 0 {
		return posapi.SalePayload{}, ErrEmptyCart
	}

	lines := make([]posapi.SaleLine, 0, len(in.Products))
	var lineSum float64
	for _, l := range in.Products {
		if l.Qty < 1 {
			return posapi.SalePayload{}, fmt.Errorf("%w: product %d", ErrInvalidQuantity, l.ProductID.Int())
		}

		total := l.Total.Float64()
		if total == 0 {
			total = l.Price.Float64() * l.Qty.Float64()
		}
		lineSum += total

		lines = append(lines, posapi.SaleLine{
			ProductID: l.ProductID.Float64(),
			Qty:       l.Qty.Float64(),
			Price:     l.Price.Float64(),
			Total:     total,
		})
	}

	subtotal := in.Subtotal.Float64()
	if subtotal == 0 {
		subtotal = lineSum
	}
	pay := in.Pay.Float64()
	if pay == 0 {
		pay = subtotal
	}
	change := in.MoneyChange.Float64()
	if change == 0 {
		change = pay - subtotal
	}

	return posapi.SalePayload{
		CustomerID:  in.CustomerID.Float64(),
		EmployeeID:  in.EmployeeID.Float64(),
		Subtotal:    subtotal,
		Pay:         pay,
		MoneyChange: change,
		Products:    lines,
	}, nil
}
