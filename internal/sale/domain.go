package sale

import (
	"time"

	"pos_gateway/internal/posapi"
)

// LineInput is one cart line as submitted by the admin UI. Numeric fields
// arrive as numbers or strings depending on the form control, so they all
// go through posapi.Number coercion.
type LineInput struct {
	ProductID posapi.Number `json:"proid"`
	Qty       posapi.Number `json:"qty"`
	Price     posapi.Number `json:"price"`
	Total     posapi.Number `json:"total"`
}

// SaleInput is the raw cart: customer, employee, line items, and optional
// explicit totals. Anything absent or zero among subtotal/pay/money_change
// gets derived by Format.
type SaleInput struct {
	CustomerID  posapi.Number `json:"cus_id"`
	EmployeeID  posapi.Number `json:"emp_id"`
	Subtotal    posapi.Number `json:"subtotal"`
	Pay         posapi.Number `json:"pay"`
	MoneyChange posapi.Number `json:"money_change"`
	Products    []LineInput   `json:"products"`
}

// Receipt is what a successful submission returns to the caller: the
// server acknowledgement plus the payload that was actually sent and a
// reference id for correlating logs.
type Receipt struct {
	Reference string             `json:"reference"`
	Ack       *posapi.SaleAck    `json:"ack"`
	Payload   posapi.SalePayload `json:"payload"`
}

// HistoryFilter selects sales from the history listing. Zero values mean
// "no constraint". Filtering happens gateway-side over the fetched
// collection.
type HistoryFilter struct {
	CustomerID int
	Status     string
	From       time.Time
	To         time.Time
}

// HistoryMetadata summarizes a filtered history result.
type HistoryMetadata struct {
	Quantity    int     `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
}
