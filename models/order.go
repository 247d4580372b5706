package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int             `json:"order_id"`
	CustomerID  int             `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ShippingID  int             `json:"shipping_id"`
	TaxID       int             `json:"tax_id"`
	CreatedOn   time.Time       `json:"created_on"`
}

// OrderDetail is the line snapshot taken from the cart at checkout.
type OrderDetail struct {
	ItemID      int             `json:"item_id"`
	OrderID     int             `json:"order_id"`
	ProductID   int             `json:"product_id"`
	Attributes  string          `json:"attributes"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

func (d OrderDetail) Subtotal() decimal.Decimal {
	return d.UnitCost.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

type OrderDetailView struct {
	OrderDetail
	Subtotal decimal.Decimal `json:"subtotal"`
}

const OrderEventCreated = "created"

type OrderEvent struct {
	OrderID     int             `json:"order_id"`
	CustomerID  int             `json:"customer_id"`
	Type        string          `json:"type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Occurred    time.Time       `json:"occurred"`
}
