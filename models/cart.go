package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ItemID     int       `json:"item_id"`
	CartID     string    `json:"cart_id"`
	ProductID  int       `json:"product_id"`
	Attributes string    `json:"attributes"`
	Quantity   int       `json:"quantity"`
	AddedOn    time.Time `json:"added_on"`
}

// CartItemView is a cart line joined with the product's current display fields.
type CartItemView struct {
	CartItem
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (v *CartItemView) ComputeSubtotal() {
	v.Subtotal = v.Price.Mul(decimal.NewFromInt(int64(v.Quantity)))
}
