package models

import "github.com/shopspring/decimal"

type ShippingRegion struct {
	ID   int    `json:"shipping_region_id"`
	Name string `json:"shipping_region"`
}

type Shipping struct {
	ID               int             `json:"shipping_id"`
	Type             string          `json:"shipping_type"`
	Cost             decimal.Decimal `json:"shipping_cost"`
	ShippingRegionID int             `json:"shipping_region_id"`
}

type Tax struct {
	ID         int             `json:"tax_id"`
	Type       string          `json:"tax_type"`
	Percentage decimal.Decimal `json:"tax_percentage"`
}
