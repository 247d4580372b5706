package models

import "github.com/shopspring/decimal"

type Page[T any] struct {
	Count int `json:"count"`
	Rows  []T `json:"rows"`
}

type Product struct {
	ID              int             `json:"product_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Image           string          `json:"image"`
	Image2          string          `json:"image_2"`
	Thumbnail       string          `json:"thumbnail"`
	Display         int             `json:"display"`
}

// UnitPrice is what a customer pays: the discount when one is set.
func (p Product) UnitPrice() decimal.Decimal {
	if p.DiscountedPrice.IsPositive() {
		return p.DiscountedPrice
	}
	return p.Price
}

type ProductSummary struct {
	ID              int             `json:"product_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Thumbnail       string          `json:"thumbnail"`
}

type Department struct {
	ID          int    `json:"department_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Category struct {
	ID           int    `json:"category_id"`
	DepartmentID int    `json:"department_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

type ProductCategory struct {
	CategoryID   int    `json:"category_id"`
	DepartmentID int    `json:"department_id"`
	Name         string `json:"name"`
}

type Attribute struct {
	ID   int    `json:"attribute_id"`
	Name string `json:"name"`
}

type AttributeValue struct {
	ID    int    `json:"attribute_value_id"`
	Value string `json:"value"`
}

type ProductAttribute struct {
	AttributeName    string `json:"attribute_name"`
	AttributeValueID int    `json:"attribute_value_id"`
	AttributeValue   string `json:"attribute_value"`
}
