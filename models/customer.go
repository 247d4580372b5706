package models

type Customer struct {
	ID               int    `json:"customer_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	PasswordHash     string `json:"-"`
	Address1         string `json:"address_1"`
	Address2         string `json:"address_2"`
	City             string `json:"city"`
	Region           string `json:"region"`
	PostalCode       string `json:"postal_code"`
	Country          string `json:"country"`
	ShippingRegionID int    `json:"shipping_region_id"`
	DayPhone         string `json:"day_phone"`
	EvePhone         string `json:"eve_phone"`
	MobPhone         string `json:"mob_phone"`
}

type Address struct {
	Address1         string
	Address2         string
	City             string
	Region           string
	PostalCode       string
	Country          string
	ShippingRegionID int
}
