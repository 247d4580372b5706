package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/romilkhanna/turing-backend/models"
)

type ShippingReader interface {
	ListShippingRegions(ctx context.Context) ([]models.ShippingRegion, error)
	ShippingOptions(ctx context.Context, regionID int) ([]models.Shipping, error)
	ListTaxes(ctx context.Context) ([]models.Tax, error)
	GetTax(ctx context.Context, taxID int) (*models.Tax, error)
}

type ShippingController struct {
	shipping ShippingReader
}

func NewShippingController(shipping ShippingReader) *ShippingController {
	return &ShippingController{shipping: shipping}
}

func (sc *ShippingController) ListRegions(c *gin.Context) {
	rows, err := sc.shipping.ListShippingRegions(c.Request.Context())
	respond(c, rows, err)
}

func (sc *ShippingController) ShippingOptions(c *gin.Context) {
	byID(c, "shipping_region_id", sc.shipping.ShippingOptions)
}

func (sc *ShippingController) ListTaxes(c *gin.Context) {
	rows, err := sc.shipping.ListTaxes(c.Request.Context())
	respond(c, rows, err)
}

func (sc *ShippingController) GetTax(c *gin.Context) {
	byID(c, "tax_id", sc.shipping.GetTax)
}
