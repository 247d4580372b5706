package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/romilkhanna/turing-backend/middlewares"
	"github.com/romilkhanna/turing-backend/models"
)

type CartManager interface {
	GenerateCartID() string
	AddItem(ctx context.Context, cartID string, productID int, attributes string) (*models.CartItemView, error)
	GetItems(ctx context.Context, cartID string) ([]models.CartItemView, error)
	UpdateQuantity(ctx context.Context, itemID, quantity int) (*models.CartItemView, error)
	RemoveItem(ctx context.Context, itemID int) error
	Clear(ctx context.Context, cartID string) error
	TotalAmount(ctx context.Context, cartID string) (decimal.Decimal, error)
}

type CartController struct {
	cart CartManager
}

func NewCartController(cart CartManager) *CartController {
	return &CartController{cart: cart}
}

type addItemRequest struct {
	CartID     string `json:"cart_id" binding:"required,max=36"`
	ProductID  int    `json:"product_id" binding:"required,min=1"`
	Attributes string `json:"attributes" binding:"max=255"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (cc *CartController) GenerateUniqueID(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cart_id": cc.cart.GenerateCartID()})
}

func (cc *CartController) AddItem(c *gin.Context) {
	defer func() {
		middlewares.RecordCartOperation("add", middlewares.Succeeded(c))
	}()

	var req addItemRequest
	if err := bindJSON(c, &req); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	item, err := cc.cart.AddItem(c.Request.Context(), req.CartID, req.ProductID, req.Attributes)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (cc *CartController) GetItems(c *gin.Context) {
	items, err := cc.cart.GetItems(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateQuantity leaves range checks to the cart service so a zero quantity
// gets the same validation error whether or not the field was sent.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	defer func() {
		middlewares.RecordCartOperation("update", middlewares.Succeeded(c))
	}()

	itemID, err := pathID(c, "item_id")
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	var req updateQuantityRequest
	if err := bindJSON(c, &req); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	item, err := cc.cart.UpdateQuantity(c.Request.Context(), itemID, req.Quantity)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (cc *CartController) EmptyCart(c *gin.Context) {
	defer func() {
		middlewares.RecordCartOperation("clear", middlewares.Succeeded(c))
	}()

	if err := cc.cart.Clear(c.Request.Context(), c.Param("cart_id")); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, []models.CartItemView{})
}

func (cc *CartController) RemoveProduct(c *gin.Context) {
	defer func() {
		middlewares.RecordCartOperation("remove", middlewares.Succeeded(c))
	}()

	itemID, err := pathID(c, "item_id")
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	if err := cc.cart.RemoveItem(c.Request.Context(), itemID); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (cc *CartController) TotalAmount(c *gin.Context) {
	total, err := cc.cart.TotalAmount(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_amount": total.StringFixed(2)})
}
