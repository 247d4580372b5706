package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romilkhanna/turing-backend/middlewares"
	"github.com/romilkhanna/turing-backend/models"
	"github.com/romilkhanna/turing-backend/services"
)

type Checkouter interface {
	Checkout(ctx context.Context, cmd services.CheckoutCommand) (int, error)
}

type OrderQuerier interface {
	ListOrders(ctx context.Context, customerID int) ([]models.Order, error)
	GetOrderDetail(ctx context.Context, orderID, customerID int) ([]models.OrderDetailView, error)
	GetOrderSummary(ctx context.Context, orderID, customerID int) (*models.Order, error)
}

type OrderController struct {
	checkout Checkouter
	orders   OrderQuerier
}

func NewOrderController(checkout Checkouter, orders OrderQuerier) *OrderController {
	return &OrderController{checkout: checkout, orders: orders}
}

type createOrderRequest struct {
	CartID     string `json:"cart_id" binding:"required,max=36"`
	ShippingID int    `json:"shipping_id" binding:"required,min=1"`
	TaxID      int    `json:"tax_id" binding:"required,min=1"`
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	defer func() {
		middlewares.RecordOrderOperation("create", middlewares.Succeeded(c))
	}()

	customerID, err := middlewares.CustomerID(c)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	var req createOrderRequest
	if err := bindJSON(c, &req); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	orderID, err := oc.checkout.Checkout(c.Request.Context(), services.CheckoutCommand{
		CartID:     req.CartID,
		ShippingID: req.ShippingID,
		TaxID:      req.TaxID,
		CustomerID: customerID,
	})
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
}

func (oc *OrderController) GetCustomerOrders(c *gin.Context) {
	defer func() {
		middlewares.RecordOrderOperation("list", middlewares.Succeeded(c))
	}()

	customerID, err := middlewares.CustomerID(c)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	orders, err := oc.orders.ListOrders(c.Request.Context(), customerID)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) GetOrderDetails(c *gin.Context) {
	defer func() {
		middlewares.RecordOrderOperation("details", middlewares.Succeeded(c))
	}()

	customerID, err := middlewares.CustomerID(c)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	orderID, err := pathID(c, "order_id")
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	details, err := oc.orders.GetOrderDetail(c.Request.Context(), orderID, customerID)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (oc *OrderController) GetOrderSummary(c *gin.Context) {
	defer func() {
		middlewares.RecordOrderOperation("summary", middlewares.Succeeded(c))
	}()

	customerID, err := middlewares.CustomerID(c)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	orderID, err := pathID(c, "order_id")
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	order, err := oc.orders.GetOrderSummary(c.Request.Context(), orderID, customerID)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
