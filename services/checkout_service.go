package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/models"
)

type CartReader interface {
	ListItems(ctx context.Context, cartID string) ([]models.CartItemView, error)
}

type OrderWriter interface {
	CreateWithDetails(ctx context.Context, order models.Order, details []models.OrderDetail) (int, error)
}

type ShippingLookup interface {
	GetShipping(ctx context.Context, shippingID int) (*models.Shipping, error)
	GetTax(ctx context.Context, taxID int) (*models.Tax, error)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
}

type CheckoutCommand struct {
	CartID     string
	ShippingID int
	TaxID      int
	CustomerID int
}

type CheckoutService struct {
	carts     CartReader
	orders    OrderWriter
	shipping  ShippingLookup
	publisher EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

func NewCheckoutService(carts CartReader, orders OrderWriter, shipping ShippingLookup, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		shipping: shipping,
		log:      orNop(log),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithPublisher enables order.created events after a successful checkout.
func (s *CheckoutService) WithPublisher(p EventPublisher) *CheckoutService {
	s.publisher = p
	return s
}

// Checkout turns the cart into an order with one detail per line and returns
// the new order id. The cart itself is left untouched.
func (s *CheckoutService) Checkout(ctx context.Context, cmd CheckoutCommand) (int, error) {
	if err := validateCartID(cmd.CartID); err != nil {
		return 0, err
	}

	items, err := s.carts.ListItems(ctx, cmd.CartID)
	if err != nil {
		return 0, storeError(s.log, "load cart", err, "")
	}
	if len(items) == 0 {
		return 0, apperrors.NotFound("cart is empty")
	}

	if _, err := s.shipping.GetShipping(ctx, cmd.ShippingID); err != nil {
		return 0, storeError(s.log, "load shipping", err, "shipping not found")
	}
	if _, err := s.shipping.GetTax(ctx, cmd.TaxID); err != nil {
		return 0, storeError(s.log, "load tax", err, "tax not found")
	}

	details := make([]models.OrderDetail, 0, len(items))
	for _, item := range items {
		details = append(details, models.OrderDetail{
			ProductID:   item.ProductID,
			Attributes:  item.Attributes,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitCost:    item.Price,
		})
	}
	order := models.Order{
		CustomerID:  cmd.CustomerID,
		TotalAmount: cartTotal(items),
		ShippingID:  cmd.ShippingID,
		TaxID:       cmd.TaxID,
		CreatedOn:   s.now(),
	}

	orderID, err := s.orders.CreateWithDetails(ctx, order, details)
	if err != nil {
		s.log.Error("checkout failed",
			zap.String("cart_id", cmd.CartID),
			zap.Int("customer_id", cmd.CustomerID),
			zap.Error(err))
		return 0, apperrors.Persistence("create order failed", err)
	}

	s.log.Info("order created",
		zap.Int("order_id", orderID),
		zap.Int("customer_id", cmd.CustomerID),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Int("lines", len(details)))

	s.publishCreated(ctx, orderID, order)
	return orderID, nil
}

func (s *CheckoutService) publishCreated(ctx context.Context, orderID int, order models.Order) {
	if s.publisher == nil {
		return
	}
	event := models.OrderEvent{
		OrderID:     orderID,
		CustomerID:  order.CustomerID,
		Type:        models.OrderEventCreated,
		TotalAmount: order.TotalAmount,
		Occurred:    order.CreatedOn,
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Warn("order event not published", zap.Int("order_id", orderID), zap.Error(err))
	}
}
