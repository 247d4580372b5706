package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/models"
)

type OrderReader interface {
	ListByCustomer(ctx context.Context, customerID int) ([]models.Order, error)
	FindForCustomer(ctx context.Context, orderID, customerID int) (*models.Order, error)
	DetailsForCustomer(ctx context.Context, orderID, customerID int) ([]models.OrderDetailView, error)
}

type OrderService struct {
	orders OrderReader
	log    *zap.Logger
}

func NewOrderService(orders OrderReader, log *zap.Logger) *OrderService {
	return &OrderService{orders: orders, log: orNop(log)}
}

func (s *OrderService) ListOrders(ctx context.Context, customerID int) ([]models.Order, error) {
	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, storeError(s.log, "list orders", err, "")
	}
	return orders, nil
}

// GetOrderDetail returns the lines of an order owned by customerID. Orders
// of other customers look exactly like missing ones.
func (s *OrderService) GetOrderDetail(ctx context.Context, orderID, customerID int) ([]models.OrderDetailView, error) {
	details, err := s.orders.DetailsForCustomer(ctx, orderID, customerID)
	if err != nil {
		return nil, storeError(s.log, "load order details", err, "")
	}
	if len(details) == 0 {
		return nil, apperrors.NotFound("order not found")
	}
	return details, nil
}

func (s *OrderService) GetOrderSummary(ctx context.Context, orderID, customerID int) (*models.Order, error) {
	order, err := s.orders.FindForCustomer(ctx, orderID, customerID)
	if err != nil {
		return nil, storeError(s.log, "load order", err, "order not found")
	}
	return order, nil
}
