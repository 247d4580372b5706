package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/models"
)

// Column widths of shopping_cart.cart_id and shopping_cart.attributes.
const (
	MaxCartIDLength     = 36
	MaxAttributesLength = 255
)

type CartStore interface {
	ProductExists(ctx context.Context, productID int) (bool, error)
	UpsertItem(ctx context.Context, cartID string, productID int, attributes string) error
	FindItem(ctx context.Context, cartID string, productID int, attributes string) (*models.CartItemView, error)
	FindItemByID(ctx context.Context, itemID int) (*models.CartItemView, error)
	ListItems(ctx context.Context, cartID string) ([]models.CartItemView, error)
	UpdateQuantity(ctx context.Context, itemID, quantity int) error
	DeleteItem(ctx context.Context, itemID int) error
	DeleteCart(ctx context.Context, cartID string) error
}

type CartService struct {
	store CartStore
	log   *zap.Logger
}

func NewCartService(store CartStore, log *zap.Logger) *CartService {
	return &CartService{store: store, log: orNop(log)}
}

// GenerateCartID returns a fresh anonymous cart identifier.
func (s *CartService) GenerateCartID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// AddItem puts one unit of a product into the cart. Adding the same product
// with the same attributes again bumps the existing line.
func (s *CartService) AddItem(ctx context.Context, cartID string, productID int, attributes string) (*models.CartItemView, error) {
	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(attributes) > MaxAttributesLength {
		return nil, apperrors.Validation("attributes must be at most 255 characters")
	}
	if productID < 1 {
		return nil, apperrors.Validation("product_id must be positive")
	}

	exists, err := s.store.ProductExists(ctx, productID)
	if err != nil {
		return nil, storeError(s.log, "check product", err, "")
	}
	if !exists {
		return nil, apperrors.NotFound("product not found")
	}

	if err := s.store.UpsertItem(ctx, cartID, productID, attributes); err != nil {
		return nil, storeError(s.log, "add cart item", err, "")
	}
	item, err := s.store.FindItem(ctx, cartID, productID, attributes)
	if err != nil {
		return nil, storeError(s.log, "read cart item", err, "")
	}
	return item, nil
}

func validateCartID(cartID string) error {
	switch {
	case cartID == "":
		return apperrors.Validation("cart_id is required")
	case utf8.RuneCountInString(cartID) > MaxCartIDLength:
		return apperrors.Validation("cart_id must be at most 36 characters")
	}
	return nil
}

func (s *CartService) GetItems(ctx context.Context, cartID string) ([]models.CartItemView, error) {
	items, err := s.store.ListItems(ctx, cartID)
	if err != nil {
		return nil, storeError(s.log, "list cart items", err, "")
	}
	return items, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, itemID, quantity int) (*models.CartItemView, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	if _, err := s.store.FindItemByID(ctx, itemID); err != nil {
		return nil, storeError(s.log, "find cart item", err, "cart item not found")
	}
	if err := s.store.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, storeError(s.log, "update cart item", err, "")
	}
	item, err := s.store.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, storeError(s.log, "read cart item", err, "cart item not found")
	}
	return item, nil
}

// RemoveItem succeeds whether or not the line exists.
func (s *CartService) RemoveItem(ctx context.Context, itemID int) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return storeError(s.log, "remove cart item", err, "")
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	if err := s.store.DeleteCart(ctx, cartID); err != nil {
		return storeError(s.log, "clear cart", err, "")
	}
	return nil
}

func (s *CartService) TotalAmount(ctx context.Context, cartID string) (decimal.Decimal, error) {
	items, err := s.GetItems(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return cartTotal(items), nil
}

func cartTotal(items []models.CartItemView) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
