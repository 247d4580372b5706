package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/romilkhanna/turing-backend/models"
)

const cartItemSelect = `
	SELECT sc.item_id, sc.cart_id, sc.product_id, sc.attributes, sc.quantity, sc.added_on,
	       p.name, IF(p.discounted_price > 0, p.discounted_price, p.price), COALESCE(p.thumbnail, '')
	FROM shopping_cart sc
	JOIN product p ON p.product_id = sc.product_id`

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

func scanCartItem(row rowScanner) (models.CartItemView, error) {
	var v models.CartItemView
	err := row.Scan(&v.ItemID, &v.CartID, &v.ProductID, &v.Attributes, &v.Quantity, &v.AddedOn,
		&v.Name, &v.Price, &v.Image)
	if err != nil {
		return v, err
	}
	v.ComputeSubtotal()
	return v, nil
}

func (r *CartRepository) ProductExists(ctx context.Context, productID int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM product WHERE product_id = ?", productID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check product %d: %w", productID, err)
	}
	return true, nil
}

// UpsertItem creates the line with quantity 1 or bumps an existing line by one
// in a single statement, so concurrent adds never lose an increment.
func (r *CartRepository) UpsertItem(ctx context.Context, cartID string, productID int, attributes string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shopping_cart (cart_id, product_id, attributes, quantity, added_on)
		VALUES (?, ?, ?, 1, NOW())
		ON DUPLICATE KEY UPDATE quantity = quantity + 1`,
		cartID, productID, attributes)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) FindItem(ctx context.Context, cartID string, productID int, attributes string) (*models.CartItemView, error) {
	item, err := queryOne(ctx, r.db, scanCartItem,
		cartItemSelect+" WHERE sc.cart_id = ? AND sc.product_id = ? AND sc.attributes = ?",
		cartID, productID, attributes)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return &item, nil
}

func (r *CartRepository) FindItemByID(ctx context.Context, itemID int) (*models.CartItemView, error) {
	item, err := queryOne(ctx, r.db, scanCartItem, cartItemSelect+" WHERE sc.item_id = ?", itemID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find cart item %d: %w", itemID, err)
	}
	return &item, nil
}

func (r *CartRepository) ListItems(ctx context.Context, cartID string) ([]models.CartItemView, error) {
	items, err := queryRows(ctx, r.db, scanCartItem,
		cartItemSelect+" WHERE sc.cart_id = ? ORDER BY sc.item_id", cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE shopping_cart SET quantity = ? WHERE item_id = ?", quantity, itemID); err != nil {
		return fmt.Errorf("update cart item %d: %w", itemID, err)
	}
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID int) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM shopping_cart WHERE item_id = ?", itemID); err != nil {
		return fmt.Errorf("delete cart item %d: %w", itemID, err)
	}
	return nil
}

func (r *CartRepository) DeleteCart(ctx context.Context, cartID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM shopping_cart WHERE cart_id = ?", cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
