package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/romilkhanna/turing-backend/models"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &o.ShippingID, &o.TaxID, &o.CreatedOn)
	return o, err
}

func scanOrderDetail(row rowScanner) (models.OrderDetailView, error) {
	var d models.OrderDetailView
	err := row.Scan(&d.ItemID, &d.OrderID, &d.ProductID, &d.Attributes, &d.ProductName, &d.Quantity, &d.UnitCost)
	if err != nil {
		return d, err
	}
	d.Subtotal = d.OrderDetail.Subtotal()
	return d, nil
}

// CreateWithDetails writes the order header and every detail row in one
// transaction. Any failure rolls the whole order back.
func (r *OrderRepository) CreateWithDetails(ctx context.Context, order models.Order, details []models.OrderDetail) (orderID int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
			}
		}
	}()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (customer_id, total_amount, shipping_id, tax_id, created_on)
		VALUES (?, ?, ?, ?, ?)`,
		order.CustomerID, order.TotalAmount, order.ShippingID, order.TaxID, order.CreatedOn)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read order id: %w", err)
	}

	for _, d := range details {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_detail (order_id, product_id, attributes, product_name, quantity, unit_cost)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, d.ProductID, d.Attributes, d.ProductName, d.Quantity, d.UnitCost)
		if err != nil {
			return 0, fmt.Errorf("insert order detail for product %d: %w", d.ProductID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return int(id), nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int) ([]models.Order, error) {
	orders, err := queryRows(ctx, r.db, scanOrder, `
		SELECT order_id, customer_id, total_amount, shipping_id, tax_id, created_on
		FROM orders
		WHERE customer_id = ?
		ORDER BY created_on DESC, order_id DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) FindForCustomer(ctx context.Context, orderID, customerID int) (*models.Order, error) {
	order, err := queryOne(ctx, r.db, scanOrder, `
		SELECT order_id, customer_id, total_amount, shipping_id, tax_id, created_on
		FROM orders
		WHERE order_id = ? AND customer_id = ?`, orderID, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find order %d: %w", orderID, err)
	}
	return &order, nil
}

// DetailsForCustomer only returns rows of an order owned by customerID.
func (r *OrderRepository) DetailsForCustomer(ctx context.Context, orderID, customerID int) ([]models.OrderDetailView, error) {
	details, err := queryRows(ctx, r.db, scanOrderDetail, `
		SELECT od.item_id, od.order_id, od.product_id, od.attributes, od.product_name, od.quantity, od.unit_cost
		FROM order_detail od
		JOIN orders o ON o.order_id = od.order_id
		WHERE od.order_id = ? AND o.customer_id = ?
		ORDER BY od.item_id`, orderID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	return details, nil
}
