package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/romilkhanna/turing-backend/models"
)

const customerSelect = `
	SELECT customer_id, name, email, password,
	       COALESCE(address_1, ''), COALESCE(address_2, ''), COALESCE(city, ''), COALESCE(region, ''),
	       COALESCE(postal_code, ''), COALESCE(country, ''), shipping_region_id,
	       COALESCE(day_phone, ''), COALESCE(eve_phone, ''), COALESCE(mob_phone, '')
	FROM customer`

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row rowScanner) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash,
		&c.Address1, &c.Address2, &c.City, &c.Region, &c.PostalCode, &c.Country, &c.ShippingRegionID,
		&c.DayPhone, &c.EvePhone, &c.MobPhone)
	return c, err
}

// Create returns ErrDuplicate when the email is already registered.
func (r *CustomerRepository) Create(ctx context.Context, name, email, passwordHash string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO customer (name, email, password) VALUES (?, ?, ?)", name, email, passwordHash)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read customer id: %w", err)
	}
	return int(id), nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	c, err := queryOne(ctx, r.db, scanCustomer, customerSelect+" WHERE email = ?", email)
	if err != nil {
		return nil, notFoundOr(err, "find customer by email")
	}
	return &c, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int) (*models.Customer, error) {
	c, err := queryOne(ctx, r.db, scanCustomer, customerSelect+" WHERE customer_id = ?", customerID)
	if err != nil {
		return nil, notFoundOr(err, "find customer %d", customerID)
	}
	return &c, nil
}

// UpdateAddress does not report a missing customer: MySQL counts unchanged
// rows as unaffected, so callers check existence first.
func (r *CustomerRepository) UpdateAddress(ctx context.Context, customerID int, a models.Address) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customer
		SET address_1 = ?, address_2 = ?, city = ?, region = ?, postal_code = ?, country = ?, shipping_region_id = ?
		WHERE customer_id = ?`,
		a.Address1, a.Address2, a.City, a.Region, a.PostalCode, a.Country, a.ShippingRegionID, customerID)
	if err != nil {
		return fmt.Errorf("update customer %d address: %w", customerID, err)
	}
	return nil
}
