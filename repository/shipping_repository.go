package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/romilkhanna/turing-backend/models"
)

type ShippingRepository struct {
	db *sql.DB
}

func NewShippingRepository(db *sql.DB) *ShippingRepository {
	return &ShippingRepository{db: db}
}

func scanShipping(row rowScanner) (models.Shipping, error) {
	var s models.Shipping
	err := row.Scan(&s.ID, &s.Type, &s.Cost, &s.ShippingRegionID)
	return s, err
}

func scanTax(row rowScanner) (models.Tax, error) {
	var t models.Tax
	err := row.Scan(&t.ID, &t.Type, &t.Percentage)
	return t, err
}

func (r *ShippingRepository) ListRegions(ctx context.Context) ([]models.ShippingRegion, error) {
	rows, err := queryRows(ctx, r.db, func(row rowScanner) (models.ShippingRegion, error) {
		var sr models.ShippingRegion
		err := row.Scan(&sr.ID, &sr.Name)
		return sr, err
	}, "SELECT shipping_region_id, shipping_region FROM shipping_region ORDER BY shipping_region_id")
	if err != nil {
		return nil, fmt.Errorf("list shipping regions: %w", err)
	}
	return rows, nil
}

func (r *ShippingRepository) ShippingByRegion(ctx context.Context, regionID int) ([]models.Shipping, error) {
	rows, err := queryRows(ctx, r.db, scanShipping, `
		SELECT shipping_id, shipping_type, shipping_cost, shipping_region_id
		FROM shipping WHERE shipping_region_id = ? ORDER BY shipping_id`, regionID)
	if err != nil {
		return nil, fmt.Errorf("list shipping for region %d: %w", regionID, err)
	}
	return rows, nil
}

func (r *ShippingRepository) GetShipping(ctx context.Context, shippingID int) (*models.Shipping, error) {
	s, err := queryOne(ctx, r.db, scanShipping, `
		SELECT shipping_id, shipping_type, shipping_cost, shipping_region_id
		FROM shipping WHERE shipping_id = ?`, shippingID)
	if err != nil {
		return nil, notFoundOr(err, "get shipping %d", shippingID)
	}
	return &s, nil
}

func (r *ShippingRepository) ListTaxes(ctx context.Context) ([]models.Tax, error) {
	rows, err := queryRows(ctx, r.db, scanTax, "SELECT tax_id, tax_type, tax_percentage FROM tax ORDER BY tax_id")
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	return rows, nil
}

func (r *ShippingRepository) GetTax(ctx context.Context, taxID int) (*models.Tax, error) {
	t, err := queryOne(ctx, r.db, scanTax,
		"SELECT tax_id, tax_type, tax_percentage FROM tax WHERE tax_id = ?", taxID)
	if err != nil {
		return nil, notFoundOr(err, "get tax %d", taxID)
	}
	return &t, nil
}
