package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/apperrors"
	"github.com/romilkhanna/turing-backend/models"
)

type ShippingStore interface {
	ListRegions(ctx context.Context) ([]models.ShippingRegion, error)
	ShippingByRegion(ctx context.Context, regionID int) ([]models.Shipping, error)
	ListTaxes(ctx context.Context) ([]models.Tax, error)
	GetTax(ctx context.Context, taxID int) (*models.Tax, error)
}

type ShippingService struct {
	store ShippingStore
	log   *zap.Logger
}

func NewShippingService(store ShippingStore, log *zap.Logger) *ShippingService {
	return &ShippingService{store: store, log: orNop(log)}
}

func (s *ShippingService) ListShippingRegions(ctx context.Context) ([]models.ShippingRegion, error) {
	rows, err := s.store.ListRegions(ctx)
	if err != nil {
		return nil, storeError(s.log, "list shipping regions", err, "")
	}
	return rows, nil
}

func (s *ShippingService) ShippingOptions(ctx context.Context, regionID int) ([]models.Shipping, error) {
	rows, err := s.store.ShippingByRegion(ctx, regionID)
	if err != nil {
		return nil, storeError(s.log, "list shipping options", err, "")
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound("shipping region not found")
	}
	return rows, nil
}

func (s *ShippingService) ListTaxes(ctx context.Context) ([]models.Tax, error) {
	rows, err := s.store.ListTaxes(ctx)
	if err != nil {
		return nil, storeError(s.log, "list taxes", err, "")
	}
	return rows, nil
}

func (s *ShippingService) GetTax(ctx context.Context, taxID int) (*models.Tax, error) {
	tax, err := s.store.GetTax(ctx, taxID)
	if err != nil {
		return nil, storeError(s.log, "get tax", err, "tax not found")
	}
	return tax, nil
}
