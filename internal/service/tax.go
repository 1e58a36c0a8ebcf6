package service

import (
	"context"

	"github.com/asalem/souq/internal/domain"
)

// TaxService manages the storewide tax and shipping configuration, a
// single document created on first write.
type TaxService interface {
	// CreateOrUpdate sets the configuration, creating it on first call.
	CreateOrUpdate(ctx context.Context, taxPrice, shippingPrice float64) (*domain.Tax, error)

	// Get returns the current configuration.
	Get(ctx context.Context) (*domain.Tax, error)

	// Reset zeroes both charges.
	Reset(ctx context.Context) error
}

type taxService struct {
	taxes domain.TaxStore
}

// NewTaxService creates a new tax service.
func NewTaxService(taxes domain.TaxStore) TaxService {
	return &taxService{taxes: taxes}
}

func (s *taxService) CreateOrUpdate(ctx context.Context, taxPrice, shippingPrice float64) (*domain.Tax, error) {
	const op = "tax.create_or_update"

	if taxPrice < 0 || shippingPrice < 0 {
		return nil, domain.Invalid(op, "charges must not be negative")
	}

	tax, err := s.taxes.Find(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load tax configuration")
	}

	if tax == nil {
		tax = &domain.Tax{TaxPrice: taxPrice, ShippingPrice: shippingPrice}
		if err := s.taxes.Create(ctx, tax); err != nil {
			return nil, err
		}
		return tax, nil
	}

	tax.TaxPrice = taxPrice
	tax.ShippingPrice = shippingPrice
	if err := s.taxes.Update(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

func (s *taxService) Get(ctx context.Context) (*domain.Tax, error) {
	const op = "tax.get"

	tax, err := s.taxes.Find(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load tax configuration")
	}
	if tax == nil {
		return nil, domain.NotFound(op, "tax configuration", "singleton")
	}
	return tax, nil
}

func (s *taxService) Reset(ctx context.Context) error {
	const op = "tax.reset"

	tax, err := s.taxes.Find(ctx)
	if err != nil {
		return domain.Internal(err, op, "failed to load tax configuration")
	}
	if tax == nil {
		return nil
	}

	tax.TaxPrice = 0
	tax.ShippingPrice = 0
	return s.taxes.Update(ctx, tax)
}
