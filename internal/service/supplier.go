package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// SupplierService manages sourcing partners.
type SupplierService interface {
	Create(ctx context.Context, name, website string) (*domain.Supplier, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error)
	Update(ctx context.Context, id primitive.ObjectID, name, website *string) (*domain.Supplier, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]domain.Supplier, error)
}

type supplierService struct {
	suppliers domain.SupplierStore
}

// NewSupplierService creates a new supplier service.
func NewSupplierService(suppliers domain.SupplierStore) SupplierService {
	return &supplierService{suppliers: suppliers}
}

func (s *supplierService) Create(ctx context.Context, name, website string) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		Name:    strings.ToLower(strings.TrimSpace(name)),
		Website: website,
	}
	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error) {
	const op = "supplier.get"

	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load supplier")
	}
	if supplier == nil {
		return nil, domain.NotFound(op, "supplier", id.Hex())
	}
	return supplier, nil
}

func (s *supplierService) Update(ctx context.Context, id primitive.ObjectID, name, website *string) (*domain.Supplier, error) {
	const op = "supplier.update"

	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load supplier")
	}
	if supplier == nil {
		return nil, domain.NotFound(op, "supplier", id.Hex())
	}

	if name != nil {
		supplier.Name = strings.ToLower(strings.TrimSpace(*name))
	}
	if website != nil {
		supplier.Website = *website
	}

	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, id primitive.ObjectID) error {
	const op = "supplier.delete"

	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to load supplier")
	}
	if supplier == nil {
		return domain.NotFound(op, "supplier", id.Hex())
	}
	return s.suppliers.Delete(ctx, id)
}

func (s *supplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	const op = "supplier.list"

	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list suppliers")
	}
	return suppliers, nil
}
