package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// BrandService manages manufacturer labels.
type BrandService interface {
	Create(ctx context.Context, name, image string) (*domain.Brand, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Brand, error)
	Update(ctx context.Context, id primitive.ObjectID, name, image *string) (*domain.Brand, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]domain.Brand, error)
}

type brandService struct {
	brands domain.BrandStore
}

// NewBrandService creates a new brand service.
func NewBrandService(brands domain.BrandStore) BrandService {
	return &brandService{brands: brands}
}

func (s *brandService) Create(ctx context.Context, name, image string) (*domain.Brand, error) {
	brand := &domain.Brand{
		Name:  strings.ToLower(strings.TrimSpace(name)),
		Image: image,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *brandService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Brand, error) {
	const op = "brand.get"

	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load brand")
	}
	if brand == nil {
		return nil, domain.NotFound(op, "brand", id.Hex())
	}
	return brand, nil
}

func (s *brandService) Update(ctx context.Context, id primitive.ObjectID, name, image *string) (*domain.Brand, error) {
	const op = "brand.update"

	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load brand")
	}
	if brand == nil {
		return nil, domain.NotFound(op, "brand", id.Hex())
	}

	if name != nil {
		brand.Name = strings.ToLower(strings.TrimSpace(*name))
	}
	if image != nil {
		brand.Image = *image
	}

	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *brandService) Delete(ctx context.Context, id primitive.ObjectID) error {
	const op = "brand.delete"

	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to load brand")
	}
	if brand == nil {
		return domain.NotFound(op, "brand", id.Hex())
	}
	return s.brands.Delete(ctx, id)
}

func (s *brandService) List(ctx context.Context) ([]domain.Brand, error) {
	const op = "brand.list"

	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list brands")
	}
	return brands, nil
}
