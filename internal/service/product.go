package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// ProductService manages the catalog. Titles are unique; the category and
// optional sub-category/brand references must exist at write time.
type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q domain.ListQuery, f domain.ProductFilter) ([]domain.Product, *domain.Pagination, error)
}

// CreateProductInput is the full product creation payload.
type CreateProductInput struct {
	Title              string
	Description        string
	Quantity           int
	Price              float64
	PriceAfterDiscount float64
	ImageCover         string
	Images             []string
	Colors             []string
	Category           primitive.ObjectID
	SubCategory        primitive.ObjectID
	Brand              primitive.ObjectID
}

// UpdateProductInput carries optional product updates. Nil fields are left
// unchanged.
type UpdateProductInput struct {
	Title              *string
	Description        *string
	Quantity           *int
	Price              *float64
	PriceAfterDiscount *float64
	ImageCover         *string
	Images             []string
	Colors             []string
	Category           *primitive.ObjectID
	SubCategory        *primitive.ObjectID
	Brand              *primitive.ObjectID
}

type productService struct {
	products      domain.ProductStore
	categories    domain.CategoryStore
	subCategories domain.SubCategoryStore
	brands        domain.BrandStore
}

// NewProductService creates a new product service.
func NewProductService(products domain.ProductStore, categories domain.CategoryStore, subCategories domain.SubCategoryStore, brands domain.BrandStore) ProductService {
	return &productService{
		products:      products,
		categories:    categories,
		subCategories: subCategories,
		brands:        brands,
	}
}

func (s *productService) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	const op = "product.create"

	title := strings.TrimSpace(in.Title)

	existing, err := s.products.FindByTitle(ctx, title)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up product")
	}
	if existing != nil {
		return nil, domain.Conflict(op, "product already exists")
	}

	if in.PriceAfterDiscount > in.Price {
		return nil, domain.Invalid(op, "discount must not exceed price")
	}

	if err := s.checkRefs(ctx, op, in.Category, in.SubCategory, in.Brand); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Title:              title,
		Description:        in.Description,
		Quantity:           in.Quantity,
		Price:              in.Price,
		PriceAfterDiscount: in.PriceAfterDiscount,
		ImageCover:         in.ImageCover,
		Images:             in.Images,
		Colors:             in.Colors,
		Category:           in.Category,
		SubCategory:        in.SubCategory,
		Brand:              in.Brand,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	const op = "product.get"

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if product == nil {
		return nil, domain.NotFound(op, "product", id.Hex())
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id primitive.ObjectID, in UpdateProductInput) (*domain.Product, error) {
	const op = "product.update"

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if product == nil {
		return nil, domain.NotFound(op, "product", id.Hex())
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title != product.Title {
			existing, err := s.products.FindByTitle(ctx, title)
			if err != nil {
				return nil, domain.Internal(err, op, "failed to look up product")
			}
			if existing != nil {
				return nil, domain.Conflict(op, "product already exists")
			}
			product.Title = title
		}
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.Invalid(op, "quantity must not be negative")
		}
		product.Quantity = *in.Quantity
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.PriceAfterDiscount != nil {
		product.PriceAfterDiscount = *in.PriceAfterDiscount
	}
	if product.PriceAfterDiscount > product.Price {
		return nil, domain.Invalid(op, "discount must not exceed price")
	}
	if in.ImageCover != nil {
		product.ImageCover = *in.ImageCover
	}
	if in.Images != nil {
		product.Images = in.Images
	}
	if in.Colors != nil {
		product.Colors = in.Colors
	}

	category := product.Category
	subCategory := product.SubCategory
	brand := product.Brand
	if in.Category != nil {
		category = *in.Category
	}
	if in.SubCategory != nil {
		subCategory = *in.SubCategory
	}
	if in.Brand != nil {
		brand = *in.Brand
	}
	if in.Category != nil || in.SubCategory != nil || in.Brand != nil {
		if err := s.checkRefs(ctx, op, category, subCategory, brand); err != nil {
			return nil, err
		}
		product.Category = category
		product.SubCategory = subCategory
		product.Brand = brand
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	const op = "product.delete"

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to load product")
	}
	if product == nil {
		return domain.NotFound(op, "product", id.Hex())
	}
	return s.products.Delete(ctx, id)
}

func (s *productService) List(ctx context.Context, q domain.ListQuery, f domain.ProductFilter) ([]domain.Product, *domain.Pagination, error) {
	const op = "product.list"

	q = q.Normalize()
	products, total, err := s.products.List(ctx, q, f)
	if err != nil {
		return nil, nil, domain.Internal(err, op, "failed to list products")
	}

	p := domain.NewPagination(q, total, len(products))
	return products, &p, nil
}

// checkRefs verifies the category exists and, when set, the sub-category
// and brand too. The sub-category must belong to the given category.
func (s *productService) checkRefs(ctx context.Context, op string, categoryID, subCategoryID, brandID primitive.ObjectID) error {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return domain.Internal(err, op, "failed to load category")
	}
	if category == nil {
		return domain.NotFound(op, "category", categoryID.Hex())
	}

	if !subCategoryID.IsZero() {
		subCategory, err := s.subCategories.FindByID(ctx, subCategoryID)
		if err != nil {
			return domain.Internal(err, op, "failed to load sub-category")
		}
		if subCategory == nil {
			return domain.NotFound(op, "sub-category", subCategoryID.Hex())
		}
		if subCategory.Category != categoryID {
			return domain.Invalid(op, "sub-category does not belong to the given category")
		}
	}

	if !brandID.IsZero() {
		brand, err := s.brands.FindByID(ctx, brandID)
		if err != nil {
			return domain.Internal(err, op, "failed to load brand")
		}
		if brand == nil {
			return domain.NotFound(op, "brand", brandID.Hex())
		}
	}

	return nil
}
