package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// SubCategoryService manages category refinements. Creation and parent
// reassignment both require the parent category to exist.
type SubCategoryService interface {
	Create(ctx context.Context, name string, categoryID primitive.ObjectID) (*domain.SubCategory, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.SubCategory, error)
	Update(ctx context.Context, id primitive.ObjectID, name *string, categoryID *primitive.ObjectID) (*domain.SubCategory, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]domain.SubCategory, error)
}

type subCategoryService struct {
	subCategories domain.SubCategoryStore
	categories    domain.CategoryStore
}

// NewSubCategoryService creates a new sub-category service.
func NewSubCategoryService(subCategories domain.SubCategoryStore, categories domain.CategoryStore) SubCategoryService {
	return &subCategoryService{subCategories: subCategories, categories: categories}
}

func (s *subCategoryService) Create(ctx context.Context, name string, categoryID primitive.ObjectID) (*domain.SubCategory, error) {
	const op = "subcategory.create"

	name = strings.ToLower(strings.TrimSpace(name))

	existing, err := s.subCategories.FindByName(ctx, name)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up sub-category")
	}
	if existing != nil {
		return nil, domain.Conflict(op, "sub-category already exists")
	}

	parent, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load category")
	}
	if parent == nil {
		return nil, domain.NotFound(op, "category", categoryID.Hex())
	}

	subCategory := &domain.SubCategory{Name: name, Category: categoryID}
	if err := s.subCategories.Create(ctx, subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

func (s *subCategoryService) Get(ctx context.Context, id primitive.ObjectID) (*domain.SubCategory, error) {
	const op = "subcategory.get"

	subCategory, err := s.subCategories.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load sub-category")
	}
	if subCategory == nil {
		return nil, domain.NotFound(op, "sub-category", id.Hex())
	}
	return subCategory, nil
}

func (s *subCategoryService) Update(ctx context.Context, id primitive.ObjectID, name *string, categoryID *primitive.ObjectID) (*domain.SubCategory, error) {
	const op = "subcategory.update"

	subCategory, err := s.subCategories.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load sub-category")
	}
	if subCategory == nil {
		return nil, domain.NotFound(op, "sub-category", id.Hex())
	}

	if name != nil {
		newName := strings.ToLower(strings.TrimSpace(*name))
		if newName != subCategory.Name {
			existing, err := s.subCategories.FindByName(ctx, newName)
			if err != nil {
				return nil, domain.Internal(err, op, "failed to look up sub-category")
			}
			if existing != nil {
				return nil, domain.Conflict(op, "sub-category already exists")
			}
			subCategory.Name = newName
		}
	}
	if categoryID != nil {
		parent, err := s.categories.FindByID(ctx, *categoryID)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to load category")
		}
		if parent == nil {
			return nil, domain.NotFound(op, "category", categoryID.Hex())
		}
		subCategory.Category = *categoryID
	}

	if err := s.subCategories.Update(ctx, subCategory); err != nil {
		return nil, err
	}
	return subCategory, nil
}

func (s *subCategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	const op = "subcategory.delete"

	subCategory, err := s.subCategories.FindByID(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to load sub-category")
	}
	if subCategory == nil {
		return domain.NotFound(op, "sub-category", id.Hex())
	}
	return s.subCategories.Delete(ctx, id)
}

func (s *subCategoryService) List(ctx context.Context) ([]domain.SubCategory, error) {
	const op = "subcategory.list"

	subCategories, err := s.subCategories.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list sub-categories")
	}
	return subCategories, nil
}
