package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// CategoryService manages the top level of the catalog tree. Names are
// normalized to lowercase before any lookup or write.
type CategoryService interface {
	Create(ctx context.Context, name, image string) (*domain.Category, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, name, image *string) (*domain.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// List returns all categories, optionally filtered by a name substring.
	List(ctx context.Context, name string) ([]domain.Category, error)
}

type categoryService struct {
	categories domain.CategoryStore
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories domain.CategoryStore) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, name, image string) (*domain.Category, error) {
	const op = "category.create"

	name = strings.ToLower(strings.TrimSpace(name))

	existing, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up category")
	}
	if existing != nil {
		return nil, domain.Conflict(op, "category already exists")
	}

	category := &domain.Category{Name: name, Image: image}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	const op = "category.get"

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load category")
	}
	if category == nil {
		return nil, domain.NotFound(op, "category", id.Hex())
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id primitive.ObjectID, name, image *string) (*domain.Category, error) {
	const op = "category.update"

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load category")
	}
	if category == nil {
		return nil, domain.NotFound(op, "category", id.Hex())
	}

	if name != nil {
		newName := strings.ToLower(strings.TrimSpace(*name))
		if newName != category.Name {
			existing, err := s.categories.FindByName(ctx, newName)
			if err != nil {
				return nil, domain.Internal(err, op, "failed to look up category")
			}
			if existing != nil {
				return nil, domain.Conflict(op, "category already exists")
			}
			category.Name = newName
		}
	}
	if image != nil {
		category.Image = *image
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	const op = "category.delete"

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to load category")
	}
	if category == nil {
		return domain.NotFound(op, "category", id.Hex())
	}
	return s.categories.Delete(ctx, id)
}

func (s *categoryService) List(ctx context.Context, name string) ([]domain.Category, error) {
	const op = "category.list"

	categories, err := s.categories.List(ctx, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list categories")
	}
	return categories, nil
}
