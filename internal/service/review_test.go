package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// memReviewStore implements domain.ReviewStore over a slice.
type memReviewStore struct {
	mu      sync.Mutex
	reviews []*domain.Review
}

func (m *memReviewStore) Create(ctx context.Context, r *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.reviews {
		if existing.User == r.User && existing.Product == r.Product {
			return domain.Conflict("review.create", "you have already reviewed this product")
		}
	}
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *memReviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memReviewStore) FindByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.User == userID && r.Product == productID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memReviewStore) Update(ctx context.Context, r *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.reviews {
		if existing.ID == r.ID {
			m.reviews[i] = r
			return nil
		}
	}
	return domain.NotFound("review.update", "review", r.ID.Hex())
}

func (m *memReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return domain.NotFound("review.delete", "review", id.Hex())
}

func (m *memReviewStore) List(ctx context.Context, q domain.ListQuery) ([]domain.Review, int64, error) {
	return m.collect(func(*domain.Review) bool { return true })
}

func (m *memReviewStore) ListByProduct(ctx context.Context, productID primitive.ObjectID, q domain.ListQuery) ([]domain.Review, int64, error) {
	return m.collect(func(r *domain.Review) bool { return r.Product == productID })
}

func (m *memReviewStore) ListByUser(ctx context.Context, userID primitive.ObjectID, q domain.ListQuery) ([]domain.Review, int64, error) {
	return m.collect(func(r *domain.Review) bool { return r.User == userID })
}

func (m *memReviewStore) AllForProduct(ctx context.Context, productID primitive.ObjectID) ([]domain.Review, error) {
	out, _, err := m.collect(func(r *domain.Review) bool { return r.Product == productID })
	return out, err
}

func (m *memReviewStore) collect(keep func(*domain.Review) bool) ([]domain.Review, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Review{}
	for _, r := range m.reviews {
		if keep(r) {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func TestReviewCreateRefreshesRating(t *testing.T) {
	product := makeProduct(100, 0, 5)
	products := newMemProductStore(product)
	svc := NewReviewService(&memReviewStore{}, products)
	ctx := context.Background()

	_, err := svc.Create(ctx, primitive.NewObjectID(), product.ID, "great", 5)
	require.NoError(t, err)
	_, err = svc.Create(ctx, primitive.NewObjectID(), product.ID, "okay", 4)
	require.NoError(t, err)

	stored, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stored.RatingsAverage)
	assert.Equal(t, 2, stored.RatingsQuantity)
}

func TestReviewAverageRoundsToOneDecimal(t *testing.T) {
	product := makeProduct(100, 0, 5)
	products := newMemProductStore(product)
	svc := NewReviewService(&memReviewStore{}, products)
	ctx := context.Background()

	for _, rating := range []int{5, 4, 4} {
		_, err := svc.Create(ctx, primitive.NewObjectID(), product.ID, "", rating)
		require.NoError(t, err)
	}

	stored, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	// 13/3 = 4.333... rounds to 4.3
	assert.Equal(t, 4.3, stored.RatingsAverage)
	assert.Equal(t, 3, stored.RatingsQuantity)
}

func TestReviewOnePerUserAndProduct(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc := NewReviewService(&memReviewStore{}, newMemProductStore(product))
	userID := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, product.ID, "great", 5)
	require.NoError(t, err)

	_, err = svc.Create(ctx, userID, product.ID, "changed my mind", 2)
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestReviewUnknownProduct(t *testing.T) {
	svc := NewReviewService(&memReviewStore{}, newMemProductStore())

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "", 3)
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestReviewRatingBounds(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc := NewReviewService(&memReviewStore{}, newMemProductStore(product))

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), primitive.NewObjectID(), product.ID, "", rating)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
}

func TestReviewUpdateOwnership(t *testing.T) {
	product := makeProduct(100, 0, 5)
	svc := NewReviewService(&memReviewStore{}, newMemProductStore(product))
	owner := primitive.NewObjectID()
	ctx := context.Background()

	review, err := svc.Create(ctx, owner, product.ID, "great", 5)
	require.NoError(t, err)

	two := 2
	_, err = svc.Update(ctx, primitive.NewObjectID(), review.ID, nil, &two)
	require.Error(t, err)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))

	updated, err := svc.Update(ctx, owner, review.ID, nil, &two)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
}

func TestReviewDeleteUpdatesRollup(t *testing.T) {
	product := makeProduct(100, 0, 5)
	products := newMemProductStore(product)
	svc := NewReviewService(&memReviewStore{}, products)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	review, err := svc.Create(ctx, userID, product.ID, "great", 5)
	require.NoError(t, err)

	// A non-owner, non-admin cannot delete it.
	err = svc.Delete(ctx, primitive.NewObjectID(), domain.RoleUser, review.ID)
	require.Error(t, err)
	assert.Equal(t, domain.EFORBIDDEN, domain.ErrorCode(err))

	// An admin can.
	require.NoError(t, svc.Delete(ctx, primitive.NewObjectID(), domain.RoleAdmin, review.ID))

	stored, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stored.RatingsAverage)
	assert.Equal(t, 0, stored.RatingsQuantity)
}
