package service

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// ReviewService manages product reviews. A user reviews a product at most
// once; every write refreshes the product's denormalized rating rollup.
type ReviewService interface {
	Create(ctx context.Context, userID, productID primitive.ObjectID, reviewText string, rating int) (*domain.Review, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Review, error)

	// Update edits the caller's own review.
	Update(ctx context.Context, userID, reviewID primitive.ObjectID, reviewText *string, rating *int) (*domain.Review, error)

	// Delete removes a review. Admins may delete any review; users only
	// their own.
	Delete(ctx context.Context, userID primitive.ObjectID, role domain.Role, reviewID primitive.ObjectID) error

	ListByProduct(ctx context.Context, productID primitive.ObjectID, q domain.ListQuery) ([]domain.Review, *domain.Pagination, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, q domain.ListQuery) ([]domain.Review, *domain.Pagination, error)
}

type reviewService struct {
	reviews  domain.ReviewStore
	products domain.ProductStore
}

// NewReviewService creates a new review service.
func NewReviewService(reviews domain.ReviewStore, products domain.ProductStore) ReviewService {
	return &reviewService{reviews: reviews, products: products}
}

func (s *reviewService) Create(ctx context.Context, userID, productID primitive.ObjectID, reviewText string, rating int) (*domain.Review, error) {
	const op = "review.create"

	if rating < 1 || rating > 5 {
		return nil, domain.Invalid(op, "rating must be between 1 and 5")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if product == nil {
		return nil, domain.NotFound(op, "product", productID.Hex())
	}

	existing, err := s.reviews.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up review")
	}
	if existing != nil {
		return nil, domain.Conflict(op, "you have already reviewed this product")
	}

	review := &domain.Review{
		ReviewText: reviewText,
		Rating:     rating,
		User:       userID,
		Product:    productID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshRating(ctx, productID); err != nil {
		return nil, domain.Internal(err, op, "failed to refresh product rating")
	}
	return review, nil
}

func (s *reviewService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	const op = "review.get"

	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load review")
	}
	if review == nil {
		return nil, domain.NotFound(op, "review", id.Hex())
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, userID, reviewID primitive.ObjectID, reviewText *string, rating *int) (*domain.Review, error) {
	const op = "review.update"

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load review")
	}
	if review == nil {
		return nil, domain.NotFound(op, "review", reviewID.Hex())
	}
	if review.User != userID {
		return nil, domain.Forbidden(op, "you may only edit your own review")
	}

	if reviewText != nil {
		review.ReviewText = *reviewText
	}
	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, domain.Invalid(op, "rating must be between 1 and 5")
		}
		review.Rating = *rating
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshRating(ctx, review.Product); err != nil {
		return nil, domain.Internal(err, op, "failed to refresh product rating")
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, userID primitive.ObjectID, role domain.Role, reviewID primitive.ObjectID) error {
	const op = "review.delete"

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return domain.Internal(err, op, "failed to load review")
	}
	if review == nil {
		return domain.NotFound(op, "review", reviewID.Hex())
	}
	if role != domain.RoleAdmin && review.User != userID {
		return domain.Forbidden(op, "you may only delete your own review")
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	if err := s.refreshRating(ctx, review.Product); err != nil {
		return domain.Internal(err, op, "failed to refresh product rating")
	}
	return nil
}

func (s *reviewService) ListByProduct(ctx context.Context, productID primitive.ObjectID, q domain.ListQuery) ([]domain.Review, *domain.Pagination, error) {
	const op = "review.list_by_product"

	q = q.Normalize()
	reviews, total, err := s.reviews.ListByProduct(ctx, productID, q)
	if err != nil {
		return nil, nil, domain.Internal(err, op, "failed to list reviews")
	}

	p := domain.NewPagination(q, total, len(reviews))
	return reviews, &p, nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID primitive.ObjectID, q domain.ListQuery) ([]domain.Review, *domain.Pagination, error) {
	const op = "review.list_by_user"

	q = q.Normalize()
	reviews, total, err := s.reviews.ListByUser(ctx, userID, q)
	if err != nil {
		return nil, nil, domain.Internal(err, op, "failed to list reviews")
	}

	p := domain.NewPagination(q, total, len(reviews))
	return reviews, &p, nil
}

// refreshRating recomputes the product's average rating, rounded to one
// decimal, and its review count.
func (s *reviewService) refreshRating(ctx context.Context, productID primitive.ObjectID) error {
	reviews, err := s.reviews.AllForProduct(ctx, productID)
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		return s.products.UpdateRating(ctx, productID, 0, 0)
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	average := math.Round(float64(sum)/float64(len(reviews))*10) / 10

	return s.products.UpdateRating(ctx, productID, average, len(reviews))
}
