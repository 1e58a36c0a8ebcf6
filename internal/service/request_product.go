package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// RequestProductService handles customer requests for products the
// catalog lacks. Users manage their own requests; admins see all of them.
type RequestProductService interface {
	Create(ctx context.Context, userID primitive.ObjectID, in RequestProductInput) (*domain.RequestProduct, error)

	// Get returns one request. Users may only read their own.
	Get(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (*domain.RequestProduct, error)

	// Update edits the caller's own request.
	Update(ctx context.Context, userID, id primitive.ObjectID, in UpdateRequestProductInput) (*domain.RequestProduct, error)

	// Delete removes the caller's own request.
	Delete(ctx context.Context, userID, id primitive.ObjectID) error

	// List returns all requests for admins, paginated.
	List(ctx context.Context, q domain.ListQuery) ([]domain.RequestProduct, *domain.Pagination, error)

	// ListMine returns the caller's own requests, paginated.
	ListMine(ctx context.Context, userID primitive.ObjectID, q domain.ListQuery) ([]domain.RequestProduct, *domain.Pagination, error)
}

// RequestProductInput is the request creation payload.
type RequestProductInput struct {
	TitleNeed string
	Details   string
	Quantity  int
	Category  string
}

// UpdateRequestProductInput carries optional request updates.
type UpdateRequestProductInput struct {
	TitleNeed *string
	Details   *string
	Quantity  *int
	Category  *string
}

type requestProductService struct {
	requests domain.RequestProductStore
}

// NewRequestProductService creates a new request-product service.
func NewRequestProductService(requests domain.RequestProductStore) RequestProductService {
	return &requestProductService{requests: requests}
}

func (s *requestProductService) Create(ctx context.Context, userID primitive.ObjectID, in RequestProductInput) (*domain.RequestProduct, error) {
	request := &domain.RequestProduct{
		TitleNeed: strings.TrimSpace(in.TitleNeed),
		Details:   in.Details,
		Quantity:  in.Quantity,
		Category:  in.Category,
		User:      userID,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestProductService) Get(ctx context.Context, userID primitive.ObjectID, role domain.Role, id primitive.ObjectID) (*domain.RequestProduct, error) {
	const op = "requestproduct.get"

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load request")
	}
	if request == nil {
		return nil, domain.NotFound(op, "request", id.Hex())
	}
	if role != domain.RoleAdmin && request.User != userID {
		return nil, domain.Forbidden(op, "you may only view your own requests")
	}
	return request, nil
}

func (s *requestProductService) Update(ctx context.Context, userID, id primitive.ObjectID, in UpdateRequestProductInput) (*domain.RequestProduct, error) {
	const op = "requestproduct.update"

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load request")
	}
	if request == nil {
		return nil, domain.NotFound(op, "request", id.Hex())
	}
	if request.User != userID {
		return nil, domain.Forbidden(op, "you may only edit your own requests")
	}

	if in.TitleNeed != nil {
		request.TitleNeed = strings.TrimSpace(*in.TitleNeed)
	}
	if in.Details != nil {
		request.Details = *in.Details
	}
	if in.Quantity != nil {
		request.Quantity = *in.Quantity
	}
	if in.Category != nil {
		request.Category = *in.Category
	}

	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestProductService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	const op = "requestproduct.delete"

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to load request")
	}
	if request == nil {
		return domain.NotFound(op, "request", id.Hex())
	}
	if request.User != userID {
		return domain.Forbidden(op, "you may only delete your own requests")
	}
	return s.requests.Delete(ctx, id)
}

func (s *requestProductService) List(ctx context.Context, q domain.ListQuery) ([]domain.RequestProduct, *domain.Pagination, error) {
	const op = "requestproduct.list"

	q = q.Normalize()
	requests, total, err := s.requests.List(ctx, q)
	if err != nil {
		return nil, nil, domain.Internal(err, op, "failed to list requests")
	}

	p := domain.NewPagination(q, total, len(requests))
	return requests, &p, nil
}

func (s *requestProductService) ListMine(ctx context.Context, userID primitive.ObjectID, q domain.ListQuery) ([]domain.RequestProduct, *domain.Pagination, error) {
	const op = "requestproduct.list_mine"

	q = q.Normalize()
	requests, total, err := s.requests.ListByUser(ctx, userID, q)
	if err != nil {
		return nil, nil, domain.Internal(err, op, "failed to list requests")
	}

	p := domain.NewPagination(q, total, len(requests))
	return requests, &p, nil
}
