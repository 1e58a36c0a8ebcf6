package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/domain"
)

// CouponService manages percentage discount codes. Expiry dates must lie
// in the future at write time.
type CouponService interface {
	Create(ctx context.Context, name string, expiryDate time.Time, discount float64) (*domain.Coupon, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error)
	Update(ctx context.Context, id primitive.ObjectID, name *string, expiryDate *time.Time, discount *float64) (*domain.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]domain.Coupon, error)
}

type couponService struct {
	coupons domain.CouponStore
}

// NewCouponService creates a new coupon service.
func NewCouponService(coupons domain.CouponStore) CouponService {
	return &couponService{coupons: coupons}
}

func (s *couponService) Create(ctx context.Context, name string, expiryDate time.Time, discount float64) (*domain.Coupon, error) {
	const op = "coupon.create"

	name = strings.TrimSpace(name)

	if !expiryDate.After(time.Now()) {
		return nil, domain.Invalid(op, "expiry date must be in the future")
	}
	if discount <= 0 || discount > 100 {
		return nil, domain.Invalid(op, "discount must be a percentage between 0 and 100")
	}

	existing, err := s.coupons.FindByName(ctx, name)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up coupon")
	}
	if existing != nil {
		return nil, domain.Conflict(op, "coupon already exists")
	}

	coupon := &domain.Coupon{
		Name:       name,
		ExpiryDate: expiryDate,
		Discount:   discount,
	}
	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Coupon, error) {
	const op = "coupon.get"

	coupon, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load coupon")
	}
	if coupon == nil {
		return nil, domain.NotFound(op, "coupon", id.Hex())
	}
	return coupon, nil
}

func (s *couponService) Update(ctx context.Context, id primitive.ObjectID, name *string, expiryDate *time.Time, discount *float64) (*domain.Coupon, error) {
	const op = "coupon.update"

	coupon, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load coupon")
	}
	if coupon == nil {
		return nil, domain.NotFound(op, "coupon", id.Hex())
	}

	if name != nil {
		newName := strings.TrimSpace(*name)
		if newName != coupon.Name {
			existing, err := s.coupons.FindByName(ctx, newName)
			if err != nil {
				return nil, domain.Internal(err, op, "failed to look up coupon")
			}
			if existing != nil {
				return nil, domain.Conflict(op, "coupon already exists")
			}
			coupon.Name = newName
		}
	}
	if expiryDate != nil {
		if !expiryDate.After(time.Now()) {
			return nil, domain.Invalid(op, "expiry date must be in the future")
		}
		coupon.ExpiryDate = *expiryDate
	}
	if discount != nil {
		if *discount <= 0 || *discount > 100 {
			return nil, domain.Invalid(op, "discount must be a percentage between 0 and 100")
		}
		coupon.Discount = *discount
	}

	if err := s.coupons.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) Delete(ctx context.Context, id primitive.ObjectID) error {
	const op = "coupon.delete"

	coupon, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to load coupon")
	}
	if coupon == nil {
		return domain.NotFound(op, "coupon", id.Hex())
	}
	return s.coupons.Delete(ctx, id)
}

func (s *couponService) List(ctx context.Context) ([]domain.Coupon, error) {
	const op = "coupon.list"

	coupons, err := s.coupons.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list coupons")
	}
	return coupons, nil
}
