package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/auth"
	"github.com/asalem/souq/internal/domain"
)

// UserService provides admin account management plus the self-service
// operations every signed-in user gets on their own record.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q domain.ListQuery, f domain.UserFilter) ([]domain.User, *domain.Pagination, error)

	// GetMe returns the calling user's own record.
	GetMe(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)

	// UpdateMe updates the calling user's own profile. Role changes are
	// ignored here; only admins assign roles.
	UpdateMe(ctx context.Context, userID primitive.ObjectID, in UpdateUserInput) (*domain.User, error)

	// DeleteMe deactivates the calling user's account without removing it.
	DeleteMe(ctx context.Context, userID primitive.ObjectID) error
}

// CreateUserInput is the admin-side account creation payload.
type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	Role        domain.Role
	Address     string
	PhoneNumber string
	Age         int
	Gender      string
}

// UpdateUserInput carries optional account updates. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	Name        *string
	Email       *string
	Password    *string
	Role        *domain.Role
	Active      *bool
	Address     *string
	PhoneNumber *string
	Age         *int
	Gender      *string
}

type userService struct {
	users domain.UserStore
}

// NewUserService creates a new user service.
func NewUserService(users domain.UserStore) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	const op = "user.create"

	emailAddr := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up user")
	}
	if existing != nil {
		return nil, domain.Conflict(op, "user already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		Age:          in.Age,
		Gender:       in.Gender,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	const op = "user.get"

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load user")
	}
	if user == nil {
		return nil, domain.NotFound(op, "user", id.Hex())
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id primitive.ObjectID, in UpdateUserInput) (*domain.User, error) {
	const op = "user.update"

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load user")
	}
	if user == nil {
		return nil, domain.NotFound(op, "user", id.Hex())
	}

	if err := s.apply(ctx, op, user, in, true); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	const op = "user.delete"

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to load user")
	}
	if user == nil {
		return domain.NotFound(op, "user", id.Hex())
	}
	return s.users.Delete(ctx, id)
}

func (s *userService) List(ctx context.Context, q domain.ListQuery, f domain.UserFilter) ([]domain.User, *domain.Pagination, error) {
	const op = "user.list"

	q = q.Normalize()
	users, total, err := s.users.List(ctx, q, f)
	if err != nil {
		return nil, nil, domain.Internal(err, op, "failed to list users")
	}

	p := domain.NewPagination(q, total, len(users))
	return users, &p, nil
}

func (s *userService) GetMe(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	return s.Get(ctx, userID)
}

func (s *userService) UpdateMe(ctx context.Context, userID primitive.ObjectID, in UpdateUserInput) (*domain.User, error) {
	const op = "user.update_me"

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load user")
	}
	if user == nil {
		return nil, domain.NotFound(op, "user", userID.Hex())
	}

	if err := s.apply(ctx, op, user, in, false); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteMe(ctx context.Context, userID primitive.ObjectID) error {
	const op = "user.delete_me"

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Internal(err, op, "failed to load user")
	}
	if user == nil {
		return domain.NotFound(op, "user", userID.Hex())
	}

	user.Active = false
	return s.users.Update(ctx, user)
}

// apply copies the set fields of an update onto the user. admin permits
// role and active changes.
func (s *userService) apply(ctx context.Context, op string, user *domain.User, in UpdateUserInput, admin bool) error {
	if in.Email != nil {
		emailAddr := strings.ToLower(strings.TrimSpace(*in.Email))
		if emailAddr != user.Email {
			existing, err := s.users.FindByEmail(ctx, emailAddr)
			if err != nil {
				return domain.Internal(err, op, "failed to look up user")
			}
			if existing != nil {
				return domain.Conflict(op, "email already in use")
			}
			user.Email = emailAddr
		}
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return domain.Internal(err, op, "failed to hash password")
		}
		user.PasswordHash = hash
	}
	if admin {
		if in.Role != nil {
			user.Role = *in.Role
		}
		if in.Active != nil {
			user.Active = *in.Active
		}
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Age != nil {
		user.Age = *in.Age
	}
	if in.Gender != nil {
		user.Gender = *in.Gender
	}
	return nil
}
