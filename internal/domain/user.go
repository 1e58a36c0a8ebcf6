package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role gates access to admin-only routes.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account document. PasswordHash and VerificationCode are never
// serialized in API responses.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	Active       bool               `bson:"active" json:"active"`

	// VerificationCode holds the emailed password-reset code, or one of the
	// sentinel states "verified" / "changed" while a reset is in progress.
	VerificationCode string `bson:"verificationCode,omitempty" json:"-"`

	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	PhoneNumber string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Age         int       `bson:"age,omitempty" json:"age,omitempty"`
	Gender      string    `bson:"gender,omitempty" json:"gender,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserFilter narrows admin user listings. Empty fields are ignored.
// Name and Email match case-insensitively; Role matches exactly.
type UserFilter struct {
	Name  string
	Email string
	Role  Role
}

// UserStore persists user documents. Email is a unique natural key.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q ListQuery, f UserFilter) ([]User, int64, error)
}
