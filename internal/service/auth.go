package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/asalem/souq/internal/auth"
	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/email"
)

// resetCodeWindow bounds both the verification code and the follow-up
// password change.
const resetCodeWindow = 10 * time.Minute

const (
	codeVerified = "verified"
	codeChanged  = "changed"
)

// AuthService handles signup, signin and the password reset flow.
type AuthService interface {
	// SignUp registers a new account with the "user" role and returns a
	// signed session for it.
	SignUp(ctx context.Context, in SignUpInput) (*Session, error)

	// SignIn checks credentials and returns a signed session.
	SignIn(ctx context.Context, emailAddr, password string) (*Session, error)

	// ResetPassword emails a 6-digit verification code to the account.
	ResetPassword(ctx context.Context, emailAddr string) error

	// VerifyCode checks the emailed code; on success the account may change
	// its password within the reset window.
	VerifyCode(ctx context.Context, emailAddr, code string) error

	// ChangePassword sets a new password for an account that verified its
	// code within the reset window.
	ChangePassword(ctx context.Context, emailAddr, newPassword string) error
}

// SignUpInput carries the fields a new account registers with.
type SignUpInput struct {
	Name        string
	Email       string
	Password    string
	Address     string
	PhoneNumber string
	Age         int
	Gender      string
}

// Session is a signed token plus the account it authenticates.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

type authService struct {
	users    domain.UserStore
	tokens   *auth.Tokens
	tokenTTL time.Duration
	mailer   *email.Service
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users domain.UserStore, tokens *auth.Tokens, tokenTTL time.Duration, mailer *email.Service, logger *slog.Logger) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		mailer:   mailer,
		logger:   logger,
	}
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	const op = "auth.sign_up"

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

	user := &domain.User{
		Name:         in.Name,
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		Age:          in.Age,
		Gender:       in.Gender,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.session(user)
}

func (s *authService) SignIn(ctx context.Context, emailAddr, password string) (*Session, error) {
	const op = "auth.sign_in"

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up user")
	}
	if user == nil {
		return nil, domain.Unauthorized(op, "invalid credentials")
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, domain.Unauthorized(op, "invalid credentials")
	}
	if !user.Active {
		return nil, domain.Unauthorized(op, "account is deactivated")
	}

	return s.session(user)
}

func (s *authService) ResetPassword(ctx context.Context, emailAddr string) error {
	const op = "auth.reset_password"

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return domain.Internal(err, op, "failed to look up user")
	}
	if user == nil {
		return domain.NotFound(op, "user", emailAddr)
	}

	code, err := generateResetCode()
	if err != nil {
		return domain.Internal(err, op, "failed to generate verification code")
	}

	user.VerificationCode = code
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendResetCode(ctx, user.Email, user.Name, code); err != nil {
		return domain.Internal(err, op, "failed to send verification code")
	}

	s.logger.Info("password reset code sent", "email", user.Email)
	return nil
}

func (s *authService) VerifyCode(ctx context.Context, emailAddr, code string) error {
	const op = "auth.verify_code"

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return domain.Internal(err, op, "failed to look up user")
	}
	if user == nil {
		return domain.NotFound(op, "user", emailAddr)
	}

	// Sentinel states ("verified", "changed") never match a 6-digit code.
	if user.VerificationCode == "" || user.VerificationCode != code || !isNumericCode(code) {
		return domain.Invalid(op, "verification code not valid")
	}
	if time.Since(user.UpdatedAt) > resetCodeWindow {
		return domain.Invalid(op, "verification code expired")
	}

	user.VerificationCode = codeVerified
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, emailAddr, newPassword string) error {
	const op = "auth.change_password"

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return domain.Internal(err, op, "failed to look up user")
	}
	if user == nil {
		return domain.NotFound(op, "user", emailAddr)
	}

	if user.VerificationCode != codeVerified || time.Since(user.UpdatedAt) > resetCodeWindow {
		return domain.Invalid(op, "something went wrong, try reset password again")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return domain.Internal(err, op, "failed to hash password")
	}

	user.PasswordHash = hash
	user.VerificationCode = codeChanged
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return nil
}

func (s *authService) session(user *domain.User) (*Session, error) {
	token, err := s.tokens.Sign(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		return nil, domain.Internal(err, "auth.session", "failed to sign token")
	}
	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenTTL),
		User:      user,
	}, nil
}

// generateResetCode returns a random 6-digit numeric code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func isNumericCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
