package service

import (
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asalem/souq/internal/auth"
	"github.com/asalem/souq/internal/domain"
	"github.com/asalem/souq/internal/email"
)

// recordingSender captures sent emails instead of talking to SMTP.
type recordingSender struct {
	sent []*email.Email
}

func (r *recordingSender) Send(ctx context.Context, e *email.Email) (string, error) {
	r.sent = append(r.sent, e)
	return "test-message-id", nil
}

func makeAuthService(users domain.UserStore) (AuthService, *recordingSender, *auth.Tokens) {
	sender := &recordingSender{}
	mailer := email.NewService(sender, "noreply@souq.test", "Souq")
	tokens := auth.NewTokens("test-secret", time.Hour)
	svc := NewAuthService(users, tokens, time.Hour, mailer, slog.Default())
	return svc, sender, tokens
}

func TestSignUpAndSignIn(t *testing.T) {
	users := newMemUserStore()
	svc, _, tokens := makeAuthService(users)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NotNil(t, session.User)

	// Email is normalized and the role defaults to user.
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.Equal(t, domain.RoleUser, session.User.Role)
	assert.True(t, session.User.Active)
	assert.NotEqual(t, "secret", session.User.PasswordHash)

	claims, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID.Hex(), claims.UserID)
	assert.Equal(t, "user", claims.Role)

	// The same credentials sign in.
	session, err = svc.SignIn(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	// A wrong password does not.
	_, err = svc.SignIn(ctx, "ada@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := newMemUserStore()
	svc, _, _ := makeAuthService(users)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, SignUpInput{Name: "Imposter", Email: "ada@example.com", Password: "other"})
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestSignInUnknownEmail(t *testing.T) {
	svc, _, _ := makeAuthService(newMemUserStore())

	_, err := svc.SignIn(context.Background(), "nobody@example.com", "secret")
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestSignInDeactivatedAccount(t *testing.T) {
	users := newMemUserStore()
	svc, _, _ := makeAuthService(users)
	ctx := context.Background()

	session, err := svc.SignUp(ctx, SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, NewUserService(users).DeleteMe(ctx, session.User.ID))

	// A deactivated account keeps its credentials but cannot sign in.
	_, err = svc.SignIn(ctx, "ada@example.com", "secret")
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))

	// An admin flipping active back restores access.
	active := true
	_, err = NewUserService(users).Update(ctx, session.User.ID, UpdateUserInput{Active: &active})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	users := newMemUserStore()
	svc, sender, _ := makeAuthService(users)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, "ada@example.com"))
	require.Len(t, sender.sent, 1)

	// Pull the 6-digit code out of the sent mail.
	code := regexp.MustCompile(`\d{6}`).FindString(sender.sent[0].TextBody)
	require.NotEmpty(t, code)

	// A wrong code is rejected without consuming the real one.
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	err = svc.VerifyCode(ctx, "ada@example.com", wrong)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	require.NoError(t, svc.VerifyCode(ctx, "ada@example.com", code))

	// Changing the password requires the verified state.
	require.NoError(t, svc.ChangePassword(ctx, "ada@example.com", "newsecret"))

	_, err = svc.SignIn(ctx, "ada@example.com", "newsecret")
	require.NoError(t, err)
	_, err = svc.SignIn(ctx, "ada@example.com", "secret")
	require.Error(t, err)
}

func TestChangePasswordWithoutVerification(t *testing.T) {
	users := newMemUserStore()
	svc, _, _ := makeAuthService(users)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, "ada@example.com", "newsecret")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestVerifyCodeSentinelNeverMatches(t *testing.T) {
	users := newMemUserStore()
	svc, sender, _ := makeAuthService(users)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, svc.ResetPassword(ctx, "ada@example.com"))

	code := regexp.MustCompile(`\d{6}`).FindString(sender.sent[0].TextBody)
	require.NoError(t, svc.VerifyCode(ctx, "ada@example.com", code))

	// The stored state is now the "verified" sentinel; presenting it as a
	// code must fail.
	err = svc.VerifyCode(ctx, "ada@example.com", "verified")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
