package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asalem/souq/internal/auth"
	"github.com/asalem/souq/internal/domain"
)

const (
	// ClaimsContextKey is the context key for the verified token claims.
	ClaimsContextKey contextKey = "claims"
)

// RequireAuth verifies the Bearer token and stores its claims in the
// request context. Requests without a valid token get 401.
func RequireAuth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondUnauthorized(w, r, "authentication required")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				respondUnauthorized(w, r, "invalid authorization header")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				respondUnauthorized(w, r, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route to admin accounts. Place after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil {
			respondUnauthorized(w, r, "authentication required")
			return
		}
		if claims.Role != string(domain.RoleAdmin) {
			respondForbidden(w, r, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetClaims retrieves the verified token claims from the context, or nil
// when the request is unauthenticated.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUserID returns the authenticated user's id, or the zero ObjectID when
// the request is unauthenticated or the claim is malformed.
func GetUserID(ctx context.Context) primitive.ObjectID {
	claims := GetClaims(ctx)
	if claims == nil {
		return primitive.NilObjectID
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// GetRole returns the authenticated user's role, or empty.
func GetRole(ctx context.Context) domain.Role {
	claims := GetClaims(ctx)
	if claims == nil {
		return ""
	}
	return domain.Role(claims.Role)
}
