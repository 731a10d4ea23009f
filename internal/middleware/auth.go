package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dealerops/rental-engine/internal/auth"
	"github.com/dealerops/rental-engine/pkg/response"
)

type contextKey string

const dealerIDKey contextKey = "dealer_id"

// Auth verifies the bearer token and stores the dealer id in the
// request context. Every dealer-scoped route sits behind this.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w, "Access denied. No token provided.")
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				response.Unauthorized(w, "Token is not valid.")
				return
			}

			ctx := context.WithValue(r.Context(), dealerIDKey, claims.DealerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DealerID extracts the authenticated dealer id from the context.
func DealerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(dealerIDKey).(uuid.UUID)
	return id, ok
}

// WithDealerID returns a context carrying the dealer id, for callers
// acting outside an HTTP request.
func WithDealerID(ctx context.Context, dealerID uuid.UUID) context.Context {
	return context.WithValue(ctx, dealerIDKey, dealerID)
}
