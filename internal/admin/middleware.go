package admin

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/shortlistd/quizgate/internal/admin/jwt"
	httperrors "github.com/shortlistd/quizgate/pkg/http/errors"
)

type claimsKey struct{}

// RequireAdmin rejects requests lacking a valid admin capability token.
// On rejection the wrapped handler never runs, so no mutation can occur.
func RequireAdmin(svc *Service, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := svc.Authorize(r)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("admin authorization failed")
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated admin claims, if any.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims, ok
}
