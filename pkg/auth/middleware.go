package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/icp-token/pkg/app/errors"
	apphttp "github.com/chainsafe/icp-token/pkg/app/http"
)

// TokenValidator resolves a bearer token to the authority it carries
type TokenValidator interface {
	Validate(token string) (Authority, error)
}

// Middleware authenticates requests with a bearer token and stores the
// caller authority in the request context. Requests without a valid token
// are rejected with 401.
func Middleware(validator TokenValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return apphttp.HandleError(func(w http.ResponseWriter, r *http.Request) error {
			token, ok := bearerToken(r)
			if !ok {
				return apperrors.UnAuthorizedError(nil, "missing bearer token")
			}

			authority, err := validator.Validate(token)
			if err != nil {
				logger.Debug("rejected token", zap.String("path", r.URL.Path), zap.Error(err))
				return apperrors.UnAuthorizedError(err, "invalid token")
			}

			next.ServeHTTP(w, r.WithContext(WithAuthority(r.Context(), authority)))
			return nil
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
