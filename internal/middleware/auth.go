package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/handlers"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
)

// Authenticator resolves a raw bearer token to the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*policy.Principal, error)
}

// Authenticate attaches the caller to the request context. Requests without an
// Authorization header continue anonymously; a header that does not resolve is rejected.
func Authenticate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(header)
			if !ok {
				handlers.WriteError(w, errors.New(errors.ErrCodeUnauthorized, "Invalid token header."))
				return
			}

			p, err := auth.Authenticate(r.Context(), raw)
			if err != nil {
				handlers.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(policy.WithPrincipal(r.Context(), p)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	for _, prefix := range []string{"Bearer ", "Token "} {
		if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
			raw := strings.TrimSpace(header[len(prefix):])
			return raw, raw != ""
		}
	}
	return "", false
}

// Require guards a route with rule. Anonymous callers get 401, others 403.
func Require(rule policy.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := policy.FromContext(r.Context())
			if rule(p, r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if p == nil {
				handlers.WriteError(w, errors.New(errors.ErrCodeUnauthorized, "Authentication credentials were not provided."))
				return
			}
			handlers.WriteError(w, errors.New(errors.ErrCodeForbidden, "You do not have permission to perform this action."))
		})
	}
}
