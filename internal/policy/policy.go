// Package policy decides who may call an endpoint and who may touch an object.
package policy

import (
	"context"
	"net/http"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID    uint
	AccountID uint
	Username  string
	Role      string
	IsStaff   bool
	Token     string
}

type contextKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the caller, or nil for anonymous requests.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(contextKey{}).(*Principal)
	return p
}

// Rule is a route-level predicate over the caller and the request method.
type Rule func(p *Principal, method string) bool

func AllowAny(p *Principal, method string) bool {
	return true
}

func IsAuthenticated(p *Principal, method string) bool {
	return p != nil
}

func IsAdmin(p *Principal, method string) bool {
	return p != nil && p.IsStaff
}

func IsAuthenticatedOrReadOnly(p *Principal, method string) bool {
	return isSafe(method) || p != nil
}

// IsAdminOrReadOnly lets anyone read and only staff write.
func IsAdminOrReadOnly(p *Principal, method string) bool {
	return isSafe(method) || IsAdmin(p, method)
}

func isSafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// OwnsHouse reports whether p may modify house.
func OwnsHouse(p *Principal, house *models.House) bool {
	return p != nil && (p.IsStaff || house.OwnerID == p.AccountID)
}

// AuthoredReview reports whether p may modify review.
func AuthoredReview(p *Principal, review *models.Review) bool {
	return p != nil && (p.IsStaff || review.UserID == p.AccountID)
}
