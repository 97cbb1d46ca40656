// Package auth carries the authenticated caller through a request and
// issues the signed tokens that reference a login session.
package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

// Principal is the caller a request runs on behalf of.
type Principal struct {
	UserID    uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	SessionID string    `json:"-"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == model.RoleAdmin
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by WithPrincipal.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
