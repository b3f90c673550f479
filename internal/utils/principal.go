package utils

import "context"

const (
	RolePatient    = "patient"
	RoleDoctor     = "doctor"
	RolePharmacist = "pharmacist"
	RoleAdmin      = "admin"
)

type principalKey struct{}

// Principal is the authenticated caller, attached to the request context by
// the auth middleware.
type Principal struct {
	UserID uint
	Email  string
	Role   string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// UserIDFrom returns the caller's id, false for anonymous requests.
func UserIDFrom(ctx context.Context) (uint, bool) {
	p, ok := PrincipalFrom(ctx)
	return p.UserID, ok
}

// HasRole reports whether the caller holds one of roles.
func HasRole(ctx context.Context, roles ...string) bool {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func IsAdmin(ctx context.Context) bool {
	return HasRole(ctx, RoleAdmin)
}
