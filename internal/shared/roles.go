package shared

import (
	"net/http"

	"github.com/nidaan-his/nidaan-his/internal/platform/httpx"
)

// Role is the static operator role flag. The console runs on a single
// terminal; the flag separates the counter clerk from the administrator but
// is not an authentication mechanism.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// RoleHeader carries the active role on each request.
const RoleHeader = "X-Nidaan-Role"

// RoleMiddleware gates routes on the static role flag.
type RoleMiddleware struct {
	// Default applies when the header is absent.
	Default Role
}

// RoleFromRequest resolves the request's role, falling back to the default.
func (m RoleMiddleware) RoleFromRequest(r *http.Request) Role {
	switch Role(r.Header.Get(RoleHeader)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleOperator:
		return RoleOperator
	default:
		if m.Default != "" {
			return m.Default
		}
		return RoleOperator
	}
}

// Require allows the request through when the active role is at least the
// required one. Admin satisfies every requirement.
func (m RoleMiddleware) Require(required Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := m.RoleFromRequest(r)
			if role != required && role != RoleAdmin {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "this action requires the "+string(required)+" role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
