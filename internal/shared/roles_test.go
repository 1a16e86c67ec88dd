package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func roleProbe(t *testing.T, m RoleMiddleware, required Role, header string) int {
	t.Helper()
	handler := m.Require(required)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if header != "" {
		req.Header.Set(RoleHeader, header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr.Code
}

func TestRequireRole(t *testing.T) {
	m := RoleMiddleware{Default: RoleOperator}

	require.Equal(t, http.StatusNoContent, roleProbe(t, m, RoleOperator, "operator"))
	require.Equal(t, http.StatusNoContent, roleProbe(t, m, RoleOperator, "admin"), "admin satisfies operator routes")
	require.Equal(t, http.StatusForbidden, roleProbe(t, m, RoleAdmin, "operator"))
	require.Equal(t, http.StatusNoContent, roleProbe(t, m, RoleAdmin, "admin"))
}

func TestRoleDefaults(t *testing.T) {
	m := RoleMiddleware{Default: RoleOperator}
	require.Equal(t, http.StatusNoContent, roleProbe(t, m, RoleOperator, ""))
	require.Equal(t, http.StatusForbidden, roleProbe(t, m, RoleAdmin, ""))
	// Unknown role strings fall back to the default, never to admin.
	require.Equal(t, http.StatusForbidden, roleProbe(t, m, RoleAdmin, "superuser"))
}
