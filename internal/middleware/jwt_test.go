package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/utils"
)

const testSecret = "unit-test-secret"

// run sends a request through the given middleware chain into a handler
// that echoes the context values set by JWTAuth.
func run(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, "ATTENDEE", 5)
	require.NoError(t, err)

	rec, c := run(t, "Bearer "+access.Token, JWTAuth(testSecret))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), c.Get("user_id"))
	assert.Equal(t, "ATTENDEE", c.Get("role"))
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := run(t, "", JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	rec, _ := run(t, "Bearer not.a.jwt", JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	access, err := utils.NewAccessToken("other-secret", 42, "ATTENDEE", 5)
	require.NoError(t, err)

	rec, _ := run(t, "Bearer "+access.Token, JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, "ORGANIZER", 5)
	require.NoError(t, err)

	rec, _ := run(t, "Bearer "+access.Token, JWTAuth(testSecret), RequireRole("ORGANIZER"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, "ATTENDEE", 5)
	require.NoError(t, err)

	rec, _ := run(t, "Bearer "+access.Token, JWTAuth(testSecret), RequireRole("ORGANIZER"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec, _ := run(t, "", RequireRole("ORGANIZER"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
