package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/instantfork/instantfork-api/internal/utils"
)

func callWith(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    h := mw(func(c echo.Context) error {
        return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
    })
    require.NoError(t, h(c))
    return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
    at, err := utils.NewAccessToken("secret", 7, "OWNER", 15)
    require.NoError(t, err)

    rec := callWith(t, JWTAuth("secret"), "Bearer "+at.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"role":"OWNER"`)
}

func TestJWTAuthRejects(t *testing.T) {
    at, err := utils.NewAccessToken("secret", 7, "OWNER", 15)
    require.NoError(t, err)

    cases := map[string]string{
        "missing header": "",
        "not bearer":     "Basic abc",
        "garbage token":  "Bearer not.a.jwt",
        "wrong secret":   "Bearer " + at.Token,
    }
    for name, header := range cases {
        rec := callWith(t, JWTAuth("other-secret"), header)
        assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
    }
}

func TestRequireRole(t *testing.T) {
    e := echo.New()
    run := func(role interface{}, allowed ...string) int {
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        if role != nil {
            c.Set("role", role)
        }
        h := RequireRole(allowed...)(func(c echo.Context) error {
            return c.NoContent(http.StatusOK)
        })
        require.NoError(t, h(c))
        return rec.Code
    }

    assert.Equal(t, http.StatusOK, run("CUSTOMER", "CUSTOMER"))
    assert.Equal(t, http.StatusOK, run("OWNER", "OWNER", "CUSTOMER"))
    assert.Equal(t, http.StatusForbidden, run("CUSTOMER", "OWNER"))
    assert.Equal(t, http.StatusForbidden, run(nil, "OWNER"))
    assert.Equal(t, http.StatusForbidden, run(123, "OWNER"))
}
