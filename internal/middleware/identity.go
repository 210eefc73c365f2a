package middleware

// identity.go holds helpers shared across middleware files.  currentUserID
// resolves the authenticated user for rate-limit key construction; guests
// and unauthenticated requests key as "anon".

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the user_id stored in context by
// JWTAuth, or "anon" when no user is authenticated.  JWT numeric claims
// decode as float64, so that case is handled explicitly.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return fmt.Sprintf("%.0f", v)
    case uint64:
        return fmt.Sprintf("%d", v)
    case int64:
        return fmt.Sprintf("%d", v)
    }
    return "anon"
}
