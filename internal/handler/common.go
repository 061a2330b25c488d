package handler // handler defines http handlers

import (
    "errors" // errors provides the sentinel returned when identity is missing

    "github.com/labstack/echo/v4" // echo defines request context types
)

// getUserID extracts the authenticated user id placed in the context by the
// session middleware. A missing or zero id means a route was registered
// without its auth middleware, which is a wiring bug, not a user error.
func getUserID(c echo.Context) (uint64, error) {
    if v, ok := c.Get("user_id").(uint64); ok && v != 0 {
        return v, nil
    }
    return 0, errors.New("missing user identity in context")
}

// getEmail extracts the email claim placed in the context by the session
// middleware. It may be empty for tokens issued before the claim existed.
func getEmail(c echo.Context) string {
    s, _ := c.Get("email").(string)
    return s
}
