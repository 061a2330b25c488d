package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"     // HTTP status codes for responses
    "net/url"      // URL escaping for the redirect target
    "strconv"      // string-to-int conversion for the subject claim
    "strings"      // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// AccessCookie is the cookie carrying the access token for dashboard page
// navigation, where no Authorization header is available.
const AccessCookie = "access_token"

// parseAccess extracts and validates the access token for a request.  The
// Authorization header takes precedence; the access_token cookie is the
// fallback used by plain page navigation.  On success it returns the user
// id from the subject claim and the email claim.  Any failure — missing
// token, bad signature, wrong algorithm, expired, malformed claims — is
// reported as a single error: callers treat every variant the same way,
// as an absent session.
func parseAccess(c echo.Context, secret string) (uint64, string, error) {
    raw := ""
    if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
        raw = strings.TrimPrefix(auth, "Bearer ")
    } else if ck, err := c.Cookie(AccessCookie); err == nil {
        raw = ck.Value
    }
    if raw == "" {
        return 0, "", echo.ErrUnauthorized
    }

    // Parse the token using the HS256 signing method and our secret.  The
    // callback supplies the signing key and rejects any other algorithm.
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, echo.ErrUnauthorized
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, "", echo.ErrUnauthorized
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, "", echo.ErrUnauthorized
    }

    var uid uint64
    switch sub := claims["sub"].(type) {
    case float64:
        // JWT numeric values decode as float64; convert to uint64.
        uid = uint64(sub)
    case string:
        n, err := strconv.ParseUint(sub, 10, 64)
        if err != nil {
            return 0, "", echo.ErrUnauthorized
        }
        uid = n
    default:
        return 0, "", echo.ErrUnauthorized
    }
    if uid == 0 {
        return 0, "", echo.ErrUnauthorized
    }
    email, _ := claims["email"].(string)
    return uid, email, nil
}

// JWTAuth returns an Echo middleware that validates an access token and
// injects the authenticated identity into the request context.  Handlers
// on protected API routes read it via c.Get("user_id") (uint64) and
// c.Get("email") (string).  Requests without a valid token receive a 401
// JSON response.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            uid, email, err := parseAccess(c, secret)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set("user_id", uid)
            c.Set("email", email)
            return next(c)
        }
    }
}

// SessionGuard protects the dashboard pages.  Unlike JWTAuth it answers
// with a redirect rather than a 401: a browser that navigates to a
// protected page without a session is sent to the login page, carrying the
// original path so login can return the user there.  Nothing of the
// protected page is written before the redirect.  A token that fails to
// parse is treated identically to no token at all.
func SessionGuard(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            uid, email, err := parseAccess(c, secret)
            if err != nil {
                target := "/auth/login?redirectedFrom=" + url.QueryEscape(c.Request().URL.Path)
                return c.Redirect(http.StatusFound, target)
            }
            c.Set("user_id", uid)
            c.Set("email", email)
            return next(c)
        }
    }
}

// RedirectAuthenticated covers the opposite edge of the guard: a signed-in
// user who navigates to the login or signup page is sent straight to the
// dashboard.  Anyone without a valid session falls through to the page.
func RedirectAuthenticated(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if _, _, err := parseAccess(c, secret); err == nil {
                return c.Redirect(http.StatusFound, "/dashboard")
            }
            return next(c)
        }
    }
}
