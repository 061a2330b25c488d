package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/iliyamo/health-tracker/internal/config"
	"github.com/iliyamo/health-tracker/internal/repository"
	"github.com/iliyamo/health-tracker/internal/utils"
)

const oauthStateCookie = "oauth_state"

// OAuthHandler implements the social sign-in flow: a redirect to the
// provider's consent screen and the callback that exchanges the returned
// code for the user's identity. After the exchange the flow converges with
// password login: the provider identity maps onto a local user row and a
// normal token pair is issued.
type OAuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Auth  *AuthHandler
}

func NewOAuthHandler(cfg config.Config, u *repository.UserRepo, a *AuthHandler) *OAuthHandler {
	return &OAuthHandler{Cfg: cfg, Users: u, Auth: a}
}

// conf returns the oauth2 configuration for a provider name, or nil when
// the provider is unknown or not configured in the environment.
func (h *OAuthHandler) conf(provider string) *oauth2.Config {
	redirect := h.Cfg.BaseURL + "/auth/callback"
	switch provider {
	case "google":
		if h.Cfg.GoogleClientID == "" || h.Cfg.GoogleClientSecret == "" {
			return nil
		}
		return &oauth2.Config{
			ClientID:     h.Cfg.GoogleClientID,
			ClientSecret: h.Cfg.GoogleClientSecret,
			RedirectURL:  redirect,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	case "github":
		if h.Cfg.GitHubClientID == "" || h.Cfg.GitHubClientSecret == "" {
			return nil
		}
		return &oauth2.Config{
			ClientID:     h.Cfg.GitHubClientID,
			ClientSecret: h.Cfg.GitHubClientSecret,
			RedirectURL:  redirect,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		}
	}
	return nil
}

// Begin handles GET /v1/auth/oauth/:provider. It stores a random state
// value in a short-lived cookie and redirects to the provider's consent
// screen. The provider name rides along in the state cookie so the single
// callback route can finish either flow.
func (h *OAuthHandler) Begin(c echo.Context) error {
	provider := c.Param("provider")
	conf := h.conf(provider)
	if conf == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown or unconfigured provider"})
	}
	state, err := utils.RandomHex(16)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue state failed"})
	}
	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    provider + ":" + state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, conf.AuthCodeURL(state))
}

// Callback handles GET /auth/callback. It verifies the state cookie,
// exchanges the code, resolves the provider identity to a local account
// and enters a normal session, ending on the dashboard.
func (h *OAuthHandler) Callback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")
	if state == "" || code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing code or state"})
	}
	ck, err := c.Cookie(oauthStateCookie)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing oauth state"})
	}
	provider, want, ok := strings.Cut(ck.Value, ":")
	if !ok || provider == "" || want != state {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "state mismatch"})
	}
	conf := h.conf(provider)
	if conf == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown or unconfigured provider"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "code exchange failed"})
	}
	email, name, err := fetchIdentity(ctx, conf, provider, tok)
	if err != nil || email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "provider identity unavailable"})
	}

	u, err := h.Users.FindOrCreateOAuth(ctx, email, name, provider, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "account resolution failed"})
	}
	if _, err := h.Auth.issuePair(ctx, c, u.ID, u.Email, u.FullName); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

// fetchIdentity asks the provider's userinfo endpoint for the email and
// display name behind an exchanged token.
func fetchIdentity(ctx context.Context, conf *oauth2.Config, provider string, tok *oauth2.Token) (string, string, error) {
	var url string
	switch provider {
	case "google":
		url = "https://www.googleapis.com/oauth2/v2/userinfo"
	case "github":
		url = "https://api.github.com/user"
	default:
		return "", "", fmt.Errorf("no userinfo endpoint for %q", provider)
	}
	resp, err := conf.Client(ctx, tok).Get(url)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", "", err
	}
	return body.Email, body.Name, nil
}
