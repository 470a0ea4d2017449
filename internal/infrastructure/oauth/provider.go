// Package oauth implements the external identity provider used for
// end-user login. Endpoint URLs are configurable so tests can point the
// provider at a local server.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/groupcast/groupcast-api/internal/core/ports"
)

const (
	defaultAuthURL    = "https://www.facebook.com/v18.0/dialog/oauth"
	defaultTokenURL   = "https://graph.facebook.com/v18.0/oauth/access_token"
	defaultProfileURL = "https://graph.facebook.com/v18.0/me"

	requestTimeout = 10 * time.Second
)

// Config carries the provider endpoints and client credentials.
type Config struct {
	AuthURL      string
	TokenURL     string
	ProfileURL   string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Provider drives the authorization-code flow against the configured
// endpoints and normalizes the fetched profile.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider returns a Provider, filling unset endpoint URLs with the
// Facebook graph defaults.
func NewProvider(cfg Config) *Provider {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.ProfileURL == "" {
		cfg.ProfileURL = defaultProfileURL
	}
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// AuthorizeURL builds the redirect URL that starts the login flow. The
// state nonce is round-tripped by the provider and checked on callback.
func (p *Provider) AuthorizeURL(state string) string {
	params := url.Values{
		"client_id":     {p.cfg.ClientID},
		"redirect_uri":  {p.cfg.RedirectURL},
		"response_type": {"code"},
		"scope":         {"email public_profile"},
		"state":         {state},
	}
	return p.cfg.AuthURL + "?" + params.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type profileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Exchange swaps the authorization code for an access token and fetches
// the profile behind it.
func (p *Provider) Exchange(ctx context.Context, code string) (*ports.OAuthProfile, error) {
	token, err := p.exchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth: code exchange: %w", err)
	}

	profile, err := p.fetchProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("oauth: profile fetch: %w", err)
	}

	return &ports.OAuthProfile{
		OpenID:      profile.ID,
		Email:       profile.Email,
		Name:        profile.Name,
		LoginMethod: "oauth",
	}, nil
}

func (p *Provider) exchangeCode(ctx context.Context, code string) (*tokenResponse, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {p.cfg.ClientID},
		"client_secret": {p.cfg.ClientSecret},
		"redirect_uri":  {p.cfg.RedirectURL},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned no access token")
	}
	return &token, nil
}

func (p *Provider) fetchProfile(ctx context.Context, accessToken string) (*profileResponse, error) {
	endpoint := p.cfg.ProfileURL + "?" + url.Values{"fields": {"id,name,email"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("profile endpoint returned %d: %s", resp.StatusCode, body)
	}

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("profile endpoint returned no subject id")
	}
	return &profile, nil
}
