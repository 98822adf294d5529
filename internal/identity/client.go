package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/internal/apperrors"
	"github.com/indieneer/backend/internal/config"
)

// Client wraps the external identity provider's REST API. The auth
// channel serves password logins, token refresh and account lookup; the
// management channel serves admin user CRUD and role assignment using a
// lazily obtained client-credentials token.
type Client struct {
	AuthBaseURL       string
	TokenBaseURL      string
	ManagementBaseURL string
	HTTPClient        *http.Client

	clientID     string
	clientSecret string
	audience     string
	tokenURL     string

	mu              sync.Mutex
	managementToken string
	tokenExpiresAt  time.Time
}

// NewClient builds a client against the configured provider domain.
func NewClient(cfg *config.Config) *Client {
	domain := "https://" + cfg.Auth0Domain
	return &Client{
		AuthBaseURL:       domain + "/identitytoolkit/v1",
		TokenBaseURL:      domain + "/securetoken/v1",
		ManagementBaseURL: domain + "/api/v2",
		HTTPClient:        &http.Client{},
		clientID:          cfg.Auth0ClientID,
		clientSecret:      cfg.Auth0ClientSecret,
		audience:          cfg.Auth0Audience,
		tokenURL:          domain + "/oauth/token",
	}
}

// SignInResponse is the provider's password-login payload.
type SignInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	Registered   bool   `json:"registered"`
}

// CustomTokenResponse is returned by custom-token sign-in.
type CustomTokenResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// RefreshTokenResponse is returned by the refresh-token exchange.
type RefreshTokenResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
	ProjectID    string `json:"project_id"`
	TokenType    string `json:"token_type"`
}

// UserRecord is a single provider account.
type UserRecord struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	DisplayName   string `json:"displayName"`
	CreatedAt     string `json:"createdAt"`
}

type lookupResponse struct {
	Users []UserRecord `json:"users"`
}

// SignIn performs a password login.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResponse, error) {
	body := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	var out SignInResponse
	if err := c.postJSON(ctx, c.AuthBaseURL+"/accounts:signInWithPassword", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignInWithCustomToken exchanges a custom token for an id token.
func (c *Client) SignInWithCustomToken(ctx context.Context, token string) (*CustomTokenResponse, error) {
	body := map[string]interface{}{
		"token":             token,
		"returnSecureToken": true,
	}
	var out CustomTokenResponse
	if err := c.postJSON(ctx, c.AuthBaseURL+"/accounts:signInWithCustomToken", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Lookup resolves an id token to its account record.
func (c *Client) Lookup(ctx context.Context, idToken string) (*UserRecord, error) {
	body := map[string]interface{}{"idToken": idToken}
	var out lookupResponse
	if err := c.postJSON(ctx, c.AuthBaseURL+"/accounts:lookup", body, &out); err != nil {
		return nil, err
	}
	if len(out.Users) == 0 {
		return nil, apperrors.NewNotFound("FirebaseUser", "")
	}
	return &out.Users[0], nil
}

// ExchangeRefreshToken trades a refresh token for a fresh id token.
func (c *Client) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*RefreshTokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenBaseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out RefreshTokenResponse
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// providerError is the provider's error body shape.
type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodeResponse routes by status class: 2xx decodes into out, 5xx
// surfaces as an unknown provider error and 4xx is mapped from the
// provider error code.
func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode >= 500 {
		return &apperrors.UnknownProviderError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var pe providerError
		if err := json.Unmarshal(raw, &pe); err != nil {
			return &apperrors.ErrorDecodeError{Code: ""}
		}
		code := pe.Error.Message
		// Codes may carry a trailing qualifier, e.g. "WEAK_PASSWORD : ...".
		if idx := strings.IndexByte(code, ' '); idx > 0 {
			code = code[:idx]
		}
		switch code {
		case "INVALID_LOGIN_CREDENTIALS", "INVALID_PASSWORD", "EMAIL_NOT_FOUND":
			return &apperrors.InvalidLoginCredentialsError{}
		default:
			return &apperrors.ErrorDecodeError{Code: code}
		}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

type managementTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// getManagementToken returns a cached management access token, fetching a
// new one via the client-credentials grant when missing or expired.
// Readers always see either the old token or a fully formed new one.
func (c *Client) getManagementToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.managementToken != "" && time.Now().Before(c.tokenExpiresAt) {
		return c.managementToken, nil
	}

	body := map[string]interface{}{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"audience":      c.audience,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out managementTokenResponse
	if err := decodeResponse(resp, &out); err != nil {
		return "", fmt.Errorf("failed to obtain management token: %w", err)
	}

	c.managementToken = out.AccessToken
	// Refresh slightly early so in-flight requests never carry a stale token.
	c.tokenExpiresAt = time.Now().Add(time.Duration(out.ExpiresIn)*time.Second - 30*time.Second)

	logrus.Info("Obtained identity provider management token")
	return c.managementToken, nil
}

func (c *Client) managementRequest(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.getManagementToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ManagementBaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// ManagementUser is a provider account as seen by the management API.
type ManagementUser struct {
	UserID      string                 `json:"user_id"`
	Email       string                 `json:"email"`
	Name        string                 `json:"name"`
	AppMetadata map[string]interface{} `json:"app_metadata"`
}

// CreateUserInput is the management payload for account creation.
type CreateUserInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name,omitempty"`
	Connection string `json:"connection"`
}

// UpdateUserInput carries a partial management account update.
type UpdateUserInput struct {
	Email       *string                `json:"email,omitempty"`
	Password    *string                `json:"password,omitempty"`
	Name        *string                `json:"name,omitempty"`
	AppMetadata map[string]interface{} `json:"app_metadata,omitempty"`
}

// CreateUser provisions a provider account.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*ManagementUser, error) {
	if input.Connection == "" {
		input.Connection = "Username-Password-Authentication"
	}
	var out ManagementUser
	if err := c.managementRequest(ctx, http.MethodPost, "/users", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to a provider account.
func (c *Client) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*ManagementUser, error) {
	var out ManagementUser
	if err := c.managementRequest(ctx, http.MethodPatch, "/users/"+url.PathEscape(userID), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a provider account.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.managementRequest(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID), nil, nil)
}

// AddRoles assigns roles to a provider account.
func (c *Client) AddRoles(ctx context.Context, userID string, roles []string) error {
	body := map[string]interface{}{"roles": roles}
	return c.managementRequest(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/roles", body, nil)
}
