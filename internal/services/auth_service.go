package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/internal/identity"
)

// AuthService fronts the identity provider for login flows.
type AuthService struct {
	identity *identity.Client
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(idp *identity.Client) *AuthService {
	return &AuthService{identity: idp}
}

// LoginResult carries the tokens issued for a successful login.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}

// Login performs a password sign-in against the provider.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	logrus.WithField("localID", resp.LocalID).Info("Login succeeded")
	return &LoginResult{
		AccessToken:  resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	resp, err := s.identity.ExchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}
