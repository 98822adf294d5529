package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/services"
)

// AuthService is the login surface the handler depends on.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*services.LoginResult, error)
}

// AuthHandler handles login and token refresh.
type AuthHandler struct {
	Service AuthService
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Login handles POST /logins.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &credentials); err != nil {
		return err
	}
	if err := requireFields([]requiredField{
		{"email", credentials.Email},
		{"password", credentials.Password},
	}); err != nil {
		return err
	}

	result, err := h.Service.Login(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		logrus.WithField("email", credentials.Email).Warn("Login failed")
		return err
	}

	httpx.WriteData(w, http.StatusOK, result)
	return nil
}

// Refresh handles POST /logins/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeBody(r, &body); err != nil {
		return err
	}
	if err := requireFields([]requiredField{{"refresh_token", body.RefreshToken}}); err != nil {
		return err
	}

	result, err := h.Service.Refresh(r.Context(), body.RefreshToken)
	if err != nil {
		return err
	}

	httpx.WriteData(w, http.StatusOK, result)
	return nil
}
