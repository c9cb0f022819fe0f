// Package handler contains the HTTP handlers for the credential API.
package handler

import (
	"log/slog"
	"net/http"

	"warden/internal/delivery/api/middleware"
	"warden/internal/delivery/api/response"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CredentialHandlerParams holds dependencies for CredentialHandler, injected by Fx.
type CredentialHandlerParams struct {
	fx.In

	CredentialUC usecase.CredentialUsecase
	Logger       *slog.Logger
}

// CredentialHandler holds dependencies for credential handlers
type CredentialHandler struct {
	credentialUC usecase.CredentialUsecase
	logger       *slog.Logger
}

// NewCredentialHandler is the constructor for CredentialHandler
func NewCredentialHandler(params CredentialHandlerParams) *CredentialHandler {
	return &CredentialHandler{
		credentialUC: params.CredentialUC,
		logger:       params.Logger,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=100"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AssignRoleRequest represents the request body for assigning a role
type AssignRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,max=64"`
}

// LoginResponse carries the session token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles identity registration
func (h *CredentialHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	identity, err := h.credentialUC.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, identity.Profile())
}

// Login handles a credential attempt
func (h *CredentialHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.credentialUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: output.Token,
		TokenType:   "Bearer",
	})
}

// Me returns the profile of the authenticated caller
func (h *CredentialHandler) Me(c echo.Context) error {
	email, ok := middleware.GetEmail(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthorized, "email missing from token")
	}

	profile, err := h.credentialUC.Profile(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// AssignRole sets the role of another identity. Admin only.
func (h *CredentialHandler) AssignRole(c echo.Context) error {
	var req AssignRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role assignment input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	identity, err := h.credentialUC.AssignRole(c.Request().Context(), usecase.AssignRoleInput{
		Role:  req.Role,
		Email: req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, identity.Profile())
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
