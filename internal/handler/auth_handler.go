package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ideahub/internal/auth"
	"ideahub/internal/errors"
	"ideahub/internal/service"
)

// AuthHandler handles registration, login, social login, sessions, and
// linked accounts.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful authentication.
type AuthResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Register godoc
// @Summary Register with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(
		c.Request().Context(), req.Name, req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		if err == service.ErrEmailTaken {
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "EMAIL_TAKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to register",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(
		c.Request().Context(), req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout godoc
// @Summary Revoke the current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session := auth.SessionFromContext(c)
	if session == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.authService.Logout(c.Request().Context(), session.Token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to logout",
			Code:  "LOGOUT_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// GitHubAuthURL godoc
// @Summary Get the GitHub authorization URL
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/github [get]
func (h *AuthHandler) GitHubAuthURL(c echo.Context) error {
	url, err := h.authService.GitHubAuthURL(c.Request().Context())
	if err != nil {
		if err == service.ErrSocialLoginDisabled {
			return echo.NewHTTPError(http.StatusServiceUnavailable, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "SOCIAL_LOGIN_DISABLED",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to build authorization url",
			Code:  "GITHUB_URL_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// GitHubCallback godoc
// @Summary Complete the GitHub login flow
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "Signed state"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /auth/github/callback [get]
func (h *AuthHandler) GitHubCallback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing code or state")
	}

	token, user, err := h.authService.GitHubCallback(
		c.Request().Context(), code, state, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		switch err {
		case service.ErrSocialLoginDisabled:
			return echo.NewHTTPError(http.StatusServiceUnavailable, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "SOCIAL_LOGIN_DISABLED",
			})
		case auth.ErrInvalidState:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_STATE",
			})
		default:
			return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
				Error: "github login failed",
				Code:  "GITHUB_LOGIN_FAILED",
			})
		}
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// SessionResponse is a session as shown in settings, with the current one
// flagged.
type SessionResponse struct {
	ID        uuid.UUID `json:"id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	ExpiresAt string    `json:"expires_at"`
	CreatedAt string    `json:"created_at"`
	Current   bool      `json:"current"`
}

// ListSessions godoc
// @Summary List the current user's sessions
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/sessions [get]
func (h *AuthHandler) ListSessions(c echo.Context) error {
	user := auth.UserFromContext(c)
	current := auth.SessionFromContext(c)

	sessions, err := h.authService.ListSessions(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list sessions",
			Code:  "SESSIONS_FAILED",
		})
	}

	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionResponse{
			ID:        s.ID,
			IPAddress: s.IPAddress,
			UserAgent: s.UserAgent,
			ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
			Current:   current != nil && s.ID == current.ID,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// RevokeSession godoc
// @Summary Revoke one of the current user's sessions
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/sessions/{id} [delete]
func (h *AuthHandler) RevokeSession(c echo.Context) error {
	user := auth.UserFromContext(c)

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	if err := h.authService.RevokeSession(c.Request().Context(), user.ID, sessionID); err != nil {
		if err == errors.ErrSessionNotFound {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to revoke session",
			Code:  "REVOKE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// RevokeOtherSessions godoc
// @Summary Revoke all sessions except the current one
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/sessions [delete]
func (h *AuthHandler) RevokeOtherSessions(c echo.Context) error {
	user := auth.UserFromContext(c)
	session := auth.SessionFromContext(c)

	if err := h.authService.RevokeOtherSessions(c.Request().Context(), user.ID, session.Token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to revoke sessions",
			Code:  "REVOKE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListAccounts godoc
// @Summary List the current user's linked accounts
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/accounts [get]
func (h *AuthHandler) ListAccounts(c echo.Context) error {
	user := auth.UserFromContext(c)

	accounts, err := h.authService.ListAccounts(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list accounts",
			Code:  "ACCOUNTS_FAILED",
		})
	}
	return c.JSON(http.StatusOK, accounts)
}

// UnlinkAccount godoc
// @Summary Unlink a sign-in provider from the current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param provider path string true "Provider id (credential or github)"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me/accounts/{provider} [delete]
func (h *AuthHandler) UnlinkAccount(c echo.Context) error {
	user := auth.UserFromContext(c)
	provider := c.Param("provider")

	if err := h.authService.UnlinkAccount(c.Request().Context(), user.ID, provider); err != nil {
		switch err {
		case service.ErrLastAccount:
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "LAST_ACCOUNT",
			})
		case errors.ErrAccountNotFound:
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "failed to unlink account",
				Code:  "UNLINK_FAILED",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
