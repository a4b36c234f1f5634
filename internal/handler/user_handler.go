package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ideahub/internal/auth"
	"ideahub/internal/errors"
	"ideahub/internal/service"
)

// UserHandler handles profile and admin user-management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a self-service profile update.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateVerificationRequest flips a user's verification flag.
type UpdateVerificationRequest struct {
	IsVerified *bool `json:"is_verified" validate:"required"`
}

// UpdateAdminRequest flips a user's admin flag.
type UpdateAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}

// Me godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, auth.UserFromContext(c))
}

// UpdateProfile godoc
// @Summary Update the current user's name
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /me [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := auth.UserFromContext(c)

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// List godoc
// @Summary List users (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param search query string false "Case-insensitive search over name and email"
// @Success 200 {object} service.UserList
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	list, err := h.userService.List(c.Request().Context(), listParams(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list users",
			Code:  "USERS_FAILED",
		})
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateVerification godoc
// @Summary Set a user's verification flag (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateVerificationRequest true "Verification flag"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/verification [patch]
func (h *UserHandler) UpdateVerification(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req UpdateVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.SetVerification(c.Request().Context(), userID, *req.IsVerified)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAdmin godoc
// @Summary Set a user's admin flag (admin only, self-demotion blocked)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateAdminRequest true "Admin flag"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/admin [patch]
func (h *UserHandler) UpdateAdmin(c echo.Context) error {
	requester := auth.UserFromContext(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req UpdateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.SetAdmin(c.Request().Context(), requester.ID, userID, *req.IsAdmin)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}
