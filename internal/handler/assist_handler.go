package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ideahub/internal/assist"
	"ideahub/internal/errors"
	"ideahub/internal/service"
)

// AssistHandler handles the AI description-assist endpoint.
type AssistHandler struct {
	assistService service.AssistService
}

// NewAssistHandler creates a new assist handler.
func NewAssistHandler(assistService service.AssistService) *AssistHandler {
	return &AssistHandler{assistService: assistService}
}

// GenerateDescriptionRequest represents a description-assist request.
type GenerateDescriptionRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Explanation string `json:"explanation" validate:"required"`
}

// GenerateDescriptionResponse carries the generated rich-text HTML.
type GenerateDescriptionResponse struct {
	Description string `json:"description"`
}

// GenerateDescription godoc
// @Summary Generate a structured idea description from a raw explanation
// @Tags assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateDescriptionRequest true "Idea title and raw explanation"
// @Success 200 {object} GenerateDescriptionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /assist/description [post]
func (h *AssistHandler) GenerateDescription(c echo.Context) error {
	var req GenerateDescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	html, err := h.assistService.GenerateDescription(c.Request().Context(), req.Title, req.Explanation)
	if err != nil {
		if err == assist.ErrNotConfigured {
			return echo.NewHTTPError(http.StatusServiceUnavailable, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "ASSIST_NOT_CONFIGURED",
			})
		}
		// Upstream failures surface as a single message, no retries.
		return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "ASSIST_UPSTREAM_FAILED",
		})
	}
	return c.JSON(http.StatusOK, GenerateDescriptionResponse{Description: html})
}
