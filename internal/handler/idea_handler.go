package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ideahub/internal/auth"
	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/repository"
	"ideahub/internal/service"
)

// IdeaHandler handles idea endpoints.
type IdeaHandler struct {
	ideaService service.IdeaService
}

// NewIdeaHandler creates a new idea handler.
func NewIdeaHandler(ideaService service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

// CreateIdeaRequest represents an idea creation request.
type CreateIdeaRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

// UpdateIdeaRequest represents an idea update request.
type UpdateIdeaRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

// IdeaAuthor is the public slice of an author shown on community views. Email
// and role flags stay private to the account owner and admins.
type IdeaAuthor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image *string   `json:"image,omitempty"`
}

// IdeaResponse is an idea as served to community views, with the author
// trimmed to public fields.
type IdeaResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatedByID uuid.UUID   `json:"created_by_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	CreatedBy   *IdeaAuthor `json:"created_by,omitempty"`
}

func toIdeaResponse(idea model.Idea) IdeaResponse {
	resp := IdeaResponse{
		ID:          idea.ID,
		Title:       idea.Title,
		Description: idea.Description,
		CreatedByID: idea.CreatedByID,
		CreatedAt:   idea.CreatedAt,
		UpdatedAt:   idea.UpdatedAt,
	}
	if idea.CreatedBy != nil {
		resp.CreatedBy = &IdeaAuthor{
			ID:    idea.CreatedBy.ID,
			Name:  idea.CreatedBy.Name,
			Image: idea.CreatedBy.Image,
		}
	}
	return resp
}

// listParams reads page/limit/search query params; out-of-range values fall
// back to defaults during Normalize.
func listParams(c echo.Context) repository.ListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return repository.ListParams{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}
}

// List godoc
// @Summary List the current user's ideas
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param search query string false "Case-insensitive search over title and description"
// @Success 200 {object} service.IdeaList
// @Failure 401 {object} errors.ErrorResponse
// @Router /ideas [get]
func (h *IdeaHandler) List(c echo.Context) error {
	user := auth.UserFromContext(c)

	list, err := h.ideaService.List(c.Request().Context(), user.ID, listParams(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list ideas",
			Code:  "IDEAS_FAILED",
		})
	}
	return c.JSON(http.StatusOK, list)
}

// Feed godoc
// @Summary Community feed of all ideas
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive search over title and description"
// @Success 200 {array} IdeaResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /feed [get]
func (h *IdeaHandler) Feed(c echo.Context) error {
	ideas, err := h.ideaService.Feed(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to load feed",
			Code:  "FEED_FAILED",
		})
	}

	out := make([]IdeaResponse, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, toIdeaResponse(idea))
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get an idea with its author
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} IdeaResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [get]
func (h *IdeaHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid idea id")
	}

	idea, err := h.ideaService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toIdeaResponse(*idea))
}

// Create godoc
// @Summary Create an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIdeaRequest true "Idea data"
// @Success 201 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Router /ideas [post]
func (h *IdeaHandler) Create(c echo.Context) error {
	user := auth.UserFromContext(c)

	var req CreateIdeaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idea, err := h.ideaService.Create(c.Request().Context(), user.ID, req.Title, req.Description)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to create idea",
			Code:  "IDEA_CREATE_FAILED",
		})
	}
	return c.JSON(http.StatusCreated, idea)
}

// Update godoc
// @Summary Update an idea (owner only)
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Param request body UpdateIdeaRequest true "Idea data"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [put]
func (h *IdeaHandler) Update(c echo.Context) error {
	user := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid idea id")
	}

	var req UpdateIdeaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idea, err := h.ideaService.Update(c.Request().Context(), id, user.ID, req.Title, req.Description)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, idea)
}

// Delete godoc
// @Summary Delete an idea and its notes (owner only)
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [delete]
func (h *IdeaHandler) Delete(c echo.Context) error {
	user := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid idea id")
	}

	if err := h.ideaService.Delete(c.Request().Context(), id, user.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
