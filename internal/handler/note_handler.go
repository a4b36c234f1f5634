package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ideahub/internal/auth"
	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/service"
)

// NoteHandler handles note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents a note creation request.
type CreateNoteRequest struct {
	IdeaID      string `json:"idea_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=RESEARCH MEETING FEEDBACK TASK BRAINSTORM REFERENCE"`
}

// UpdateNoteRequest represents a note update request.
type UpdateNoteRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=RESEARCH MEETING FEEDBACK TASK BRAINSTORM REFERENCE"`
}

// ListByIdea godoc
// @Summary List notes of an owned idea
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {array} model.Note
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id}/notes [get]
func (h *NoteHandler) ListByIdea(c echo.Context) error {
	user := auth.UserFromContext(c)

	ideaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid idea id")
	}

	notes, err := h.noteService.ListByIdea(c.Request().Context(), ideaID, user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, notes)
}

// Get godoc
// @Summary Get a note (owner of the parent idea only)
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} model.Note
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	user := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid note id")
	}

	note, err := h.noteService.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, note)
}

// Create godoc
// @Summary Attach a note to an owned idea
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNoteRequest true "Note data"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	user := auth.UserFromContext(c)

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ideaID, err := uuid.Parse(req.IdeaID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid idea id")
	}

	note, err := h.noteService.Create(
		c.Request().Context(), user.ID, ideaID, req.Title, req.Description, model.NoteType(req.Type))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, note)
}

// Update godoc
// @Summary Update a note (owner of the parent idea only)
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Param request body UpdateNoteRequest true "Note data"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	user := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid note id")
	}

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Update(
		c.Request().Context(), id, user.ID, req.Title, req.Description, model.NoteType(req.Type))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, note)
}

// Delete godoc
// @Summary Delete a note (owner of the parent idea only)
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	user := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid note id")
	}

	if err := h.noteService.Delete(c.Request().Context(), id, user.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
