package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ideahub/internal/auth"
	"ideahub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	resolver auth.SessionResolver,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	ideaHandler *handler.IdeaHandler,
	noteHandler *handler.NoteHandler,
	assistHandler *handler.AssistHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/github", authHandler.GitHubAuthURL)
	api.GET("/auth/github/callback", authHandler.GitHubCallback)

	// Secured routes (require an active session)
	secured := api.Group("", auth.SessionMiddleware(resolver))

	secured.POST("/auth/logout", authHandler.Logout)

	secured.GET("/me", userHandler.Me)
	secured.PATCH("/me", userHandler.UpdateProfile)
	secured.GET("/me/sessions", authHandler.ListSessions)
	secured.DELETE("/me/sessions", authHandler.RevokeOtherSessions)
	secured.DELETE("/me/sessions/:id", authHandler.RevokeSession)
	secured.GET("/me/accounts", authHandler.ListAccounts)
	secured.DELETE("/me/accounts/:provider", authHandler.UnlinkAccount)

	// Idea routes
	secured.GET("/ideas", ideaHandler.List)
	secured.POST("/ideas", ideaHandler.Create)
	secured.GET("/ideas/:id", ideaHandler.Get)
	secured.PUT("/ideas/:id", ideaHandler.Update)
	secured.DELETE("/ideas/:id", ideaHandler.Delete)
	secured.GET("/ideas/:id/notes", noteHandler.ListByIdea)
	secured.GET("/feed", ideaHandler.Feed)

	// Note routes
	secured.POST("/notes", noteHandler.Create)
	secured.GET("/notes/:id", noteHandler.Get)
	secured.PUT("/notes/:id", noteHandler.Update)
	secured.DELETE("/notes/:id", noteHandler.Delete)

	// Assist route
	secured.POST("/assist/description", assistHandler.GenerateDescription)

	// Admin routes (session + admin flag, checked before any domain logic)
	admin := secured.Group("/admin", auth.AdminMiddleware())
	admin.GET("/users", userHandler.List)
	admin.PATCH("/users/:id/verification", userHandler.UpdateVerification)
	admin.PATCH("/users/:id/admin", userHandler.UpdateAdmin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
