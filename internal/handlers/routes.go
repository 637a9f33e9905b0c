package handlers

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/agsdb/internal/config"
	"github.com/localnerve/agsdb/internal/middleware"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/views"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the services the routes are wired to
type Dependencies struct {
	DB       *gorm.DB
	Sessions *session.Store
	Auth     Authenticator
	Files    services.FileStore
	Config   *config.Config
	Logger   *zap.Logger
	Version  string
}

// NewApp creates the fiber app with the HTML views, sonic JSON codec and the
// global error handler
func NewApp(cfg *config.Config, log *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "agsdb",
		Views:        views.New(),
		ViewsLayout:  views.Layout,
		ErrorHandler: ErrorHandler(log),
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    cfg.UploadMaxBytes,
	})
}

// RegisterRoutes mounts every page and API route
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Use(middleware.VersionMiddleware(deps.Version))

	// Create handlers
	authHandler := &AuthHandler{
		DB:       deps.DB,
		Sessions: deps.Sessions,
		Auth:     deps.Auth,
		Config:   deps.Config,
		Logger:   deps.Logger,
	}
	projectHandler := &ProjectHandler{DB: deps.DB, Files: deps.Files, Logger: deps.Logger}
	tableHandler := &TableHandler{DB: deps.DB}
	healthHandler := &HealthHandler{DB: deps.DB, Config: deps.Config, Logger: deps.Logger}

	optionalUser := middleware.OptionalUser(deps.Sessions)
	requireUser := middleware.RequireUser(deps.Sessions)
	requireMember := middleware.RequireProjectMember(deps.DB)

	// Public routes
	app.Get("/", optionalUser, Home)
	app.Get("/login", optionalUser, authHandler.Login)
	app.Get("/auth", authHandler.Begin)
	app.Post("/auth", authHandler.Begin)
	app.Get("/callback", authHandler.Callback)
	app.Get("/logout", authHandler.Logout)
	app.Get("/health", healthHandler.Health)

	// Signed in routes
	app.Get("/projects", requireUser, projectHandler.List)
	app.Get("/projects/create", requireUser, projectHandler.New)
	app.Post("/projects/create", requireUser, projectHandler.Create)

	// Project member routes. The JSON feeds are registered before :tableId.
	app.Get("/projects/:projectId", requireUser, requireMember, projectHandler.Show)
	app.Post("/projects/:projectId/uploads", requireUser, requireMember, projectHandler.Upload)
	app.Get("/projects/:projectId/tables", requireUser, requireMember, tableHandler.Index)
	app.Get("/projects/:projectId/tables/locations", requireUser, requireMember, tableHandler.Locations)
	app.Get("/projects/:projectId/tables/sidebar", requireUser, requireMember, tableHandler.Sidebar)
	app.Get("/projects/:projectId/tables/:tableId", requireUser, requireMember, tableHandler.Show)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "[404] Resource Not Found")
	})
}
