package web

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/config"
	"github.com/HalimKing/Point-of-Sale-System--sub001/dashboard"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
	"github.com/HalimKing/Point-of-Sale-System--sub001/web/handlers"
	"github.com/HalimKing/Point-of-Sale-System--sub001/web/middleware"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server wired to the given database
func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	app := fiber.New(fiber.Config{
		AppName: "pos-api",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("ERROR [%s %s]: %v", c.Method(), c.Path(), err)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowCredentials: true}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))

	setupRoutes(app, cfg, db)

	return &Server{app: app}
}

// Start starts the server
func (s *Server) Start(port string) error {
	log.Printf("Server starting on http://localhost:%s", port)
	return s.app.Listen(":" + port)
}

// App exposes the fiber application (used by tests)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	agg := dashboard.NewAggregator(db, cfg.App.Timezone, cfg.App.Currency)

	authHandler := handlers.NewAuthHandler(db, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	dashboardHandler := handlers.NewDashboardHandler(agg)
	salesHandler := handlers.NewSalesHandler(db)
	productHandler := handlers.NewProductHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	supplierHandler := handlers.NewSupplierHandler(db)
	batchHandler := handlers.NewBatchHandler(db)
	userHandler := handlers.NewUserHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)

	protected := middleware.Protected(db, cfg.Auth.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api := app.Group("/api")

	// Authentication
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", protected, authHandler.Logout)
	auth.Get("/me", protected, authHandler.Me)

	// Dashboards
	dash := api.Group("/dashboard", protected)
	dash.Get("/cashier", dashboardHandler.Cashier)
	dash.Get("/admin", dashboardHandler.Admin)

	// Sales operations
	salesGroup := api.Group("/sales", protected)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.Get)

	// Product catalog
	products := api.Group("/products", protected)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Categories
	categories := api.Group("/categories", protected)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Suppliers
	suppliers := api.Group("/suppliers", protected)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Inventory batches
	batches := api.Group("/batches", protected)
	batches.Get("/", batchHandler.List)
	batches.Post("/", adminOnly, batchHandler.Create)

	// Staff accounts
	users := api.Group("/users", protected, adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Deactivate)

	// Company settings
	settings := api.Group("/settings", protected)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", adminOnly, settingsHandler.Update)
}
