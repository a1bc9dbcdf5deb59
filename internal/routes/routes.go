package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ilywak/autosales-hub/internal/config"
	"github.com/ilywak/autosales-hub/internal/handlers"
	"github.com/ilywak/autosales-hub/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	garageHandler *handlers.GarageHandler,
	profileHandler *handlers.ProfileHandler,
	roleHandler *handlers.RoleHandler,
	vehicleHandler *handlers.VehicleHandler,
	clientHandler *handlers.ClientHandler,
	saleHandler *handlers.SaleHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no auth required)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Everything below requires a valid JWT and a resolved caller.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.CallerContext(db))

	// Garages: members read their own garage, admins manage all
	protected.Get("/garages", garageHandler.List)
	protected.Get("/garages/:id", garageHandler.Get)
	protected.Get("/garages/:id/settings", garageHandler.ListSettings)

	// Profiles and roles
	protected.Get("/profiles/me", profileHandler.GetOwn)
	protected.Put("/profiles/me", profileHandler.UpdateOwn)
	protected.Get("/roles/me", roleHandler.ListOwn)

	// Vehicles
	protected.Get("/vehicles", vehicleHandler.List)
	protected.Get("/vehicles/:id", vehicleHandler.Get)
	protected.Post("/vehicles", vehicleHandler.Create)
	protected.Put("/vehicles/:id", vehicleHandler.Update)
	protected.Delete("/vehicles/:id", vehicleHandler.Delete)

	// Clients
	protected.Get("/clients", clientHandler.List)
	protected.Get("/clients/:id", clientHandler.Get)
	protected.Post("/clients", clientHandler.Create)
	protected.Put("/clients/:id", clientHandler.Update)
	protected.Delete("/clients/:id", clientHandler.Delete)

	// Sales: no delete route, recorded sales are permanent
	protected.Get("/sales", saleHandler.List)
	protected.Get("/sales/:id", saleHandler.Get)
	protected.Post("/sales", saleHandler.Create)
	protected.Put("/sales/:id", saleHandler.Update)

	// Reports
	protected.Get("/reports/dashboard", reportHandler.Dashboard)

	// Admin panel (protected + admin role required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.CallerContext(db), middleware.AdminRequired())
	admin.Post("/garages", garageHandler.Create)
	admin.Put("/garages/:id", garageHandler.Update)
	admin.Delete("/garages/:id", garageHandler.Delete)
	admin.Put("/garages/:id/settings/:key", garageHandler.SetSetting)
	admin.Delete("/garages/:id/settings/:key", garageHandler.DeleteSetting)

	admin.Get("/profiles", profileHandler.List)
	admin.Get("/profiles/:id", profileHandler.Get)
	admin.Put("/profiles/:id", profileHandler.AdminUpdate)

	admin.Get("/users/:user_id/roles", roleHandler.ListForUser)
	admin.Post("/users/:user_id/roles", roleHandler.Grant)
	admin.Delete("/users/:user_id/roles/:role", roleHandler.Revoke)
}
