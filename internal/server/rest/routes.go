package rest

import (
	"strings"

	"github.com/dmitrijs2005/placementportal/internal/server/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func (s *HTTPServer) newRouter(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "placement-portal",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	app.Use(s.requestID())
	app.Use(s.requestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.AllowedOrigins),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	api := app.Group("/api")
	api.Get("/health", s.health)

	authGroup := api.Group("/auth")
	throttle := s.noThrottle
	if cfg.AuthRateLimit > 0 {
		throttle = newIPLimiter(cfg.AuthRateLimit).handler()
	}
	authGroup.Post("/signup", throttle, s.signup)
	authGroup.Post("/login", throttle, s.login)
	authGroup.Get("/verify", s.verify)

	apps := api.Group("/applications")
	apps.Get("/", s.listApplications)
	apps.Post("/", s.createApplication)
	apps.Get("/:id", s.getApplication)
	apps.Put("/:id", s.updateApplication)
	apps.Delete("/:id", s.deleteApplication)

	api.Get("/analytics/placement", s.placementStats)

	app.Use(s.notFound)

	return app
}

func (s *HTTPServer) noThrottle(c *fiber.Ctx) error {
	return c.Next()
}

// normalizeOrigins turns "a, b" into the "a,b" form the cors middleware
// expects.
func normalizeOrigins(origins string) string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
