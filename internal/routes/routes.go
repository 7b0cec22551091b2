package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hospital-backend/internal/config"
	"hospital-backend/internal/handlers"
	"hospital-backend/internal/hospital"
	"hospital-backend/internal/middleware"
)

// SetupRouter assembles the gin engine: middleware, the /api surface and
// the static frontend fallback.
func SetupRouter(svc *hospital.Service, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	h := handlers.New(svc)
	api := r.Group("/api")

	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)

	api.GET("/doctors", h.ListDoctors)
	api.POST("/doctors", h.CreateDoctor)
	api.DELETE("/doctors/:id", h.DeleteDoctor)

	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.CreateAppointment)
	api.DELETE("/appointments/:id", h.DeleteAppointment)

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)

	admin := api.Group("/admin")
	admin.GET("/users", h.ListUsers)
	admin.POST("/users/:id/make_admin", h.MakeAdmin)
	admin.POST("/users/:id/remove_admin", h.RemoveAdmin)
	admin.POST("/clear", h.Clear)

	api.POST("/seed", h.Seed)
	api.GET("/health", h.Health)

	r.NoRoute(handlers.Static(cfg.StaticDir))
	return r
}
