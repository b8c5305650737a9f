package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/config"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the handlers call into.
type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Schedule service.ScheduleService
	Sessions service.SessionService
	Coaching service.CoachingService
	// Status reports whether the server runs on fixture data.
	Status func() service.Status
}

func SetupRoutes(router *gin.Engine, cfg config.Config, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	scheduleHandler := NewScheduleHandler(svc.Schedule)
	sessionHandler := NewSessionHandler(svc.Sessions)
	coachingHandler := NewCoachingHandler(svc.Coaching)

	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	authMiddleware := AuthMiddleware(svc.Auth.GetJWTSecret())
	staff := RoleMiddleware(domain.RoleCoach, domain.RoleAdmin)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, svc.Status())
		})

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/lookup", authHandler.Lookup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/first-password", authHandler.FirstPassword)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me", userHandler.UpdateMe)
		protected.GET("/dashboard", sessionHandler.Dashboard)
		protected.GET("/tips", RateLimitMiddleware(cfg.RateLimit.TipsPerMinute), coachingHandler.Tips)

		shiftGroup := protected.Group("/shifts")
		{
			shiftGroup.GET("", scheduleHandler.ListShifts)
			shiftGroup.POST("", staff, scheduleHandler.CreateShift)
			shiftGroup.DELETE("/:id", staff, scheduleHandler.DeleteShift)
			shiftGroup.POST("/:id/sessions", staff, sessionHandler.Activate)
		}

		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.GET("/active", sessionHandler.ActiveSessions)
			sessionGroup.GET("/history", sessionHandler.History)
			sessionGroup.POST("/:id/attendance", sessionHandler.ConfirmAttendance)
			sessionGroup.POST("/:id/complete", staff, sessionHandler.Complete)
			sessionGroup.POST("/:id/video-upload", staff, sessionHandler.RequestVideoUpload)
			sessionGroup.DELETE("/:id", staff, sessionHandler.DeleteSession)
		}

		userGroup := protected.Group("/users")
		{
			userGroup.GET("", staff, userHandler.ListUsers)
			userGroup.POST("", adminOnly, userHandler.CreateUser)
			userGroup.DELETE("/:id", adminOnly, userHandler.DeleteUser)
		}
	}
}

// corsConfig allows the single-page client to call the API. Tokens travel
// in the Authorization header, so no cookies are involved.
func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}
