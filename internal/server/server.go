package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"gymcore/internal/auth"
	"gymcore/internal/availability"
	"gymcore/internal/billing"
	"gymcore/internal/booking"
	"gymcore/internal/config"
	"gymcore/internal/dashboard"
	"gymcore/internal/db"
	"gymcore/internal/gym"
	"gymcore/internal/notify"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	http   *http.Server
}

func New(database *sqlx.DB, cfg *config.Config, notifier notify.Publisher) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	price, err := cfg.SessionPrice()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	gymRepo := gym.NewRepository(database)
	store := availability.NewStore(availability.NewRepository(database), gymRepo, loc)

	gymHandler := gym.NewHandler(gym.NewService(gymRepo))
	bookingHandler := booking.NewHandler(booking.NewService(db.NewTxManager(database, cfg.TxMaxRetries), loc, price, notifier))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(
		gymRepo,
		booking.NewRepository(database),
		billing.NewRepository(database),
		store,
	))

	router.GET("/health", Health(database))
	router.GET("/metrics", Metrics())
	router.GET("/rooms", gymHandler.ListRooms)
	router.GET("/classes/upcoming", dashboardHandler.UpcomingClasses)
	router.GET("/trainers/:id/availability", bookingHandler.ListAvailability)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/sessions", bookingHandler.BookSession)
		protected.POST("/classes/:id/register", bookingHandler.RegisterForClass)
		protected.PUT("/members/:id", gymHandler.UpdateMember)
		protected.GET("/members/:id/dashboard", dashboardHandler.MemberDashboard)
		protected.POST("/members/:id/metrics", gymHandler.LogHealthMetric)
		protected.GET("/members/:id/metrics", gymHandler.ListHealthMetrics)
	}

	staff := router.Group("/")
	staff.Use(authMiddleware, auth.RequireRole(auth.RoleTrainer, auth.RoleAdmin))
	{
		staff.PATCH("/sessions/:id", bookingHandler.RescheduleSession)
		staff.POST("/classes", bookingHandler.CreateClass)
		staff.PUT("/classes/:id", bookingHandler.UpdateClass)
		staff.POST("/trainers/:id/availability", bookingHandler.SetAvailability)
		staff.PUT("/availability/:id", bookingHandler.UpdateAvailability)
		staff.GET("/trainers/:id/schedule", dashboardHandler.TrainerSchedule)
		staff.GET("/trainers/:id/members", gymHandler.LookupTrainerMembers)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/members", gymHandler.CreateMember)
		admin.POST("/trainers", gymHandler.CreateTrainer)
		admin.POST("/rooms", gymHandler.CreateRoom)
		admin.POST("/sessions/:id/room", bookingHandler.AdminReassignRoom)
		admin.POST("/classes/:id/reschedule", bookingHandler.AdminRescheduleClass)
	}

	return &Server{
		router: router,
		db:     database,
		config: cfg,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	if err := s.http.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
