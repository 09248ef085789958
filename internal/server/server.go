package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/mohamedammar2729/Parking-System/internal/auth"
	"github.com/mohamedammar2729/Parking-System/internal/category"
	"github.com/mohamedammar2729/Parking-System/internal/config"
	"github.com/mohamedammar2729/Parking-System/internal/gate"
	"github.com/mohamedammar2729/Parking-System/internal/realtime"
	"github.com/mohamedammar2729/Parking-System/internal/subscription"
	"github.com/mohamedammar2729/Parking-System/internal/tariff"
	"github.com/mohamedammar2729/Parking-System/internal/ticket"
	"github.com/mohamedammar2729/Parking-System/internal/user"
	"github.com/mohamedammar2729/Parking-System/internal/zone"
)

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *sqlx.DB
	config     *config.Config

	tariffs tariff.Service
	zones   zone.Service
}

// New wires every service and route. The publisher is the realtime fan-out
// the domain services broadcast through; the hub serves the websocket
// endpoint itself.
func New(db *sqlx.DB, cfg *config.Config, hub *realtime.Hub, publisher realtime.Publisher) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	tariffService := tariff.NewService(tariff.NewRepository(db), publisher)
	zoneService := zone.NewService(zone.NewRepository(db), zone.NewLedger(), publisher)
	subscriptionService := subscription.NewService(subscription.NewRepository(db))
	ticketService := ticket.NewService(ticket.NewRepository(db), zoneService, subscriptionService, tariffService, publisher)

	userHandler := user.NewHandler(user.NewService(user.NewRepository(db), cfg.JWTSecret))
	gateHandler := gate.NewHandler(gate.NewService(gate.NewRepository(db)))
	categoryService := category.NewService(category.NewRepository(db), publisher)
	categoryHandler := category.NewHandler(categoryService)
	zoneHandler := zone.NewHandler(zoneService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	ticketHandler := ticket.NewHandler(ticketService)
	tariffHandler := tariff.NewHandler(tariffService)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", userHandler.Login)

	v1.GET("/master/gates", gateHandler.ListGates)
	v1.GET("/master/zones", zoneHandler.ListZones)
	v1.GET("/master/categories", categoryHandler.ListCategories)
	v1.GET("/subscriptions/:id", subscriptionHandler.GetSubscription)

	// Gate terminals check cars in without credentials; checkpoint
	// terminals are operated by logged-in employees.
	v1.POST("/tickets/checkin", ticketHandler.Checkin)
	v1.GET("/tickets/:id", ticketHandler.GetTicket)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := v1.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/tickets/checkout", ticketHandler.Checkout)
	}

	admin := v1.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.GET("/reports/parking-state", zoneHandler.ParkingState)
		admin.PUT("/categories/:id", categoryHandler.UpdateRates)
		admin.PUT("/zones/:id/open", zoneHandler.SetOpen)
		admin.GET("/rush-hours", tariffHandler.ListRushWindows)
		admin.POST("/rush-hours", tariffHandler.CreateRushWindow)
		admin.GET("/vacations", tariffHandler.ListVacations)
		admin.POST("/vacations", tariffHandler.CreateVacation)
	}

	v1.GET("/ws", realtime.WSHandler(hub))

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router:  router,
		db:      db,
		config:  cfg,
		tariffs: tariffService,
		zones:   zoneService,
	}
}

// Bootstrap loads the tariff snapshot and seeds the occupancy ledger.
// Must succeed before Start.
func (s *Server) Bootstrap(ctx context.Context) error {
	if err := s.tariffs.Reload(ctx); err != nil {
		return err
	}
	return s.zones.Seed(ctx)
}

func (s *Server) Start(port string) error {
	s.httpServer = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
