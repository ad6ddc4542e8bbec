package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ShkryumDev/pizza-delivery-api/internal/api/handler"
	"github.com/ShkryumDev/pizza-delivery-api/internal/api/middleware"
	"github.com/ShkryumDev/pizza-delivery-api/internal/core/service"
	"github.com/ShkryumDev/pizza-delivery-api/internal/infrastructure/config"
	mongodb "github.com/ShkryumDev/pizza-delivery-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ShkryumDev/pizza-delivery-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	// The original API exposed some paths with trailing slashes; accept both.
	e.Pre(echomiddleware.RemoveTrailingSlashWithConfig(echomiddleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool { return c.Request().URL.Path == "/orders/" },
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))
	e.Use(echoprometheus.NewMiddleware("pizza_http"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	denylist := redisdb.NewDenylist(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	orderService := service.NewOrderService(orderRepo, log)

	authHandler := handler.NewAuthHandler(authService, denylist)
	orderHandler := handler.NewOrderHandler(orderService)

	authMW := middleware.Auth(cfg.JWTSecret, denylist)
	identityMW := middleware.Identity(userRepo)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Order routes (token + per-request identity resolution) ---
	orders := e.Group("/orders", authMW, identityMW)
	orders.GET("/", orderHandler.Hello)
	orders.POST("/order", orderHandler.Place)
	orders.GET("/orders", orderHandler.ListAll)
	orders.GET("/orders/:id", orderHandler.GetByID)
	orders.GET("/user/orders", orderHandler.ListMine)
	orders.GET("/user/order/:id", orderHandler.GetMine)
	orders.PUT("/order/update/:id", orderHandler.UpdateFields)
	orders.PATCH("/order/update/:id", orderHandler.UpdateStatus)
	orders.DELETE("/order/delete/:id", orderHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
