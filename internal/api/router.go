package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/CapDevCostaRica/shipment-core/docs"
	"github.com/CapDevCostaRica/shipment-core/internal/api/handler"
	"github.com/CapDevCostaRica/shipment-core/internal/api/middleware"
	"github.com/CapDevCostaRica/shipment-core/internal/core/domain"
	"github.com/CapDevCostaRica/shipment-core/internal/core/service"
	mongodb "github.com/CapDevCostaRica/shipment-core/internal/infrastructure/db/mongo"
	redisdb "github.com/CapDevCostaRica/shipment-core/internal/infrastructure/db/redis"
	"github.com/CapDevCostaRica/shipment-core/internal/infrastructure/http/handlers"
	"github.com/CapDevCostaRica/shipment-core/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit enqueuer is constructed by the caller because its workers outlive
// individual requests.
func NewRouter(db *mongo.Database, rdb *redis.Client, codec *token.Codec, audit service.AuditEnqueuer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("shipment_core"))

	// --- Dependencies ---
	userRepo := redisdb.NewUserCache(rdb, mongodb.NewUserRepository(db), log)
	shipmentRepo := mongodb.NewShipmentRepository(db)

	authService := service.NewAuthService(userRepo, codec)
	shipmentService := service.NewShipmentService(shipmentRepo, userRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	authRequired := middleware.Auth(codec)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Shipment routes; each declares its allowed-role set ---
	anyRole := middleware.RBAC(
		domain.RoleGlobalManager,
		domain.RoleStoreManager,
		domain.RoleWarehouseStaff,
		domain.RoleCarrier,
	)

	v1 := e.Group("/v1", authRequired)
	v1.POST("/shipments", shipmentHandler.Create,
		middleware.RBAC(domain.RoleWarehouseStaff, domain.RoleStoreManager))
	v1.GET("/shipments", shipmentHandler.List, anyRole)
	v1.GET("/shipments/:id", shipmentHandler.Get, anyRole)
	v1.POST("/shipments/:id/transit", shipmentHandler.MarkInTransit,
		middleware.RBAC(domain.RoleWarehouseStaff, domain.RoleStoreManager, domain.RoleCarrier))
	v1.POST("/shipments/:id/delivered", shipmentHandler.MarkDelivered,
		middleware.RBAC(domain.RoleCarrier))
	v1.PUT("/shipments/:id/location", shipmentHandler.UpdateLocation,
		middleware.RBAC(domain.RoleCarrier))

	// --- Observability and docs (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
