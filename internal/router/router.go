package router

import (
	"time"

	"tindapos/internal/config"
	"tindapos/internal/handler"
	"tindapos/internal/middleware"
	"tindapos/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Sale    *handler.SaleHandler
	Log     *handler.LogHandler
	Price   *handler.PriceHandler
}

// New assembles the gin engine: global middleware, public routes, and the
// authenticated API grouped by role.
func New(cfg *config.Config, h Handlers, rdb *redis.Client, log zerolog.Logger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Origin())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	api.Use(middleware.RateLimit(rdb, "api", 300, time.Minute))

	// public
	api.GET("/ping", handler.Ping)
	api.GET("/price/:sku", h.Price.Check)
	api.POST("/login", middleware.RateLimit(rdb, "login", 10, time.Minute), h.Auth.Login)

	// authenticated
	auth := api.Group("")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/profile", h.Auth.Profile)
		auth.PUT("/change-password", h.Auth.ChangePassword)

		auth.GET("/products", h.Product.List)
		auth.GET("/products/:id", h.Product.Get)
		auth.GET("/products/:id/history", h.Product.History)
		auth.GET("/categories", h.Product.ListCategories)

		auth.POST("/sales", h.Sale.Create)
		auth.GET("/sales", h.Sale.List)
		auth.GET("/sales/summary", h.Sale.Summary)
		auth.GET("/sales/:id", h.Sale.Get)
	}

	// admin only
	admin := auth.Group("")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("/register", h.Auth.Register)

		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.POST("/products/:id/restock", h.Product.Restock)
		admin.GET("/inventory/movements", h.Product.Movements)
		admin.POST("/categories", h.Product.CreateCategory)

		admin.POST("/sales/:id/void", h.Sale.Void)

		admin.GET("/logs", h.Log.List)
	}

	return r
}
