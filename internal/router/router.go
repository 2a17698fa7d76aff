package router

import (
	"fmt"
	"strings"

	"github.com/pizzeria-next/internal/cache"
	"github.com/pizzeria-next/internal/config"
	adminhandlers "github.com/pizzeria-next/internal/http/handlers/admin"
	publichandlers "github.com/pizzeria-next/internal/http/handlers/public"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pz"
	}
	redisClient := cache.Client()
	staffLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:staff_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/toppings", publicHandler.ListToppings)
			public.POST("/promotions/validate", publicHandler.ValidatePromotion)
		}

		// 会话接口（购物车和下单，X-Session-Token 标识匿名顾客）
		session := apiV1.Group("")
		session.Use(SessionTokenMiddleware())
		{
			session.GET("/cart", publicHandler.GetCart)
			session.POST("/cart/lines", publicHandler.AddCartLine)
			session.PATCH("/cart/lines/:line_id", publicHandler.UpdateCartLine)
			session.DELETE("/cart/lines/:line_id", publicHandler.RemoveCartLine)
			session.DELETE("/cart", publicHandler.ClearCart)
			session.POST("/checkout", publicHandler.Checkout)
			session.GET("/orders/:order_no", publicHandler.LookupOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, staffLoginRule, KeyByIPAndJSONField("username")), adminHandler.Login)

			authed := admin.Group("")
			authed.Use(StaffJWTMiddleware(c.StaffAuthService))
			{
				authed.GET("/me", adminHandler.Me)

				authed.GET("/orders", adminHandler.ListOrders)
				authed.GET("/orders/stats", adminHandler.GetOrderStats)
				authed.GET("/orders/:id", adminHandler.GetOrder)
				authed.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)

				authed.GET("/promotions", adminHandler.ListPromotions)
				authed.POST("/promotions", adminHandler.CreatePromotion)
				authed.GET("/promotions/:id", adminHandler.GetPromotion)
				authed.PUT("/promotions/:id", adminHandler.UpdatePromotion)
				authed.DELETE("/promotions/:id", adminHandler.DeletePromotion)

				authed.GET("/inventory/stock", adminHandler.ListStock)
				authed.POST("/inventory/adjust", adminHandler.AdjustStock)
				authed.POST("/inventory/receive", adminHandler.ReceiveStock)
				authed.POST("/inventory/return", adminHandler.ReturnStock)
				authed.GET("/inventory/movements", adminHandler.ListStockMovements)
				authed.GET("/inventory/alerts", adminHandler.ListStockAlerts)
				authed.POST("/inventory/alerts/:id/acknowledge", adminHandler.AcknowledgeStockAlert)

				authed.GET("/inventory/barcode/:code", adminHandler.LookupBarcode)
				authed.POST("/inventory/products/:id/barcode", adminHandler.AssignProductBarcode)
				authed.POST("/inventory/products/:id/sku", adminHandler.AssignProductSKU)
				authed.POST("/inventory/barcodes/backfill", adminHandler.BackfillBarcodes)

				authed.GET("/settings", adminHandler.GetSettings)
				authed.PUT("/settings", adminHandler.UpdateSettings)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
