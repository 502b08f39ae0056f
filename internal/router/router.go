package router

import (
	"fmt"
	"strings"

	"github.com/estore-next/internal/cache"
	"github.com/estore-next/internal/config"
	publichandlers "github.com/estore-next/internal/http/handlers/public"
	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "estore"
	}
	redisClient := c.RedisClient
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout_submit", redisPrefix),
		WindowSeconds: cfg.Security.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SubmitRateLimit.MaxAttempts,
		MessageKey:    "error.submit_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(SessionMiddleware(c.AuthService))
	{
		// 目录接口（无需设备）
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/facets", publicHandler.GetFacets)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/shipping-methods", publicHandler.ListShippingMethods)
		apiV1.GET("/coupons", publicHandler.ListCoupons)
		apiV1.GET("/search/suggestions", publicHandler.GetSuggestions)
		apiV1.GET("/search/popular", publicHandler.GetPopularSearches)

		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.POST("/register", RateLimitMiddleware(redisClient, loginRule, KeyByIP), publicHandler.Register)
		}
		apiV1.GET("/me", publicHandler.GetMe)
		apiV1.GET("/orders", publicHandler.ListOrders)
		apiV1.GET("/orders/:order_no", publicHandler.GetOrderByOrderNo)

		// 设备接口（需 X-Device-ID）
		device := apiV1.Group("")
		device.Use(DeviceMiddleware(c.DeviceRegistry))
		{
			device.GET("/search/history", publicHandler.GetSearchHistory)
			device.POST("/search/history", publicHandler.AddSearchHistory)
			device.DELETE("/search/history", publicHandler.ClearSearchHistory)
			device.DELETE("/search/history/:query", publicHandler.DeleteSearchHistory)
			device.PUT("/search/session", publicHandler.UpdateSearchSession)
			device.GET("/search/session", publicHandler.GetSearchSession)

			device.GET("/cart", publicHandler.GetCart)
			device.DELETE("/cart", publicHandler.ClearCart)
			device.POST("/cart/items", publicHandler.AddCartItem)
			device.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			device.DELETE("/cart/items/:id", publicHandler.DeleteCartItem)
			device.POST("/cart/items/:id/toggle", publicHandler.ToggleCartItem)
			device.POST("/cart/select-all", publicHandler.SelectAllCartItems)
			device.POST("/cart/unselect-all", publicHandler.UnselectAllCartItems)
			device.POST("/cart/toggle-all", publicHandler.ToggleAllCartItems)

			device.GET("/wishlist", publicHandler.GetWishlist)
			device.POST("/wishlist", publicHandler.AddWishlistItem)
			device.DELETE("/wishlist", publicHandler.ClearWishlist)
			device.POST("/wishlist/:product_id/toggle", publicHandler.ToggleWishlistItem)
			device.DELETE("/wishlist/:product_id", publicHandler.RemoveWishlistItem)

			device.GET("/addresses", publicHandler.ListAddresses)
			device.POST("/addresses", publicHandler.AddAddress)
			device.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			device.POST("/addresses/:id/default", publicHandler.SetDefaultAddress)

			device.POST("/checkout/preview", publicHandler.PreviewCheckout)
			device.POST("/checkout/submit", RateLimitMiddleware(redisClient, submitRule, KeyByDevice), publicHandler.SubmitCheckout)
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		status := "ok"
		if err := cache.Ping(ctx.Request.Context()); err != nil {
			status = "degraded"
		}
		ctx.JSON(200, gin.H{
			"status":         status,
			"storage_driver": c.StorageFactory.Driver(),
			"queue_enabled":  c.QueueClient.Enabled(),
		})
	})

	return r
}
