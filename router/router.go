package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brewline/coffee-shop/controllers"
	"github.com/brewline/coffee-shop/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Registered before any route so gin bakes it into every handler chain.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db)
	statsCtrl := controllers.NewStatsController(db)
	feedCtrl := controllers.NewFeedController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Customer ordering flow, no login required.
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      BARISTA DASHBOARD
	// ----------------------------------------------------------------
	barista := r.Group("/barista")
	barista.Use(middlewares.AuthMiddleware())
	barista.Use(middlewares.BaristaOnly(db))
	{
		barista.GET("/profile", userCtrl.GetProfile)
		barista.POST("/logout", userCtrl.Logout)

		barista.GET("/orders", orderCtrl.GetActiveOrders)
		barista.POST("/orders/:order_id/start", orderCtrl.StartPreparing)
		barista.POST("/orders/:order_id/complete", orderCtrl.CompleteOrder)

		barista.GET("/stats", statsCtrl.GetDashboardStats)

		// Live feed over websocket; the token arrives as ?token=.
		barista.GET("/feed", feedCtrl.FeedHandler)
	}

	return r
}
