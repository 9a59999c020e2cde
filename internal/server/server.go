package server

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/farellandr/dataswift/config"
	"github.com/farellandr/dataswift/internal/handlers"
	"github.com/farellandr/dataswift/internal/middleware"
	"github.com/farellandr/dataswift/internal/store"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	st, err := store.New(db, cfg.RootAdmin)
	if err != nil {
		return fmt.Errorf("failed to load record store: %v", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	SetupRoutes(r, st)

	return r.Run(":" + cfg.Port)
}

func SetupRoutes(r *gin.Engine, st *store.Store) {
	r.Use(middleware.StoreMiddleware(st))

	public := r.Group("/v1")
	{
		public.POST("/login", handlers.Login)
		public.GET("/session", handlers.GetSession)
		public.GET("/plans", handlers.ListPlans)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.POST("/logout", handlers.Logout)
		protected.PUT("/session/view", handlers.SetView)
		protected.PUT("/settings/password", handlers.UpdatePassword)
		protected.GET("/dashboard", handlers.GetDashboard)
		protected.GET("/history", handlers.ListHistory)
		protected.POST("/purchases", handlers.CreatePurchase)
		protected.GET("/purchases/:id/qr", handlers.GenerateOrderQR)
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/stats", handlers.GetAdminStats)
		admin.GET("/orders", handlers.ListOrders)
		admin.POST("/orders/verify", handlers.VerifyOrderReference)
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
		admin.GET("/clients", handlers.ListClients)
		admin.DELETE("/clients/:id", handlers.DeleteClient)
		admin.PUT("/clients/:id/password", handlers.ResetClientPassword)
		admin.GET("/staff", handlers.ListStaff)
		admin.POST("/staff", handlers.CreateAdmin)
		admin.POST("/plans", handlers.CreatePlan)
		admin.PUT("/plans/:id", handlers.UpdatePlan)
		admin.DELETE("/plans/:id", handlers.DeletePlan)
	}
}
