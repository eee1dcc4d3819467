package routes

import (
	"pho-paradise-api/handlers"
	"pho-paradise-api/middleware"

	"github.com/gin-gonic/gin"
)

// Deps carries the constructed handlers into route registration.
type Deps struct {
	Menu      *handlers.MenuHandler
	Orders    *handlers.OrderHandler
	Checkout  *handlers.CheckoutHandler
	Webhook   *handlers.WebhookHandler
	Progress  *handlers.ProgressHandler
	Seed      *handlers.SeedHandler
	JWTSecret []byte
}

func SetupRoutes(r *gin.Engine, d Deps) {
	// ── Public routes ──────────────────────────────────────────────
	api := r.Group("/api")
	{
		api.GET("/menu", d.Menu.ListMenu)

		api.GET("/orders", d.Orders.ListOrders)
		api.POST("/orders", d.Orders.CreateOrder)
		api.GET("/orders/:id", d.Orders.GetOrder)
		api.PUT("/orders/:id", d.Orders.UpdateStatus)

		api.POST("/checkout-session", d.Checkout.CreateSession)
		api.POST("/payment-webhook", d.Webhook.HandlePaymentWebhook)
		api.GET("/auto-progress", d.Progress.AutoProgress)

		api.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AdminRequired(d.JWTSecret))
	{
		admin.POST("/menu", d.Menu.CreateMenuItem)
		admin.DELETE("/menu/:id", d.Menu.DeleteMenuItem)
		admin.POST("/orders/:id/override", d.Orders.OverrideStatus)
		admin.POST("/admin/seed", d.Seed.Seed)
	}
}
