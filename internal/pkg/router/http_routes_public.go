package router

import (
	"github.com/slotpress/slotpress/app/controllers"
	"github.com/slotpress/slotpress/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public news pages
	app.Get("/news", loggedInMiddleware, controllers.HandleArticleIndex)
	app.Get("/news/:slug", loggedInMiddleware, controllers.HandleArticleShow)

	// Public clip pages
	app.Get("/clips", loggedInMiddleware, controllers.HandleClipIndex)
	app.Get("/clips/:uuid", loggedInMiddleware, controllers.HandleClipShow)

	// Merch store
	app.Get("/merch", loggedInMiddleware, controllers.HandleMerchIndex)
	app.Get("/merch/:slug", loggedInMiddleware, controllers.HandleMerchShow)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Payment provider webhook (no CSRF, signature-verified in controller)
	app.Post("/webhooks/payment", controllers.GetCheckoutController().HandlePaymentWebhook)
}
