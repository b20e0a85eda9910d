package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotpress/slotpress/internal/pkg/middleware"
)

// Pong is the response payload of the ping endpoint
type Pong struct {
	Ping string `json:"ping"`
}

// ServerInterface lists the handlers the v1 API expects. The routes are
// documented in public/docs/v1/openapi.yml.
type ServerInterface interface {
	GetPing(c *fiber.Ctx) error
	GetSlotAccess(c *fiber.Ctx) error
	GetSlotContent(c *fiber.Ctx) error
	GetSlotVariant(c *fiber.Ctx) error
	PostCheckout(c *fiber.Ctx) error
	PostCheckoutVerify(c *fiber.Ctx) error
}

// RegisterHandlers attaches the v1 API routes to the given router group
func RegisterHandlers(router fiber.Router, si ServerInterface) {
	router.Get("/ping", si.GetPing)

	router.Get("/slots/:slug/access", si.GetSlotAccess)
	router.Get("/slots/:slug/content", si.GetSlotContent)
	router.Get("/slots/:slug/variant", si.GetSlotVariant)

	// Checkout requires a logged-in session; the webhook lives outside /api.
	router.Post("/checkout", middleware.RequireAPISessionAuth, si.PostCheckout)
	router.Post("/checkout/verify", middleware.RequireAPISessionAuth, si.PostCheckoutVerify)
}
