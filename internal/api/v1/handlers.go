package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/slotpress/slotpress/app/controllers"
)

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetSlotAccess returns the access decision for a slot slug
func (s *APIServer) GetSlotAccess(c *fiber.Ctx) error {
	return controllers.GetSlotController().HandleSlotAccess(c)
}

// GetSlotContent returns the access decision plus the live placements of a slot
func (s *APIServer) GetSlotContent(c *fiber.Ctx) error {
	return controllers.GetSlotController().HandleSlotContent(c)
}

// GetSlotVariant returns only the winning placement of a slot
func (s *APIServer) GetSlotVariant(c *fiber.Ctx) error {
	return controllers.GetSlotController().HandleSlotVariant(c)
}

// PostCheckout opens a checkout session for a slot purchase.
// Security is enforced via session middleware attached in RegisterHandlers.
func (s *APIServer) PostCheckout(c *fiber.Ctx) error {
	return controllers.GetCheckoutController().HandleCheckoutBegin(c)
}

// PostCheckoutVerify confirms a checkout session from the buyer's return flow
func (s *APIServer) PostCheckoutVerify(c *fiber.Ctx) error {
	return controllers.GetCheckoutController().HandleCheckoutVerify(c)
}
