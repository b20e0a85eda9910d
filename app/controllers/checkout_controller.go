package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/slotpress/slotpress/internal/pkg/database"
	"github.com/slotpress/slotpress/internal/pkg/env"
	"github.com/slotpress/slotpress/internal/pkg/payments"
	"github.com/slotpress/slotpress/internal/pkg/usercontext"
)

// CheckoutController drives slot purchases through the payment provider
type CheckoutController struct {
	service *payments.Service
}

var checkoutController *CheckoutController

// InitializeCheckoutController wires the payments service to the database and
// the provider client from the environment
func InitializeCheckoutController() {
	checkoutController = &CheckoutController{
		service: payments.NewService(
			payments.NewRepository(database.GetDB()),
			payments.NewClientFromEnv(),
		),
	}
}

// GetCheckoutController returns the initialized checkout controller
func GetCheckoutController() *CheckoutController {
	if checkoutController == nil {
		panic("Checkout controller not initialized. Call InitializeCheckoutController first.")
	}
	return checkoutController
}

type checkoutRequest struct {
	SlotID uint64 `json:"slot_id"`
}

// HandleCheckoutBegin opens a provider checkout session for a slot purchase
func (cc *CheckoutController) HandleCheckoutBegin(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil || req.SlotID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "slot_id is required"})
	}

	order, checkoutURL, err := cc.service.BeginCheckout(c.Context(), userCtx.UserID, req.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Slot not found"})
		}
		if errors.Is(err, payments.ErrSlotNotPurchasable) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "not_purchasable", "message": "This slot cannot be purchased"})
		}
		log.Errorf("[Checkout] begin failed for user %d slot %d: %v", userCtx.UserID, req.SlotID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "provider_error", "message": "Could not open checkout session"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":     order.PublicID,
		"checkout_url": checkoutURL,
	})
}

type verifyRequest struct {
	SessionID string `json:"session_id"`
}

// HandleCheckoutVerify confirms a checkout session from the return flow. The
// webhook is the authoritative path; this exists so the buyer does not stare
// at a pending page when the webhook is delayed.
func (cc *CheckoutController) HandleCheckoutVerify(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Login required"})
	}

	var req verifyRequest
	if err := c.BodyParser(&req); err != nil || req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "session_id is required"})
	}

	order, err := cc.service.ConfirmCheckout(c.Context(), req.SessionID, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Order not found"})
		}
		if errors.Is(err, payments.ErrSessionNotPaid) {
			return c.JSON(fiber.Map{"status": order.Status})
		}
		log.Errorf("[Checkout] verify failed for session %s: %v", req.SessionID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "provider_error", "message": "Could not verify checkout session"})
	}

	if order.UserID != userCtx.UserID && !userCtx.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Not your order"})
	}

	return c.JSON(fiber.Map{"status": order.Status})
}

type webhookPayload struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	SessionID string `json:"session_id"`
}

// HandlePaymentWebhook is the provider's asynchronous confirmation path. The
// raw body is signature-verified before anything is parsed.
func (cc *CheckoutController) HandlePaymentWebhook(c *fiber.Ctx) error {
	rawBody := c.Body()
	signature := c.Get("X-Payment-Signature")
	secret := env.GetEnv("PAYMENT_WEBHOOK_SECRET", "")

	if !payments.VerifyWebhookSignature(rawBody, signature, secret) {
		log.Warnf("[Checkout] webhook with invalid signature from %s", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	var payload webhookPayload
	if err := c.BodyParser(&payload); err != nil || payload.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request"})
	}

	if _, err := cc.service.ConfirmCheckout(c.Context(), payload.SessionID, payload.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown session: acknowledged so the provider stops retrying.
			log.Warnf("[Checkout] webhook for unknown session %s", payload.SessionID)
			return c.SendStatus(fiber.StatusOK)
		}
		if errors.Is(err, payments.ErrSessionNotPaid) {
			return c.SendStatus(fiber.StatusOK)
		}
		log.Errorf("[Checkout] webhook confirm failed for session %s: %v", payload.SessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error"})
	}

	return c.SendStatus(fiber.StatusOK)
}
