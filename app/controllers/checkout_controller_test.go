package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signWebhookBody(body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookTestApp(cc *CheckoutController) *fiber.App {
	app := fiber.New()
	app.Post("/webhooks/payment", cc.HandlePaymentWebhook)
	return app
}

func TestHandlePaymentWebhookRejectsInvalidSignature(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec_test")
	app := newWebhookTestApp(&CheckoutController{})

	req := httptest.NewRequest("POST", "/webhooks/payment", strings.NewReader(`{"session_id":"cs_1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Payment-Signature", "deadbeef")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandlePaymentWebhookRejectsMissingSignature(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec_test")
	app := newWebhookTestApp(&CheckoutController{})

	req := httptest.NewRequest("POST", "/webhooks/payment", strings.NewReader(`{"session_id":"cs_1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandlePaymentWebhookRejectsBodyWithoutSession(t *testing.T) {
	t.Setenv("PAYMENT_WEBHOOK_SECRET", "whsec_test")
	app := newWebhookTestApp(&CheckoutController{})

	body := `{"event_id":"evt_1"}`
	req := httptest.NewRequest("POST", "/webhooks/payment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Payment-Signature", signWebhookBody(body, "whsec_test"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
