package router

import (
	"github.com/slotpress/slotpress/app/controllers"
	"github.com/slotpress/slotpress/internal/pkg/middleware"
	"github.com/slotpress/slotpress/internal/pkg/oauth"
	"github.com/slotpress/slotpress/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize slot surface controllers with repositories
	controllers.InitializeSlotController()
	controllers.InitializeCheckoutController()

	// Initialize admin controllers with repositories
	controllers.InitializeAdminSlotController()
	controllers.InitializeAdminPlacementController()
	controllers.InitializeAdminEntitlementController()
	controllers.InitializeAdminArticleController()
	controllers.InitializeAdminClipController()
	controllers.InitializeAdminMerchController()

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context; this just passes
	// through so guest-visible routes read uniformly.
	return c.Next()
}
