package router

import (
	"github.com/slotpress/slotpress/app/controllers"
	"github.com/slotpress/slotpress/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminAPI := app.Group("/admin/api", middleware.RequireAPIAdmin)

	// Slot registry
	slots := adminAPI.Group("/slots")
	slots.Get("/", controllers.GetAdminSlotController().HandleList)
	slots.Post("/", controllers.GetAdminSlotController().HandleCreate)
	slots.Get("/:id", controllers.GetAdminSlotController().HandleGet)
	slots.Put("/:id", controllers.GetAdminSlotController().HandleUpdate)
	slots.Post("/:id/active", controllers.GetAdminSlotController().HandleSetActive)
	slots.Get("/:id/entitlements", controllers.GetAdminEntitlementController().HandleListBySlot)

	// Content placements
	placements := adminAPI.Group("/placements")
	placements.Get("/", controllers.GetAdminPlacementController().HandleList)
	placements.Post("/", controllers.GetAdminPlacementController().HandleCreate)
	placements.Put("/:id", controllers.GetAdminPlacementController().HandleUpdate)
	placements.Post("/:id/active", controllers.GetAdminPlacementController().HandleSetActive)
	placements.Post("/reconcile", controllers.GetAdminPlacementController().HandleReconcile)

	// Entitlements (manual grants, revocations)
	entitlements := adminAPI.Group("/entitlements")
	entitlements.Post("/", controllers.GetAdminEntitlementController().HandleGrant)
	entitlements.Post("/:id/revoke", controllers.GetAdminEntitlementController().HandleRevoke)

	// Users
	adminAPI.Get("/users/:id/entitlements", controllers.GetAdminEntitlementController().HandleListByUser)

	// Articles
	articles := adminAPI.Group("/articles")
	articles.Get("/", controllers.GetAdminArticleController().HandleList)
	articles.Post("/", controllers.GetAdminArticleController().HandleCreate)
	articles.Put("/:id", controllers.GetAdminArticleController().HandleUpdate)
	articles.Post("/:id/published", controllers.GetAdminArticleController().HandleSetPublished)
	articles.Delete("/:id", controllers.GetAdminArticleController().HandleDelete)

	// Clips
	clips := adminAPI.Group("/clips")
	clips.Get("/", controllers.GetAdminClipController().HandleList)
	clips.Post("/", controllers.GetAdminClipController().HandleCreate)
	clips.Put("/:id", controllers.GetAdminClipController().HandleUpdate)
	clips.Post("/:id/published", controllers.GetAdminClipController().HandleSetPublished)
	clips.Post("/:id/poster", controllers.GetAdminClipController().HandleUploadPoster)
	clips.Delete("/:id", controllers.GetAdminClipController().HandleDelete)

	// Merch
	merch := adminAPI.Group("/merch")
	merch.Get("/", controllers.GetAdminMerchController().HandleList)
	merch.Post("/", controllers.GetAdminMerchController().HandleCreate)
	merch.Put("/:id", controllers.GetAdminMerchController().HandleUpdate)
	merch.Post("/:id/active", controllers.GetAdminMerchController().HandleSetActive)
	merch.Post("/:id/image", controllers.GetAdminMerchController().HandleUploadImage)
	merch.Delete("/:id", controllers.GetAdminMerchController().HandleDelete)
}
