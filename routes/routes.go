package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voiceleads-backend/controllers"
	"voiceleads-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, tc *controllers.TranscribeController, cc *controllers.ContactController) {
	// Operational endpoints
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)
	api.Get("/auth/google", controllers.GoogleLogin)
	api.Get("/auth/google/callback", controllers.GoogleCallback)

	// Protected endpoints (JWT auth, then membership check)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())
	protected.Use(middlewares.RequireWorkspace())

	// Idempotency runs per-route AFTER the action guard, so a replayed
	// response never bypasses a role check.
	idem := middlewares.Idempotency()

	// Session / workspace switching
	protected.Get("/workspaces", controllers.ListWorkspaces)
	protected.Post("/workspaces/switch", idem, controllers.SwitchWorkspace)

	// Voice pipeline
	protected.Post("/transcribe", middlewares.RequireAction("write"), tc.Transcribe)

	// Contacts
	protected.Post("/submit-contact", middlewares.RequireAction("write"), idem, cc.SubmitContact)
	protected.Get("/contacts", middlewares.RequireAction("read"), cc.ListContacts)
	protected.Get("/contacts/:id", middlewares.RequireAction("read"), cc.GetContact)
	protected.Delete("/contacts/:id", middlewares.RequireAction("delete"), idem, cc.DeleteContact)

	// Workspace settings & membership
	protected.Get("/workspace", middlewares.RequireAction("read"), controllers.GetWorkspace)
	protected.Patch("/workspace", middlewares.RequireAction("admin"), idem, controllers.UpdateWorkspace)
	protected.Get("/workspace/members", middlewares.RequireAction("read"), controllers.ListMembers)
	protected.Post("/workspace/members", middlewares.RequireAction("admin"), idem, controllers.InviteMember)
	protected.Put("/workspace/members/:userId", middlewares.RequireAction("admin"), idem, controllers.ChangeMemberRole)
	protected.Delete("/workspace/members/:userId", middlewares.RequireAction("admin"), idem, controllers.RemoveMember)

	// Usage
	protected.Get("/usage", middlewares.RequireAction("admin"), controllers.ListUsage)
}
