package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/config"
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/localnerve/vortex-console/internal/middleware"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/localnerve/vortex-console/internal/session"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps are the collaborators the routes are built from
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Console  *services.Console
	Sessions *session.Manager
	Monitor  *heartbeat.Monitor
	Log      zerolog.Logger
}

// Register mounts the console routes on app
func Register(app *fiber.App, d Deps) {
	base := Base{Console: d.Console, Monitor: d.Monitor}

	authHandler := &AuthHandler{Base: base}
	viewHandler := &ViewHandler{Base: base}
	shopHandler := &ShopHandler{Base: base}
	adminHandler := &AdminHandler{Base: base}
	uiHandler := &UIHandler{Base: base}
	statusHandler := &StatusHandler{Base: base, Config: d.Config, DB: d.DB, Log: d.Log}

	app.Get("/health", statusHandler.GetHealth)

	api := app.Group("/api", middleware.VersionMiddleware(), middleware.Session(d.Sessions, d.Console.Store()))

	api.Get("/heartbeat", statusHandler.GetHeartbeat)
	api.Get("/views/:view", viewHandler.GetView)

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/mode", authHandler.ToggleMode)
	auth.Post("/logout", authHandler.Logout)

	signedIn := middleware.AuthUser()
	api.Get("/purchases", signedIn, shopHandler.GetPurchases)
	api.Post("/purchases", signedIn, shopHandler.PostPurchase)
	api.Put("/account/password", signedIn, shopHandler.PutPassword)
	api.Get("/tickets", signedIn, shopHandler.GetTickets)
	api.Post("/tickets", signedIn, shopHandler.PostTicket)

	ui := api.Group("/ui", signedIn)
	ui.Post("/menu", uiHandler.ToggleMenu)
	ui.Post("/search", uiHandler.ToggleSearch)
	ui.Post("/account", uiHandler.ToggleAccount)

	admin := api.Group("/admin", middleware.AuthAdmin())
	admin.Post("/users/:id/ban", adminHandler.ToggleBan)
	admin.Put("/users/:id/status", adminHandler.SetStatus)
	admin.Put("/users/:id/password", adminHandler.SetPassword)
	admin.Post("/catalog/:category", adminHandler.AddItems)
	admin.Put("/catalog/:category/:index", adminHandler.EditItem)
	admin.Post("/catalog/:category/:index/stock", adminHandler.ToggleStock)
	admin.Delete("/catalog/:category/:index", adminHandler.DeleteItem)
	admin.Post("/tickets/:id/reply", adminHandler.ReplyTicket)
	admin.Get("/logs", adminHandler.GetLogs)
}
