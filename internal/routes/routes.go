package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/campusmart/internal/config"
	"github.com/example/campusmart/internal/handlers"
	"github.com/example/campusmart/internal/middleware"
	"github.com/example/campusmart/internal/services"
	"github.com/example/campusmart/internal/ws"
)

// Register wires up all HTTP and websocket routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, hub *ws.Hub) {
	emailService := services.NewEmailService(cfg)

	authHandler := handlers.NewAuthHandler(db, cfg, emailService)
	resetHandler := handlers.NewPasswordResetHandler(db, cfg, emailService)
	itemHandler := handlers.NewItemHandler(db)
	lostFoundHandler := handlers.NewLostFoundHandler(db)
	wishlistHandler := handlers.NewWishlistHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	chatHandler := handlers.NewChatHandler(db)
	messageHandler := handlers.NewMessageHandler(db)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)

	// The guard is attached per route so public routes can share a prefix
	// with protected ones.
	authRequired := middleware.AuthMiddleware(cfg)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify", authHandler.Verify)
	auth.Post("/resend-otp", authHandler.ResendOTP)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", resetHandler.ForgotPassword)
	auth.Put("/reset-password/:token", resetHandler.ResetPassword)

	// Item routes; fixed paths registered before the parameterized ones.
	items := api.Group("/items")
	items.Get("/", itemHandler.ListItems)
	items.Post("/", authRequired, itemHandler.CreateItem)
	items.Get("/my-items", authRequired, itemHandler.MyItems)
	items.Get("/my-listings", authRequired, itemHandler.MyListings)
	items.Get("/:id", itemHandler.GetItem)
	items.Put("/:id", authRequired, itemHandler.UpdateItem)
	items.Delete("/:id", authRequired, itemHandler.DeleteItem)
	items.Patch("/:id/status", authRequired, itemHandler.ToggleSoldStatus)

	// Lost & found routes
	lostFound := api.Group("/lost-found")
	lostFound.Get("/", lostFoundHandler.ListReports)
	lostFound.Post("/", authRequired, lostFoundHandler.CreateReport)
	lostFound.Get("/:id", lostFoundHandler.GetReport)
	lostFound.Patch("/:id/resolve", authRequired, lostFoundHandler.ToggleResolved)
	lostFound.Delete("/:id", authRequired, lostFoundHandler.DeleteReport)

	users := api.Group("/users", authRequired)
	users.Get("/profile", profileHandler.GetProfile)
	users.Put("/profile", profileHandler.UpdateProfile)
	users.Get("/wishlist", wishlistHandler.List)
	users.Post("/wishlist/:itemId", wishlistHandler.Toggle)

	chat := api.Group("/chat", authRequired)
	chat.Post("/", chatHandler.AccessChat)
	chat.Get("/", chatHandler.ListChats)

	message := api.Group("/message", authRequired)
	message.Post("/", messageHandler.SendMessage)
	message.Get("/:chatId", messageHandler.ListMessages)

	api.Post("/upload", authRequired, uploadHandler.Upload)

	// Chat transport
	app.Use("/ws", ws.UpgradeGuard)
	app.Get("/ws", ws.Handler(hub))
}
