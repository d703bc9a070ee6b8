package FiberConfig

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"Guardias/Controllers"
	"Guardias/Models"
	"Guardias/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	parteController := Controllers.NewParteController(db)
	leaderController := Controllers.NewLeaderController(db)
	adminController := Controllers.NewAdminController(db)

	api := app.Group("/api")

	// Session
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)
	api.Get("/me", middleware.Verify(db), authController.Me)

	// Employee partes (always the logged-in employee's own)
	partes := api.Group("/partes", middleware.Verify(db))
	partes.Get("/:periodo", parteController.GetParte)
	partes.Post("/:periodo", parteController.SaveParte)
	partes.Post("/:periodo/submit", parteController.SubmitParte)
	partes.Get("/:periodo/export", parteController.ExportParte)

	// Leader inbox
	lider := api.Group("/lider", middleware.Verify(db), middleware.LeaderOnly(db))
	lider.Get("/pendientes", leaderController.Pendientes)
	lider.Get("/partes/:legajo/:periodo", leaderController.GetParteDetalle)
	lider.Post("/partes/:legajo/:periodo/decide", leaderController.Decide)

	// Admin master import
	admin := api.Group("/admin", middleware.AdminOnly())
	admin.Post("/maestro", adminController.ImportMaestro)
	admin.Get("/personal", adminController.ListPersonal)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	corsCfg := cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Admin-Password",
		MaxAge:       300,
	}
	// Cookies need credentialed CORS, which fiber only allows with explicit
	// origins.
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	app.Use(cors.New(corsCfg))

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
