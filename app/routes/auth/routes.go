package auth

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, db *sql.DB, jwtSecret string) {
	h := &Handler{DB: db, JWTSecret: jwtSecret}

	api := app.Group("/api")
	api.Post("/signup", h.SignupAPI)
	api.Post("/login", h.LoginAPI)
}
