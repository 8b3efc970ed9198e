package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupClassRoutes(app *fiber.App, db *sql.DB) {
	h := &Handler{DB: db}

	api := app.Group("/api/classes")
	api.Get("/", h.ListClassesAPI)
	api.Post("/", h.CreateClassAPI)
	api.Get("/:id", h.GetClassAPI)
	api.Put("/:id", h.UpdateClassAPI)
	api.Delete("/:id", h.DeleteClassAPI)
}
