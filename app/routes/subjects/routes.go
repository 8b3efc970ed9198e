package subjects

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupSubjectRoutes(app *fiber.App, db *sql.DB) {
	h := &Handler{DB: db}

	api := app.Group("/api/subjects")
	api.Get("/", h.ListSubjectsAPI)
	api.Post("/", h.CreateSubjectAPI)
	api.Get("/:id", h.GetSubjectAPI)
	api.Put("/:id", h.UpdateSubjectAPI)
	api.Delete("/:id", h.DeleteSubjectAPI)
}
