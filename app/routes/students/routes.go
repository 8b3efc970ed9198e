package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App, db *sql.DB) {
	h := &Handler{DB: db}

	api := app.Group("/api/students")
	api.Get("/", h.ListStudentsAPI)
	api.Post("/", h.CreateStudentAPI)
	api.Get("/:id", h.GetStudentAPI)
	api.Put("/:id", h.UpdateStudentAPI)
	api.Delete("/:id", h.DeleteStudentAPI)
}
