package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes must run before the teachers/students packages
// register their parameterized routes so that the static count paths
// win the match.
func SetupDashboardRoutes(app *fiber.App, db *sql.DB) {
	h := &Handler{DB: db}

	api := app.Group("/api")
	api.Get("/teachers/count", h.TeacherCountAPI)
	api.Get("/student/count", h.StudentCountAPI)
	api.Get("/classes/count", h.ClassCountAPI)
	api.Get("/accounts/count", h.AccountCountAPI)
	api.Get("/students/by-class", h.StudentsByClassAPI)
	api.Get("/teachers/by-subject", h.TeachersBySubjectAPI)
}
