package attendance

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App, db *sql.DB) {
	h := &Handler{DB: db}

	api := app.Group("/api/attendance")
	api.Get("/status", h.AttendanceStatusAPI)
	api.Get("/status/class/:classId", h.ClassAttendanceAPI)
	api.Get("/status/:studentId", h.StudentAttendanceAPI)
	api.Post("/record", h.RecordAttendanceAPI)
	api.Post("/bulk-record", h.BulkRecordAttendanceAPI)
}
