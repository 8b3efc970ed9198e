package teachers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

func SetupTeacherRoutes(app *fiber.App, db *sql.DB) {
	h := &Handler{DB: db}

	api := app.Group("/api/teachers")
	api.Get("/", h.ListTeachersAPI)
	api.Post("/", h.CreateTeacherAPI)
	api.Get("/:id", h.GetTeacherAPI)
	api.Put("/:id", h.UpdateTeacherAPI)
	api.Delete("/:id", h.DeleteTeacherAPI)

	api.Get("/:id/classes", h.TeacherClassesAPI)
	api.Get("/:id/classes/count", h.TeacherClassesCountAPI)
	api.Get("/:id/students/count", h.TeacherStudentsCountAPI)
	api.Get("/:id/classes/:classId/students", h.ClassStudentsAPI)

	api.Post("/:id/evaluations", h.CreateEvaluationAPI)
	api.Get("/:id/evaluations", h.ListEvaluationsAPI)
	api.Get("/:id/evaluations/:evaluationId/grades", h.EvaluationGradesAPI)
	api.Post("/:id/grades", h.RecordGradeAPI)

	api.Get("/:id/class-averages", h.ClassAveragesAPI)
	api.Get("/:id/attendance-rates", h.AttendanceRatesAPI)
	api.Get("/:id/attendance-trends", h.AttendanceTrendsAPI)
	api.Get("/:id/grade-trends", h.GradeTrendsAPI)
	api.Get("/:id/subject-comparison", h.SubjectComparisonAPI)
}
