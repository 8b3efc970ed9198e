package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/IdrissSarmouk/schoolmanage-server/app/config"
	"github.com/IdrissSarmouk/schoolmanage-server/app/routes/attendance"
	"github.com/IdrissSarmouk/schoolmanage-server/app/routes/auth"
	"github.com/IdrissSarmouk/schoolmanage-server/app/routes/classes"
	"github.com/IdrissSarmouk/schoolmanage-server/app/routes/dashboard"
	"github.com/IdrissSarmouk/schoolmanage-server/app/routes/students"
	"github.com/IdrissSarmouk/schoolmanage-server/app/routes/subjects"
	"github.com/IdrissSarmouk/schoolmanage-server/app/routes/teachers"
)

func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func newApp(db *sql.DB, jwtSecret string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apiErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(recover.New())

	// Dashboard routes carry static paths like /api/teachers/count and
	// must be registered before the parameterized teacher and student
	// routes.
	dashboard.SetupDashboardRoutes(app, db)

	auth.SetupAuthRoutes(app, db, jwtSecret)
	teachers.SetupTeacherRoutes(app, db)
	students.SetupStudentRoutes(app, db)
	classes.SetupClassRoutes(app, db)
	subjects.SetupSubjectRoutes(app, db)
	attendance.SetupAttendanceRoutes(app, db)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"error": "Not Found"})
	})

	return app
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("config: ", err)
	}

	db, err := config.OpenDB(&cfg.Database)
	if err != nil {
		log.Fatal("database: ", err)
	}
	defer db.Close()

	app := newApp(db, cfg.Auth.JWTSecret)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Println("Server starting on", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatal("server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := app.Shutdown(); err != nil {
		log.Println("shutdown: ", err)
	}
}
