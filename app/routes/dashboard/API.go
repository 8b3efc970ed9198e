package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

type Handler struct {
	DB *sql.DB
}

func (h *Handler) TeacherCountAPI(c *fiber.Ctx) error {
	total, err := database.CountUsersByRole(h.DB, models.RoleTeacher)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(fiber.Map{"total_teachers": total})
}

func (h *Handler) StudentCountAPI(c *fiber.Ctx) error {
	total, err := database.CountUsersByRole(h.DB, models.RoleStudent)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(fiber.Map{"total_students": total})
}

func (h *Handler) ClassCountAPI(c *fiber.Ctx) error {
	total, err := database.CountClasses(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(fiber.Map{"total_classes": total})
}

func (h *Handler) AccountCountAPI(c *fiber.Ctx) error {
	total, err := database.CountAccounts(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(fiber.Map{"total_accounts": total})
}

func (h *Handler) StudentsByClassAPI(c *fiber.Ctx) error {
	counts, err := database.GetClassHeadcounts(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(counts)
}

func (h *Handler) TeachersBySubjectAPI(c *fiber.Ctx) error {
	counts, err := database.GetTeachersBySubject(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(counts)
}
