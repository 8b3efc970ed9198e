package subjects

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

type Handler struct {
	DB *sql.DB
}

func (h *Handler) ListSubjectsAPI(c *fiber.Ctx) error {
	subjects, err := database.ListSubjects(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(subjects)
}

func (h *Handler) GetSubjectAPI(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	subject, err := database.GetSubjectByID(h.DB, subjectID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Matière non trouvée"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(subject)
}

func (h *Handler) CreateSubjectAPI(c *fiber.Ctx) error {
	type CreateSubjectRequest struct {
		Name string `json:"name"`
	}

	var req CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}

	subject := &models.Subject{Name: req.Name}
	if err := database.CreateSubject(h.DB, subject); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.Status(201).JSON(subject)
}

func (h *Handler) UpdateSubjectAPI(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	type UpdateSubjectRequest struct {
		Name string `json:"name"`
	}

	var req UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}

	affected, err := database.UpdateSubject(h.DB, subjectID, req.Name)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if affected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Matière non trouvée"})
	}

	return c.JSON(fiber.Map{"message": "Matière mise à jour"})
}

func (h *Handler) DeleteSubjectAPI(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	inUse, err := database.SubjectInUse(h.DB, subjectID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if inUse {
		return c.Status(400).JSON(fiber.Map{"error": "Matière encore utilisée"})
	}

	affected, err := database.DeleteSubject(h.DB, subjectID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if affected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Matière non trouvée"})
	}

	return c.JSON(fiber.Map{"message": "Matière supprimée"})
}
