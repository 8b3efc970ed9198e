package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

type Handler struct {
	DB *sql.DB
}

func (h *Handler) ListClassesAPI(c *fiber.Ctx) error {
	classes, err := database.ListClasses(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(classes)
}

func (h *Handler) GetClassAPI(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	class, err := database.GetClassByID(h.DB, classID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Classe non trouvée"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(class)
}

func (h *Handler) CreateClassAPI(c *fiber.Ctx) error {
	type CreateClassRequest struct {
		Name string `json:"name"`
	}

	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}

	class := &models.Class{Name: req.Name}
	if err := database.CreateClass(h.DB, class); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.Status(201).JSON(class)
}

func (h *Handler) UpdateClassAPI(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	type UpdateClassRequest struct {
		Name string `json:"name"`
	}

	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}

	affected, err := database.UpdateClass(h.DB, classID, req.Name)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if affected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Classe non trouvée"})
	}

	return c.JSON(fiber.Map{"message": "Classe mise à jour"})
}

// DeleteClassAPI refuses to delete a class that still has students or
// teacher assignments.
func (h *Handler) DeleteClassAPI(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	inUse, err := database.ClassInUse(h.DB, classID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if inUse {
		return c.Status(400).JSON(fiber.Map{"error": "Classe encore utilisée"})
	}

	affected, err := database.DeleteClass(h.DB, classID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if affected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Classe non trouvée"})
	}

	return c.JSON(fiber.Map{"message": "Classe supprimée"})
}
