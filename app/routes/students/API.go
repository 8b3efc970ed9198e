package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
	"github.com/IdrissSarmouk/schoolmanage-server/app/routes/auth"
)

type Handler struct {
	DB *sql.DB
}

func (h *Handler) ListStudentsAPI(c *fiber.Ctx) error {
	students, err := database.ListStudents(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(students)
}

func (h *Handler) GetStudentAPI(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	student, err := database.GetStudentByID(h.DB, studentID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Élève non trouvé"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(student)
}

func (h *Handler) CreateStudentAPI(c *fiber.Ctx) error {
	type CreateStudentRequest struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		ClassName string `json:"class_name"`
	}

	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Password == "" || req.ClassName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}

	classID, err := database.GetClassIDByName(h.DB, req.ClassName)
	if err == sql.ErrNoRows {
		return c.Status(400).JSON(fiber.Map{"error": "Classe invalide"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	student := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.RoleStudent,
		ClassID:   &classID,
	}
	if err := database.CreateUser(h.DB, student, passwordHash); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"id":         student.ID,
		"first_name": student.FirstName,
		"last_name":  student.LastName,
		"email":      student.Email,
		"class_id":   classID,
	})
}

// UpdateStudentAPI applies a partial update: absent fields keep their
// stored value.
func (h *Handler) UpdateStudentAPI(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	type UpdateStudentRequest struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
		ClassName *string `json:"class_name"`
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	var classID *int
	if req.ClassName != nil {
		id, err := database.GetClassIDByName(h.DB, *req.ClassName)
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "Classe invalide"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
		classID = &id
	}

	affected, err := database.UpdateStudent(h.DB, studentID,
		req.FirstName, req.LastName, req.Email, classID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if affected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Élève non trouvé"})
	}

	return c.JSON(fiber.Map{"message": "Élève mis à jour avec succès"})
}

// DeleteStudentAPI removes the student and, in the same transaction,
// its grades and attendance records.
func (h *Handler) DeleteStudentAPI(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	tx, err := h.DB.Begin()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	affected, err := database.DeleteStudentCascade(tx, studentID)
	if err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if affected == 0 {
		tx.Rollback()
		return c.Status(404).JSON(fiber.Map{"error": "Élève non trouvé"})
	}
	if err := tx.Commit(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Élève supprimé avec succès"})
}
