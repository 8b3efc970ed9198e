package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
)

// RecordGradeAPI upserts a grade for (student, evaluation). The range
// check runs before any query; the ownership check guards the write.
func (h *Handler) RecordGradeAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	type RecordGradeRequest struct {
		StudentID    *int     `json:"studentId"`
		EvaluationID *int     `json:"evaluationId"`
		Grade        *float64 `json:"grade"`
		Remarks      *string  `json:"remarks"`
	}

	var req RecordGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	if req.StudentID == nil || req.EvaluationID == nil || req.Grade == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}
	if *req.Grade < 0 || *req.Grade > 20 {
		return c.Status(400).JSON(fiber.Map{"error": "La note doit être comprise entre 0 et 20"})
	}

	owned, err := database.EvaluationOwnedByTeacher(h.DB, *req.EvaluationID, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !owned {
		return c.Status(403).JSON(fiber.Map{"error": "Vous n'êtes pas autorisé à modifier cette évaluation"})
	}

	grade, inserted, err := database.UpsertGrade(h.DB, *req.StudentID, *req.EvaluationID, *req.Grade, req.Remarks)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	message := "Note mise à jour avec succès"
	if inserted {
		message = "Note ajoutée avec succès"
	}
	return c.Status(201).JSON(fiber.Map{
		"message": message,
		"grade":   grade,
	})
}
