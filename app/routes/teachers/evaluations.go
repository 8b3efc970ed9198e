package teachers

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

// CreateEvaluationAPI creates an evaluation for one of the teacher's
// classes. The teacher must actually be assigned to the class.
func (h *Handler) CreateEvaluationAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	type CreateEvaluationRequest struct {
		Title       string   `json:"title"`
		Date        string   `json:"date"`
		Coefficient *float64 `json:"coefficient"`
		ClassID     int      `json:"classId"`
	}

	var req CreateEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	if req.Title == "" || req.Date == "" || req.ClassID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Date invalide"})
	}

	teacher, err := database.GetTeacherByID(h.DB, teacherID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Enseignant non trouvé"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	assigned, err := database.IsTeacherAssignedToClass(h.DB, teacherID, req.ClassID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !assigned {
		return c.Status(403).JSON(fiber.Map{"error": "Vous n'êtes pas assigné à cette classe"})
	}

	coefficient := 1.0
	if req.Coefficient != nil {
		coefficient = *req.Coefficient
	}

	eval := &models.Evaluation{
		Title:       req.Title,
		Coefficient: coefficient,
		ClassID:     req.ClassID,
		TeacherID:   teacherID,
	}
	if teacher.SubjectID != nil {
		eval.SubjectID = *teacher.SubjectID
	}

	if err := database.CreateEvaluation(h.DB, eval, req.Date); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Évaluation créée avec succès",
		"evaluation": fiber.Map{
			"id":          eval.ID,
			"title":       eval.Title,
			"date":        eval.Date,
			"coefficient": eval.Coefficient,
		},
	})
}

func (h *Handler) ListEvaluationsAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	var classID *int
	if id := c.QueryInt("classId", 0); id != 0 {
		classID = &id
	}

	evals, err := database.ListTeacherEvaluations(h.DB, teacherID, classID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(evals)
}

// EvaluationGradesAPI lists the grades of one evaluation, after
// checking the evaluation belongs to the requesting teacher.
func (h *Handler) EvaluationGradesAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}
	evaluationID, err := c.ParamsInt("evaluationId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	owned, err := database.EvaluationOwnedByTeacher(h.DB, evaluationID, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !owned {
		return c.Status(403).JSON(fiber.Map{"error": "Vous n'êtes pas autorisé à consulter cette évaluation"})
	}

	grades, err := database.GradesForEvaluation(h.DB, evaluationID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(fiber.Map{"grades": grades})
}
