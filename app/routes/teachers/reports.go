package teachers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

// Read-only aggregates. All of these return empty (or zero-filled)
// result sets rather than errors when no underlying rows exist.

func (h *Handler) ClassAveragesAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	exists, err := database.UserHasRole(h.DB, teacherID, models.RoleTeacher)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"error": "Enseignant non trouvé"})
	}

	averages, err := database.GetClassAverages(h.DB, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(averages)
}

// AttendanceRatesAPI returns the presence percentage per class for the
// teacher's subject. When no attendance was recorded at all it falls
// back to one zero-rate row per class, so the caller always gets a row
// per class.
func (h *Handler) AttendanceRatesAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	exists, err := database.UserHasRole(h.DB, teacherID, models.RoleTeacher)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"error": "Enseignant non trouvé"})
	}

	subjectID, err := database.GetTeacherSubjectID(h.DB, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if subjectID == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Information sur la matière manquante"})
	}

	rates, err := database.GetAttendanceRates(h.DB, teacherID, *subjectID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	if len(rates) == 0 {
		names, err := database.GetTeacherClassNames(h.DB, teacherID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
		empty := make([]*database.AttendanceRate, 0, len(names))
		for _, name := range names {
			empty = append(empty, &database.AttendanceRate{ClassName: name, AttendanceRate: 0})
		}
		return c.JSON(empty)
	}

	return c.JSON(rates)
}

func (h *Handler) AttendanceTrendsAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	exists, err := database.UserHasRole(h.DB, teacherID, models.RoleTeacher)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"error": "Enseignant non trouvé"})
	}

	subjectID, err := database.GetTeacherSubjectID(h.DB, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if subjectID == nil {
		return c.JSON([]*database.AttendanceTrendPoint{})
	}

	points, err := database.GetAttendanceTrends(h.DB, teacherID, *subjectID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(points)
}

func (h *Handler) GradeTrendsAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	points, err := database.GetGradeTrends(h.DB, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(points)
}

func (h *Handler) SubjectComparisonAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	subjectID, err := database.GetTeacherSubjectID(h.DB, teacherID)
	if err != nil && err != sql.ErrNoRows {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if err == sql.ErrNoRows || subjectID == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Information sur la matière manquante"})
	}

	classIDs, err := database.GetTeacherClassIDs(h.DB, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if len(classIDs) == 0 {
		return c.JSON([]*database.SubjectAverage{})
	}

	averages, err := database.GetSubjectComparison(h.DB, classIDs)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(averages)
}
