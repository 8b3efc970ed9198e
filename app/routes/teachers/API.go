package teachers

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

func (h *Handler) ListTeachersAPI(c *fiber.Ctx) error {
	teachers, err := database.ListTeachers(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(teachers)
}

// CreateTeacherAPI creates a teacher account and links it to the named
// classes. Class names that do not resolve are skipped silently; this
// is deliberate and differs from the hard-abort policy of bulk
// attendance recording.
func (h *Handler) CreateTeacherAPI(c *fiber.Ctx) error {
	type CreateTeacherRequest struct {
		FirstName   string   `json:"first_name"`
		LastName    string   `json:"last_name"`
		Email       string   `json:"email"`
		Password    string   `json:"password"`
		SubjectName string   `json:"subject_name"`
		ClassNames  []string `json:"class_names"`
	}

	var req CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Password == "" || req.SubjectName == "" || req.ClassNames == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}

	subjectID, err := database.GetSubjectIDByName(h.DB, req.SubjectName)
	if err == sql.ErrNoRows {
		return c.Status(400).JSON(fiber.Map{"error": "Matière invalide"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	taken, err := database.EmailTaken(h.DB, req.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if taken {
		return c.Status(400).JSON(fiber.Map{"error": "Email déjà utilisé"})
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	teacher := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.RoleTeacher,
		SubjectID: &subjectID,
	}
	if err := database.CreateUser(h.DB, teacher, passwordHash); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	for _, className := range req.ClassNames {
		classID, err := database.GetClassIDByName(h.DB, className)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
		if err := database.LinkTeacherClass(h.DB, teacher.ID, classID); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Enseignant créé",
		"teacher_id": teacher.ID,
	})
}

func (h *Handler) GetTeacherAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	teacher, err := database.GetTeacherByID(h.DB, teacherID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Enseignant non trouvé"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":         teacher.ID,
		"first_name": teacher.FirstName,
		"last_name":  teacher.LastName,
		"subject_id": teacher.SubjectID,
	})
}

// UpdateTeacherAPI applies a partial update. When class_names is
// present the whole assignment set is replaced, atomically: existing
// links are cleared and the resolved names re-inserted in one
// transaction (unresolved names are skipped, as on creation).
func (h *Handler) UpdateTeacherAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	type UpdateTeacherRequest struct {
		FirstName   *string   `json:"first_name"`
		LastName    *string   `json:"last_name"`
		Email       *string   `json:"email"`
		SubjectName *string   `json:"subject_name"`
		ClassNames  *[]string `json:"class_names"`
	}

	var req UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	var subjectID *int
	if req.SubjectName != nil {
		id, err := database.GetSubjectIDByName(h.DB, *req.SubjectName)
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "Matière invalide"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
		subjectID = &id
	}

	if err := database.UpdateTeacherFields(h.DB, teacherID,
		req.FirstName, req.LastName, req.Email, subjectID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	if req.ClassNames != nil {
		tx, err := h.DB.Begin()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}

		if err := database.ClearTeacherClasses(tx, teacherID); err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
		for _, className := range *req.ClassNames {
			classID, err := database.GetClassIDByName(tx, className)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				tx.Rollback()
				return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
			}
			if err := database.LinkTeacherClass(tx, teacherID, classID); err != nil {
				tx.Rollback()
				return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
			}
		}

		if err := tx.Commit(); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Enseignant mis à jour"})
}

// DeleteTeacherAPI removes the teacher and, in the same transaction,
// the grades of its evaluations, the evaluations and the class
// assignments.
func (h *Handler) DeleteTeacherAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	tx, err := h.DB.Begin()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	if _, err := database.DeleteTeacherCascade(tx, teacherID); err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if err := tx.Commit(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Enseignant supprimé"})
}

func (h *Handler) TeacherClassesAPI(c *fiber.Ctx) error {
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

	classes, err := database.GetTeacherClasses(h.DB, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(classes)
}

func (h *Handler) TeacherClassesCountAPI(c *fiber.Ctx) error {
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

	count, err := database.CountTeacherClasses(h.DB, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	names, err := database.GetTeacherClassNames(h.DB, teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"teacher_id":    teacherID,
		"total_classes": count,
		"classes":       names,
	})
}

func (h *Handler) TeacherStudentsCountAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	summary, err := database.GetTeacherStudentsSummary(h.DB, teacherID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"error": "Enseignant non trouvé"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.JSON([]*database.TeacherStudentsSummary{summary})
}

func (h *Handler) ClassStudentsAPI(c *fiber.Ctx) error {
	teacherID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	assigned, err := database.IsTeacherAssignedToClass(h.DB, teacherID, classID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !assigned {
		return c.Status(403).JSON(fiber.Map{"error": "Vous n'êtes pas assigné à cette classe"})
	}

	var evaluationID *int
	if id := c.QueryInt("evaluationId", 0); id != 0 {
		evaluationID = &id
	}

	students, err := database.GetStudentsByClass(h.DB, classID, evaluationID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(students)
}
