package attendance

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

type Handler struct {
	DB *sql.DB
}

func (h *Handler) AttendanceStatusAPI(c *fiber.Ctx) error {
	entries, err := database.GetAttendanceStatus(h.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(entries)
}

func (h *Handler) StudentAttendanceAPI(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("studentId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	isStudent, err := database.UserHasRole(h.DB, studentID, models.RoleStudent)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !isStudent {
		return c.Status(404).JSON(fiber.Map{"error": "Élève non trouvé"})
	}

	records, err := database.GetAttendanceForStudent(h.DB, studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(records)
}

func (h *Handler) ClassAttendanceAPI(c *fiber.Ctx) error {
	classID, err := c.ParamsInt("classId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Identifiant invalide"})
	}

	exists, err := database.ClassExists(h.DB, classID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"error": "Classe non trouvée"})
	}

	var date *string
	if d := c.Query("date"); d != "" {
		date = &d
	}
	var subjectID *int
	if s := c.QueryInt("subjectId", -1); s != -1 {
		subjectID = &s
	}

	entries, err := database.GetAttendanceForClass(h.DB, classID, date, subjectID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	return c.JSON(entries)
}

func (h *Handler) RecordAttendanceAPI(c *fiber.Ctx) error {
	type RecordRequest struct {
		StudentID int    `json:"studentId"`
		SubjectID int    `json:"subjectId"`
		Date      string `json:"date"`
		Status    string `json:"status"`
	}

	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	// Zero ids and empty strings count as missing here; only the bulk
	// path distinguishes absent fields from zero values.
	if req.StudentID == 0 || req.SubjectID == 0 || req.Date == "" || req.Status == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}
	status := models.AttendanceStatus(req.Status)
	if !status.IsValid() {
		return c.Status(400).JSON(fiber.Map{"error": "Statut invalide"})
	}

	record, inserted, err := database.UpsertAttendance(h.DB, req.StudentID, req.SubjectID, req.Date, status)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	message := "Présence mise à jour avec succès"
	if inserted {
		message = "Présence enregistrée avec succès"
	}
	return c.Status(201).JSON(fiber.Map{
		"message":    message,
		"attendance": record,
	})
}

// BulkRecordAttendanceAPI records a batch of attendance rows in one
// transaction. Any invalid record aborts the whole batch, identified by
// its 1-based position in the payload.
func (h *Handler) BulkRecordAttendanceAPI(c *fiber.Ctx) error {
	type BulkRecord struct {
		StudentID *int    `json:"studentId"`
		SubjectID *int    `json:"subjectId"`
		Date      *string `json:"date"`
		Status    *string `json:"status"`
	}
	type BulkRequest struct {
		Records json.RawMessage `json:"records"`
	}

	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	// records must be a non-empty array; anything else (absent, null,
	// wrong type) is rejected before a transaction is opened.
	var records []BulkRecord
	if len(req.Records) == 0 || json.Unmarshal(req.Records, &records) != nil || len(records) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Données invalides"})
	}

	tx, err := h.DB.Begin()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	saved := []*models.Attendance{}
	for i, record := range records {
		if record.StudentID == nil || record.SubjectID == nil || record.Date == nil || record.Status == nil {
			tx.Rollback()
			return c.Status(400).JSON(fiber.Map{
				"error":   "Champs manquants dans les enregistrements",
				"details": fmt.Sprintf("Record #%d invalide", i+1),
			})
		}
		status := models.AttendanceStatus(*record.Status)
		if !status.IsValid() {
			tx.Rollback()
			return c.Status(400).JSON(fiber.Map{
				"error":   "Statut invalide dans les enregistrements",
				"details": fmt.Sprintf("Record #%d : statut « %s »", i+1, *record.Status),
			})
		}

		row, _, err := database.UpsertAttendance(tx, *record.StudentID, *record.SubjectID, *record.Date, status)
		if err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
		saved = append(saved, row)
	}

	if err := tx.Commit(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Présences enregistrées avec succès",
		"records": saved,
	})
}
