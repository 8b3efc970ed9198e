package auth

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/IdrissSarmouk/schoolmanage-server/app/database"
	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

type Handler struct {
	DB        *sql.DB
	JWTSecret string
}

// SignupAPI creates an account. Students must name their class,
// teachers their subject; the created identity is returned without
// credential or token.
func (h *Handler) SignupAPI(c *fiber.Ctx) error {
	type SignupRequest struct {
		Role        string `json:"role"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		ClassName   string `json:"class_name"`
		SubjectName string `json:"subject_name"`
	}

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	if req.Role == "" || req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Champs manquants"})
	}
	if req.Role == models.RoleStudent && req.ClassName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Classe manquante"})
	}
	if req.Role == models.RoleTeacher && req.SubjectName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Matière manquante"})
	}
	if !models.IsValidRole(req.Role) {
		return c.Status(400).JSON(fiber.Map{"error": "Rôle invalide"})
	}

	taken, err := database.EmailTaken(h.DB, req.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if taken {
		return c.Status(400).JSON(fiber.Map{"error": "Email déjà utilisé"})
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	}

	switch req.Role {
	case models.RoleStudent:
		classID, err := database.GetClassIDByName(h.DB, req.ClassName)
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "Classe invalide"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
		user.ClassID = &classID
	case models.RoleTeacher:
		subjectID, err := database.GetSubjectIDByName(h.DB, req.SubjectName)
		if err == sql.ErrNoRows {
			// List the valid names so the caller can correct the request.
			names, err := database.SubjectNames(h.DB)
			if err != nil {
				return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
			}
			return c.Status(400).JSON(fiber.Map{
				"error":             "Matière invalide",
				"availableSubjects": names,
			})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
		}
		user.SubjectID = &subjectID
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	if err := database.CreateUser(h.DB, user, passwordHash); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"role":       user.Role,
	})
}

// LoginAPI checks credentials and issues the session token. Unknown
// email and wrong password fail with the same payload so accounts
// cannot be enumerated.
func (h *Handler) LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "JSON invalide"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email et mot de passe requis"})
	}

	user, err := database.GetUserByEmail(h.DB, req.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}
	if user == nil || !CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(401).JSON(fiber.Map{"error": "Email ou mot de passe invalide"})
	}

	token, err := GenerateJWT(h.JWTSecret, user.ID, user.Role, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erreur serveur", "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Connexion réussie",
		"token":   token,
		"user": fiber.Map{
			"id":         user.ID,
			"role":       user.Role,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}
