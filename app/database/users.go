package database

import (
	"database/sql"

	"github.com/IdrissSarmouk/schoolmanage-server/app/models"
)

func EmailTaken(db DBTX, email string) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM users WHERE email = $1`, email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetUserByEmail returns (nil, nil) when no account matches, so the
// login handler can fail identically for unknown email and bad password.
func GetUserByEmail(db DBTX, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, first_name, last_name, email, password_hash, role, class_id, subject_id
			  FROM users WHERE email = $1`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Role, &user.ClassID, &user.SubjectID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts an account row and fills in the generated id.
// class_id and subject_id stay NULL when the role does not use them.
func CreateUser(db DBTX, user *models.User, passwordHash string) error {
	query := `INSERT INTO users (first_name, last_name, email, password_hash, role, class_id, subject_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`

	return db.QueryRow(query,
		user.FirstName, user.LastName, user.Email, passwordHash,
		user.Role, user.ClassID, user.SubjectID,
	).Scan(&user.ID)
}

// UserHasRole reports whether an account with the given id and role exists.
func UserHasRole(db DBTX, userID int, role string) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM users WHERE id = $1 AND role = $2`, userID, role).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
