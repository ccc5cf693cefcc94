package models

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

func CreateUser(db *sqlx.DB, email, name, passwordHash string) (int, error) {
	res, err := db.Exec(`INSERT INTO users (email, name, password_hash) VALUES (?, ?, ?)`, email, name, passwordHash)
	if err != nil {
		return 0, userConstraintErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// userConstraintErr maps sqlite UNIQUE violations onto the error taxonomy.
func userConstraintErr(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed: users.email") {
		return ErrDuplicateEmail
	}
	if strings.Contains(msg, "UNIQUE constraint failed: users.name") {
		return ErrDuplicateName
	}
	return err
}

func GetUserByEmail(db *sqlx.DB, email string) (*User, error) {
	var u User
	err := db.Get(&u, `SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByName(db *sqlx.DB, name string) (*User, error) {
	var u User
	err := db.Get(&u, `SELECT id, email, name, password_hash, created_at FROM users WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByID(db *sqlx.DB, id int) (*User, error) {
	var u User
	err := db.Get(&u, `SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func UpdatePasswordHash(db *sqlx.DB, userID int, passwordHash string) error {
	_, err := db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	return err
}

func UpdateEmail(db *sqlx.DB, userID int, email string) error {
	_, err := db.Exec(`UPDATE users SET email = ? WHERE id = ?`, email, userID)
	if err != nil {
		return userConstraintErr(err)
	}
	return nil
}

func CreateSession(db *sqlx.DB, userID int, sessionID string, expires time.Time) error {
	// revoke existing
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE user_id = ? AND revoked_at IS NULL`, userID)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`, sessionID, userID, expires)
	return err
}

func GetSession(db *sqlx.DB, id string) (*Session, error) {
	var s Session
	err := db.Get(&s, `SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func RevokeSession(db *sqlx.DB, id string) error {
	_, err := db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}
