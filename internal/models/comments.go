package models

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

func AddComment(db *sqlx.DB, userID, questionID int, text string) (int, error) {
	var exists int
	if err := db.Get(&exists, `SELECT COUNT(*) FROM questions WHERE id = ?`, questionID); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, ErrNotFound
	}
	res, err := db.Exec(`INSERT INTO comments (user_id, question_id, created_on, text) VALUES (?, ?, ?, ?)`,
		userID, questionID, Today(), text)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func ListComments(db *sqlx.DB, questionID int) ([]Comment, error) {
	var cs []Comment
	err := db.Select(&cs, `SELECT c.id, c.user_id, c.question_id, c.created_on, c.text, u.name AS author
        FROM comments c JOIN users u ON u.id = c.user_id WHERE c.question_id = ? ORDER BY c.id`, questionID)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func GetComment(db *sqlx.DB, id int) (*Comment, error) {
	var c Comment
	err := db.Get(&c, `SELECT id, user_id, question_id, created_on, text FROM comments WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func DeleteComment(db *sqlx.DB, id int) error {
	res, err := db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}
