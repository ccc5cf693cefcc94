package models

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SendMessage stores a direct message for the named recipient. The sender is
// a real user reference, so listings can show a verified display name.
func SendMessage(db *sqlx.DB, senderID int, recipientName, text string) (int, error) {
	recipient, err := GetUserByName(db, recipientName)
	if err != nil {
		return 0, err
	}
	res, err := db.Exec(`INSERT INTO dms (sender_id, recipient_id, created_on, text) VALUES (?, ?, ?, ?)`,
		senderID, recipient.ID, Today(), text)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func ListMessages(db *sqlx.DB, recipientID int) ([]DirectMessage, error) {
	var ms []DirectMessage
	err := db.Select(&ms, `SELECT m.id, m.sender_id, m.recipient_id, m.created_on, m.text, u.name AS sender
        FROM dms m JOIN users u ON u.id = m.sender_id WHERE m.recipient_id = ? ORDER BY m.id DESC`, recipientID)
	if err != nil {
		return nil, err
	}
	return ms, nil
}

func GetMessage(db *sqlx.DB, id int) (*DirectMessage, error) {
	var m DirectMessage
	err := db.Get(&m, `SELECT id, sender_id, recipient_id, created_on, text FROM dms WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func DeleteMessage(db *sqlx.DB, id int) error {
	res, err := db.Exec(`DELETE FROM dms WHERE id = ?`, id)
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
