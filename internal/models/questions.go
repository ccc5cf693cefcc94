package models

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	// PageSize is the number of questions per feed page.
	PageSize = 6
	// RecentWindow is the age in days below which a question counts as recent.
	RecentWindow = 10

	dateLayout = "2006-01-02"
)

func Today() string {
	return time.Now().Format(dateLayout)
}

func recentCutoff() string {
	return time.Now().AddDate(0, 0, -RecentWindow).Format(dateLayout)
}

const questionCols = `q.id, q.user_id, q.title, q.category, q.created_on, q.body, q.upvotes, u.name AS author`

func CreateQuestion(db *sqlx.DB, userID int, title, category, body string) (int, error) {
	if !IsCategory(category) {
		return 0, ErrInvalidCategory
	}
	res, err := db.Exec(`INSERT INTO questions (user_id, title, category, created_on, body) VALUES (?, ?, ?, ?, ?)`,
		userID, title, category, Today(), body)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// ListRecent returns one feed page of questions from the recent window,
// newest first, along with the total page count.
func ListRecent(db *sqlx.DB, page int) ([]Question, int, error) {
	cutoff := recentCutoff()
	var total int
	if err := db.Get(&total, `SELECT COUNT(*) FROM questions WHERE created_on >= ?`, cutoff); err != nil {
		return nil, 0, err
	}
	pages := (total + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	var qs []Question
	err := db.Select(&qs, `SELECT `+questionCols+` FROM questions q JOIN users u ON u.id = q.user_id
        WHERE q.created_on >= ? ORDER BY q.id DESC LIMIT ? OFFSET ?`,
		cutoff, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, 0, err
	}
	return qs, pages, nil
}

// FeaturedQuestion picks the highest-upvoted question of the recent window,
// ties going to the newest. An empty window falls back to the newest question
// overall; ErrNotFound means there are no questions at all.
func FeaturedQuestion(db *sqlx.DB) (*Question, error) {
	var q Question
	err := db.Get(&q, `SELECT `+questionCols+` FROM questions q JOIN users u ON u.id = q.user_id
        WHERE q.created_on >= ? ORDER BY q.upvotes DESC, q.id DESC LIMIT 1`, recentCutoff())
	if errors.Is(err, sql.ErrNoRows) {
		err = db.Get(&q, `SELECT `+questionCols+` FROM questions q JOIN users u ON u.id = q.user_id
            ORDER BY q.id DESC LIMIT 1`)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func GetQuestion(db *sqlx.DB, id int) (*Question, error) {
	var q Question
	err := db.Get(&q, `SELECT `+questionCols+` FROM questions q JOIN users u ON u.id = q.user_id WHERE q.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Upvote bumps the count with a single atomic increment so concurrent
// upvotes cannot lose updates.
func Upvote(db *sqlx.DB, id int) error {
	res, err := db.Exec(`UPDATE questions SET upvotes = upvotes + 1 WHERE id = ?`, id)
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

// DeleteQuestion removes a question and its comments in one transaction so
// no comment can be left referencing a missing question.
func DeleteQuestion(db *sqlx.DB, id int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE question_id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}
	res, err := tx.Exec(`DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		tx.Rollback()
		return err
	} else if n == 0 {
		tx.Rollback()
		return ErrNotFound
	}
	return tx.Commit()
}

func SearchByCategory(db *sqlx.DB, category string) ([]Question, error) {
	var qs []Question
	err := db.Select(&qs, `SELECT `+questionCols+` FROM questions q JOIN users u ON u.id = q.user_id
        WHERE q.category = ? ORDER BY q.id DESC`, category)
	if err != nil {
		return nil, err
	}
	return qs, nil
}

func SearchByKeywords(db *sqlx.DB, text string) ([]Question, error) {
	pattern := "%" + text + "%"
	var qs []Question
	err := db.Select(&qs, `SELECT `+questionCols+` FROM questions q JOIN users u ON u.id = q.user_id
        WHERE q.title LIKE ? OR q.body LIKE ? ORDER BY q.id DESC`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return qs, nil
}

func QuestionsByUser(db *sqlx.DB, userID int) ([]Question, error) {
	var qs []Question
	err := db.Select(&qs, `SELECT `+questionCols+` FROM questions q JOIN users u ON u.id = q.user_id
        WHERE q.user_id = ? ORDER BY q.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return qs, nil
}
