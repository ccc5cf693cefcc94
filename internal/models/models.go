package models

import "time"

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Session struct {
	ID        string     `db:"id"`
	UserID    int        `db:"user_id"`
	CreatedAt time.Time  `db:"created_at"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

type Question struct {
	ID        int    `db:"id"`
	UserID    int    `db:"user_id"`
	Author    string `db:"author"`
	Title     string `db:"title"`
	Category  string `db:"category"`
	CreatedOn string `db:"created_on"`
	Body      string `db:"body"`
	Upvotes   int    `db:"upvotes"`
}

type Comment struct {
	ID         int    `db:"id"`
	UserID     int    `db:"user_id"`
	QuestionID int    `db:"question_id"`
	Author     string `db:"author"`
	CreatedOn  string `db:"created_on"`
	Text       string `db:"text"`
}

type DirectMessage struct {
	ID          int    `db:"id"`
	SenderID    int    `db:"sender_id"`
	RecipientID int    `db:"recipient_id"`
	Sender      string `db:"sender"`
	CreatedOn   string `db:"created_on"`
	Text        string `db:"text"`
}

// Categories is the closed set of labels a question can be filed under.
var Categories = []string{
	"Career", "Relationship", "Selfies", "Fitness", "Risks",
	"Games", "Programming", "Writers", "Pictures", "Sexuality",
}

func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
