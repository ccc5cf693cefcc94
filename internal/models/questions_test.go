package models

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newAuthor(t *testing.T, database *sqlx.DB) int {
	t.Helper()
	id, err := CreateUser(database, "a@x.com", "alice", "hash")
	require.NoError(t, err)
	return id
}

// insertAged bypasses CreateQuestion so the test can backdate a question.
func insertAged(t *testing.T, database *sqlx.DB, userID, ageDays int, title string) int {
	t.Helper()
	createdOn := time.Now().AddDate(0, 0, -ageDays).Format("2006-01-02")
	res, err := database.Exec(`INSERT INTO questions (user_id, title, category, created_on, body) VALUES (?, ?, ?, ?, ?)`,
		userID, title, "Career", createdOn, "body")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

func TestCreateQuestionRejectsUnknownCategory(t *testing.T) {
	database := openTestDB(t)
	author := newAuthor(t, database)

	_, err := CreateQuestion(database, author, "T", "Snowboarding", "B")
	require.ErrorIs(t, err, ErrInvalidCategory)

	id, err := CreateQuestion(database, author, "T", "Fitness", "B")
	require.NoError(t, err)

	q, err := GetQuestion(database, id)
	require.NoError(t, err)
	require.Equal(t, "Fitness", q.Category)
	require.Equal(t, 0, q.Upvotes)
	require.Equal(t, Today(), q.CreatedOn)
	require.Equal(t, "alice", q.Author)
}

func TestListRecentPagination(t *testing.T) {
	database := openTestDB(t)
	author := newAuthor(t, database)

	qs, pages, err := ListRecent(database, 1)
	require.NoError(t, err)
	require.Empty(t, qs)
	require.Equal(t, 0, pages)

	for i := 0; i < 13; i++ {
		_, err := CreateQuestion(database, author, "T", "Career", "B")
		require.NoError(t, err)
	}
	insertAged(t, database, author, RecentWindow+5, "too old")

	qs, pages, err = ListRecent(database, 1)
	require.NoError(t, err)
	require.Len(t, qs, PageSize)
	require.Equal(t, 3, pages)
	// newest first
	require.Greater(t, qs[0].ID, qs[1].ID)

	qs, _, err = ListRecent(database, 3)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.NotEqual(t, "too old", qs[0].Title)
}

func TestFeaturedQuestion(t *testing.T) {
	database := openTestDB(t)
	author := newAuthor(t, database)

	_, err := FeaturedQuestion(database)
	require.ErrorIs(t, err, ErrNotFound)

	first, err := CreateQuestion(database, author, "first", "Career", "B")
	require.NoError(t, err)
	second, err := CreateQuestion(database, author, "second", "Career", "B")
	require.NoError(t, err)

	// tie on zero upvotes goes to the newer question
	q, err := FeaturedQuestion(database)
	require.NoError(t, err)
	require.Equal(t, second, q.ID)

	require.NoError(t, Upvote(database, first))
	q, err = FeaturedQuestion(database)
	require.NoError(t, err)
	require.Equal(t, first, q.ID)
}

func TestFeaturedQuestionFallsBackWhenNothingRecent(t *testing.T) {
	database := openTestDB(t)
	author := newAuthor(t, database)

	insertAged(t, database, author, RecentWindow+10, "older")
	newest := insertAged(t, database, author, RecentWindow+2, "newer but stale")

	q, err := FeaturedQuestion(database)
	require.NoError(t, err)
	require.Equal(t, newest, q.ID)
}

func TestUpvoteAccumulates(t *testing.T) {
	database := openTestDB(t)
	author := newAuthor(t, database)
	id, err := CreateQuestion(database, author, "T", "Career", "B")
	require.NoError(t, err)

	require.NoError(t, Upvote(database, id))
	require.NoError(t, Upvote(database, id))

	q, err := GetQuestion(database, id)
	require.NoError(t, err)
	require.Equal(t, 2, q.Upvotes)

	require.ErrorIs(t, Upvote(database, 9999), ErrNotFound)
}

func TestDeleteQuestionCascadesComments(t *testing.T) {
	database := openTestDB(t)
	author := newAuthor(t, database)
	id, err := CreateQuestion(database, author, "T", "Career", "B")
	require.NoError(t, err)

	_, err = AddComment(database, author, id, "one")
	require.NoError(t, err)
	_, err = AddComment(database, author, id, "two")
	require.NoError(t, err)

	require.NoError(t, DeleteQuestion(database, id))

	_, err = GetQuestion(database, id)
	require.ErrorIs(t, err, ErrNotFound)

	var orphans int
	require.NoError(t, database.Get(&orphans, `SELECT COUNT(*) FROM comments WHERE question_id = ?`, id))
	require.Equal(t, 0, orphans)

	require.ErrorIs(t, DeleteQuestion(database, id), ErrNotFound)
}

func TestSearchByCategory(t *testing.T) {
	database := openTestDB(t)
	author := newAuthor(t, database)

	older, err := CreateQuestion(database, author, "squats", "Fitness", "B")
	require.NoError(t, err)
	newer, err := CreateQuestion(database, author, "deadlifts", "Fitness", "B")
	require.NoError(t, err)
	_, err = CreateQuestion(database, author, "raise", "Career", "B")
	require.NoError(t, err)

	qs, err := SearchByCategory(database, "Fitness")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	require.Equal(t, newer, qs[0].ID)
	require.Equal(t, older, qs[1].ID)
	for _, q := range qs {
		require.Equal(t, "Fitness", q.Category)
	}
}

func TestSearchByKeywords(t *testing.T) {
	database := openTestDB(t)
	author := newAuthor(t, database)

	inTitle, err := CreateQuestion(database, author, "how to deadlift", "Fitness", "form tips")
	require.NoError(t, err)
	inBody, err := CreateQuestion(database, author, "leg day", "Fitness", "deadlift or squat?")
	require.NoError(t, err)
	_, err = CreateQuestion(database, author, "resume advice", "Career", "B")
	require.NoError(t, err)

	qs, err := SearchByKeywords(database, "deadlift")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	require.Equal(t, inBody, qs[0].ID)
	require.Equal(t, inTitle, qs[1].ID)
}
