package forms_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"askhub/internal/forms"
)

func TestParseRegisterRequiredFields(t *testing.T) {
	_, errs := forms.ParseRegister(url.Values{})
	require.Len(t, errs, 3)
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "password")

	f, errs := forms.ParseRegister(url.Values{
		"email": {"  a@x.com  "}, "name": {"alice"}, "password": {"secret"},
	})
	require.True(t, errs.Valid())
	require.Equal(t, "a@x.com", f.Email)
}

func TestParseNewQuestionCategory(t *testing.T) {
	_, errs := forms.ParseNewQuestion(url.Values{"title": {"T"}, "body": {"B"}})
	require.Equal(t, "Pick a category.", errs["category"])

	_, errs = forms.ParseNewQuestion(url.Values{"title": {"T"}, "body": {"B"}, "category": {"Snowboarding"}})
	require.Equal(t, "Pick one of the listed categories.", errs["category"])

	f, errs := forms.ParseNewQuestion(url.Values{"title": {"T"}, "body": {"B"}, "category": {"Fitness"}})
	require.True(t, errs.Valid())
	require.Equal(t, "Fitness", f.Category)
}

func TestParseCommentRejectsBlankText(t *testing.T) {
	_, errs := forms.ParseComment(url.Values{"text": {"   "}})
	require.False(t, errs.Valid())
	require.Contains(t, errs, "text")

	f, errs := forms.ParseComment(url.Values{"text": {" hello "}})
	require.True(t, errs.Valid())
	require.Equal(t, "hello", f.Text)
}

func TestParsePasswordReset(t *testing.T) {
	_, errs := forms.ParsePasswordReset(url.Values{"old_password": {"a"}})
	require.Contains(t, errs, "new_password")
	require.NotContains(t, errs, "old_password")
}
