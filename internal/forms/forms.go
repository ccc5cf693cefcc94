// Package forms validates submitted form values. Each form has an explicit
// parse function returning the trimmed values plus a map of field-level
// errors; handlers redisplay the form when the map is non-empty.
package forms

import (
	"net/url"
	"strings"

	"askhub/internal/models"
)

// Errors maps a field name to the message shown beside it.
type Errors map[string]string

func (e Errors) Valid() bool { return len(e) == 0 }

func require(e Errors, field, value string) {
	if value == "" {
		e[field] = "This field is required."
	}
}

type Register struct {
	Email    string
	Name     string
	Password string
}

func ParseRegister(v url.Values) (Register, Errors) {
	f := Register{
		Email:    strings.TrimSpace(v.Get("email")),
		Name:     strings.TrimSpace(v.Get("name")),
		Password: v.Get("password"),
	}
	errs := Errors{}
	require(errs, "email", f.Email)
	require(errs, "name", f.Name)
	require(errs, "password", f.Password)
	return f, errs
}

type Login struct {
	Email    string
	Password string
}

func ParseLogin(v url.Values) (Login, Errors) {
	f := Login{
		Email:    strings.TrimSpace(v.Get("email")),
		Password: v.Get("password"),
	}
	errs := Errors{}
	require(errs, "email", f.Email)
	require(errs, "password", f.Password)
	return f, errs
}

type NewQuestion struct {
	Title    string
	Category string
	Body     string
}

func ParseNewQuestion(v url.Values) (NewQuestion, Errors) {
	f := NewQuestion{
		Title:    strings.TrimSpace(v.Get("title")),
		Category: v.Get("category"),
		Body:     strings.TrimSpace(v.Get("body")),
	}
	errs := Errors{}
	require(errs, "title", f.Title)
	require(errs, "body", f.Body)
	if f.Category == "" {
		errs["category"] = "Pick a category."
	} else if !models.IsCategory(f.Category) {
		errs["category"] = "Pick one of the listed categories."
	}
	return f, errs
}

type Comment struct {
	Text string
}

func ParseComment(v url.Values) (Comment, Errors) {
	f := Comment{Text: strings.TrimSpace(v.Get("text"))}
	errs := Errors{}
	require(errs, "text", f.Text)
	return f, errs
}

type Message struct {
	Text string
}

func ParseMessage(v url.Values) (Message, Errors) {
	f := Message{Text: strings.TrimSpace(v.Get("text"))}
	errs := Errors{}
	require(errs, "text", f.Text)
	return f, errs
}

type PasswordReset struct {
	OldPassword string
	NewPassword string
}

func ParsePasswordReset(v url.Values) (PasswordReset, Errors) {
	f := PasswordReset{
		OldPassword: v.Get("old_password"),
		NewPassword: v.Get("new_password"),
	}
	errs := Errors{}
	require(errs, "old_password", f.OldPassword)
	require(errs, "new_password", f.NewPassword)
	return f, errs
}

type EmailReset struct {
	Email string
}

func ParseEmailReset(v url.Values) (EmailReset, Errors) {
	f := EmailReset{Email: strings.TrimSpace(v.Get("email"))}
	errs := Errors{}
	require(errs, "email", f.Email)
	return f, errs
}

type Search struct {
	Words string
}

func ParseSearch(v url.Values) (Search, Errors) {
	f := Search{Words: strings.TrimSpace(v.Get("words"))}
	errs := Errors{}
	require(errs, "words", f.Words)
	return f, errs
}
