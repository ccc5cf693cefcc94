package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"askhub/internal/forms"
	"askhub/internal/models"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		// /{username}/send-dm starts with a wildcard segment, which ServeMux
		// cannot register without conflicting with the literal-first routes,
		// so it is dispatched from the fallback.
		if username, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/send-dm"); ok &&
			username != "" && !strings.Contains(username, "/") {
			s.requireAuth(func(w http.ResponseWriter, r *http.Request, user *models.User) {
				s.handleSendMessage(w, r, user, username)
			})(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}
	user := s.currentUser(r)
	if user == nil {
		s.render(w, "start", map[string]any{"User": nil})
		return
	}
	s.renderFeed(w, user, 1)
}

func (s *Server) handleMainPage(w http.ResponseWriter, r *http.Request, user *models.User) {
	page := atoi(r.PathValue("page"))
	if page < 1 {
		http.NotFound(w, r)
		return
	}
	s.renderFeed(w, user, page)
}

func (s *Server) renderFeed(w http.ResponseWriter, user *models.User, page int) {
	questions, pages, err := models.ListRecent(s.DB, page)
	if err != nil {
		logrus.WithError(err).Error("list recent questions")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	featured, err := models.FeaturedQuestion(s.DB)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		logrus.WithError(err).Error("pick featured question")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data := map[string]any{
		"User":      user,
		"Questions": questions,
		"Page":      page,
		"Pages":     pages,
		"Featured":  featured,
		"PrevPage":  0,
		"NextPage":  0,
	}
	if page > 1 {
		data["PrevPage"] = page - 1
	}
	if page < pages {
		data["NextPage"] = page + 1
	}
	s.render(w, "home", data)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about", map[string]any{"User": s.currentUser(r)})
}

func (s *Server) handleNewQuestion(w http.ResponseWriter, r *http.Request, user *models.User) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "new_question", map[string]any{"User": user, "Categories": models.Categories, "Form": forms.NewQuestion{}, "Errors": forms.Errors{}})
	case http.MethodPost:
		r.ParseForm()
		form, errs := forms.ParseNewQuestion(r.PostForm)
		if !errs.Valid() {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "new_question", map[string]any{"User": user, "Categories": models.Categories, "Form": form, "Errors": errs})
			return
		}
		if _, err := models.CreateQuestion(s.DB, user.ID, form.Title, form.Category, form.Body); err != nil {
			logrus.WithError(err).Error("create question")
			http.Error(w, "could not create question", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	id := atoi(r.PathValue("id"))
	question, err := models.GetQuestion(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.renderQuestion(w, r, question, forms.Comment{}, nil, http.StatusOK)
	case http.MethodPost:
		user := s.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		r.ParseForm()
		form, errs := forms.ParseComment(r.PostForm)
		if !errs.Valid() {
			s.renderQuestion(w, r, question, form, errs, http.StatusBadRequest)
			return
		}
		if _, err := models.AddComment(s.DB, user.ID, question.ID, form.Text); err != nil {
			logrus.WithError(err).Error("add comment")
			http.Error(w, "could not add comment", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/question/"+itoa(question.ID), http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderQuestion(w http.ResponseWriter, r *http.Request, question *models.Question, form forms.Comment, errs forms.Errors, status int) {
	comments, err := models.ListComments(s.DB, question.ID)
	if err != nil {
		logrus.WithError(err).Error("list comments")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	s.render(w, "question", map[string]any{
		"User":     s.currentUser(r),
		"Question": question,
		"Comments": comments,
		"Form":     form,
		"Errors":   errs,
	})
}

func (s *Server) handleUpvote(w http.ResponseWriter, r *http.Request, user *models.User) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := atoi(r.PathValue("id"))
	if err := models.Upvote(s.DB, id); err != nil {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/question/"+itoa(id), http.StatusSeeOther)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request, user *models.User) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := atoi(r.PathValue("id"))
	question, err := models.GetQuestion(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if question.UserID != user.ID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err := models.DeleteQuestion(s.DB, id); err != nil {
		logrus.WithError(err).Error("delete question")
		http.Error(w, "could not delete question", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, user *models.User) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	questionID := atoi(r.PathValue("questionID"))
	commentID := atoi(r.PathValue("commentID"))
	comment, err := models.GetComment(s.DB, commentID)
	if err != nil || comment.QuestionID != questionID {
		http.NotFound(w, r)
		return
	}
	question, err := models.GetQuestion(s.DB, questionID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	// the comment's author and the question's author may both remove it
	if comment.UserID != user.ID && question.UserID != user.ID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err := models.DeleteComment(s.DB, commentID); err != nil {
		logrus.WithError(err).Error("delete comment")
		http.Error(w, "could not delete comment", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/question/"+itoa(questionID), http.StatusSeeOther)
}
