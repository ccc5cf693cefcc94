package server

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"askhub/internal/forms"
	"askhub/internal/models"
)

// handleProfile is the my-profile dispatch point: four independent
// sub-actions behind one route.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, user *models.User) {
	switch r.PathValue("action") {
	case "reset-pw":
		s.handlePasswordReset(w, r, user)
	case "reset-address":
		s.handleEmailReset(w, r, user)
	case "sent-questions":
		s.handleSentQuestions(w, r, user)
	case "dms":
		s.handleInbox(w, r, user)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handlePasswordReset(w http.ResponseWriter, r *http.Request, user *models.User) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "reset_password", map[string]any{"User": user, "Errors": forms.Errors{}})
	case http.MethodPost:
		r.ParseForm()
		form, errs := forms.ParsePasswordReset(r.PostForm)
		if !errs.Valid() {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "reset_password", map[string]any{"User": user, "Errors": errs})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.OldPassword)) != nil {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "reset_password", map[string]any{"User": user, "Errors": forms.Errors{}, "Flash": models.ErrInvalidPassword.Error()})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.NewPassword)) == nil {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "reset_password", map[string]any{"User": user, "Errors": forms.Errors{}, "Flash": models.ErrSamePassword.Error()})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(form.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := models.UpdatePasswordHash(s.DB, user.ID, string(hash)); err != nil {
			logrus.WithError(err).Error("update password")
			http.Error(w, "could not update password", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEmailReset(w http.ResponseWriter, r *http.Request, user *models.User) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "reset_email", map[string]any{"User": user, "Errors": forms.Errors{}})
	case http.MethodPost:
		r.ParseForm()
		form, errs := forms.ParseEmailReset(r.PostForm)
		if !errs.Valid() {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "reset_email", map[string]any{"User": user, "Errors": errs})
			return
		}
		err := models.UpdateEmail(s.DB, user.ID, form.Email)
		if errors.Is(err, models.ErrDuplicateEmail) {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "reset_email", map[string]any{"User": user, "Errors": forms.Errors{}, "Flash": "This e-mail address is already registered."})
			return
		}
		if err != nil {
			logrus.WithError(err).Error("update email")
			http.Error(w, "could not update e-mail", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSentQuestions(w http.ResponseWriter, r *http.Request, user *models.User) {
	questions, err := models.QuestionsByUser(s.DB, user.ID)
	if err != nil {
		logrus.WithError(err).Error("list sent questions")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "my_questions", map[string]any{"User": user, "Questions": questions})
}

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request, user *models.User) {
	messages, err := models.ListMessages(s.DB, user.ID)
	if err != nil {
		logrus.WithError(err).Error("list messages")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "my_dms", map[string]any{"User": user, "Messages": messages})
}

func (s *Server) handleUserPage(w http.ResponseWriter, r *http.Request) {
	profile, err := models.GetUserByName(s.DB, r.PathValue("username"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	questions, err := models.QuestionsByUser(s.DB, profile.ID)
	if err != nil {
		logrus.WithError(err).Error("list profile questions")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "profile", map[string]any{
		"User":      s.currentUser(r),
		"Profile":   profile,
		"Questions": questions,
	})
}
