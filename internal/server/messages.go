package server

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"askhub/internal/forms"
	"askhub/internal/models"
)

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, user *models.User, recipient string) {
	switch r.Method {
	case http.MethodGet:
		if _, err := models.GetUserByName(s.DB, recipient); err != nil {
			http.NotFound(w, r)
			return
		}
		s.render(w, "send_dm", map[string]any{"User": user, "Recipient": recipient, "Errors": forms.Errors{}})
	case http.MethodPost:
		r.ParseForm()
		form, errs := forms.ParseMessage(r.PostForm)
		if !errs.Valid() {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "send_dm", map[string]any{"User": user, "Recipient": recipient, "Form": form, "Errors": errs})
			return
		}
		if _, err := models.SendMessage(s.DB, user.ID, recipient, form.Text); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			logrus.WithError(err).Error("send message")
			http.Error(w, "could not send message", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/user/"+recipient, http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request, user *models.User) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := atoi(r.PathValue("id"))
	message, err := models.GetMessage(s.DB, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if message.RecipientID != user.ID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err := models.DeleteMessage(s.DB, id); err != nil {
		logrus.WithError(err).Error("delete message")
		http.Error(w, "could not delete message", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/my-profile/dms", http.StatusSeeOther)
}
