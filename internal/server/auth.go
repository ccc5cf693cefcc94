package server

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"askhub/internal/forms"
	"askhub/internal/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "register", map[string]any{"User": s.currentUser(r), "Form": forms.Register{}, "Errors": forms.Errors{}})
	case http.MethodPost:
		r.ParseForm()
		form, errs := forms.ParseRegister(r.PostForm)
		if !errs.Valid() {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "register", map[string]any{"Form": form, "Errors": errs})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		userID, err := models.CreateUser(s.DB, form.Email, form.Name, string(hash))
		if errors.Is(err, models.ErrDuplicateEmail) {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "register", map[string]any{"Form": form, "Errors": forms.Errors{}, "Flash": "This e-mail address is already registered. Try another one."})
			return
		}
		if errors.Is(err, models.ErrDuplicateName) {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "register", map[string]any{"Form": form, "Errors": forms.Errors{}, "Flash": "This username is already taken. Try another one."})
			return
		}
		if err != nil {
			logrus.WithError(err).Error("create user")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := s.startSession(w, userID); err != nil {
			http.Error(w, "could not create session", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "login", map[string]any{"User": s.currentUser(r), "Form": forms.Login{}, "Errors": forms.Errors{}})
	case http.MethodPost:
		r.ParseForm()
		form, errs := forms.ParseLogin(r.PostForm)
		if !errs.Valid() {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "login", map[string]any{"Form": form, "Errors": errs})
			return
		}
		user, err := models.GetUserByEmail(s.DB, form.Email)
		if errors.Is(err, models.ErrUnknownEmail) {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "login", map[string]any{"Form": form, "Errors": forms.Errors{}, "Flash": "E-mail address not registered, please try again or sign up."})
			return
		}
		if err != nil {
			logrus.WithError(err).Error("look up user")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "login", map[string]any{"Form": form, "Errors": forms.Errors{}, "Flash": "Password incorrect, please try again."})
			return
		}
		if err := s.startSession(w, user.ID); err != nil {
			http.Error(w, "could not create session", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(s.CookieName)
	if err == nil {
		if sid, ok := s.verifySession(cookie.Value); ok {
			models.RevokeSession(s.DB, sid)
		}
		http.SetCookie(w, &http.Cookie{Name: s.CookieName, Path: "/", MaxAge: -1})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
