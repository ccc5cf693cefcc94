package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"askhub/internal/models"
)

type Server struct {
	DB *sqlx.DB

	tmpl map[string]*template.Template

	CookieName string
	secret     []byte
}

func New(db *sqlx.DB, templateDir, sessionSecret string) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}
	return &Server{DB: db, tmpl: templates, CookieName: "session_id", secret: []byte(sessionSecret)}, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/mainpage/{page}", s.requireAuth(s.handleMainPage))
	mux.HandleFunc("/about", s.handleAbout)
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/new-question", s.requireAuth(s.handleNewQuestion))
	mux.HandleFunc("/question/{id}", s.handleQuestion)
	mux.HandleFunc("/upvote/{id}", s.requireAuth(s.handleUpvote))
	mux.HandleFunc("/delete-question/{id}", s.requireAuth(s.handleDeleteQuestion))
	mux.HandleFunc("/delete-comment/{questionID}/{commentID}", s.requireAuth(s.handleDeleteComment))
	mux.HandleFunc("/delete-dm/{id}", s.requireAuth(s.handleDeleteMessage))
	mux.HandleFunc("/my-profile/{action}", s.requireAuth(s.handleProfile))
	mux.HandleFunc("/user/{username}", s.handleUserPage)
	mux.HandleFunc("/search/all-categories", s.handleAllCategories)
	mux.HandleFunc("/search/by-words", s.handleSearchByWords)
	mux.HandleFunc("/search/{category}", s.handleSearchByCategory)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return s.logRequests(mux)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		logrus.WithError(err).WithField("template", name).Error("render failed")
	}
}

// middleware
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r, user)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   sw.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

// sessions

func (s *Server) startSession(w http.ResponseWriter, userID int) error {
	sid := uuid.NewString()
	expires := time.Now().Add(24 * time.Hour)
	if err := models.CreateSession(s.DB, userID, sid, expires); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{Name: s.CookieName, Value: s.signSession(sid), Path: "/", Expires: expires, HttpOnly: true})
	return nil
}

// signSession appends a keyed MAC so a forged cookie never reaches the
// session table.
func (s *Server) signSession(sid string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(sid))
	return sid + "." + hex.EncodeToString(mac.Sum(nil))
}

func (s *Server) verifySession(value string) (string, bool) {
	sid, sig, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(sid))
	want := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return sid, true
}

func (s *Server) currentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return nil
	}
	sid, ok := s.verifySession(cookie.Value)
	if !ok {
		return nil
	}
	sess, err := models.GetSession(s.DB, sid)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	user, err := models.GetUserByID(s.DB, sess.UserID)
	if err != nil {
		return nil
	}
	return user
}

// helpers
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
