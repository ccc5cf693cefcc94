package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"askhub/internal/forms"
	"askhub/internal/models"
)

func (s *Server) handleSearchByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if !models.IsCategory(category) {
		http.NotFound(w, r)
		return
	}
	questions, err := models.SearchByCategory(s.DB, category)
	if err != nil {
		logrus.WithError(err).Error("search by category")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "search_results", map[string]any{
		"User":      s.currentUser(r),
		"Heading":   category,
		"Questions": questions,
	})
}

func (s *Server) handleSearchByWords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, "by_words", map[string]any{"User": s.currentUser(r), "Errors": forms.Errors{}})
	case http.MethodPost:
		r.ParseForm()
		form, errs := forms.ParseSearch(r.PostForm)
		if !errs.Valid() {
			w.WriteHeader(http.StatusBadRequest)
			s.render(w, "by_words", map[string]any{"User": s.currentUser(r), "Errors": errs})
			return
		}
		questions, err := models.SearchByKeywords(s.DB, form.Words)
		if err != nil {
			logrus.WithError(err).Error("search by keywords")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		s.render(w, "search_results", map[string]any{
			"User":      s.currentUser(r),
			"Heading":   "Results for \"" + form.Words + "\"",
			"Questions": questions,
		})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAllCategories(w http.ResponseWriter, r *http.Request) {
	s.render(w, "categories", map[string]any{
		"User":       s.currentUser(r),
		"Categories": models.Categories,
	})
}
