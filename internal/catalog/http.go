package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Storefront/pkg/kit"
)

// Server exposes the loaded catalog read-only.
type Server struct {
	Catalog *Catalog
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

// Register adds the catalog routes to an existing router.
func (s *Server) Register(r chi.Router) {
	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)
	r.Get("/categories", s.categories)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = AllCategories
	}
	query := r.URL.Query().Get("q")

	if r.URL.Query().Get("fulltext") == "1" {
		kit.WriteJSON(w, http.StatusOK, s.Catalog.SearchText(category, query))
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Search(category, query))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", map[string]any{"id": raw})
		return
	}

	p, ok := s.Catalog.ByID(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) categories(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Categories())
}
