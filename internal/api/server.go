package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mkrol/bike-hunter/internal/core"
	"github.com/mkrol/bike-hunter/internal/search"
	"github.com/mkrol/bike-hunter/internal/store"
)

type Server struct {
	router  *chi.Mux
	store   *store.FileStore
	service *core.SearchService
	// defaults is the profile used when a request does not carry one.
	defaults search.Profile
}

func NewServer(fileStore *store.FileStore, service *core.SearchService, defaults search.Profile) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		store:    fileStore,
		service:  service,
		defaults: defaults,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/search", s.handleSearch)
	s.router.Get("/search/auto", s.handleAutoSearch)
	s.router.Get("/results", s.handleListResults)
	s.router.Get("/results/{filename}", s.handleGetResult)
	s.router.Delete("/results", s.handleCleanResults)
	s.router.Get("/stats", s.handleStats)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Stolen Bike Scraper Service",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
