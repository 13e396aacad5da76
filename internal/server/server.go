package server

import (
	"net/http"

	"github.com/joelmarkovski/ltu-a2/internal/config"
	"github.com/joelmarkovski/ltu-a2/internal/db"

	"gorm.io/gorm"
)

type Server struct {
	cfg       config.Config
	games     *db.GameStore
	questions *db.QuestionStore
	saves     *db.SaveStore
	publisher *publisher
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		cfg:       cfg,
		games:     db.NewGameStore(conn),
		questions: db.NewQuestionStore(conn),
		saves:     db.NewSaveStore(conn),
		publisher: newPublisher(cfg),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("PATCH /api/games/{id}", s.handleUpdateGame)
	mux.HandleFunc("DELETE /api/games/{id}", s.handleDeleteGame)
	mux.HandleFunc("POST /api/games/{id}/publish", s.handlePublishGame)

	mux.HandleFunc("GET /api/qa", s.handleListQuestions)
	mux.HandleFunc("POST /api/qa", s.handleCreateQuestion)
	mux.HandleFunc("PUT /api/qa", s.handleUpsertQuestion)
	mux.HandleFunc("DELETE /api/qa", s.handleDeleteQuestionByRef)
	mux.HandleFunc("POST /api/qa/publish", s.handlePublishQuestion)
	mux.HandleFunc("GET /api/qa/{id}", s.handleGetQuestion)
	mux.HandleFunc("PATCH /api/qa/{id}", s.handleUpdateQuestion)
	mux.HandleFunc("DELETE /api/qa/{id}", s.handleDeleteQuestion)

	mux.HandleFunc("GET /api/saves", s.handleListSaves)
	mux.HandleFunc("POST /api/saves", s.handleCreateSave)
	mux.HandleFunc("GET /api/saves/{id}", s.handleGetSave)
	mux.HandleFunc("PUT /api/saves/{id}", s.handleUpdateSave)
	mux.HandleFunc("DELETE /api/saves/{id}", s.handleDeleteSave)

	mux.HandleFunc("POST /api/tabs", s.handleGenerateTabs)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
