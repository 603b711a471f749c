package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"golf/game"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultGame is the session used by the plain /decide endpoint.
const DefaultGame = "default"

// Factory creates the agent for a new game.
type Factory func() (*Agent, error)

// ShotResponse is the answer to a decide request.
type ShotResponse struct {
	Distance float64 `json:"distance"`
	Angle    float64 `json:"angle"`
	Tier     string  `json:"tier"`
	Anomaly  bool    `json:"anomaly"`
}

type player struct {
	mu    sync.Mutex
	agent *Agent
}

// Server hosts one agent per game id.
type Server struct {
	mu      sync.Mutex
	factory Factory
	games   map[string]*player
	logger  zerolog.Logger
	router  *mux.Router
}

func NewServer(factory Factory, logger zerolog.Logger) *Server {
	s := &Server{
		factory: factory,
		games:   make(map[string]*player),
		logger:  logger,
		router:  mux.NewRouter(),
	}
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/decide", s.handleDecide).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id:[a-zA-Z0-9\\-_]+}/decide", s.handleDecide).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id:[a-zA-Z0-9\\-_]+}", s.handleEndGame).Methods(http.MethodDelete)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// StartAgentServer serves agents on the given address until the listener fails.
func StartAgentServer(addr string, factory Factory) error {
	s := NewServer(factory, log.Logger)
	log.Info().Msgf("starting agent server on %s...", addr)
	return http.ListenAndServe(addr, handlers.CombinedLoggingHandler(log.Logger, s))
}

// player returns the agent of a game, creating it when the game is new.
func (s *Server) player(id string) (*player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.games[id]; ok {
		return p, false, nil
	}
	a, err := s.factory()
	if err != nil {
		return nil, false, err
	}
	p := &player{agent: a}
	s.games[id] = p
	return p, true, nil
}

// forget drops a game whose first turn failed.
func (s *Server) forget(id string, p *player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.games[id] == p {
		delete(s.games, id)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Error().Err(err).Msg("failed to write health response")
	}
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	id, ok := mux.Vars(r)["id"]
	if !ok {
		id = DefaultGame
	}

	var turn game.Turn
	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	p, created, err := s.player(id)
	if err != nil {
		s.logger.Error().Err(err).Str("game", id).Msg("failed to create agent")
		http.Error(w, "failed to create agent: "+err.Error(), http.StatusInternalServerError)
		return
	}

	p.mu.Lock()
	decision, err := p.agent.Decide(turn)
	p.mu.Unlock()
	if err != nil && created {
		s.forget(id, p)
	}
	if errors.Is(err, ErrInvalidCourse) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, "failed to decide: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(ShotResponse{
		Distance: decision.Shot.Distance,
		Angle:    decision.Shot.Angle,
		Tier:     decision.Tier.String(),
		Anomaly:  decision.Anomaly,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode shot")
	}
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	_, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()

	if !ok {
		http.Error(w, "unknown game "+id, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
