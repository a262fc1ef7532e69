package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/battleship/game/config"
	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/service"
	"github.com/wricardo/battleship/game/session"
	"github.com/wricardo/battleship/game/view"
	"github.com/wricardo/battleship/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Match state
	api.HandleFunc("/sessions/{id}/state", s.handleGetMatchView).Methods("GET")
	api.HandleFunc("/sessions/{id}/snapshot", s.handleGetSnapshot).Methods("GET")
	api.HandleFunc("/sessions/{id}/stats", s.handleGetStats).Methods("GET")

	// Lobby
	api.HandleFunc("/sessions/{id}/ships", s.handlePlaceShip).Methods("POST")
	api.HandleFunc("/sessions/{id}/randomize", s.handleRandomize).Methods("POST")
	api.HandleFunc("/sessions/{id}/start", s.handleStart).Methods("POST")

	// Play
	api.HandleFunc("/sessions/{id}/fire", s.handleFire).Methods("POST")
	api.HandleFunc("/sessions/{id}/restart", s.handleRestart).Methods("POST")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service and engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidPhase), errors.Is(err, engine.ErrFleetFull),
		errors.Is(err, engine.ErrFleetDoesNotFit):
		return http.StatusConflict
	case errors.Is(err, engine.ErrOutOfBounds), errors.Is(err, engine.ErrOverlap),
		errors.Is(err, engine.ErrUnknownShipKind), errors.Is(err, config.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, config.ErrConfigNotFound),
		strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

// coordinateRequest accepts either row/col numbers or a cell label like "C4"
type coordinateRequest struct {
	Row  *int   `json:"row,omitempty"`
	Col  *int   `json:"col,omitempty"`
	Cell string `json:"cell,omitempty"`
}

func (c coordinateRequest) coordinate() (engine.Coordinate, error) {
	if c.Cell != "" {
		return view.ParseCoordinateLabel(c.Cell)
	}
	if c.Row == nil || c.Col == nil {
		return engine.Coordinate{}, fmt.Errorf("row and col, or cell, are required")
	}
	return engine.Coordinate{Row: *c.Row, Col: *c.Col}, nil
}

// broadcast pushes the latest match view to websocket clients
func (s *Server) broadcast(sessionID string, match *view.MatchView) {
	if s.hub != nil && match != nil {
		s.hub.BroadcastToSession(sessionID, match)
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	// Support both parameter names, but prefer config_id
	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	info, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	limit := total
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < total {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Match State Handlers

func (s *Server) handleGetMatchView(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	match, err := s.service.GetMatchView(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, view.FormatMatch(match))
		return
	}

	respondJSON(w, http.StatusOK, match)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	snapshot, err := s.service.GetSnapshot(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	stats, err := s.service.GetStats(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Lobby Handlers

func (s *Server) handlePlaceShip(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Player string `json:"player"`
		Kind   string `json:"kind"`
		coordinateRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	player := engine.Player(req.Player)
	if player != engine.PlayerOne && player != engine.PlayerTwo {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("player must be %q or %q", engine.PlayerOne, engine.PlayerTwo))
		return
	}
	kind, err := engine.ParseShipKind(req.Kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	anchor, err := req.coordinate()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.PlaceShip(r.Context(), sessionID, player, kind, anchor)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.Match)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRandomize(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.RandomizeFleet(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.Match)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.StartMatch(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Printf("[START] session=%s first=%s", sessionID, result.Match.ActivePlayer)

	s.broadcast(sessionID, result.Match)
	respondJSON(w, http.StatusOK, result)
}

// Play Handlers

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req coordinateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	target, err := req.coordinate()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Fire(r.Context(), sessionID, target)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Compact server log for observability
	shot := result.Shot
	outcome := string(shot.Outcome.Result)
	if shot.Outcome.Sunk() {
		outcome += "+sunk:" + string(*shot.Outcome.SunkKind)
	}
	if shot.Winner != nil {
		log.Printf("[FIRE] session=%s shooter=%s target=%s result=%s WINNER=%s",
			sessionID, shot.Shooter, view.CoordinateLabel(shot.Target), outcome, *shot.Winner)
	} else {
		log.Printf("[FIRE] session=%s shooter=%s target=%s result=%s next=%s",
			sessionID, shot.Shooter, view.CoordinateLabel(shot.Target), outcome, shot.NextTurn)
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(sessionID, websocket.EventShot, shot)
	}
	s.broadcast(sessionID, result.Match)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.RestartMatch(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(sessionID, websocket.EventRestart, nil)
	}
	s.broadcast(sessionID, result.Match)
	respondJSON(w, http.StatusOK, result)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	cfg, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// configID turns a display name into a file-safe config identifier
func configID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var matchConfig engine.MatchConfig
	if err := json.NewDecoder(r.Body).Decode(&matchConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if matchConfig.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}
	if matchConfig.Messages == (engine.Messages{}) {
		matchConfig.Messages = engine.DefaultMessages()
	}

	id := configID(matchConfig.Name)
	if err := s.service.SaveConfig(r.Context(), id, &matchConfig); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		respondError(w, status, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": id,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if s.hub == nil {
		http.Error(w, "websocket not available", http.StatusServiceUnavailable)
		return
	}

	if _, err := s.service.GetSession(context.Background(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
