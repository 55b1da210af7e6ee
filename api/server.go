package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/banco-imobiliario/game/config"
	"github.com/wricardo/banco-imobiliario/game/engine"
	"github.com/wricardo/banco-imobiliario/game/service"
	"github.com/wricardo/banco-imobiliario/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
	logger  zerolog.Logger
}

// NewServer creates a new API server. hub may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
		logger:  log.Logger.With().Str("component", "api").Logger(),
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

	// Read side
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/helpers", s.handleGetDecisions).Methods("GET")
	api.HandleFunc("/sessions/{id}/events", s.handleGetEvents).Methods("GET")

	// Turn
	api.HandleFunc("/sessions/{id}/roll", s.command(s.service.RollDice)).Methods("POST")
	api.HandleFunc("/sessions/{id}/end-turn", s.command(s.service.EndTurn)).Methods("POST")
	api.HandleFunc("/sessions/{id}/purchase", s.command(s.service.Purchase)).Methods("POST")
	api.HandleFunc("/sessions/{id}/rent", s.handleCollectRent).Methods("POST")
	api.HandleFunc("/sessions/{id}/card", s.command(s.service.ResolveCard)).Methods("POST")
	api.HandleFunc("/sessions/{id}/jail/card", s.command(s.service.UseLeaveJailCard)).Methods("POST")
	api.HandleFunc("/sessions/{id}/jail/bail", s.command(s.service.PayBail)).Methods("POST")

	// Construction and mortgages
	api.HandleFunc("/sessions/{id}/build", s.handleBuild).Methods("POST")
	api.HandleFunc("/sessions/{id}/sell", s.instrumentCommand(s.service.SellHouse)).Methods("POST")
	api.HandleFunc("/sessions/{id}/mortgage", s.instrumentCommand(s.service.Mortgage)).Methods("POST")
	api.HandleFunc("/sessions/{id}/redeem", s.instrumentCommand(s.service.Redeem)).Methods("POST")
	api.HandleFunc("/sessions/{id}/bankrupt", s.handleBankrupt).Methods("POST")

	// Trades
	api.HandleFunc("/sessions/{id}/trade", s.handleProposeTrade).Methods("POST")
	api.HandleFunc("/sessions/{id}/trade", s.command(s.service.CancelTrade)).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/trade/offers/{side}", s.handleSetOffer).Methods("PUT")
	api.HandleFunc("/sessions/{id}/trade/offers/{side}", s.sideCommand(s.service.ResetOffer)).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/trade/accept/{side}", s.sideCommand(s.service.AcceptTrade)).Methods("POST")
	api.HandleFunc("/sessions/{id}/trade/execute", s.command(s.service.ExecuteTrade)).Methods("POST")

	// Rule sets
	api.HandleFunc("/rules", s.handleListRules).Methods("GET")
	api.HandleFunc("/rules", s.handleCreateRules).Methods("POST")
	api.HandleFunc("/rules/{name}", s.handleGetRules).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
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

// conflicts are rule violations: the request was understood but the game
// does not allow it now.
var conflicts = []error{
	engine.ErrGameFinished,
	engine.ErrAlreadyRolled,
	engine.ErrDiceNotRolled,
	engine.ErrDoublesPending,
	engine.ErrLandingPending,
	engine.ErrNothingToSettle,
	engine.ErrNotOwnable,
	engine.ErrAlreadyOwned,
	engine.ErrNotOwner,
	engine.ErrNoMonopoly,
	engine.ErrCannotBuild,
	engine.ErrMortgaged,
	engine.ErrNotMortgaged,
	engine.ErrNotJailed,
	engine.ErrNoLeaveJailCard,
	engine.ErrNotDrawSpace,
	engine.ErrInvalidTrade,
	engine.ErrNoTrade,
	engine.ErrPlayerBankrupt,
	engine.ErrDeckExhausted,
	engine.ErrInsufficientFunds,
}

var badRequests = []error{
	service.ErrInvalidRequest,
	config.ErrInvalidConfig,
	engine.ErrInvalidPlayerCount,
	engine.ErrDuplicateCharacter,
	engine.ErrInvalidPlayer,
	engine.ErrInvalidRules,
	engine.ErrInvalidCard,
}

var notFound = []error{
	service.ErrSessionNotFound,
	config.ErrConfigNotFound,
	engine.ErrUnknownPlayer,
	engine.ErrUnknownInstrument,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps service and engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case isAny(err, notFound):
		return http.StatusNotFound
	case isAny(err, badRequests):
		return http.StatusBadRequest
	case isAny(err, conflicts):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	}
	respondError(w, status, err.Error())
}

// decodeBody decodes an optional JSON body into v
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body: %v", service.ErrInvalidRequest, err)
	}
	return nil
}

// publish pushes the outcome of a command to websocket viewers
func (s *Server) publish(sessionID string, result *service.ActionResult) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, result.State)
	for _, event := range result.Events {
		s.hub.BroadcastEvent(sessionID, websocket.EventGame, event)
	}
}

func (s *Server) finish(w http.ResponseWriter, sessionID string, result *service.ActionResult, err error) {
	if err != nil {
		s.fail(w, err)
		return
	}
	s.publish(sessionID, result)
	s.logger.Debug().Str("session", sessionID).Str("action", result.Action).Int("events", len(result.Events)).Msg("command applied")
	respondJSON(w, http.StatusOK, result)
}

// command adapts a body-less session command to a handler
func (s *Server) command(fn func(context.Context, string) (*service.ActionResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := mux.Vars(r)["id"]
		result, err := fn(r.Context(), sessionID)
		s.finish(w, sessionID, result, err)
	}
}

type instrumentRequest struct {
	Instrument string `json:"instrument"`
	Hotel      bool   `json:"hotel,omitempty"`
}

func (r instrumentRequest) validate() error {
	if strings.TrimSpace(r.Instrument) == "" {
		return fmt.Errorf("%w: instrument is required", service.ErrInvalidRequest)
	}
	return nil
}

// instrumentCommand adapts a command that names one title
func (s *Server) instrumentCommand(fn func(context.Context, string, string) (*service.ActionResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := mux.Vars(r)["id"]
		var req instrumentRequest
		if err := decodeBody(r, &req); err != nil {
			s.fail(w, err)
			return
		}
		if err := req.validate(); err != nil {
			s.fail(w, err)
			return
		}
		result, err := fn(r.Context(), sessionID, req.Instrument)
		s.finish(w, sessionID, result, err)
	}
}

// sideCommand adapts a trade command addressed to one side
func (s *Server) sideCommand(fn func(context.Context, string, string) (*service.ActionResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		result, err := fn(r.Context(), vars["id"], vars["side"])
		s.finish(w, vars["id"], result, err)
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	info, err := s.service.CreateSession(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default)
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.SliceStable(sessions, func(i, j int) bool {
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
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			sessions = sessions[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Read Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.GetGameState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetDecisions(w http.ResponseWriter, r *http.Request) {
	decisions, err := s.service.GetDecisions(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, decisions)
}

func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}
	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	events, err := s.service.GetEvents(r.Context(), mux.Vars(r)["id"], opts)
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// Command Handlers

func (s *Server) handleCollectRent(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	var req struct {
		DiceSum int `json:"dice_sum,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	result, err := s.service.CollectRent(r.Context(), sessionID, req.DiceSum)
	s.finish(w, sessionID, result, err)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	var req instrumentRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if err := req.validate(); err != nil {
		s.fail(w, err)
		return
	}

	build := s.service.BuildHouse
	if req.Hotel {
		build = s.service.BuildHotel
	}
	result, err := build(r.Context(), sessionID, req.Instrument)
	s.finish(w, sessionID, result, err)
}

func (s *Server) handleBankrupt(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	var req struct {
		Character string `json:"character,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	result, err := s.service.DeclareBankruptcy(r.Context(), sessionID, req.Character)
	s.finish(w, sessionID, result, err)
}

func (s *Server) handleProposeTrade(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	var req struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	result, err := s.service.ProposeTrade(r.Context(), sessionID, req.Origin, req.Destination)
	s.finish(w, sessionID, result, err)
}

func (s *Server) handleSetOffer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var offer engine.Offer
	if err := decodeBody(r, &offer); err != nil {
		s.fail(w, err)
		return
	}

	result, err := s.service.SetOffer(r.Context(), vars["id"], vars["side"], offer)
	s.finish(w, vars["id"], result, err)
}

// Rule Set Handlers

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	infos, err := s.service.ListRules(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetRules(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	rules, err := s.service.LoadRules(r.Context(), name)
	if err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rules)
}

func (s *Server) handleCreateRules(w http.ResponseWriter, r *http.Request) {
	// Start from the classic rules so partial bodies stay playable
	rules := engine.DefaultRules()
	rules.Name, rules.Description = "", ""
	if err := decodeBody(r, rules); err != nil {
		s.fail(w, err)
		return
	}

	if err := s.service.SaveRules(r.Context(), rules.Name, rules); err != nil {
		s.fail(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Rule set saved successfully",
		"config_id": rules.Name,
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
		http.Error(w, "websocket disabled", http.StatusServiceUnavailable)
		return
	}

	state, err := s.service.GetGameState(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
	// first frame for the new viewer
	s.hub.BroadcastToSession(sessionID, *state)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
