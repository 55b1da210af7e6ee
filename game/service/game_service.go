package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/banco-imobiliario/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Turn
	RollDice(ctx context.Context, sessionID string) (*ActionResult, error)
	EndTurn(ctx context.Context, sessionID string) (*ActionResult, error)
	Purchase(ctx context.Context, sessionID string) (*ActionResult, error)
	CollectRent(ctx context.Context, sessionID string, diceSum int) (*ActionResult, error)
	ResolveCard(ctx context.Context, sessionID string) (*ActionResult, error)
	UseLeaveJailCard(ctx context.Context, sessionID string) (*ActionResult, error)
	PayBail(ctx context.Context, sessionID string) (*ActionResult, error)

	// Construction and mortgages
	BuildHouse(ctx context.Context, sessionID, instrument string) (*ActionResult, error)
	BuildHotel(ctx context.Context, sessionID, instrument string) (*ActionResult, error)
	SellHouse(ctx context.Context, sessionID, instrument string) (*ActionResult, error)
	Mortgage(ctx context.Context, sessionID, instrument string) (*ActionResult, error)
	Redeem(ctx context.Context, sessionID, instrument string) (*ActionResult, error)
	DeclareBankruptcy(ctx context.Context, sessionID, character string) (*ActionResult, error)

	// Trades
	ProposeTrade(ctx context.Context, sessionID, origin, destination string) (*ActionResult, error)
	SetOffer(ctx context.Context, sessionID, side string, offer engine.Offer) (*ActionResult, error)
	ResetOffer(ctx context.Context, sessionID, side string) (*ActionResult, error)
	AcceptTrade(ctx context.Context, sessionID, side string) (*ActionResult, error)
	ExecuteTrade(ctx context.Context, sessionID string) (*ActionResult, error)
	CancelTrade(ctx context.Context, sessionID string) (*ActionResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameSnapshot, error)
	GetDecisions(ctx context.Context, sessionID string) (*engine.Decisions, error)
	GetEvents(ctx context.Context, sessionID string, opts HistoryOptions) (*EventsResponse, error)

	// Rule sets
	ListRules(ctx context.Context) ([]*ConfigInfo, error)
	LoadRules(ctx context.Context, name string) (*engine.Rules, error)
	SaveRules(ctx context.Context, name string, rules *engine.Rules) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, spec SessionSpec) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) (time.Time, error)
	LastAccessed(id string) (time.Time, error)
}

// ConfigManager handles rule set loading
type ConfigManager interface {
	LoadRules(name string) (*engine.Rules, error)
	ListRules() ([]*ConfigInfo, error)
	GetDefault() *engine.Rules
	SaveRules(name string, rules *engine.Rules) error
}

// SessionSpec is what a SessionManager needs to start a game.
type SessionSpec struct {
	Players    []engine.PlayerSpec
	RulesID    string
	Rules      *engine.Rules
	Seed       uint64 // zero draws a fresh seed
	AutoSettle bool
}

// Session represents an active game session
type Session struct {
	ID             string
	Game           *engine.Game
	RulesID        string
	Seed           uint64
	AutoSettle     bool
	Events         []GameEvent
	CreatedAt      time.Time
	// LastAccessedAt is owned by the SessionManager; read it through
	// LastAccessed.
	LastAccessedAt time.Time
}
