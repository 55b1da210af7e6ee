package service

import (
	"time"

	"github.com/wricardo/banco-imobiliario/game/engine"
)

// CreateSessionRequest describes a new game
type CreateSessionRequest struct {
	Rules   string              `json:"rules,omitempty"` // rule set id, empty for the default
	Players []engine.PlayerSpec `json:"players"`
	Seed    uint64              `json:"seed,omitempty"`
	// AutoSettle makes the service collect rent, resolve cards and declare
	// bankruptcy on its own after every move.
	AutoSettle bool `json:"auto_settle,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string              `json:"id"`
	RulesID        string              `json:"rules_id"`
	Seed           uint64              `json:"seed"`
	AutoSettle     bool                `json:"auto_settle"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	State          engine.GameSnapshot `json:"state"`
}

// ActionResult is returned by every game command
type ActionResult struct {
	Action   string              `json:"action"`
	Message  string              `json:"message"`
	Roll     *engine.RollResult  `json:"roll,omitempty"`
	Cards    []engine.CardResult `json:"cards,omitempty"`
	Amount   int                 `json:"amount,omitempty"`
	Accepted bool                `json:"accepted,omitempty"` // both trade sides accepted
	Bankrupt bool                `json:"bankrupt,omitempty"`
	Events   []GameEvent         `json:"events"`

	State     engine.GameSnapshot `json:"state"`
	Decisions engine.Decisions    `json:"decisions"`
}

// EventType names what happened in a GameEvent
type EventType string

const (
	EventSessionCreated EventType = "session_created"
	EventDiceRolled     EventType = "dice_rolled"
	EventPassedStart    EventType = "passed_start"
	EventJailed         EventType = "jailed"
	EventReleased       EventType = "released"
	EventRentPaid       EventType = "rent_paid"
	EventTaxPaid        EventType = "tax_paid"
	EventCardResolved   EventType = "card_resolved"
	EventDeckExhausted  EventType = "deck_exhausted"
	EventPurchased      EventType = "purchased"
	EventHouseBuilt     EventType = "house_built"
	EventHotelBuilt     EventType = "hotel_built"
	EventHouseSold      EventType = "house_sold"
	EventMortgaged      EventType = "mortgaged"
	EventRedeemed       EventType = "redeemed"
	EventBailPaid       EventType = "bail_paid"
	EventJailCardUsed   EventType = "jail_card_used"
	EventTradeProposed  EventType = "trade_proposed"
	EventTradeOffer     EventType = "trade_offer"
	EventTradeAccepted  EventType = "trade_accepted"
	EventTradeExecuted  EventType = "trade_executed"
	EventTradeCancelled EventType = "trade_cancelled"
	EventBankrupt       EventType = "bankrupt"
	EventTurnEnded      EventType = "turn_ended"
	EventGameOver       EventType = "game_over"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Player    string    `json:"player,omitempty"`
	Message   string    `json:"message"`
	Amount    int       `json:"amount,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryOptions configures event log retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// EventsResponse contains a page of the session event log
type EventsResponse struct {
	Events      []GameEvent `json:"events"`
	TotalEvents int         `json:"total_events"`
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	HasNext     bool        `json:"has_next"`
	HasPrevious bool        `json:"has_previous"`
}

// ConfigInfo provides information about a rule set
type ConfigInfo struct {
	Filename        string `json:"filename"`
	ConfigID        string `json:"config_id"` // The identifier to use for session creation
	Name            string `json:"name"`
	Description     string `json:"description"`
	StartingBalance int    `json:"starting_balance"`
	PassStartBonus  int    `json:"pass_start_bonus"`
	EnforceFunds    bool   `json:"enforce_funds"`
}
