package engine

import "errors"

// Construction and invariant errors
var (
	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrDuplicateCharacter = errors.New("duplicate character")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrMalformedBoard     = errors.New("malformed board")
	ErrInvalidCard        = errors.New("invalid event card")
	ErrInvalidRules       = errors.New("invalid rules")
)

// Illegal-call errors
var (
	ErrGameFinished      = errors.New("game is finished")
	ErrAlreadyRolled     = errors.New("dice already rolled this turn")
	ErrDiceNotRolled     = errors.New("dice not rolled this turn")
	ErrDoublesPending    = errors.New("doubles rolled, player must roll again")
	ErrNothingToSettle   = errors.New("no pending landing to settle")
	ErrNotOwnable        = errors.New("space cannot be owned")
	ErrAlreadyOwned      = errors.New("instrument already owned")
	ErrNotOwner          = errors.New("instrument not owned by player")
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrNoMonopoly        = errors.New("color group not fully owned")
	ErrCannotBuild       = errors.New("improvement not allowed")
	ErrMortgaged         = errors.New("instrument is mortgaged")
	ErrNotMortgaged      = errors.New("instrument is not mortgaged")
	ErrNotJailed         = errors.New("player is not in jail")
	ErrNoLeaveJailCard   = errors.New("player holds no leave-jail card")
	ErrNotDrawSpace      = errors.New("current space is not a card space")
	ErrInvalidTrade      = errors.New("invalid trade")
	ErrNoTrade           = errors.New("no trade in progress")
	ErrPlayerBankrupt    = errors.New("player is bankrupt")
)

// Deck exhaustion is recoverable: the caller may skip the card.
var ErrDeckExhausted = errors.New("card deck exhausted")

// ErrInsufficientFunds is only returned when Rules.EnforceFunds is set.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrLandingPending is returned when rent, tax or a card draw must be
// settled before the turn can continue.
var ErrLandingPending = errors.New("landing not settled")
