package engine

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is the game lifecycle
type State string

const (
	StateInProgress State = "IN_PROGRESS"
	StateFinished   State = "FINISHED"
)

// Game owns every piece of state of one match and enforces the turn rules.
// It is not safe for concurrent use; callers serialize access.
type Game struct {
	rules   Rules
	players []*Player
	board   *Board
	bank    *Bank
	deck    *Deck
	dice    Dice
	logger  zerolog.Logger

	current       int
	doublesStreak int
	diceRolled    bool
	state         State
	winner        string
	lastDice      [2]int

	// Settlement owed for the space the current player stands on.
	rentDue        bool
	cardDue        bool
	rentMultiplier int

	trade *Trade
}

// Option configures a Game at construction time.
type Option func(*gameOptions)

type gameOptions struct {
	rules   *Rules
	dice    Dice
	seed    *uint64
	logger  *zerolog.Logger
	chance  []*EventCard
	chest   []*EventCard
	ordered bool
}

// WithRules replaces the classic rule set
func WithRules(rules *Rules) Option {
	return func(o *gameOptions) { o.rules = rules }
}

// WithDice replaces the uniform dice, e.g. with ScriptedDice
func WithDice(d Dice) Option {
	return func(o *gameOptions) { o.dice = d }
}

// WithSeed makes dice and deck shuffles reproducible
func WithSeed(seed uint64) Option {
	return func(o *gameOptions) { o.seed = &seed }
}

// WithLogger sets the engine logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *gameOptions) { o.logger = &l }
}

// WithCards replaces the classic decks. The given order is kept: the last
// card of each slice is drawn first.
func WithCards(chance, chest []*EventCard) Option {
	return func(o *gameOptions) {
		o.chance = chance
		o.chest = chest
		o.ordered = true
	}
}

// NewGame seats the players in order and deals the classic board, bank and decks.
func NewGame(specs []PlayerSpec, opts ...Option) (*Game, error) {
	o := &gameOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if len(specs) < MinPlayers || len(specs) > MaxPlayers {
		return nil, fmt.Errorf("%w: need %d to %d players, got %d", ErrInvalidPlayerCount, MinPlayers, MaxPlayers, len(specs))
	}

	rules := DefaultRules()
	if o.rules != nil {
		rules = o.rules
	}
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(specs))
	players := make([]*Player, 0, len(specs))
	for _, spec := range specs {
		p, err := NewPlayer(spec.Name, spec.Character, rules.StartingBalance)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(p.Character())
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCharacter, p.Character())
		}
		seen[key] = true
		players = append(players, p)
	}

	bank, err := NewBank()
	if err != nil {
		return nil, err
	}
	board, err := NewBoard(bank)
	if err != nil {
		return nil, err
	}

	var seed uint64
	if o.seed != nil {
		seed = *o.seed
	} else if seed, err = NewSeed(); err != nil {
		return nil, err
	}
	rng := newRand(seed)

	chance, chest := o.chance, o.chest
	if !o.ordered {
		if chance, err = ClassicChanceCards(); err != nil {
			return nil, err
		}
		if chest, err = ClassicChestCards(); err != nil {
			return nil, err
		}
	}
	if err := checkDestinations(board, chance, chest); err != nil {
		return nil, err
	}
	shuffle := rng
	if o.ordered {
		shuffle = nil
	}
	deck, err := NewDeck(chance, chest, shuffle)
	if err != nil {
		return nil, err
	}

	dice := o.dice
	if dice == nil {
		dice = NewUniformDice(rng)
	}
	logger := log.Logger.With().Str("component", "engine").Logger()
	if o.logger != nil {
		logger = *o.logger
	}

	return &Game{
		rules:   *rules,
		players: players,
		board:   board,
		bank:    bank,
		deck:    deck,
		dice:    dice,
		logger:  logger,
		state:   StateInProgress,
	}, nil
}

func checkDestinations(board *Board, decks ...[]*EventCard) error {
	for _, cards := range decks {
		for _, c := range cards {
			if c == nil || c.Action() != ActionAdvanceTo {
				continue
			}
			if _, ok := board.SpaceByName(c.Params().Destination); !ok {
				return fmt.Errorf("%w: destination %q is not on the board", ErrInvalidCard, c.Params().Destination)
			}
		}
	}
	return nil
}

func (g *Game) Rules() Rules { return g.rules }
func (g *Game) Board() *Board { return g.board }
func (g *Game) Bank() *Bank { return g.bank }
func (g *Game) Deck() *Deck { return g.deck }
func (g *Game) State() State { return g.state }
func (g *Game) Winner() string { return g.winner }
func (g *Game) CurrentIndex() int { return g.current }
func (g *Game) DoublesStreak() int { return g.doublesStreak }
func (g *Game) DiceRolled() bool { return g.diceRolled }
func (g *Game) LastDice() (int, int) { return g.lastDice[0], g.lastDice[1] }
func (g *Game) RentDue() bool { return g.rentDue }
func (g *Game) CardDue() bool { return g.cardDue }

// Players returns the seats in turn order
func (g *Game) Players() []*Player {
	result := make([]*Player, len(g.players))
	copy(result, g.players)
	return result
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	return g.players[g.current]
}

// Player finds a seat by character
func (g *Game) Player(character string) (*Player, error) {
	p := g.playerByCharacter(Holder(character))
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, character)
	}
	return p, nil
}

// HolderOf returns the player holding an instrument, or nil while the bank does.
func (g *Game) HolderOf(name string) (*Player, error) {
	holder, err := g.bank.HolderOf(name)
	if err != nil {
		return nil, err
	}
	if holder == BankHolder {
		return nil, nil
	}
	return g.playerByCharacter(holder), nil
}

func (g *Game) playerByCharacter(h Holder) *Player {
	for _, p := range g.players {
		if Holder(p.character) == h {
			return p
		}
	}
	return nil
}

func holderOf(p *Player) Holder {
	return Holder(p.character)
}

func (g *Game) activePlayers() int {
	count := 0
	for _, p := range g.players {
		if !p.bankrupt {
			count++
		}
	}
	return count
}

func (g *Game) checkInProgress() error {
	if g.state == StateFinished {
		return ErrGameFinished
	}
	return nil
}

// ownsGroup reports whether p holds every deed of group.
func (g *Game) ownsGroup(p *Player, group string) bool {
	size := g.bank.GroupSize(group)
	return size > 0 && p.GroupCount(group) == size
}

// transfer moves an instrument through the bank registry and keeps the
// player views in step with it.
func (g *Game) transfer(name string, from, to Holder) error {
	if err := g.bank.transfer(name, from, to); err != nil {
		return err
	}
	if from != BankHolder {
		if p := g.playerByCharacter(from); p != nil {
			if err := p.removeInstrument(name); err != nil {
				return err
			}
		}
	}
	if to != BankHolder {
		p := g.playerByCharacter(to)
		if p == nil {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, to)
		}
		p.addInstrument(g.bank.Instrument(name))
	}
	return nil
}
