package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/banco-imobiliario/game/engine"
)

// maxSettleSteps bounds auto-settlement. A card can chain into at most a
// couple of further landings.
const maxSettleSteps = 8

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
	logger   zerolog.Logger
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   log.Logger.With().Str("component", "service").Logger(),
	}
}

// recorder collects the events of one command
type recorder struct {
	events []GameEvent
}

func (r *recorder) add(t EventType, player string, amount int, format string, args ...any) {
	r.events = append(r.events, GameEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Player:    player,
		Message:   fmt.Sprintf(format, args...),
		Amount:    amount,
		Timestamp: time.Now(),
	})
}

type commandFunc func(sess *Session, res *ActionResult, rec *recorder) error

// command runs fn against a session under the write lock and builds the
// result. Events recorded before a failure are still kept in the log.
func (s *gameServiceImpl) command(ctx context.Context, sessionID, action string, fn commandFunc) (*ActionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	g := sess.Game
	wasRunning := g.State() == engine.StateInProgress
	res := &ActionResult{Action: action}
	rec := &recorder{}

	err = fn(sess, res, rec)
	if wasRunning && g.State() == engine.StateFinished {
		rec.add(EventGameOver, g.Winner(), 0, "%s wins the game", g.Winner())
	}
	sess.Events = append(sess.Events, rec.events...)

	if err != nil {
		s.logger.Debug().Str("session", sessionID).Str("action", action).Err(err).Msg("command rejected")
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	res.Events = rec.events
	if res.Events == nil {
		res.Events = []GameEvent{}
	}
	if res.Message == "" && len(rec.events) > 0 {
		res.Message = rec.events[len(rec.events)-1].Message
	}
	res.State = g.Export()
	res.Decisions = g.Decisions()

	s.logger.Info().Str("session", sessionID).Str("action", action).Int("events", len(rec.events)).Msg(res.Message)
	return res, nil
}

// getSession fetches a session and marks it accessed. The returned time is a
// copy taken under the session manager's lock.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, time.Time, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	accessed, err := s.sessions.UpdateLastAccessed(sessionID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	return sess, accessed, nil
}

func toSessionInfo(sess *Session, lastAccessed time.Time) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		RulesID:        sess.RulesID,
		Seed:           sess.Seed,
		AutoSettle:     sess.AutoSettle,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: lastAccessed,
		State:          sess.Game.Export(),
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rulesID := strings.TrimSuffix(req.Rules, ".json")
	var rules *engine.Rules
	if rulesID == "" {
		rules = s.configs.GetDefault()
		rulesID = rules.Name
	} else {
		var err error
		rules, err = s.configs.LoadRules(rulesID)
		if err != nil {
			var ids []string
			if infos, listErr := s.configs.ListRules(); listErr == nil {
				for _, info := range infos {
					ids = append(ids, info.ConfigID)
				}
			}
			return nil, fmt.Errorf("load rules %q (available: %s): %w", rulesID, strings.Join(ids, ", "), err)
		}
	}

	sess, err := s.sessions.Create("", SessionSpec{
		Players:    req.Players,
		RulesID:    rulesID,
		Rules:      rules,
		Seed:       req.Seed,
		AutoSettle: req.AutoSettle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	rec := &recorder{}
	rec.add(EventSessionCreated, "", 0, "session %s started with %d players under %s rules", sess.ID, len(req.Players), rulesID)
	sess.Events = append(sess.Events, rec.events...)

	s.logger.Info().Str("session", sess.ID).Str("rules", rulesID).Uint64("seed", sess.Seed).Int("players", len(req.Players)).Msg("session created")
	return toSessionInfo(sess, sess.CreatedAt), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, accessed, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionInfo(sess, accessed), nil
}

// ListSessions returns all active sessions ordered by id
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	infos := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		accessed, err := s.sessions.LastAccessed(sess.ID)
		if err != nil {
			// swept since List
			continue
		}
		infos = append(infos, toSessionInfo(sess, accessed))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	s.logger.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// RollDice rolls for the current player. Auto-settling sessions then pay
// what the landing demands.
func (s *gameServiceImpl) RollDice(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "roll_dice", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		p := g.CurrentPlayer()
		wasJailed := p.Jailed()

		roll, err := g.RollDice()
		if err != nil {
			return err
		}
		res.Roll = &roll

		who := p.Character()
		switch {
		case roll.Moved:
			rec.add(EventDiceRolled, who, 0, "%s rolled %d and %d and moved to %s", who, roll.Die1, roll.Die2, roll.Space)
		default:
			rec.add(EventDiceRolled, who, 0, "%s rolled %d and %d", who, roll.Die1, roll.Die2)
		}
		if roll.Released {
			rec.add(EventReleased, who, 0, "%s left jail", who)
		}
		if roll.PassedStart {
			bonus := g.Rules().PassStartBonus
			rec.add(EventPassedStart, who, bonus, "%s passed start and received %d", who, bonus)
		}
		if roll.Jailed && !wasJailed {
			rec.add(EventJailed, who, 0, "%s was sent to jail", who)
		}

		if sess.AutoSettle {
			return settle(g, res, rec)
		}
		return nil
	})
}

// settle pays rent and resolves cards until nothing is pending, then
// bankrupts the current player if they are in debt.
func settle(g *engine.Game, res *ActionResult, rec *recorder) error {
	for i := 0; i < maxSettleSteps && g.State() == engine.StateInProgress; i++ {
		if g.RentDue() {
			if err := collectRent(g, res, rec, 0); err != nil {
				return err
			}
			continue
		}
		if g.CardDue() {
			if err := resolveCard(g, res, rec); err != nil && !errors.Is(err, engine.ErrDeckExhausted) {
				return err
			}
			continue
		}
		break
	}
	if g.State() != engine.StateInProgress {
		return nil
	}

	p := g.CurrentPlayer()
	balance := p.Balance()
	bankrupt, err := g.DeclareBankruptIfInsufficientFunds()
	if err != nil {
		return err
	}
	if bankrupt {
		res.Bankrupt = true
		rec.add(EventBankrupt, p.Character(), balance, "%s went bankrupt with balance %d", p.Character(), balance)
	}
	return nil
}

func collectRent(g *engine.Game, res *ActionResult, rec *recorder, diceSum int) error {
	p := g.CurrentPlayer()
	space := g.Board().Space(p.Position())
	var owner *engine.Player
	if inst := space.Instrument(); inst != nil {
		owner, _ = g.HolderOf(inst.Name())
	}

	amount, err := g.CollectRent(diceSum)
	if err != nil {
		return err
	}
	res.Amount += amount

	who := p.Character()
	if amount == 0 && space.Tax() == 0 {
		if res.Message == "" {
			res.Message = fmt.Sprintf("%s owes nothing at %s", who, space.Name())
		}
		return nil
	}
	if owner == nil {
		rec.add(EventTaxPaid, who, amount, "%s paid %d at %s", who, amount, space.Name())
		return nil
	}
	rec.add(EventRentPaid, who, amount, "%s paid %d rent to %s for %s", who, amount, owner.Character(), space.Name())
	return nil
}

func resolveCard(g *engine.Game, res *ActionResult, rec *recorder) error {
	p := g.CurrentPlayer()
	who := p.Character()
	kind, _ := g.Board().Space(p.Position()).DeckKind()

	card, err := g.ResolveDrawnCard()
	if err != nil {
		if errors.Is(err, engine.ErrDeckExhausted) {
			rec.add(EventDeckExhausted, who, 0, "the %s deck is empty", kind)
		}
		return err
	}

	res.Cards = append(res.Cards, card)
	rec.add(EventCardResolved, who, card.Delta, "%s drew %q", who, card.Description)
	if card.Jailed {
		rec.add(EventJailed, who, 0, "%s was sent to jail", who)
	}
	return nil
}

// EndTurn passes the dice to the next player
func (s *gameServiceImpl) EndTurn(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "end_turn", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		if err := g.EndTurn(); err != nil {
			return err
		}
		next := g.CurrentPlayer().Character()
		rec.add(EventTurnEnded, who, 0, "%s ended the turn, %s to play", who, next)
		return nil
	})
}

// Purchase buys the title the current player stands on
func (s *gameServiceImpl) Purchase(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "purchase", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		inst, err := g.Purchase()
		if err != nil {
			return err
		}
		res.Amount = inst.Price()
		rec.add(EventPurchased, who, inst.Price(), "%s bought %s for %d", who, inst.Name(), inst.Price())
		return nil
	})
}

// CollectRent settles rent or tax for the current landing
func (s *gameServiceImpl) CollectRent(ctx context.Context, sessionID string, diceSum int) (*ActionResult, error) {
	return s.command(ctx, sessionID, "collect_rent", func(sess *Session, res *ActionResult, rec *recorder) error {
		return collectRent(sess.Game, res, rec, diceSum)
	})
}

// ResolveCard draws and applies the pending card
func (s *gameServiceImpl) ResolveCard(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "resolve_card", func(sess *Session, res *ActionResult, rec *recorder) error {
		return resolveCard(sess.Game, res, rec)
	})
}

// UseLeaveJailCard releases the current player with a held card
func (s *gameServiceImpl) UseLeaveJailCard(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "use_jail_card", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		if err := g.UseLeaveJailCard(); err != nil {
			return err
		}
		rec.add(EventJailCardUsed, who, 0, "%s used a leave-jail card", who)
		return nil
	})
}

// PayBail releases the current player for the bail fine
func (s *gameServiceImpl) PayBail(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "pay_bail", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		if err := g.PayBail(); err != nil {
			return err
		}
		fine := g.Rules().BailFine
		res.Amount = fine
		rec.add(EventBailPaid, who, fine, "%s paid %d bail", who, fine)
		return nil
	})
}

// BuildHouse adds a house to one of the current player's deeds
func (s *gameServiceImpl) BuildHouse(ctx context.Context, sessionID, instrument string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "build_house", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		if err := g.BuildHouse(instrument); err != nil {
			return err
		}
		inst := g.Bank().Instrument(instrument)
		res.Amount = inst.Terms().HouseCost
		rec.add(EventHouseBuilt, who, res.Amount, "%s built house %d on %s", who, inst.Houses(), instrument)
		return nil
	})
}

// BuildHotel replaces four houses with a hotel
func (s *gameServiceImpl) BuildHotel(ctx context.Context, sessionID, instrument string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "build_hotel", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		if err := g.BuildHotel(instrument); err != nil {
			return err
		}
		res.Amount = g.Bank().Instrument(instrument).Terms().HotelCost
		rec.add(EventHotelBuilt, who, res.Amount, "%s built a hotel on %s", who, instrument)
		return nil
	})
}

// SellHouse sells the top building of a deed back to the bank
func (s *gameServiceImpl) SellHouse(ctx context.Context, sessionID, instrument string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "sell_house", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		refund, err := g.SellHouse(instrument)
		if err != nil {
			return err
		}
		res.Amount = refund
		rec.add(EventHouseSold, who, refund, "%s sold a building on %s for %d", who, instrument, refund)
		return nil
	})
}

// Mortgage pledges a title to the bank
func (s *gameServiceImpl) Mortgage(ctx context.Context, sessionID, instrument string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "mortgage", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		value, err := g.Mortgage(instrument)
		if err != nil {
			return err
		}
		res.Amount = value
		rec.add(EventMortgaged, who, value, "%s mortgaged %s for %d", who, instrument, value)
		return nil
	})
}

// Redeem lifts a mortgage
func (s *gameServiceImpl) Redeem(ctx context.Context, sessionID, instrument string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "redeem", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		who := g.CurrentPlayer().Character()
		cost, err := g.Redeem(instrument)
		if err != nil {
			return err
		}
		res.Amount = cost
		rec.add(EventRedeemed, who, cost, "%s redeemed %s for %d", who, instrument, cost)
		return nil
	})
}

// DeclareBankruptcy removes a player. An empty character means the current
// player.
func (s *gameServiceImpl) DeclareBankruptcy(ctx context.Context, sessionID, character string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "declare_bankruptcy", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		if character == "" {
			character = g.CurrentPlayer().Character()
		}
		p, err := g.Player(character)
		if err != nil {
			return err
		}
		balance := p.Balance()
		if err := g.DeclareBankruptcy(character); err != nil {
			return err
		}
		res.Bankrupt = true
		rec.add(EventBankrupt, character, balance, "%s declared bankruptcy with balance %d", character, balance)
		return nil
	})
}

func tradeParty(g *engine.Game, side engine.TradeSide) string {
	t := g.Trade()
	if t == nil {
		return ""
	}
	if side == engine.SideDestination {
		return t.Destination().Character()
	}
	return t.Origin().Character()
}

// ProposeTrade opens a negotiation between two players
func (s *gameServiceImpl) ProposeTrade(ctx context.Context, sessionID, origin, destination string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "propose_trade", func(sess *Session, res *ActionResult, rec *recorder) error {
		if _, err := sess.Game.ProposeTrade(origin, destination); err != nil {
			return err
		}
		rec.add(EventTradeProposed, origin, 0, "%s proposed a trade to %s", origin, destination)
		return nil
	})
}

// SetOffer replaces one side's offer
func (s *gameServiceImpl) SetOffer(ctx context.Context, sessionID, side string, offer engine.Offer) (*ActionResult, error) {
	return s.command(ctx, sessionID, "set_offer", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		ts := engine.TradeSide(side)
		if err := g.SetOffer(ts, offer); err != nil {
			return err
		}
		who := tradeParty(g, ts)
		rec.add(EventTradeOffer, who, offer.Cash, "%s offers %d, %d titles and %d leave-jail cards",
			who, offer.Cash, len(offer.Properties), offer.LeaveJailCards)
		return nil
	})
}

// ResetOffer clears one side's offer
func (s *gameServiceImpl) ResetOffer(ctx context.Context, sessionID, side string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "reset_offer", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		ts := engine.TradeSide(side)
		if err := g.ResetOffer(ts); err != nil {
			return err
		}
		who := tradeParty(g, ts)
		rec.add(EventTradeOffer, who, 0, "%s withdrew their offer", who)
		return nil
	})
}

// AcceptTrade marks one side as agreeing to the current offers
func (s *gameServiceImpl) AcceptTrade(ctx context.Context, sessionID, side string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "accept_trade", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		ts := engine.TradeSide(side)
		both, err := g.AcceptTrade(ts)
		if err != nil {
			return err
		}
		res.Accepted = both
		who := tradeParty(g, ts)
		rec.add(EventTradeAccepted, who, 0, "%s accepted the trade", who)
		return nil
	})
}

// ExecuteTrade swaps the accepted offers
func (s *gameServiceImpl) ExecuteTrade(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "execute_trade", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		origin, destination := tradeParty(g, engine.SideOrigin), tradeParty(g, engine.SideDestination)
		if err := g.ExecuteTrade(); err != nil {
			return err
		}
		rec.add(EventTradeExecuted, origin, 0, "%s and %s completed a trade", origin, destination)
		return nil
	})
}

// CancelTrade abandons the negotiation
func (s *gameServiceImpl) CancelTrade(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.command(ctx, sessionID, "cancel_trade", func(sess *Session, res *ActionResult, rec *recorder) error {
		g := sess.Game
		origin := tradeParty(g, engine.SideOrigin)
		if err := g.CancelTrade(); err != nil {
			return err
		}
		rec.add(EventTradeCancelled, origin, 0, "trade cancelled")
		return nil
	})
}

// GetGameState returns the current snapshot
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, _, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	snapshot := sess.Game.Export()
	return &snapshot, nil
}

// GetDecisions returns the bot helpers for the current player
func (s *gameServiceImpl) GetDecisions(ctx context.Context, sessionID string) (*engine.Decisions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, _, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	decisions := sess.Game.Decisions()
	return &decisions, nil
}

// GetEvents returns a page of the session event log
func (s *gameServiceImpl) GetEvents(ctx context.Context, sessionID string, opts HistoryOptions) (*EventsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, _, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Events
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	events := []GameEvent{}
	if start < total {
		if opts.Order == "desc" {
			// most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				events = append(events, history[i])
			}
		} else {
			events = append(events, history[start:end]...)
		}
	}

	return &EventsResponse{
		Events:      events,
		TotalEvents: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListRules returns the available rule sets
func (s *gameServiceImpl) ListRules(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListRules()
}

// LoadRules returns one rule set
func (s *gameServiceImpl) LoadRules(ctx context.Context, name string) (*engine.Rules, error) {
	return s.configs.LoadRules(name)
}

// SaveRules stores a rule set under name
func (s *gameServiceImpl) SaveRules(ctx context.Context, name string, rules *engine.Rules) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: rule set id is required", ErrInvalidRequest)
	}
	return s.configs.SaveRules(name, rules)
}
