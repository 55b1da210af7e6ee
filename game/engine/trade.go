package engine

import "fmt"

// TradeSide names one party of a trade
type TradeSide string

const (
	SideOrigin      TradeSide = "origin"
	SideDestination TradeSide = "destination"
)

// Offer is what one side puts on the table.
type Offer struct {
	Cash           int      `json:"cash"`
	Properties     []string `json:"properties"`
	LeaveJailCards int      `json:"leave_jail_cards"`
}

func (o Offer) clone() Offer {
	props := make([]string, len(o.Properties))
	copy(props, o.Properties)
	o.Properties = props
	return o
}

// Trade is a two-sided negotiation between players. Changing either offer
// withdraws both acceptances.
type Trade struct {
	origin      *Player
	destination *Player
	offers      map[TradeSide]Offer
	accepted    map[TradeSide]bool
}

func (t *Trade) Origin() *Player { return t.origin }
func (t *Trade) Destination() *Player { return t.destination }

// Offer returns a copy of one side's offer
func (t *Trade) Offer(side TradeSide) Offer {
	return t.offers[side].clone()
}

// Accepted reports whether a side has accepted the current offers
func (t *Trade) Accepted(side TradeSide) bool {
	return t.accepted[side]
}

func (t *Trade) party(side TradeSide) (*Player, error) {
	switch side {
	case SideOrigin:
		return t.origin, nil
	case SideDestination:
		return t.destination, nil
	}
	return nil, fmt.Errorf("%w: unknown side %q", ErrInvalidTrade, side)
}

func (t *Trade) resetAcceptance() {
	t.accepted[SideOrigin] = false
	t.accepted[SideDestination] = false
}

// Trade returns the negotiation in progress, or nil
func (g *Game) Trade() *Trade {
	return g.trade
}

// ProposeTrade opens a negotiation between two players with empty offers.
func (g *Game) ProposeTrade(origin, destination string) (*Trade, error) {
	if err := g.checkInProgress(); err != nil {
		return nil, err
	}
	if g.trade != nil {
		return nil, fmt.Errorf("%w: a trade is already in progress", ErrInvalidTrade)
	}
	from, err := g.Player(origin)
	if err != nil {
		return nil, err
	}
	to, err := g.Player(destination)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: %s cannot trade with themselves", ErrInvalidTrade, origin)
	}
	if from.bankrupt || to.bankrupt {
		return nil, fmt.Errorf("%w: bankrupt players cannot trade", ErrPlayerBankrupt)
	}
	g.trade = &Trade{
		origin:      from,
		destination: to,
		offers:      map[TradeSide]Offer{SideOrigin: {}, SideDestination: {}},
		accepted:    map[TradeSide]bool{},
	}
	return g.trade, nil
}

// SetOffer replaces one side's offer after checking the offering player can
// deliver it.
func (g *Game) SetOffer(side TradeSide, offer Offer) error {
	t, p, err := g.tradeParty(side)
	if err != nil {
		return err
	}
	if err := g.validateOffer(p, offer); err != nil {
		return err
	}
	t.offers[side] = offer.clone()
	t.resetAcceptance()
	return nil
}

// ResetOffer empties one side's offer
func (g *Game) ResetOffer(side TradeSide) error {
	t, _, err := g.tradeParty(side)
	if err != nil {
		return err
	}
	t.offers[side] = Offer{}
	t.resetAcceptance()
	return nil
}

// AcceptTrade marks one side as accepting the current offers. It reports
// whether both sides have now accepted.
func (g *Game) AcceptTrade(side TradeSide) (bool, error) {
	t, _, err := g.tradeParty(side)
	if err != nil {
		return false, err
	}
	if err := g.validateTrade(t); err != nil {
		return false, err
	}
	t.accepted[side] = true
	return t.accepted[SideOrigin] && t.accepted[SideDestination], nil
}

// ExecuteTrade applies both offers once both sides accepted. Offers are
// validated again first; no transfer happens unless both are still valid.
func (g *Game) ExecuteTrade() error {
	if err := g.checkInProgress(); err != nil {
		return err
	}
	t := g.trade
	if t == nil {
		return ErrNoTrade
	}
	if !t.accepted[SideOrigin] || !t.accepted[SideDestination] {
		return fmt.Errorf("%w: both sides must accept", ErrInvalidTrade)
	}
	if err := g.validateTrade(t); err != nil {
		t.resetAcceptance()
		return err
	}

	give := t.offers[SideOrigin]
	take := t.offers[SideDestination]
	from, to := t.origin, t.destination

	from.Pay(give.Cash)
	to.Receive(give.Cash)
	to.Pay(take.Cash)
	from.Receive(take.Cash)
	for _, name := range give.Properties {
		if err := g.transfer(name, holderOf(from), holderOf(to)); err != nil {
			return err
		}
	}
	for _, name := range take.Properties {
		if err := g.transfer(name, holderOf(to), holderOf(from)); err != nil {
			return err
		}
	}
	moveJailCards(from, to, give.LeaveJailCards)
	moveJailCards(to, from, take.LeaveJailCards)

	g.trade = nil
	g.logger.Info().Str("origin", from.Character()).Str("destination", to.Character()).Msg("trade executed")
	return nil
}

// CancelTrade drops the negotiation in progress
func (g *Game) CancelTrade() error {
	if g.trade == nil {
		return ErrNoTrade
	}
	g.trade = nil
	return nil
}

func (g *Game) tradeParty(side TradeSide) (*Trade, *Player, error) {
	if err := g.checkInProgress(); err != nil {
		return nil, nil, err
	}
	if g.trade == nil {
		return nil, nil, ErrNoTrade
	}
	p, err := g.trade.party(side)
	if err != nil {
		return nil, nil, err
	}
	return g.trade, p, nil
}

func (g *Game) validateTrade(t *Trade) error {
	if err := g.validateOffer(t.origin, t.offers[SideOrigin]); err != nil {
		return err
	}
	return g.validateOffer(t.destination, t.offers[SideDestination])
}

func (g *Game) validateOffer(p *Player, offer Offer) error {
	if offer.Cash < 0 {
		return fmt.Errorf("%w: cash cannot be negative", ErrInvalidTrade)
	}
	if offer.Cash > p.Balance() {
		return fmt.Errorf("%w: %s offers %d with balance %d", ErrInvalidTrade, p.Character(), offer.Cash, p.Balance())
	}
	if offer.LeaveJailCards < 0 || offer.LeaveJailCards > p.LeaveJailCards() {
		return fmt.Errorf("%w: %s holds %d leave-jail cards", ErrInvalidTrade, p.Character(), p.LeaveJailCards())
	}
	seen := make(map[string]bool, len(offer.Properties))
	for _, name := range offer.Properties {
		if seen[name] {
			return fmt.Errorf("%w: %s listed twice", ErrInvalidTrade, name)
		}
		seen[name] = true
		inst := g.bank.Instrument(name)
		if inst == nil {
			return fmt.Errorf("%w: %s", ErrUnknownInstrument, name)
		}
		if !p.Owns(name) {
			return fmt.Errorf("%w: %s does not hold %s", ErrInvalidTrade, p.Character(), name)
		}
		if inst.Improved() {
			return fmt.Errorf("%w: %s carries buildings", ErrInvalidTrade, name)
		}
	}
	return nil
}

func moveJailCards(from, to *Player, n int) {
	for i := 0; i < n; i++ {
		card, err := from.takeLeaveJailCard()
		if err != nil {
			return
		}
		to.grantLeaveJailCard(card)
	}
}
