package engine

import "fmt"

// CollectRent settles the tax or rent owed for the space the current player
// landed on and returns the amount charged. diceSum is used for utilities;
// zero falls back to the last roll. An unowned title, the player's own title
// or a landing already settled costs nothing.
func (g *Game) CollectRent(diceSum int) (int, error) {
	if err := g.checkInProgress(); err != nil {
		return 0, err
	}
	if !g.rentDue {
		return 0, nil
	}
	p := g.CurrentPlayer()
	space := g.board.Space(p.Position())
	multiplier := g.rentMultiplier
	g.rentDue = false
	g.rentMultiplier = 0

	switch space.Kind() {
	case SpaceTax:
		p.Pay(space.Tax())
		g.logger.Debug().Str("player", p.Character()).Str("space", space.Name()).Int("amount", space.Tax()).Msg("tax paid")
		return space.Tax(), nil
	case SpaceProperty, SpaceStation, SpaceUtility:
		inst := space.Instrument()
		owner, err := g.HolderOf(inst.Name())
		if err != nil {
			return 0, err
		}
		if owner == nil || owner == p {
			return 0, nil
		}
		if diceSum <= 0 {
			diceSum = g.lastDice[0] + g.lastDice[1]
		}
		amount := g.rentFor(inst, owner, diceSum, multiplier)
		p.Pay(amount)
		owner.Receive(amount)
		g.logger.Debug().Str("player", p.Character()).Str("owner", owner.Character()).
			Str("space", space.Name()).Int("amount", amount).Msg("rent paid")
		return amount, nil
	}
	return 0, nil
}

// rentFor is the only place the game asks the rent functions for a price.
func (g *Game) rentFor(inst *Instrument, owner *Player, diceSum, multiplier int) int {
	ctx := RentContext{
		StationsOwned:  owner.StationCount(),
		UtilitiesOwned: owner.UtilityCount(),
		DiceSum:        diceSum,
		Multiplier:     multiplier,
	}
	if inst.Kind() == KindDeed {
		ctx.OwnsGroup = g.ownsGroup(owner, inst.Group())
	}
	return Rent(inst, &g.rules, ctx)
}

// QuoteRent returns what the current player would owe on the named instrument
// for a dice sum, without charging anything.
func (g *Game) QuoteRent(name string, diceSum int) (int, error) {
	inst := g.bank.Instrument(name)
	if inst == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownInstrument, name)
	}
	owner, err := g.HolderOf(name)
	if err != nil {
		return 0, err
	}
	if owner == nil || owner == g.CurrentPlayer() {
		return 0, nil
	}
	return g.rentFor(inst, owner, diceSum, 0), nil
}

// Purchase buys the instrument on the current player's space from the bank.
// The debit is unconditional unless Rules.EnforceFunds is set.
func (g *Game) Purchase() (*Instrument, error) {
	if err := g.checkInProgress(); err != nil {
		return nil, err
	}
	p := g.CurrentPlayer()
	space := g.board.Space(p.Position())
	if !space.Ownable() {
		return nil, fmt.Errorf("%w: %s", ErrNotOwnable, space.Name())
	}
	inst := space.Instrument()
	if g.rules.EnforceFunds && p.Balance() < inst.Price() {
		return nil, fmt.Errorf("%w: %s costs %d, balance %d", ErrInsufficientFunds, inst.Name(), inst.Price(), p.Balance())
	}
	if err := g.transfer(inst.Name(), BankHolder, holderOf(p)); err != nil {
		return nil, err
	}
	p.Pay(inst.Price())
	g.logger.Info().Str("player", p.Character()).Str("instrument", inst.Name()).Int("price", inst.Price()).Msg("purchased")
	return inst, nil
}

// CardResult describes a resolved card and where it left the player.
type CardResult struct {
	Description string     `json:"description"`
	Deck        DeckKind   `json:"deck"`
	Action      CardAction `json:"action"`
	Delta       int        `json:"delta"`
	Kept        bool       `json:"kept"`
	Position    int        `json:"position"`
	Space       string     `json:"space"`
	Jailed      bool       `json:"jailed"`
}

// ResolveDrawnCard draws from the deck of the current space and applies the
// card. A card that moves the player resolves the new landing the same way
// a roll does. An exhausted deck returns ErrDeckExhausted and clears the draw.
func (g *Game) ResolveDrawnCard() (CardResult, error) {
	if err := g.checkInProgress(); err != nil {
		return CardResult{}, err
	}
	p := g.CurrentPlayer()
	space := g.board.Space(p.Position())
	kind, ok := space.DeckKind()
	if !ok {
		return CardResult{}, fmt.Errorf("%w: %s", ErrNotDrawSpace, space.Name())
	}
	if !g.cardDue {
		return CardResult{}, ErrNothingToSettle
	}
	g.cardDue = false

	card, err := g.deck.Draw(kind)
	if err != nil {
		g.logger.Warn().Str("deck", string(kind)).Err(err).Msg("card draw failed")
		return CardResult{}, err
	}

	effect := Resolve(card, p, g.activePlayers(), &g.rules)
	g.applyEffect(p, effect)
	if !effect.Keep {
		g.deck.Return(card)
	}

	return CardResult{
		Description: card.Description(),
		Deck:        card.Deck(),
		Action:      card.Action(),
		Delta:       effect.Delta,
		Kept:        effect.Keep,
		Position:    p.Position(),
		Space:       g.board.Space(p.Position()).Name(),
		Jailed:      p.Jailed(),
	}, nil
}

func (g *Game) applyEffect(p *Player, e Effect) {
	switch {
	case e.Delta > 0:
		p.Receive(e.Delta)
	case e.Delta < 0:
		p.Pay(-e.Delta)
	}
	if e.OpponentCredit > 0 {
		for _, other := range g.players {
			if other != p && !other.bankrupt {
				other.Receive(e.OpponentCredit)
			}
		}
	}
	if e.Duplicate {
		g.logger.Warn().Str("player", p.Character()).Msg("already holds a leave-jail card, card ignored")
	}
	if e.GrantCard {
		p.grantLeaveJailCard(e.Card)
	}

	switch {
	case e.GoToJail:
		g.jail(p)
	case e.ToStart:
		p.MoveTo(StartPosition, 0)
		g.land(p, 0)
	case e.Destination != "":
		if dest, ok := g.board.SpaceByName(e.Destination); ok {
			p.MoveTo(dest.Position(), g.rules.PassStartBonus)
			g.land(p, 0)
		}
	case e.Nearest != "":
		if dest, ok := g.board.Nearest(e.Nearest, p.Position()); ok {
			p.MoveTo(dest.Position(), g.rules.PassStartBonus)
			g.land(p, e.Multiplier)
		}
	case e.StepsBack > 0:
		p.MoveBack(e.StepsBack)
		g.land(p, 0)
	}
}

// UseLeaveJailCard frees the current player with a held card, which goes
// back to the bottom of its deck.
func (g *Game) UseLeaveJailCard() error {
	if err := g.checkInProgress(); err != nil {
		return err
	}
	p := g.CurrentPlayer()
	if !p.Jailed() {
		return fmt.Errorf("%w: %s", ErrNotJailed, p.Character())
	}
	card, err := p.takeLeaveJailCard()
	if err != nil {
		return err
	}
	p.LeaveJail()
	g.deck.Return(card)
	g.logger.Debug().Str("player", p.Character()).Msg("left jail with card")
	return nil
}

// PayBail frees the current player for the bail fine
func (g *Game) PayBail() error {
	if err := g.checkInProgress(); err != nil {
		return err
	}
	p := g.CurrentPlayer()
	if !p.Jailed() {
		return fmt.Errorf("%w: %s", ErrNotJailed, p.Character())
	}
	if g.rules.EnforceFunds && p.Balance() < g.rules.BailFine {
		return fmt.Errorf("%w: bail is %d, balance %d", ErrInsufficientFunds, g.rules.BailFine, p.Balance())
	}
	p.PayBailAndLeave(g.rules.BailFine)
	g.logger.Debug().Str("player", p.Character()).Int("fine", g.rules.BailFine).Msg("paid bail")
	return nil
}
