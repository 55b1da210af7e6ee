package engine

// JailOptions lists the ways the current player can leave jail.
type JailOptions struct {
	Jailed       bool `json:"jailed"`
	CanPayBail   bool `json:"can_pay_bail"`
	BailFine     int  `json:"bail_fine"`
	HasCard      bool `json:"has_card"`
	Attempts     int  `json:"attempts"`
	AttemptsLeft int  `json:"attempts_left"`
}

// Decisions is the read-only view a bot polls between commands.
type Decisions struct {
	Character             string      `json:"character"`
	CanRoll               bool        `json:"can_roll"`
	CanEndTurn            bool        `json:"can_end_turn"`
	RentDue               bool        `json:"rent_due"`
	CardDue               bool        `json:"card_due"`
	Purchasable           bool        `json:"purchasable"`
	Price                 int         `json:"price,omitempty"`
	CanAffordCurrentSpace bool        `json:"can_afford_current_space"`
	Buildable             []string    `json:"buildable"`
	Jail                  JailOptions `json:"jail"`
}

// CanAffordCurrentSpace reports whether the current player stands on a title
// the bank still holds and has the balance to buy it.
func (g *Game) CanAffordCurrentSpace() bool {
	price, ok := g.purchasePrice()
	return ok && g.CurrentPlayer().Balance() >= price
}

func (g *Game) purchasePrice() (int, bool) {
	space := g.board.Space(g.CurrentPlayer().Position())
	if !space.Ownable() {
		return 0, false
	}
	holder, err := g.bank.HolderOf(space.Instrument().Name())
	if err != nil || holder != BankHolder {
		return 0, false
	}
	return space.Instrument().Price(), true
}

// JailOptions describes the current player's way out of jail
func (g *Game) JailOptions() JailOptions {
	p := g.CurrentPlayer()
	if !p.Jailed() {
		return JailOptions{BailFine: g.rules.BailFine}
	}
	left := g.rules.MaxJailAttempts - p.Attempts()
	if left < 0 {
		left = 0
	}
	return JailOptions{
		Jailed:       true,
		CanPayBail:   p.Balance() >= g.rules.BailFine,
		BailFine:     g.rules.BailFine,
		HasCard:      p.LeaveJailCards() > 0,
		Attempts:     p.Attempts(),
		AttemptsLeft: left,
	}
}

// Buildable lists the current player's deeds that can take another house
// or a hotel right now.
func (g *Game) Buildable() []string {
	p := g.CurrentPlayer()
	var names []string
	for _, inst := range p.Holdings() {
		if inst.Kind() != KindDeed || g.checkBuildable(p, inst) != nil {
			continue
		}
		if inst.CanAddHouse() || inst.CanAddHotel() {
			names = append(names, inst.Name())
		}
	}
	return names
}

// Decisions gathers every helper for the current player
func (g *Game) Decisions() Decisions {
	price, purchasable := g.purchasePrice()
	pending := g.rentDue || g.cardDue
	return Decisions{
		Character:             g.CurrentPlayer().Character(),
		CanRoll:               g.state == StateInProgress && (!g.diceRolled || g.doublesStreak > 0) && !pending,
		CanEndTurn:            g.state == StateInProgress && g.diceRolled && g.doublesStreak == 0 && !pending,
		RentDue:               g.rentDue,
		CardDue:               g.cardDue,
		Purchasable:           purchasable,
		Price:                 price,
		CanAffordCurrentSpace: g.CanAffordCurrentSpace(),
		Buildable:             g.Buildable(),
		Jail:                  g.JailOptions(),
	}
}
