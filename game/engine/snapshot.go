package engine

// InstrumentSnapshot is the serializable view of an Instrument
type InstrumentSnapshot struct {
	Name          string         `json:"name"`
	Kind          InstrumentKind `json:"kind"`
	Price         int            `json:"price"`
	MortgageValue int            `json:"mortgage_value"`
	Mortgaged     bool           `json:"mortgaged"`
	Holder        string         `json:"holder,omitempty"`
	Group         string         `json:"group,omitempty"`
	RentTable     []int          `json:"rent_table,omitempty"`
	HouseCost     int            `json:"house_cost,omitempty"`
	HotelCost     int            `json:"hotel_cost,omitempty"`
	Houses        int            `json:"houses"`
	Hotel         int            `json:"hotel"`
}

// SpaceSnapshot is the serializable view of a Space
type SpaceSnapshot struct {
	Name       string              `json:"name"`
	Position   int                 `json:"position"`
	Type       SpaceKind           `json:"type"`
	Tax        int                 `json:"tax,omitempty"`
	Instrument *InstrumentSnapshot `json:"instrument,omitempty"`
}

// PlayerSnapshot is the serializable view of a Player
type PlayerSnapshot struct {
	Name           string   `json:"name"`
	Character      string   `json:"character"`
	Position       int      `json:"position"`
	Balance        int      `json:"balance"`
	Jailed         bool     `json:"jailed"`
	TurnsInJail    int      `json:"turns_in_jail"`
	Attempts       int      `json:"attempts"`
	Holdings       []string `json:"holdings"`
	LeaveJailCards int      `json:"leave_jail_cards"`
	Bankrupt       bool     `json:"bankrupt"`
	NetWorth       int      `json:"net_worth"`
}

// BankSnapshot lists every instrument with its holder
type BankSnapshot struct {
	Instruments []InstrumentSnapshot `json:"instruments"`
}

// TradeSnapshot is the serializable view of a negotiation
type TradeSnapshot struct {
	Origin              string `json:"origin"`
	Destination         string `json:"destination"`
	OriginOffer         Offer  `json:"origin_offer"`
	DestinationOffer    Offer  `json:"destination_offer"`
	OriginAccepted      bool   `json:"origin_accepted"`
	DestinationAccepted bool   `json:"destination_accepted"`
}

// GameSnapshot is the full read model handed to renderers and drivers.
type GameSnapshot struct {
	Players            []PlayerSnapshot `json:"players"`
	State              State            `json:"state"`
	WinningCharacter   string           `json:"winning_character,omitempty"`
	CurrentPlayerIndex int              `json:"current_player_index"`
	Board              []SpaceSnapshot  `json:"board"`
	Bank               BankSnapshot     `json:"bank"`
	DoublesStreak      int              `json:"doubles_streak"`
	DiceRolledThisTurn bool             `json:"dice_rolled_this_turn"`
	LastDice           [2]int           `json:"last_dice"`
	RentDue            bool             `json:"rent_due"`
	CardDue            bool             `json:"card_due"`
	ChanceRemaining    int              `json:"chance_remaining"`
	ChestRemaining     int              `json:"chest_remaining"`
	Trade              *TradeSnapshot   `json:"trade,omitempty"`
}

// Export returns a copy of the instrument's state
func (i *Instrument) Export() InstrumentSnapshot {
	s := InstrumentSnapshot{
		Name:          i.name,
		Kind:          i.kind,
		Price:         i.price,
		MortgageValue: i.mortgageValue,
		Mortgaged:     i.mortgaged,
		Houses:        i.houses,
		Hotel:         i.hotel,
	}
	if i.terms != nil {
		s.Group = i.terms.Group
		s.RentTable = append([]int(nil), i.terms.Rents...)
		s.HouseCost = i.terms.HouseCost
		s.HotelCost = i.terms.HotelCost
	}
	return s
}

// Export returns a copy of the space and its instrument
func (s *Space) Export() SpaceSnapshot {
	snap := SpaceSnapshot{Name: s.name, Position: s.position, Type: s.kind, Tax: s.tax}
	if s.instrument != nil {
		inst := s.instrument.Export()
		snap.Instrument = &inst
	}
	return snap
}

// Export returns a copy of the player's ledger
func (p *Player) Export() PlayerSnapshot {
	holdings := make([]string, len(p.order))
	copy(holdings, p.order)
	return PlayerSnapshot{
		Name:           p.name,
		Character:      p.character,
		Position:       p.position,
		Balance:        p.balance,
		Jailed:         p.jailed,
		TurnsInJail:    p.turnsInJail,
		Attempts:       p.attempts,
		Holdings:       holdings,
		LeaveJailCards: len(p.jailCards),
		Bankrupt:       p.bankrupt,
		NetWorth:       p.NetWorth(),
	}
}

// Export returns every instrument in board order with its holder
func (b *Bank) Export() BankSnapshot {
	instruments := make([]InstrumentSnapshot, 0, len(b.order))
	for _, name := range b.order {
		s := b.instruments[name].Export()
		s.Holder = string(b.holders[name])
		instruments = append(instruments, s)
	}
	return BankSnapshot{Instruments: instruments}
}

// Export returns a copy of the whole game. Calling it twice without a
// mutation in between yields equal snapshots.
func (g *Game) Export() GameSnapshot {
	players := make([]PlayerSnapshot, 0, len(g.players))
	for _, p := range g.players {
		players = append(players, p.Export())
	}
	board := make([]SpaceSnapshot, 0, BoardSize)
	for _, s := range g.board.spaces {
		snap := s.Export()
		if snap.Instrument != nil {
			snap.Instrument.Holder = string(g.bank.holders[s.instrument.name])
		}
		board = append(board, snap)
	}
	snap := GameSnapshot{
		Players:            players,
		State:              g.state,
		WinningCharacter:   g.winner,
		CurrentPlayerIndex: g.current,
		Board:              board,
		Bank:               g.bank.Export(),
		DoublesStreak:      g.doublesStreak,
		DiceRolledThisTurn: g.diceRolled,
		LastDice:           g.lastDice,
		RentDue:            g.rentDue,
		CardDue:            g.cardDue,
		ChanceRemaining:    g.deck.Len(DeckChance),
		ChestRemaining:     g.deck.Len(DeckChest),
	}
	if t := g.trade; t != nil {
		snap.Trade = &TradeSnapshot{
			Origin:              t.origin.character,
			Destination:         t.destination.character,
			OriginOffer:         t.Offer(SideOrigin),
			DestinationOffer:    t.Offer(SideDestination),
			OriginAccepted:      t.accepted[SideOrigin],
			DestinationAccepted: t.accepted[SideDestination],
		}
	}
	return snap
}
