package engine

import (
	"fmt"
	"strings"
)

// PlayerSpec is the seat description used to create a game.
type PlayerSpec struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

// Player is one seat's ledger: balance, position, jail state and holdings.
// Balances may go negative; the engine does not floor them.
type Player struct {
	name      string
	character string
	balance   int
	position  int

	jailed      bool
	turnsInJail int
	attempts    int

	holdings  map[string]*Instrument
	order     []string
	jailCards []*EventCard
	bankrupt  bool
}

// NewPlayer creates a player at the start space
func NewPlayer(name, character string, balance int) (*Player, error) {
	name = strings.TrimSpace(name)
	character = strings.TrimSpace(character)
	if name == "" || character == "" {
		return nil, fmt.Errorf("%w: name and character are required", ErrInvalidPlayer)
	}
	return &Player{
		name:      name,
		character: character,
		balance:   balance,
		position:  StartPosition,
		holdings:  make(map[string]*Instrument),
	}, nil
}

func (p *Player) Name() string { return p.name }
func (p *Player) Character() string { return p.character }
func (p *Player) Balance() int { return p.balance }
func (p *Player) Position() int { return p.position }
func (p *Player) Jailed() bool { return p.jailed }
func (p *Player) TurnsInJail() int { return p.turnsInJail }
func (p *Player) Attempts() int { return p.attempts }
func (p *Player) Bankrupt() bool { return p.bankrupt }

// MoveBy advances the player and credits bonus when the move wraps past the
// start space. It reports whether the start was passed.
func (p *Player) MoveBy(steps, bonus int) bool {
	old := p.position
	p.position = wrap(old + steps)
	if steps > 0 && p.position < old {
		p.balance += bonus
		return true
	}
	return false
}

// MoveTo walks forward to position, crediting bonus if the start is passed.
func (p *Player) MoveTo(position, bonus int) bool {
	position = wrap(position)
	steps := position - p.position
	if steps < 0 {
		steps += BoardSize
	}
	return p.MoveBy(steps, bonus)
}

// MoveBack moves backwards without any bonus
func (p *Player) MoveBack(steps int) {
	p.position = wrap(p.position - steps)
}

// Pay debits amount unconditionally
func (p *Player) Pay(amount int) {
	p.balance -= amount
}

// Receive credits amount unconditionally
func (p *Player) Receive(amount int) {
	p.balance += amount
}

// SendToJail moves the player to the jail space and zeroes the jail counters.
func (p *Player) SendToJail() {
	p.position = JailPosition
	p.jailed = true
	p.turnsInJail = 0
	p.attempts = 0
}

// AttemptLeaveJail counts one roll attempt and returns the new total. The
// caller decides the outcome from the dice.
func (p *Player) AttemptLeaveJail() int {
	p.attempts++
	return p.attempts
}

// LeaveJail clears the jail flag and counters
func (p *Player) LeaveJail() {
	p.jailed = false
	p.turnsInJail = 0
	p.attempts = 0
}

// PayBailAndLeave debits the fine and releases the player
func (p *Player) PayBailAndLeave(fine int) {
	p.Pay(fine)
	p.LeaveJail()
}

func (p *Player) serveTurnInJail() {
	if p.jailed {
		p.turnsInJail++
	}
}

// Owns reports whether the player holds the named instrument
func (p *Player) Owns(name string) bool {
	_, ok := p.holdings[name]
	return ok
}

// Holdings returns the held instruments in acquisition order
func (p *Player) Holdings() []*Instrument {
	result := make([]*Instrument, 0, len(p.order))
	for _, name := range p.order {
		result = append(result, p.holdings[name])
	}
	return result
}

func (p *Player) addInstrument(inst *Instrument) {
	if _, ok := p.holdings[inst.Name()]; ok {
		return
	}
	p.holdings[inst.Name()] = inst
	p.order = append(p.order, inst.Name())
}

func (p *Player) removeInstrument(name string) error {
	if _, ok := p.holdings[name]; !ok {
		return fmt.Errorf("%w: %s does not hold %s", ErrNotOwner, p.character, name)
	}
	delete(p.holdings, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return nil
}

// GroupCount returns how many deeds of a color group the player holds
func (p *Player) GroupCount(group string) int {
	count := 0
	for _, inst := range p.holdings {
		if inst.Kind() == KindDeed && inst.Group() == group {
			count++
		}
	}
	return count
}

// StationCount returns the number of stations held
func (p *Player) StationCount() int {
	return p.countKind(KindStation)
}

// UtilityCount returns the number of utilities held
func (p *Player) UtilityCount() int {
	return p.countKind(KindUtility)
}

func (p *Player) countKind(kind InstrumentKind) int {
	count := 0
	for _, inst := range p.holdings {
		if inst.Kind() == kind {
			count++
		}
	}
	return count
}

// LeaveJailCards returns the number of leave-jail cards held
func (p *Player) LeaveJailCards() int {
	return len(p.jailCards)
}

func (p *Player) grantLeaveJailCard(card *EventCard) {
	p.jailCards = append(p.jailCards, card)
}

// takeLeaveJailCard removes the oldest held card so it can go back to its deck.
func (p *Player) takeLeaveJailCard() (*EventCard, error) {
	if len(p.jailCards) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoLeaveJailCard, p.character)
	}
	card := p.jailCards[0]
	p.jailCards = p.jailCards[1:]
	return card, nil
}

// TotalHouses counts houses across all held deeds
func (p *Player) TotalHouses() int {
	total := 0
	for _, inst := range p.holdings {
		total += inst.Houses()
	}
	return total
}

// TotalHotels counts hotels across all held deeds
func (p *Player) TotalHotels() int {
	total := 0
	for _, inst := range p.holdings {
		total += inst.Hotel()
	}
	return total
}

// NetWorth is balance plus the purchase price of unmortgaged holdings, their
// mortgage value otherwise, plus the build cost of improvements.
func (p *Player) NetWorth() int {
	worth := p.balance
	for _, inst := range p.holdings {
		if inst.Mortgaged() {
			worth += inst.MortgageValue()
		} else {
			worth += inst.Price()
		}
		if terms := inst.Terms(); terms != nil {
			worth += inst.Houses()*terms.HouseCost + inst.Hotel()*(terms.HotelCost+MaxHouses*terms.HouseCost)
		}
	}
	return worth
}
