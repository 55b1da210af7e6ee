package engine

import "fmt"

// DeckKind names one of the two card stacks
type DeckKind string

const (
	DeckChance DeckKind = "chance"
	DeckChest  DeckKind = "chest"
)

// CardAction tags what a card does when resolved
type CardAction string

const (
	ActionGrantMoney              CardAction = "grant_money"
	ActionChargeMoney             CardAction = "charge_money"
	ActionChargeAllOpponents      CardAction = "charge_all_opponents"
	ActionChargePerBuilding       CardAction = "charge_per_building"
	ActionGoToJail                CardAction = "go_to_jail"
	ActionAdvanceTo               CardAction = "advance_to"
	ActionAdvanceToNearestStation CardAction = "advance_to_nearest_station"
	ActionAdvanceToNearestUtility CardAction = "advance_to_nearest_utility"
	ActionMoveBack                CardAction = "move_back"
	ActionGrantLeaveJailCard      CardAction = "grant_leave_jail_card"
	ActionAdvanceToStart          CardAction = "advance_to_start"
)

// CardParams holds the action-specific parameters. Only the fields the
// action needs are read.
type CardParams struct {
	Amount      int    `json:"amount,omitempty"`
	Destination string `json:"destination,omitempty"`
	HouseFee    int    `json:"house_fee,omitempty"`
	HotelFee    int    `json:"hotel_fee,omitempty"`
	Steps       int    `json:"steps,omitempty"`
	Multiplier  int    `json:"multiplier,omitempty"`
}

// EventCard is an immutable chance or chest card.
type EventCard struct {
	description string
	deck        DeckKind
	action      CardAction
	params      CardParams
}

// NewEventCard validates the parameters required by the action
func NewEventCard(deck DeckKind, action CardAction, description string, params CardParams) (*EventCard, error) {
	if deck != DeckChance && deck != DeckChest {
		return nil, fmt.Errorf("%w: unknown deck %q", ErrInvalidCard, deck)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidCard)
	}
	switch action {
	case ActionGrantMoney, ActionChargeMoney, ActionChargeAllOpponents:
		if params.Amount <= 0 {
			return nil, fmt.Errorf("%w: %s requires a positive amount", ErrInvalidCard, action)
		}
	case ActionChargePerBuilding:
		if params.HouseFee < 0 || params.HotelFee < 0 || params.HouseFee+params.HotelFee == 0 {
			return nil, fmt.Errorf("%w: %s requires house or hotel fees", ErrInvalidCard, action)
		}
	case ActionAdvanceTo:
		if params.Destination == "" {
			return nil, fmt.Errorf("%w: %s requires a destination", ErrInvalidCard, action)
		}
	case ActionAdvanceToNearestStation, ActionAdvanceToNearestUtility:
		if params.Multiplier < 0 {
			return nil, fmt.Errorf("%w: %s multiplier cannot be negative", ErrInvalidCard, action)
		}
	case ActionMoveBack:
		if params.Steps <= 0 || params.Steps >= BoardSize {
			return nil, fmt.Errorf("%w: %s requires steps between 1 and %d", ErrInvalidCard, action, BoardSize-1)
		}
	case ActionAdvanceToStart:
		if params.Amount < 0 {
			return nil, fmt.Errorf("%w: %s bonus cannot be negative", ErrInvalidCard, action)
		}
	case ActionGoToJail, ActionGrantLeaveJailCard:
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidCard, action)
	}
	return &EventCard{description: description, deck: deck, action: action, params: params}, nil
}

func (c *EventCard) Description() string { return c.description }
func (c *EventCard) Deck() DeckKind { return c.deck }
func (c *EventCard) Action() CardAction { return c.action }
func (c *EventCard) Params() CardParams { return c.params }

// Effect describes what resolving a card does. Resolve never mutates state;
// the Game applies the effect.
type Effect struct {
	Card *EventCard

	// Delta is added to the drawing player's balance.
	Delta int
	// OpponentCredit is paid to every other active player.
	OpponentCredit int

	// Destination is a space name reached moving forward.
	Destination string
	// Nearest is set for nearest-station and nearest-utility cards.
	Nearest SpaceKind
	// Multiplier overrides the rent formula on the landing it causes.
	Multiplier int
	StepsBack  int
	ToStart    bool

	GoToJail  bool
	GrantCard bool
	// Keep withholds the card from the deck.
	Keep bool
	// Duplicate is set when a leave-jail card was drawn by a player who
	// already holds one.
	Duplicate bool
}

// Resolve maps a card to its effect for the drawing player.
func Resolve(card *EventCard, player *Player, activePlayers int, rules *Rules) Effect {
	e := Effect{Card: card}
	p := card.params
	switch card.action {
	case ActionGrantMoney:
		e.Delta = p.Amount
	case ActionChargeMoney:
		e.Delta = -p.Amount
	case ActionChargeAllOpponents:
		opponents := activePlayers - 1
		if opponents < 0 {
			opponents = 0
		}
		e.Delta = -(p.Amount * opponents)
		e.OpponentCredit = p.Amount
	case ActionChargePerBuilding:
		e.Delta = -(player.TotalHouses()*p.HouseFee + player.TotalHotels()*p.HotelFee)
	case ActionGoToJail:
		e.GoToJail = true
	case ActionAdvanceTo:
		e.Destination = p.Destination
	case ActionAdvanceToNearestStation:
		e.Nearest = SpaceStation
		e.Multiplier = p.Multiplier
		if e.Multiplier == 0 {
			e.Multiplier = rules.StationCardMultiplier
		}
	case ActionAdvanceToNearestUtility:
		e.Nearest = SpaceUtility
		e.Multiplier = p.Multiplier
		if e.Multiplier == 0 {
			e.Multiplier = rules.UtilityCardMultiplier
		}
	case ActionMoveBack:
		e.StepsBack = p.Steps
	case ActionGrantLeaveJailCard:
		if player.LeaveJailCards() > 0 {
			e.Duplicate = true
			break
		}
		e.GrantCard = true
		e.Keep = true
	case ActionAdvanceToStart:
		e.ToStart = true
		e.Delta = p.Amount
		if e.Delta == 0 {
			e.Delta = rules.PassStartBonus
		}
	}
	return e
}
