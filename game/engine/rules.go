package engine

import "fmt"

// Board and roster limits
const (
	BoardSize  = 40
	MinPlayers = 2
	MaxPlayers = 8

	MaxHouses = 4

	// Fixed positions on the classic board
	StartPosition    = 0
	JailPosition     = 10
	GoToJailPosition = 30
)

// Rules holds the tunable economics of a game. A zero Rules is invalid; start
// from DefaultRules and override fields.
type Rules struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	StartingBalance int `json:"starting_balance"`
	PassStartBonus  int `json:"pass_start_bonus"`
	BailFine        int `json:"bail_fine"`

	MaxJailAttempts int `json:"max_jail_attempts"`
	MaxDoubles      int `json:"max_doubles"`

	// StationRent is indexed by stations owned minus one.
	StationRent []int `json:"station_rent"`
	// UtilityMultipliers is indexed by utilities owned minus one.
	UtilityMultipliers []int `json:"utility_multipliers"`

	StationCardMultiplier int `json:"station_card_multiplier"`
	UtilityCardMultiplier int `json:"utility_card_multiplier"`

	// RedeemInterestPercent is added on top of the mortgage value when a
	// mortgage is paid back.
	RedeemInterestPercent int `json:"redeem_interest_percent"`

	// EnforceFunds rejects purchases, construction, bail and redemption the
	// acting player cannot pay for. When false balances may go negative and
	// bankruptcy is left to the caller.
	EnforceFunds bool `json:"enforce_funds"`
}

// DefaultRules returns the classic rule set.
func DefaultRules() *Rules {
	return &Rules{
		Name:                  "classic",
		Description:           "Regras clássicas do Banco Imobiliário",
		StartingBalance:       1500,
		PassStartBonus:        200,
		BailFine:              50,
		MaxJailAttempts:       3,
		MaxDoubles:            3,
		StationRent:           []int{25, 50, 100, 200},
		UtilityMultipliers:    []int{4, 10},
		StationCardMultiplier: 2,
		UtilityCardMultiplier: 10,
		RedeemInterestPercent: 10,
	}
}

// ValidateRules checks a rule set for playability
func ValidateRules(r *Rules) error {
	if r == nil {
		return fmt.Errorf("%w: rules are required", ErrInvalidRules)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRules)
	}
	if r.StartingBalance <= 0 {
		return fmt.Errorf("%w: starting_balance must be positive, got %d", ErrInvalidRules, r.StartingBalance)
	}
	if r.PassStartBonus < 0 {
		return fmt.Errorf("%w: pass_start_bonus cannot be negative, got %d", ErrInvalidRules, r.PassStartBonus)
	}
	if r.BailFine < 0 {
		return fmt.Errorf("%w: bail_fine cannot be negative, got %d", ErrInvalidRules, r.BailFine)
	}
	if r.MaxJailAttempts < 1 {
		return fmt.Errorf("%w: max_jail_attempts must be at least 1, got %d", ErrInvalidRules, r.MaxJailAttempts)
	}
	if r.MaxDoubles < 1 {
		return fmt.Errorf("%w: max_doubles must be at least 1, got %d", ErrInvalidRules, r.MaxDoubles)
	}
	if len(r.StationRent) != stationCount {
		return fmt.Errorf("%w: station_rent must have %d entries, got %d", ErrInvalidRules, stationCount, len(r.StationRent))
	}
	if len(r.UtilityMultipliers) != utilityCount {
		return fmt.Errorf("%w: utility_multipliers must have %d entries, got %d", ErrInvalidRules, utilityCount, len(r.UtilityMultipliers))
	}
	for i, v := range r.StationRent {
		if v < 0 {
			return fmt.Errorf("%w: station_rent[%d] cannot be negative", ErrInvalidRules, i)
		}
	}
	for i, v := range r.UtilityMultipliers {
		if v < 0 {
			return fmt.Errorf("%w: utility_multipliers[%d] cannot be negative", ErrInvalidRules, i)
		}
	}
	if r.StationCardMultiplier < 1 || r.UtilityCardMultiplier < 1 {
		return fmt.Errorf("%w: card multipliers must be at least 1", ErrInvalidRules)
	}
	if r.RedeemInterestPercent < 0 {
		return fmt.Errorf("%w: redeem_interest_percent cannot be negative", ErrInvalidRules)
	}
	return nil
}

// redeemCost is the price of lifting a mortgage.
func (r *Rules) redeemCost(mortgageValue int) int {
	return mortgageValue + mortgageValue*r.RedeemInterestPercent/100
}
