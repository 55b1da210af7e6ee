package engine

// RentContext carries everything rent depends on besides the instrument.
type RentContext struct {
	// OwnsGroup is true when the owner holds every deed of the instrument's group.
	OwnsGroup bool
	// StationsOwned and UtilitiesOwned count the owner's holdings of each kind.
	StationsOwned  int
	UtilitiesOwned int
	// DiceSum is the roll that brought the payer here; utilities need it.
	DiceSum int
	// Multiplier, when positive, replaces the normal station or utility
	// formula for a card-driven landing.
	Multiplier int
}

// Rent computes what a visitor owes for landing on the instrument. This is
// the only rent formula in the engine.
func Rent(inst *Instrument, rules *Rules, ctx RentContext) int {
	if inst == nil || inst.Mortgaged() {
		return 0
	}
	switch inst.Kind() {
	case KindDeed:
		return DeedRent(inst, ctx.OwnsGroup)
	case KindStation:
		rent := StationRent(rules.StationRent, ctx.StationsOwned)
		if ctx.Multiplier > 0 {
			rent *= ctx.Multiplier
		}
		return rent
	case KindUtility:
		if ctx.Multiplier > 0 {
			return ctx.DiceSum * ctx.Multiplier
		}
		return UtilityRent(rules.UtilityMultipliers, ctx.UtilitiesOwned, ctx.DiceSum)
	}
	return 0
}

// DeedRent doubles the bare rent of an unimproved deed in a completed group.
func DeedRent(inst *Instrument, ownsGroup bool) int {
	if ownsGroup && !inst.Improved() {
		return inst.Rent(0) * 2
	}
	return inst.Rent(inst.Level())
}

// StationRent steps through the table by stations owned, clamped.
func StationRent(table []int, owned int) int {
	if len(table) == 0 || owned <= 0 {
		return 0
	}
	if owned > len(table) {
		owned = len(table)
	}
	return table[owned-1]
}

// UtilityRent multiplies the dice sum by the factor for utilities owned.
func UtilityRent(multipliers []int, owned, diceSum int) int {
	if len(multipliers) == 0 || owned <= 0 {
		return 0
	}
	if owned > len(multipliers) {
		owned = len(multipliers)
	}
	return diceSum * multipliers[owned-1]
}
