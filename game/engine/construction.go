package engine

import "fmt"

// ownedByCurrent returns the named instrument if the current player holds it.
func (g *Game) ownedByCurrent(name string) (*Player, *Instrument, error) {
	if err := g.checkInProgress(); err != nil {
		return nil, nil, err
	}
	inst := g.bank.Instrument(name)
	if inst == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, name)
	}
	p := g.CurrentPlayer()
	if !p.Owns(name) {
		return nil, nil, fmt.Errorf("%w: %s does not hold %s", ErrNotOwner, p.Character(), name)
	}
	return p, inst, nil
}

// checkBuildable enforces the monopoly rule: the whole group is held by p
// and none of it is mortgaged.
func (g *Game) checkBuildable(p *Player, inst *Instrument) error {
	if inst.Kind() != KindDeed {
		return fmt.Errorf("%w: %s is not a deed", ErrCannotBuild, inst.Name())
	}
	if !g.ownsGroup(p, inst.Group()) {
		return fmt.Errorf("%w: %s holds %d of %d in %s", ErrNoMonopoly,
			p.Character(), p.GroupCount(inst.Group()), g.bank.GroupSize(inst.Group()), inst.Group())
	}
	for _, member := range g.bank.GroupMembers(inst.Group()) {
		if member.Mortgaged() {
			return fmt.Errorf("%w: %s", ErrMortgaged, member.Name())
		}
	}
	return nil
}

func (g *Game) checkFunds(p *Player, cost int, what string) error {
	if g.rules.EnforceFunds && p.Balance() < cost {
		return fmt.Errorf("%w: %s costs %d, balance %d", ErrInsufficientFunds, what, cost, p.Balance())
	}
	return nil
}

// BuildHouse places one house on a deed of a completed group
func (g *Game) BuildHouse(name string) error {
	p, inst, err := g.ownedByCurrent(name)
	if err != nil {
		return err
	}
	if err := g.checkBuildable(p, inst); err != nil {
		return err
	}
	cost := inst.Terms().HouseCost
	if err := g.checkFunds(p, cost, "house on "+name); err != nil {
		return err
	}
	if err := inst.AddHouse(); err != nil {
		return err
	}
	p.Pay(cost)
	g.logger.Debug().Str("player", p.Character()).Str("instrument", name).Int("houses", inst.Houses()).Msg("house built")
	return nil
}

// BuildHotel swaps four houses for a hotel
func (g *Game) BuildHotel(name string) error {
	p, inst, err := g.ownedByCurrent(name)
	if err != nil {
		return err
	}
	if err := g.checkBuildable(p, inst); err != nil {
		return err
	}
	cost := inst.Terms().HotelCost
	if err := g.checkFunds(p, cost, "hotel on "+name); err != nil {
		return err
	}
	if err := inst.AddHotel(); err != nil {
		return err
	}
	p.Pay(cost)
	g.logger.Debug().Str("player", p.Character()).Str("instrument", name).Msg("hotel built")
	return nil
}

// SellHouse takes down the top building of a deed and refunds half its cost.
func (g *Game) SellHouse(name string) (int, error) {
	p, inst, err := g.ownedByCurrent(name)
	if err != nil {
		return 0, err
	}
	if inst.Kind() != KindDeed {
		return 0, fmt.Errorf("%w: %s is not a deed", ErrCannotBuild, name)
	}
	level, err := inst.RemoveBuilding()
	if err != nil {
		return 0, err
	}
	refund := inst.Terms().HouseCost / 2
	if level == HotelLevel {
		refund = inst.Terms().HotelCost / 2
	}
	p.Receive(refund)
	return refund, nil
}

// Mortgage pledges an instrument to the bank for its mortgage value. The
// group must carry no buildings.
func (g *Game) Mortgage(name string) (int, error) {
	p, inst, err := g.ownedByCurrent(name)
	if err != nil {
		return 0, err
	}
	if inst.Mortgaged() {
		return 0, fmt.Errorf("%w: %s", ErrMortgaged, name)
	}
	if inst.Kind() == KindDeed {
		for _, member := range g.bank.GroupMembers(inst.Group()) {
			if member.Improved() {
				return 0, fmt.Errorf("%w: sell the buildings on %s first", ErrCannotBuild, member.Name())
			}
		}
	}
	inst.setMortgaged(true)
	p.Receive(inst.MortgageValue())
	g.logger.Debug().Str("player", p.Character()).Str("instrument", name).Msg("mortgaged")
	return inst.MortgageValue(), nil
}

// Redeem lifts a mortgage for its value plus interest
func (g *Game) Redeem(name string) (int, error) {
	p, inst, err := g.ownedByCurrent(name)
	if err != nil {
		return 0, err
	}
	if !inst.Mortgaged() {
		return 0, fmt.Errorf("%w: %s", ErrNotMortgaged, name)
	}
	cost := g.rules.redeemCost(inst.MortgageValue())
	if err := g.checkFunds(p, cost, "redeeming "+name); err != nil {
		return 0, err
	}
	inst.setMortgaged(false)
	p.Pay(cost)
	return cost, nil
}
