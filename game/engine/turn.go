package engine

import "fmt"

// RollResult reports what a roll did to the current player.
type RollResult struct {
	Die1        int    `json:"die1"`
	Die2        int    `json:"die2"`
	Double      bool   `json:"double"`
	Moved       bool   `json:"moved"`
	PassedStart bool   `json:"passed_start"`
	Jailed      bool   `json:"jailed"`
	Released    bool   `json:"released"`
	Position    int    `json:"position"`
	Space       string `json:"space"`
}

// Sum returns the total of both dice
func (r RollResult) Sum() int {
	return r.Die1 + r.Die2
}

// RollDice rolls for the current player and moves them. A jailed player
// uses the roll as a release attempt. A free player who rolls doubles
// MaxDoubles times in a turn, or rolls doubles while standing on a jail
// space, is sent to jail instead of moving.
func (g *Game) RollDice() (RollResult, error) {
	if err := g.checkInProgress(); err != nil {
		return RollResult{}, err
	}
	if g.diceRolled && g.doublesStreak == 0 {
		return RollResult{}, ErrAlreadyRolled
	}
	if g.rentDue || g.cardDue {
		return RollResult{}, ErrLandingPending
	}

	p := g.CurrentPlayer()
	d1, d2 := g.dice.Roll()
	if d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
		return RollResult{}, fmt.Errorf("dice returned %d and %d", d1, d2)
	}
	g.lastDice = [2]int{d1, d2}
	g.diceRolled = true
	result := RollResult{Die1: d1, Die2: d2, Double: d1 == d2}

	if p.Jailed() {
		attempts := p.AttemptLeaveJail()
		switch {
		case result.Double:
			p.LeaveJail()
			result.Released = true
			g.logger.Debug().Str("player", p.Character()).Msg("rolled doubles in jail")
			result.PassedStart = g.move(p, result.Sum())
			result.Moved = true
		case attempts >= g.rules.MaxJailAttempts:
			p.LeaveJail()
			result.Released = true
			g.logger.Debug().Str("player", p.Character()).Int("attempts", attempts).Msg("forced out of jail")
			result.PassedStart = g.move(p, result.Sum())
			result.Moved = true
		}
	} else if result.Double {
		g.doublesStreak++
		if g.doublesStreak >= g.rules.MaxDoubles || g.board.Space(p.Position()).IsJailType() {
			g.logger.Info().Str("player", p.Character()).Int("streak", g.doublesStreak).Msg("sent to jail for doubles")
			g.jail(p)
		} else {
			result.PassedStart = g.move(p, result.Sum())
			result.Moved = true
		}
	} else {
		g.doublesStreak = 0
		result.PassedStart = g.move(p, result.Sum())
		result.Moved = true
	}

	result.Jailed = p.Jailed()
	result.Position = p.Position()
	result.Space = g.board.Space(p.Position()).Name()
	return result, nil
}

// EndTurn passes the dice to the next player who is not bankrupt.
func (g *Game) EndTurn() error {
	if err := g.checkInProgress(); err != nil {
		return err
	}
	if !g.diceRolled {
		return ErrDiceNotRolled
	}
	if g.doublesStreak > 0 {
		return ErrDoublesPending
	}
	if g.rentDue || g.cardDue {
		return ErrLandingPending
	}
	g.CurrentPlayer().serveTurnInJail()
	g.advance()
	return nil
}

// advance moves the turn to the next seat that is still in the game and
// clears the per-turn flags.
func (g *Game) advance() {
	for i := 1; i <= len(g.players); i++ {
		next := (g.current + i) % len(g.players)
		if !g.players[next].bankrupt {
			g.current = next
			break
		}
	}
	g.diceRolled = false
	g.doublesStreak = 0
	g.rentDue = false
	g.cardDue = false
	g.rentMultiplier = 0
}

// move advances p and resolves the landing. It reports whether the start
// space was passed.
func (g *Game) move(p *Player, steps int) bool {
	passed := p.MoveBy(steps, g.rules.PassStartBonus)
	if passed {
		g.logger.Debug().Str("player", p.Character()).Int("bonus", g.rules.PassStartBonus).Msg("passed start")
	}
	g.land(p, 0)
	return passed
}

// land records what the player owes for the space they now stand on.
func (g *Game) land(p *Player, multiplier int) {
	g.rentDue = false
	g.cardDue = false
	g.rentMultiplier = 0

	space := g.board.Space(p.Position())
	switch space.Kind() {
	case SpaceGoToJail:
		g.jail(p)
	case SpaceTax:
		g.rentDue = true
	case SpaceProperty, SpaceStation, SpaceUtility:
		// Only someone else's unmortgaged title leaves something to settle.
		inst := space.Instrument()
		holder, _ := g.bank.HolderOf(inst.Name())
		if holder != BankHolder && holder != holderOf(p) && !inst.Mortgaged() {
			g.rentDue = true
			g.rentMultiplier = multiplier
		}
	case SpaceChance, SpaceChest:
		g.cardDue = true
	case SpaceStart, SpaceJail, SpaceFreeParking:
	}
}

// jail sends p to jail and ends any doubles streak.
func (g *Game) jail(p *Player) {
	p.SendToJail()
	g.doublesStreak = 0
	g.rentDue = false
	g.cardDue = false
	g.rentMultiplier = 0
}
