package engine

import "fmt"

// DeclareBankruptcy takes a player out of the game. Their titles go back to
// the bank unimproved and unmortgaged, and their leave-jail cards go back to
// the decks. When one player remains the game finishes with them as winner.
func (g *Game) DeclareBankruptcy(character string) error {
	if err := g.checkInProgress(); err != nil {
		return err
	}
	p, err := g.Player(character)
	if err != nil {
		return err
	}
	if p.bankrupt {
		return fmt.Errorf("%w: %s", ErrPlayerBankrupt, character)
	}

	for _, inst := range p.Holdings() {
		inst.ResetImprovements()
		inst.setMortgaged(false)
		if err := g.transfer(inst.Name(), holderOf(p), BankHolder); err != nil {
			return err
		}
	}
	for p.LeaveJailCards() > 0 {
		card, _ := p.takeLeaveJailCard()
		g.deck.Return(card)
	}
	p.bankrupt = true
	if p.jailed {
		p.LeaveJail()
	}
	if g.trade != nil && (g.trade.origin == p || g.trade.destination == p) {
		g.trade = nil
	}
	g.logger.Info().Str("player", p.Character()).Int("balance", p.Balance()).Msg("bankrupt")

	if g.activePlayers() == 1 {
		for _, other := range g.players {
			if !other.bankrupt {
				g.finish(other)
			}
		}
		return nil
	}
	if g.CurrentPlayer() == p {
		g.advance()
	}
	return nil
}

// DeclareBankruptIfInsufficientFunds bankrupts the current player when their
// balance is negative. It reports whether they were declared bankrupt.
func (g *Game) DeclareBankruptIfInsufficientFunds() (bool, error) {
	if err := g.checkInProgress(); err != nil {
		return false, err
	}
	p := g.CurrentPlayer()
	if p.Balance() >= 0 {
		return false, nil
	}
	if err := g.DeclareBankruptcy(p.Character()); err != nil {
		return false, err
	}
	return true, nil
}

func (g *Game) finish(winner *Player) {
	g.state = StateFinished
	g.winner = winner.Character()
	g.trade = nil
	g.logger.Info().Str("winner", g.winner).Msg("game finished")
}
