// Package engine provides the rules engine for Banco Imobiliário.
//
// The engine package implements the game mechanics including:
//   - The 40-space board and its instrument catalog
//   - Dice, movement and the pass-start bonus
//   - Jail, doubles and the three-attempt release
//   - Chance and chest decks with card effects
//   - Rent, construction, mortgages and trades
//   - Bankruptcy and win detection
//
// Core Types:
//
// Game is the orchestrator and carries the whole command surface. The
// Bank is the single ownership registry: every transfer of a title goes
// through it and the Player holdings follow. Rules carries the tunable
// economics and is loaded from JSON rule sets by the config package.
//
// Usage:
//
//	game, err := engine.NewGame([]engine.PlayerSpec{
//		{Name: "Ana", Character: "cartola"},
//		{Name: "Bruno", Character: "navio"},
//	})
//	if err != nil {
//		log.Fatal().Err(err).Msg("new game")
//	}
//
//	roll, err := game.RollDice()
//	if game.RentDue() {
//		_, err = game.CollectRent(roll.Sum())
//	}
//	snapshot := game.Export()
//
// Economic outcomes are not errors: balances may go negative and the caller
// decides when to call DeclareBankruptIfInsufficientFunds. Set
// Rules.EnforceFunds to reject voluntary spending a player cannot cover.
//
// The engine is single-threaded. Callers serialize access to a Game.
package engine
