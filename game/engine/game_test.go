package engine

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSeats = []PlayerSpec{
	{Name: "Ana", Character: "cartola"},
	{Name: "Bruno", Character: "navio"},
	{Name: "Carla", Character: "carro"},
	{Name: "Davi", Character: "dedal"},
}

func newTestGame(t *testing.T, players int, opts ...Option) *Game {
	t.Helper()
	base := []Option{WithSeed(42), WithLogger(zerolog.Nop())}
	g, err := NewGame(testSeats[:players], append(base, opts...)...)
	require.NoError(t, err)
	return g
}

func scripted(rolls ...[2]int) Option {
	return WithDice(NewScriptedDice(rolls...))
}

func give(t *testing.T, g *Game, p *Player, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, g.transfer(name, BankHolder, holderOf(p)))
	}
}

func TestNewGame(t *testing.T) {
	t.Run("valid seats", func(t *testing.T) {
		g := newTestGame(t, 4)
		assert.Equal(t, StateInProgress, g.State())
		assert.Len(t, g.Players(), 4)
		for _, p := range g.Players() {
			assert.Equal(t, 1500, p.Balance())
			assert.Equal(t, StartPosition, p.Position())
		}
		assert.Equal(t, "cartola", g.CurrentPlayer().Character())
		assert.Len(t, g.Board().Spaces(), BoardSize)
	})

	t.Run("too few players", func(t *testing.T) {
		_, err := NewGame(testSeats[:1])
		assert.ErrorIs(t, err, ErrInvalidPlayerCount)
	})

	t.Run("too many players", func(t *testing.T) {
		seats := make([]PlayerSpec, MaxPlayers+1)
		for i := range seats {
			seats[i] = PlayerSpec{Name: "p", Character: string(rune('a' + i))}
		}
		_, err := NewGame(seats)
		assert.ErrorIs(t, err, ErrInvalidPlayerCount)
	})

	t.Run("duplicate character", func(t *testing.T) {
		_, err := NewGame([]PlayerSpec{
			{Name: "Ana", Character: "navio"},
			{Name: "Bruno", Character: "Navio"},
		})
		assert.ErrorIs(t, err, ErrDuplicateCharacter)
	})

	t.Run("invalid rules", func(t *testing.T) {
		rules := DefaultRules()
		rules.StartingBalance = 0
		_, err := NewGame(testSeats[:2], WithRules(rules))
		assert.ErrorIs(t, err, ErrInvalidRules)
	})

	t.Run("card destination off the board", func(t *testing.T) {
		c, err := NewEventCard(DeckChance, ActionAdvanceTo, "Vá para Marte", CardParams{Destination: "Marte"})
		require.NoError(t, err)
		_, err = NewGame(testSeats[:2], WithCards([]*EventCard{c}, nil))
		assert.ErrorIs(t, err, ErrInvalidCard)
	})

	t.Run("custom starting balance", func(t *testing.T) {
		rules := DefaultRules()
		rules.StartingBalance = 2000
		g := newTestGame(t, 2, WithRules(rules))
		assert.Equal(t, 2000, g.CurrentPlayer().Balance())
	})
}

func TestRollDice_DoublesToJail(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{3, 3}, [2]int{4, 4}, [2]int{5, 5}))
	ana := g.CurrentPlayer()

	roll, err := g.RollDice()
	require.NoError(t, err)
	assert.True(t, roll.Double)
	assert.Equal(t, 6, ana.Position())
	assert.Equal(t, 1, g.DoublesStreak())
	assert.ErrorIs(t, g.EndTurn(), ErrDoublesPending)

	_, err = g.RollDice()
	require.NoError(t, err)
	assert.Equal(t, 14, ana.Position())
	assert.Equal(t, 2, g.DoublesStreak())

	roll, err = g.RollDice()
	require.NoError(t, err)
	assert.True(t, roll.Jailed)
	assert.False(t, roll.Moved)
	assert.True(t, ana.Jailed())
	assert.Equal(t, JailPosition, ana.Position())
	assert.Equal(t, 0, g.DoublesStreak())
	assert.Equal(t, 1500, ana.Balance())

	require.NoError(t, g.EndTurn())
	assert.Equal(t, "navio", g.CurrentPlayer().Character())
}

func TestRollDice_DoubleOnJailSpace(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{2, 2}))
	ana := g.CurrentPlayer()
	ana.position = JailPosition

	roll, err := g.RollDice()
	require.NoError(t, err)
	assert.True(t, roll.Jailed)
	assert.True(t, ana.Jailed())
	assert.Equal(t, JailPosition, ana.Position())
	assert.Equal(t, 0, g.DoublesStreak())
}

func TestRollDice_PassStartBonus(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{2, 3}))
	ana := g.CurrentPlayer()
	ana.position = 38

	roll, err := g.RollDice()
	require.NoError(t, err)
	assert.True(t, roll.PassedStart)
	assert.Equal(t, 3, ana.Position())
	assert.Equal(t, 1500+g.Rules().PassStartBonus, ana.Balance())
}

func TestRollDice_AlreadyRolled(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{1, 2}))
	_, err := g.RollDice()
	require.NoError(t, err)
	_, err = g.RollDice()
	assert.ErrorIs(t, err, ErrAlreadyRolled)
}

func TestRollDice_LandingOnGoToJail(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{2, 4}))
	ana := g.CurrentPlayer()
	ana.position = 24

	roll, err := g.RollDice()
	require.NoError(t, err)
	assert.True(t, roll.Jailed)
	assert.Equal(t, JailPosition, ana.Position())
	assert.False(t, g.RentDue())
	require.NoError(t, g.EndTurn())
}

func TestRollDice_JailRelease(t *testing.T) {
	t.Run("double releases and moves without a streak", func(t *testing.T) {
		g := newTestGame(t, 2, scripted([2]int{3, 3}))
		ana := g.CurrentPlayer()
		ana.SendToJail()

		roll, err := g.RollDice()
		require.NoError(t, err)
		assert.True(t, roll.Released)
		assert.False(t, ana.Jailed())
		assert.Equal(t, 16, ana.Position())
		assert.Equal(t, 0, g.DoublesStreak())
		assert.NoError(t, g.EndTurn())
	})

	t.Run("third failed attempt forces release", func(t *testing.T) {
		g := newTestGame(t, 2, scripted(
			[2]int{1, 2}, // ana stays
			[2]int{2, 3}, // bruno to 5
			[2]int{1, 2}, // ana stays
			[2]int{2, 4}, // bruno to 11
			[2]int{1, 2}, // ana forced out
		))
		ana := g.CurrentPlayer()
		ana.SendToJail()

		for i := 0; i < 2; i++ {
			roll, err := g.RollDice()
			require.NoError(t, err)
			assert.False(t, roll.Moved)
			assert.True(t, ana.Jailed())
			assert.Equal(t, i+1, ana.Attempts())
			require.NoError(t, g.EndTurn())
			assert.Equal(t, i+1, ana.TurnsInJail())

			_, err = g.RollDice()
			require.NoError(t, err)
			require.NoError(t, g.EndTurn())
		}

		roll, err := g.RollDice()
		require.NoError(t, err)
		assert.True(t, roll.Released)
		assert.False(t, ana.Jailed())
		assert.Equal(t, 13, ana.Position())
		assert.Equal(t, 1500, ana.Balance())
	})
}

func TestEndTurn(t *testing.T) {
	g := newTestGame(t, 3, scripted([2]int{1, 2}))
	assert.ErrorIs(t, g.EndTurn(), ErrDiceNotRolled)

	_, err := g.RollDice()
	require.NoError(t, err)
	require.NoError(t, g.EndTurn())
	assert.Equal(t, 1, g.CurrentIndex())
	assert.False(t, g.DiceRolled())

	// bankrupt seats are skipped
	g.players[2].bankrupt = true
	_, err = g.RollDice()
	require.NoError(t, err)
	require.NoError(t, g.EndTurn())
	assert.Equal(t, 0, g.CurrentIndex())
}

func TestEndTurn_LandingPending(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{1, 3}))
	_, err := g.RollDice()
	require.NoError(t, err)
	require.True(t, g.RentDue())
	assert.ErrorIs(t, g.EndTurn(), ErrLandingPending)

	paid, err := g.CollectRent(0)
	require.NoError(t, err)
	assert.Equal(t, 200, paid)
	assert.Equal(t, 1300, g.CurrentPlayer().Balance())
	require.NoError(t, g.EndTurn())
}

func TestCollectRent_MonopolyDoubling(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{1, 2}))
	ana, bruno := g.players[0], g.players[1]
	give(t, g, bruno, "Av. Sumaré", "Av. Presidente Vargas")
	ana.position = 38

	_, err := g.RollDice()
	require.NoError(t, err)
	require.Equal(t, 1, ana.Position())

	paid, err := g.CollectRent(0)
	require.NoError(t, err)
	assert.Equal(t, 20, paid)
	assert.Equal(t, 1500+200-20, ana.Balance())
	assert.Equal(t, 1520, bruno.Balance())

	paid, err = g.CollectRent(0)
	require.NoError(t, err, "a settled landing is not charged twice")
	assert.Zero(t, paid)
	assert.Equal(t, 1520, bruno.Balance())
}

func TestCollectRent_WithoutMonopoly(t *testing.T) {
	g := newTestGame(t, 2)
	bruno := g.players[1]
	give(t, g, bruno, "Av. Sumaré")
	rent, err := g.QuoteRent("Av. Sumaré", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, rent)
}

func TestCollectRent_Utilities(t *testing.T) {
	tests := []struct {
		name     string
		owned    []string
		expected int
	}{
		{"one utility", []string{"Companhia Elétrica"}, 28},
		{"both utilities", []string{"Companhia Elétrica", "Companhia de Saneamento"}, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 2, scripted([2]int{3, 4}))
			ana, bruno := g.players[0], g.players[1]
			give(t, g, bruno, tt.owned...)
			ana.position = 5

			_, err := g.RollDice()
			require.NoError(t, err)
			require.Equal(t, 12, ana.Position())
			paid, err := g.CollectRent(7)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, paid)
			assert.Equal(t, 1500+tt.expected, bruno.Balance())
		})
	}
}

func TestCollectRent_Stations(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{2, 3}))
	ana, bruno := g.players[0], g.players[1]
	give(t, g, bruno, "Estação da Luz", "Estação Sé", "Estação Júlio Prestes")

	_, err := g.RollDice()
	require.NoError(t, err)
	require.Equal(t, 5, ana.Position())
	paid, err := g.CollectRent(0)
	require.NoError(t, err)
	assert.Equal(t, 100, paid)
}

func TestCollectRent_OwnOrUnownedSpace(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{2, 3}, [2]int{1, 2}))
	ana := g.players[0]
	give(t, g, ana, "Estação da Luz")

	_, err := g.RollDice()
	require.NoError(t, err)
	assert.False(t, g.RentDue())
	paid, err := g.CollectRent(0)
	require.NoError(t, err)
	assert.Zero(t, paid)
	assert.Equal(t, 1500, ana.Balance())
	require.NoError(t, g.EndTurn())

	// bruno lands on the unowned Av. Presidente Vargas
	bruno := g.players[1]
	_, err = g.RollDice()
	require.NoError(t, err)
	require.Equal(t, 3, bruno.Position())
	paid, err = g.CollectRent(0)
	require.NoError(t, err)
	assert.Zero(t, paid)
	assert.Equal(t, 1500, bruno.Balance())
}

func TestPurchase(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{1, 2}))
	ana := g.CurrentPlayer()

	_, err := g.Purchase()
	assert.ErrorIs(t, err, ErrNotOwnable)

	_, err = g.RollDice()
	require.NoError(t, err)
	require.True(t, g.CanAffordCurrentSpace())

	inst, err := g.Purchase()
	require.NoError(t, err)
	assert.Equal(t, "Av. Presidente Vargas", inst.Name())
	assert.Equal(t, 1440, ana.Balance())
	assert.True(t, ana.Owns(inst.Name()))
	holder, err := g.Bank().HolderOf(inst.Name())
	require.NoError(t, err)
	assert.Equal(t, Holder("cartola"), holder)

	_, err = g.Purchase()
	assert.ErrorIs(t, err, ErrAlreadyOwned)
	assert.False(t, g.CanAffordCurrentSpace())
}

func TestPurchase_Funds(t *testing.T) {
	t.Run("permissive rules allow debt", func(t *testing.T) {
		g := newTestGame(t, 2)
		ana := g.CurrentPlayer()
		ana.balance = 10
		ana.position = 39
		_, err := g.Purchase()
		require.NoError(t, err)
		assert.Equal(t, -390, ana.Balance())
	})

	t.Run("enforced funds reject", func(t *testing.T) {
		rules := DefaultRules()
		rules.EnforceFunds = true
		g := newTestGame(t, 2, WithRules(rules))
		ana := g.CurrentPlayer()
		ana.balance = 10
		ana.position = 39
		_, err := g.Purchase()
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.False(t, ana.Owns("Interlagos"))
		assert.Equal(t, 10, ana.Balance())
	})
}

func TestJailExits(t *testing.T) {
	g := newTestGame(t, 2)
	ana := g.CurrentPlayer()
	assert.ErrorIs(t, g.PayBail(), ErrNotJailed)

	ana.SendToJail()
	opts := g.JailOptions()
	assert.True(t, opts.Jailed)
	assert.True(t, opts.CanPayBail)
	assert.False(t, opts.HasCard)
	assert.Equal(t, 3, opts.AttemptsLeft)

	require.NoError(t, g.PayBail())
	assert.False(t, ana.Jailed())
	assert.Equal(t, 1450, ana.Balance())

	ana.SendToJail()
	assert.ErrorIs(t, g.UseLeaveJailCard(), ErrNoLeaveJailCard)

	card, err := NewEventCard(DeckChest, ActionGrantLeaveJailCard, "Saia livre", CardParams{})
	require.NoError(t, err)
	before := g.Deck().Len(DeckChest)
	ana.grantLeaveJailCard(card)
	assert.True(t, g.JailOptions().HasCard)
	require.NoError(t, g.UseLeaveJailCard())
	assert.False(t, ana.Jailed())
	assert.Equal(t, 0, ana.LeaveJailCards())
	assert.Equal(t, before+1, g.Deck().Len(DeckChest))
	assert.Equal(t, card, g.Deck().Peek(DeckChest)[0])
}

func TestBankruptcy(t *testing.T) {
	t.Run("last player standing wins", func(t *testing.T) {
		g := newTestGame(t, 2)
		ana := g.players[0]
		give(t, g, ana, "Av. Sumaré", "Av. Presidente Vargas")
		require.NoError(t, g.BuildHouse("Av. Sumaré"))
		ana.balance = -5

		declared, err := g.DeclareBankruptIfInsufficientFunds()
		require.NoError(t, err)
		assert.True(t, declared)
		assert.True(t, ana.Bankrupt())
		assert.Empty(t, ana.Holdings())
		assert.Equal(t, StateFinished, g.State())
		assert.Equal(t, "navio", g.Winner())

		sumare := g.Bank().Instrument("Av. Sumaré")
		assert.Equal(t, 0, sumare.Houses())
		holder, _ := g.Bank().HolderOf("Av. Sumaré")
		assert.Equal(t, BankHolder, holder)

		_, err = g.RollDice()
		assert.ErrorIs(t, err, ErrGameFinished)
		assert.ErrorIs(t, g.EndTurn(), ErrGameFinished)
		_, err = g.Purchase()
		assert.ErrorIs(t, err, ErrGameFinished)
	})

	t.Run("solvent player is not declared", func(t *testing.T) {
		g := newTestGame(t, 2)
		declared, err := g.DeclareBankruptIfInsufficientFunds()
		require.NoError(t, err)
		assert.False(t, declared)
	})

	t.Run("current seat passes on", func(t *testing.T) {
		g := newTestGame(t, 3)
		require.NoError(t, g.DeclareBankruptcy("cartola"))
		assert.Equal(t, StateInProgress, g.State())
		assert.Equal(t, "navio", g.CurrentPlayer().Character())
		assert.ErrorIs(t, g.DeclareBankruptcy("cartola"), ErrPlayerBankrupt)
		assert.ErrorIs(t, g.DeclareBankruptcy("chapeu"), ErrUnknownPlayer)
	})
}

func TestExport(t *testing.T) {
	g := newTestGame(t, 2, scripted([2]int{1, 2}))
	_, err := g.RollDice()
	require.NoError(t, err)
	_, err = g.Purchase()
	require.NoError(t, err)

	first := g.Export()
	second := g.Export()
	assert.Equal(t, first, second)

	assert.Len(t, first.Board, BoardSize)
	for i, space := range first.Board {
		assert.Equal(t, i, space.Position)
	}
	assert.Equal(t, []string{"Av. Presidente Vargas"}, first.Players[0].Holdings)
	assert.Equal(t, "cartola", first.Board[3].Instrument.Holder)
	assert.Equal(t, StateInProgress, first.State)
	assert.True(t, first.DiceRolledThisTurn)

	// mutating a snapshot leaves the game untouched
	first.Players[0].Holdings[0] = "Interlagos"
	first.Board[1].Instrument.RentTable[0] = 999
	assert.Equal(t, second, g.Export())

	data, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"current_player_index":0`)
}

func TestPositionsStayOnBoard(t *testing.T) {
	rolls := make([][2]int, 0, 200)
	for i := 0; i < 200; i++ {
		rolls = append(rolls, [2]int{i%6 + 1, (i*5)%6 + 1})
	}
	g := newTestGame(t, 4, scripted(rolls...))

	for i := 0; i < 150 && g.State() == StateInProgress; i++ {
		_, err := g.RollDice()
		require.NoError(t, err)
		for g.RentDue() || g.CardDue() {
			if g.RentDue() {
				_, err = g.CollectRent(0)
			} else {
				_, err = g.ResolveDrawnCard()
			}
			require.NoError(t, err)
		}
		for _, p := range g.Players() {
			assert.GreaterOrEqual(t, p.Position(), 0)
			assert.LessOrEqual(t, p.Position(), BoardSize-1)
		}
		if g.DoublesStreak() == 0 {
			require.NoError(t, g.EndTurn())
		}
	}
}
