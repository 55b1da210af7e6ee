package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_Movement(t *testing.T) {
	p, err := NewPlayer("Ana", "cartola", 1500)
	require.NoError(t, err)

	assert.False(t, p.MoveBy(7, 200))
	assert.Equal(t, 7, p.Position())
	assert.Equal(t, 1500, p.Balance())

	p.position = 38
	assert.True(t, p.MoveBy(5, 200))
	assert.Equal(t, 3, p.Position())
	assert.Equal(t, 1700, p.Balance())

	p.MoveBack(5)
	assert.Equal(t, 38, p.Position())
	assert.Equal(t, 1700, p.Balance())

	assert.True(t, p.MoveTo(1, 200))
	assert.Equal(t, 1, p.Position())
	assert.Equal(t, 1900, p.Balance())

	assert.False(t, p.MoveTo(1, 200))
	assert.Equal(t, 1900, p.Balance())
}

func TestPlayer_Ledger(t *testing.T) {
	p, err := NewPlayer("Ana", "cartola", 100)
	require.NoError(t, err)
	p.Pay(150)
	assert.Equal(t, -50, p.Balance())
	p.Receive(75)
	assert.Equal(t, 25, p.Balance())

	_, err = NewPlayer(" ", "cartola", 100)
	assert.Error(t, err)
}

func TestPlayer_Jail(t *testing.T) {
	p, err := NewPlayer("Ana", "cartola", 1500)
	require.NoError(t, err)
	p.position = 22

	p.SendToJail()
	assert.True(t, p.Jailed())
	assert.Equal(t, JailPosition, p.Position())
	assert.Equal(t, 0, p.Attempts())
	assert.Equal(t, 1, p.AttemptLeaveJail())
	assert.Equal(t, 2, p.AttemptLeaveJail())

	p.PayBailAndLeave(50)
	assert.False(t, p.Jailed())
	assert.Equal(t, 0, p.Attempts())
	assert.Equal(t, 0, p.TurnsInJail())
	assert.Equal(t, 1450, p.Balance())
}

func TestPlayer_Holdings(t *testing.T) {
	g := newTestGame(t, 2)
	ana := g.players[0]
	give(t, g, ana, "Av. Sumaré", "Estação Sé", "Companhia Elétrica", "Av. Presidente Vargas")

	assert.Equal(t, 2, ana.GroupCount(GroupMarrom))
	assert.Equal(t, 1, ana.StationCount())
	assert.Equal(t, 1, ana.UtilityCount())
	assert.True(t, ana.Owns("Estação Sé"))
	assert.Equal(t, []string{"Av. Sumaré", "Estação Sé", "Companhia Elétrica", "Av. Presidente Vargas"}, ana.Export().Holdings)

	require.NoError(t, g.BuildHouse("Av. Sumaré"))
	require.NoError(t, g.BuildHouse("Av. Presidente Vargas"))
	assert.Equal(t, 2, ana.TotalHouses())
	assert.Equal(t, 0, ana.TotalHotels())

	// removing a title the player does not hold is an error
	assert.ErrorIs(t, ana.removeInstrument("Interlagos"), ErrNotOwner)
	require.NoError(t, ana.removeInstrument("Estação Sé"))
	assert.False(t, ana.Owns("Estação Sé"))
	assert.ErrorIs(t, ana.removeInstrument("Estação Sé"), ErrNotOwner)

	// transfers through the registry reject a wrong seller
	err := g.transfer("Interlagos", holderOf(ana), BankHolder)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestPlayer_NetWorth(t *testing.T) {
	g := newTestGame(t, 2)
	ana := g.players[0]
	give(t, g, ana, "Av. Sumaré", "Av. Presidente Vargas")
	assert.Equal(t, 1500+60+60, ana.NetWorth())

	require.NoError(t, g.BuildHouse("Av. Sumaré"))
	assert.Equal(t, 1450+60+60+50, ana.NetWorth())
}
