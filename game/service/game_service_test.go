package service_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/banco-imobiliario/game/engine"
	"github.com/wricardo/banco-imobiliario/game/service"
	"github.com/wricardo/banco-imobiliario/game/session"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	opts     []engine.Option
}

func NewMockSessionManager(opts ...engine.Option) *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
		opts:     opts,
	}
}

func (m *MockSessionManager) Create(id string, spec service.SessionSpec) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("t%03d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	opts := append([]engine.Option{
		engine.WithRules(spec.Rules),
		engine.WithSeed(1),
		engine.WithLogger(zerolog.Nop()),
	}, m.opts...)
	game, err := engine.NewGame(spec.Players, opts...)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	session := &service.Session{
		ID:             id,
		Game:           game,
		RulesID:        spec.RulesID,
		Seed:           1,
		AutoSettle:     spec.AutoSettle,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) (time.Time, error) {
	session, exists := m.sessions[id]
	if !exists {
		return time.Time{}, service.ErrSessionNotFound
	}
	session.LastAccessedAt = time.Now()
	return session.LastAccessedAt, nil
}

func (m *MockSessionManager) LastAccessed(id string) (time.Time, error) {
	session, exists := m.sessions[id]
	if !exists {
		return time.Time{}, service.ErrSessionNotFound
	}
	return session.LastAccessedAt, nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	rules map[string]*engine.Rules
}

func NewMockConfigManager() *MockConfigManager {
	poor := engine.DefaultRules()
	poor.Name = "pobre"
	poor.StartingBalance = 100
	return &MockConfigManager{
		rules: map[string]*engine.Rules{
			"classic": engine.DefaultRules(),
			"pobre":   poor,
		},
	}
}

func (m *MockConfigManager) LoadRules(name string) (*engine.Rules, error) {
	rules, ok := m.rules[name]
	if !ok {
		return nil, fmt.Errorf("rule set not found: %s", name)
	}
	return rules, nil
}

func (m *MockConfigManager) ListRules() ([]*service.ConfigInfo, error) {
	var infos []*service.ConfigInfo
	for id, rules := range m.rules {
		infos = append(infos, &service.ConfigInfo{ConfigID: id, Name: rules.Name, StartingBalance: rules.StartingBalance})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ConfigID < infos[j].ConfigID })
	return infos, nil
}

func (m *MockConfigManager) GetDefault() *engine.Rules {
	return m.rules["classic"]
}

func (m *MockConfigManager) SaveRules(name string, rules *engine.Rules) error {
	m.rules[name] = rules
	return nil
}

var twoPlayers = []engine.PlayerSpec{
	{Name: "Ana", Character: "cartola"},
	{Name: "Bruno", Character: "navio"},
}

func newTestService(t *testing.T, req service.CreateSessionRequest, opts ...engine.Option) (service.GameService, string) {
	t.Helper()
	svc := service.NewGameService(NewMockSessionManager(opts...), NewMockConfigManager())
	if req.Players == nil {
		req.Players = twoPlayers
	}
	info, err := svc.CreateSession(context.Background(), req)
	require.NoError(t, err)
	return svc, info.ID
}

func eventTypes(events []service.GameEvent) []service.EventType {
	types := make([]service.EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	t.Run("default rules", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, service.CreateSessionRequest{Players: twoPlayers})
		require.NoError(t, err)
		assert.Equal(t, "classic", info.RulesID)
		assert.Len(t, info.State.Players, 2)
		assert.Equal(t, 1500, info.State.Players[0].Balance)
		assert.Equal(t, engine.StateInProgress, info.State.State)
	})

	t.Run("named rules", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, service.CreateSessionRequest{Rules: "pobre", Players: twoPlayers})
		require.NoError(t, err)
		assert.Equal(t, "pobre", info.RulesID)
		assert.Equal(t, 100, info.State.Players[1].Balance)
	})

	t.Run("unknown rules lists the alternatives", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, service.CreateSessionRequest{Rules: "nope", Players: twoPlayers})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "available: classic, pobre")
	})

	t.Run("roster errors come from the engine", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, service.CreateSessionRequest{Players: twoPlayers[:1]})
		assert.ErrorIs(t, err, engine.ErrInvalidPlayerCount)

		dup := []engine.PlayerSpec{{Name: "A", Character: "dado"}, {Name: "B", Character: "DADO"}}
		_, err = svc.CreateSession(ctx, service.CreateSessionRequest{Players: dup})
		assert.ErrorIs(t, err, engine.ErrDuplicateCharacter)
	})
}

func TestGameService_ManualTurn(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t, service.CreateSessionRequest{},
		engine.WithDice(engine.NewScriptedDice([2]int{1, 2})))

	res, err := svc.RollDice(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, res.Roll)
	assert.Equal(t, 3, res.Roll.Position)
	assert.Equal(t, "Av. Presidente Vargas", res.Roll.Space)
	assert.True(t, res.Decisions.Purchasable)
	assert.Equal(t, 60, res.Decisions.Price)
	assert.Equal(t, []service.EventType{service.EventDiceRolled}, eventTypes(res.Events))
	assert.Contains(t, res.Message, "cartola rolled 1 and 2")

	res, err = svc.Purchase(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 60, res.Amount)
	assert.Equal(t, 1440, res.State.Players[0].Balance)

	res, err = svc.EndTurn(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "navio", res.Decisions.Character)

	res, err = svc.RollDice(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.State.RentDue)
	assert.False(t, res.Decisions.CanEndTurn)

	_, err = svc.EndTurn(ctx, id)
	assert.ErrorIs(t, err, engine.ErrLandingPending)

	res, err = svc.CollectRent(ctx, id, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Amount)
	assert.Equal(t, 1460, res.State.Players[0].Balance)
	assert.Equal(t, 1480, res.State.Players[1].Balance)
	assert.Equal(t, []service.EventType{service.EventRentPaid}, eventTypes(res.Events))

	res, err = svc.CollectRent(ctx, id, 0)
	require.NoError(t, err)
	assert.Zero(t, res.Amount)
	assert.Empty(t, res.Events)
	assert.Equal(t, "cartola owes nothing at Av. Presidente Vargas", res.Message)

	_, err = svc.EndTurn(ctx, id)
	require.NoError(t, err)

	history, err := svc.GetEvents(ctx, id, service.HistoryOptions{Order: "asc", Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, []service.EventType{
		service.EventSessionCreated,
		service.EventDiceRolled,
		service.EventPurchased,
		service.EventTurnEnded,
		service.EventDiceRolled,
		service.EventRentPaid,
		service.EventTurnEnded,
	}, eventTypes(history.Events))

	seen := map[string]bool{}
	for _, e := range history.Events {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "event ids are unique")
		seen[e.ID] = true
	}

	page, err := svc.GetEvents(ctx, id, service.HistoryOptions{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalEvents)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)
	require.Len(t, page.Events, 3)
	assert.Equal(t, service.EventTurnEnded, page.Events[0].Type)

	last, err := svc.GetEvents(ctx, id, service.HistoryOptions{Page: 3, Limit: 3})
	require.NoError(t, err)
	require.Len(t, last.Events, 1)
	assert.Equal(t, service.EventSessionCreated, last.Events[0].Type)
	assert.False(t, last.HasNext)
}

func TestGameService_AutoSettleTax(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t, service.CreateSessionRequest{AutoSettle: true},
		engine.WithDice(engine.NewScriptedDice([2]int{1, 3})))

	res, err := svc.RollDice(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 200, res.Amount)
	assert.Equal(t, 1300, res.State.Players[0].Balance)
	assert.Equal(t, []service.EventType{service.EventDiceRolled, service.EventTaxPaid}, eventTypes(res.Events))
	assert.True(t, res.Decisions.CanEndTurn)
}

func TestGameService_AutoSettleBankruptcy(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t, service.CreateSessionRequest{Rules: "pobre", AutoSettle: true},
		engine.WithDice(engine.NewScriptedDice([2]int{1, 3})))

	res, err := svc.RollDice(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Bankrupt)
	assert.Equal(t, engine.StateFinished, res.State.State)
	assert.Equal(t, "navio", res.State.WinningCharacter)
	assert.Equal(t, []service.EventType{
		service.EventDiceRolled,
		service.EventTaxPaid,
		service.EventBankrupt,
		service.EventGameOver,
	}, eventTypes(res.Events))

	_, err = svc.RollDice(ctx, id)
	assert.ErrorIs(t, err, engine.ErrGameFinished)
}

func TestGameService_AutoSettleCard(t *testing.T) {
	ctx := context.Background()
	bonus, err := engine.NewEventCard(engine.DeckChance, engine.ActionGrantMoney, "Prêmio de loteria", engine.CardParams{Amount: 50})
	require.NoError(t, err)
	gift, err := engine.NewEventCard(engine.DeckChest, engine.ActionGrantMoney, "Aniversário", engine.CardParams{Amount: 10})
	require.NoError(t, err)

	svc, id := newTestService(t, service.CreateSessionRequest{AutoSettle: true},
		engine.WithDice(engine.NewScriptedDice([2]int{3, 4})),
		engine.WithCards([]*engine.EventCard{bonus}, []*engine.EventCard{gift}))

	res, err := svc.RollDice(ctx, id)
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "Prêmio de loteria", res.Cards[0].Description)
	assert.Equal(t, 50, res.Cards[0].Delta)
	assert.Equal(t, 1550, res.State.Players[0].Balance)
	assert.Equal(t, 1, res.State.ChanceRemaining)
	assert.False(t, res.State.CardDue)
}

func TestGameService_ManualCard(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t, service.CreateSessionRequest{},
		engine.WithDice(engine.NewScriptedDice([2]int{3, 4})),
		engine.WithCards(nil, nil))

	res, err := svc.RollDice(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.State.CardDue)

	_, err = svc.ResolveCard(ctx, id)
	assert.ErrorIs(t, err, engine.ErrDeckExhausted)

	// the failed draw is logged and the turn can go on
	history, err := svc.GetEvents(ctx, id, service.HistoryOptions{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, service.EventDeckExhausted, history.Events[0].Type)

	_, err = svc.EndTurn(ctx, id)
	require.NoError(t, err)
}

func TestGameService_Trade(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t, service.CreateSessionRequest{})

	_, err := svc.ProposeTrade(ctx, id, "cartola", "navio")
	require.NoError(t, err)
	_, err = svc.SetOffer(ctx, id, "origin", engine.Offer{Cash: 100})
	require.NoError(t, err)

	_, err = svc.SetOffer(ctx, id, "sideways", engine.Offer{})
	assert.ErrorIs(t, err, engine.ErrInvalidTrade)

	res, err := svc.AcceptTrade(ctx, id, "origin")
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	res, err = svc.AcceptTrade(ctx, id, "destination")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	require.NotNil(t, res.State.Trade)

	res, err = svc.ExecuteTrade(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, res.State.Trade)
	assert.Equal(t, 1400, res.State.Players[0].Balance)
	assert.Equal(t, 1600, res.State.Players[1].Balance)
	assert.Equal(t, "cartola and navio completed a trade", res.Message)

	_, err = svc.CancelTrade(ctx, id)
	assert.ErrorIs(t, err, engine.ErrNoTrade)
}

func TestGameService_Construction(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t, service.CreateSessionRequest{},
		engine.WithDice(engine.NewScriptedDice([2]int{1, 2})))

	_, err := svc.RollDice(ctx, id)
	require.NoError(t, err)
	_, err = svc.Purchase(ctx, id)
	require.NoError(t, err)

	_, err = svc.BuildHouse(ctx, id, "Av. Presidente Vargas")
	assert.ErrorIs(t, err, engine.ErrNoMonopoly)

	res, err := svc.Mortgage(ctx, id, "Av. Presidente Vargas")
	require.NoError(t, err)
	assert.Equal(t, 30, res.Amount)

	res, err = svc.Redeem(ctx, id, "Av. Presidente Vargas")
	require.NoError(t, err)
	assert.Equal(t, 33, res.Amount)
	assert.Equal(t, 1440+30-33, res.State.Players[0].Balance)

	_, err = svc.SellHouse(ctx, id, "Av. Presidente Vargas")
	assert.ErrorIs(t, err, engine.ErrCannotBuild)
	_, err = svc.BuildHotel(ctx, id, "Interlagos")
	assert.ErrorIs(t, err, engine.ErrNotOwner)
}

func TestGameService_Jail(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t, service.CreateSessionRequest{})

	_, err := svc.PayBail(ctx, id)
	assert.ErrorIs(t, err, engine.ErrNotJailed)
	_, err = svc.UseLeaveJailCard(ctx, id)
	assert.ErrorIs(t, err, engine.ErrNotJailed)

	decisions, err := svc.GetDecisions(ctx, id)
	require.NoError(t, err)
	assert.False(t, decisions.Jail.Jailed)
	assert.True(t, decisions.CanRoll)
}

func TestGameService_DeclareBankruptcy(t *testing.T) {
	ctx := context.Background()
	svc, id := newTestService(t, service.CreateSessionRequest{})

	_, err := svc.DeclareBankruptcy(ctx, id, "chapeu")
	assert.ErrorIs(t, err, engine.ErrUnknownPlayer)

	res, err := svc.DeclareBankruptcy(ctx, id, "")
	require.NoError(t, err)
	assert.True(t, res.Bankrupt)
	assert.True(t, res.State.Players[0].Bankrupt)
	assert.Equal(t, "navio", res.State.WinningCharacter)
	assert.Equal(t, service.EventGameOver, res.Events[len(res.Events)-1].Type)
}

func TestGameService_Sessions(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession(ctx, service.CreateSessionRequest{Players: twoPlayers})
		require.NoError(t, err)
	}

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "t001", sessions[0].ID)

	info, err := svc.GetSession(ctx, "t002")
	require.NoError(t, err)
	assert.Equal(t, "t002", info.ID)

	require.NoError(t, svc.DeleteSession(ctx, "t002"))
	_, err = svc.GetSession(ctx, "t002")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, "t002"), service.ErrSessionNotFound)

	_, err = svc.RollDice(ctx, "zzzz")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	_, err = svc.GetGameState(ctx, "zzzz")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestGameService_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewManager(engine.WithLogger(zerolog.Nop()))
	svc := service.NewGameService(sessions, NewMockConfigManager())

	info, err := svc.CreateSession(ctx, service.CreateSessionRequest{Players: twoPlayers})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := svc.GetSession(ctx, info.ID)
				assert.NoError(t, err)
				assert.False(t, got.LastAccessedAt.IsZero())
				_, err = svc.ListSessions(ctx)
				assert.NoError(t, err)
				sessions.CleanupExpiredSessions(time.Hour)
			}
		}()
	}
	wg.Wait()

	got, err := svc.GetSession(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, got.LastAccessedAt.Before(info.LastAccessedAt))
}

func TestGameService_CancelledContext(t *testing.T) {
	svc, id := newTestService(t, service.CreateSessionRequest{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RollDice(ctx, id)
	assert.ErrorIs(t, err, context.Canceled)

	state, err := svc.GetGameState(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, state.DiceRolledThisTurn)
}

func TestGameService_Rules(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	infos, err := svc.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	rules, err := svc.LoadRules(ctx, "pobre")
	require.NoError(t, err)
	assert.Equal(t, 100, rules.StartingBalance)

	err = svc.SaveRules(ctx, "  ", engine.DefaultRules())
	assert.ErrorIs(t, err, service.ErrInvalidRequest)
	require.NoError(t, svc.SaveRules(ctx, "novo", engine.DefaultRules()))
	infos, err = svc.ListRules(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 3)
	assert.True(t, strings.HasPrefix(infos[2].ConfigID, "pobre"))
}
