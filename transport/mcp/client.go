package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/banco-imobiliario/game/engine"
	"github.com/wricardo/banco-imobiliario/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

const instructions = `Banco Imobiliário - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Be the last player standing. Buy titles, complete color groups, build
houses and hotels, and collect rent until every rival goes bankrupt.

TURN FLOW:
1. roll_dice. Doubles mean you roll again; three doubles send you to jail.
2. Settle the landing: collect_rent on a rival's title, resolve_card on
   Sorte/Revés, purchase a free title if you want it.
3. Optionally build, sell_house, mortgage or redeem your titles.
4. end_turn.

Sessions created with auto_settle pay rent and taxes and resolve cards on
their own; you only decide purchases, construction and trades.

Use decision_helpers whenever you are unsure what is allowed right now.`

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Banco Imobiliário",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	c.registerTools()
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

// sessionTool builds a tool whose input always carries session_id
func sessionTool(name, description string, props map[string]interface{}, required ...string) mcp.Tool {
	properties := map[string]interface{}{
		"session_id": stringProp("Session ID"),
	}
	for k, v := range props {
		properties[k] = v
	}
	return mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   append([]string{"session_id"}, required...),
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game with 2 to 6 players",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"players": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":      stringProp("Player name"),
							"character": stringProp("Unique character token"),
						},
						"required": []string{"character"},
					},
					"description": "Players in seating order",
				},
				"rules": stringProp("Rule set id (optional, see list_rules)"),
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for dice and deck shuffles (optional)",
				},
				"auto_settle": map[string]interface{}{
					"type":        "boolean",
					"description": "Pay rent and taxes and resolve cards automatically",
				},
			},
			Required: []string{"players"},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(sessionTool("get_session", "Get details of a specific session", nil), c.handleGetSession)
	c.mcpServer.AddTool(sessionTool("game_state", "Get the board, balances and holdings", nil), c.handleGameState)
	c.mcpServer.AddTool(sessionTool("decision_helpers", "What the current player may do right now", nil), c.handleDecisions)
	c.mcpServer.AddTool(sessionTool("event_log", "View past game events", map[string]interface{}{
		"page":  map[string]interface{}{"type": "integer", "description": "Page number (default 1)"},
		"limit": map[string]interface{}{"type": "integer", "description": "Events per page (default 20)"},
	}), c.handleEventLog)

	// Turn
	c.mcpServer.AddTool(sessionTool("roll_dice", "Roll the dice and move the current player", map[string]interface{}{
		"intent": stringProp("Brief explanation of what you hope for (serves as a rubber duck)"),
	}), c.command("roll"))
	c.mcpServer.AddTool(sessionTool("end_turn", "Pass the turn to the next player", nil), c.command("end-turn"))
	c.mcpServer.AddTool(sessionTool("purchase", "Buy the title under the current player", map[string]interface{}{
		"intent": stringProp("Why this title is worth buying"),
	}), c.command("purchase"))
	c.mcpServer.AddTool(sessionTool("collect_rent", "Pay the rent or tax due on the current space", map[string]interface{}{
		"dice_sum": map[string]interface{}{
			"type":        "integer",
			"description": "Dice total for utility rent (optional, defaults to the last roll)",
		},
	}), c.handleCollectRent)
	c.mcpServer.AddTool(sessionTool("resolve_card", "Draw and apply a Sorte/Revés card", nil), c.command("card"))
	c.mcpServer.AddTool(sessionTool("use_jail_card", "Leave jail with a kept card", nil), c.command("jail/card"))
	c.mcpServer.AddTool(sessionTool("pay_bail", "Pay the fine to leave jail", nil), c.command("jail/bail"))

	// Construction and mortgages
	instrument := map[string]interface{}{"instrument": stringProp("Title name, e.g. Av. Presidente Vargas")}
	c.mcpServer.AddTool(sessionTool("build", "Build a house or hotel on a title", map[string]interface{}{
		"instrument": instrument["instrument"],
		"hotel": map[string]interface{}{
			"type":        "boolean",
			"description": "Build a hotel instead of a house",
		},
	}, "instrument"), c.handleBuild)
	c.mcpServer.AddTool(sessionTool("sell_house", "Sell the top building of a title", instrument, "instrument"), c.instrumentCommand("sell"))
	c.mcpServer.AddTool(sessionTool("mortgage", "Mortgage a title to the bank", instrument, "instrument"), c.instrumentCommand("mortgage"))
	c.mcpServer.AddTool(sessionTool("redeem", "Pay back a mortgage", instrument, "instrument"), c.instrumentCommand("redeem"))
	c.mcpServer.AddTool(sessionTool("declare_bankruptcy", "Take a player out of the game", map[string]interface{}{
		"character": stringProp("Character to declare bankrupt (default: current player)"),
	}), c.handleBankrupt)

	// Trades
	side := map[string]interface{}{
		"type":        "string",
		"enum":        []string{string(engine.SideOrigin), string(engine.SideDestination)},
		"description": "Trade side",
	}
	c.mcpServer.AddTool(sessionTool("propose_trade", "Open a negotiation between two players", map[string]interface{}{
		"origin":      stringProp("Character proposing"),
		"destination": stringProp("Character receiving the proposal"),
	}, "origin", "destination"), c.handleProposeTrade)
	c.mcpServer.AddTool(sessionTool("set_offer", "Replace one side's offer", map[string]interface{}{
		"side": side,
		"cash": map[string]interface{}{"type": "integer", "description": "Cash offered"},
		"properties": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Titles offered",
		},
		"leave_jail_cards": map[string]interface{}{"type": "integer", "description": "Leave-jail cards offered"},
	}, "side"), c.handleSetOffer)
	c.mcpServer.AddTool(sessionTool("accept_trade", "Accept the current offers for one side", map[string]interface{}{
		"side": side,
	}, "side"), c.handleAcceptTrade)
	c.mcpServer.AddTool(sessionTool("execute_trade", "Apply a trade both sides accepted", nil), c.command("trade/execute"))
	c.mcpServer.AddTool(sessionTool("cancel_trade", "Drop the negotiation in progress", nil), c.handleCancelTrade)

	// Rules
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rules",
		Description: "List the available rule sets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRules)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of Banco Imobiliário and how to play through these tools",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(request mcp.CallToolRequest, suffix string) string {
	path := "/api/sessions/" + url.PathEscape(request.GetString("session_id", ""))
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}

// post sends a session command and renders its result
func (c *Client) post(ctx context.Context, method, path string, body interface{}) (*mcp.CallToolResult, error) {
	var result service.ActionResult
	if err := c.apiCall(ctx, method, path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

// command builds a handler for a session command without arguments
func (c *Client) command(suffix string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return c.post(ctx, "POST", sessionPath(request, suffix), nil)
	}
}

func (c *Client) instrumentCommand(suffix string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body := map[string]interface{}{
			"instrument": request.GetString("instrument", ""),
		}
		return c.post(ctx, "POST", sessionPath(request, suffix), body)
	}
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := service.CreateSessionRequest{
		Rules:      request.GetString("rules", ""),
		Seed:       uint64(request.GetInt("seed", 0)),
		AutoSettle: request.GetBool("auto_settle", false),
	}
	rawPlayers, _ := args["players"].([]interface{})
	for _, raw := range rawPlayers {
		switch p := raw.(type) {
		case map[string]interface{}:
			name, _ := p["name"].(string)
			character, _ := p["character"].(string)
			req.Players = append(req.Players, engine.PlayerSpec{Name: name, Character: character})
		case string:
			req.Players = append(req.Players, engine.PlayerSpec{Name: p, Character: p})
		}
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", req, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&b, "- %s (Rules: %s, Players: %d, State: %s, Created: %s)\n",
			s.ID, s.RulesID, len(s.State.Players), s.State.State, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(request, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var state engine.GameSnapshot
	if err := c.apiCall(ctx, "GET", sessionPath(request, "state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleDecisions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var decisions engine.Decisions
	if err := c.apiCall(ctx, "GET", sessionPath(request, "helpers"), nil, &decisions); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatDecisions(&decisions)), nil
}

func (c *Client) handleEventLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	path := sessionPath(request, "events")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var events service.EventsResponse
	if err := c.apiCall(ctx, "GET", path, nil, &events); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatEvents(&events)), nil
}

func (c *Client) handleCollectRent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{
		"dice_sum": request.GetInt("dice_sum", 0),
	}
	return c.post(ctx, "POST", sessionPath(request, "rent"), body)
}

func (c *Client) handleBuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{
		"instrument": request.GetString("instrument", ""),
		"hotel":      request.GetBool("hotel", false),
	}
	return c.post(ctx, "POST", sessionPath(request, "build"), body)
}

func (c *Client) handleBankrupt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{
		"character": request.GetString("character", ""),
	}
	return c.post(ctx, "POST", sessionPath(request, "bankrupt"), body)
}

func (c *Client) handleProposeTrade(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]interface{}{
		"origin":      request.GetString("origin", ""),
		"destination": request.GetString("destination", ""),
	}
	return c.post(ctx, "POST", sessionPath(request, "trade"), body)
}

func (c *Client) handleSetOffer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	offer := engine.Offer{
		Cash:           request.GetInt("cash", 0),
		LeaveJailCards: request.GetInt("leave_jail_cards", 0),
	}
	rawProps, _ := request.GetArguments()["properties"].([]interface{})
	for _, raw := range rawProps {
		if name, ok := raw.(string); ok {
			offer.Properties = append(offer.Properties, name)
		}
	}
	side := url.PathEscape(request.GetString("side", ""))
	return c.post(ctx, "PUT", sessionPath(request, "trade/offers/"+side), offer)
}

func (c *Client) handleAcceptTrade(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	side := url.PathEscape(request.GetString("side", ""))
	return c.post(ctx, "POST", sessionPath(request, "trade/accept/"+side), nil)
}

func (c *Client) handleCancelTrade(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.post(ctx, "DELETE", sessionPath(request, "trade"), nil)
}

func (c *Client) handleListRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var infos []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/rules", nil, &infos); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available Rule Sets (%d):\n\n", len(infos))
	for _, info := range infos {
		fmt.Fprintf(&b, "- %s: %s (start %d, pass-start bonus %d", info.ConfigID, info.Description, info.StartingBalance, info.PassStartBonus)
		if info.EnforceFunds {
			b.WriteString(", funds enforced")
		}
		b.WriteString(")\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions + `

RENT:
- Deeds: base rent, doubled while the owner holds the whole color group
  unimproved, then the rent table for 1-4 houses and the hotel.
- Stations: rent grows with the number of stations the owner holds.
- Utilities: dice total times a multiplier that grows with utilities held.
- Mortgaged titles collect nothing.

CONSTRUCTION:
- Only on a complete, unmortgaged color group.
- Four houses, then a hotel. Selling refunds half the cost.

JAIL:
- Three doubles in a row, the Vá para a Prisão space or a card sends you in.
- Leave by rolling doubles, paying bail or using a kept card. After the
  last allowed attempt you are released.

TRADES:
- propose_trade, then set_offer for each side, accept_trade for both
  sides and execute_trade. Changing an offer withdraws both acceptances.`), nil
}

// Formatting

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nRules: %s\nSeed: %d\n", session.ID, session.RulesID, session.Seed)
	if session.AutoSettle {
		b.WriteString("Auto-settle: on\n")
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(&session.State))
	return b.String()
}

func spaceName(state *engine.GameSnapshot, position int) string {
	if position >= 0 && position < len(state.Board) {
		return state.Board[position].Name
	}
	return fmt.Sprintf("#%d", position)
}

func formatGameState(state *engine.GameSnapshot) string {
	if state == nil {
		return "State unavailable"
	}

	var b strings.Builder
	if state.State == engine.StateFinished {
		fmt.Fprintf(&b, "GAME OVER - %s wins\n\n", state.WinningCharacter)
	}

	b.WriteString("Players:\n")
	for i, p := range state.Players {
		marker := "  "
		if i == state.CurrentPlayerIndex && state.State == engine.StateInProgress {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s (%s): $%d at %s", marker, p.Character, p.Name, p.Balance, spaceName(state, p.Position))
		switch {
		case p.Bankrupt:
			b.WriteString(" [BANKRUPT]")
		case p.Jailed:
			fmt.Fprintf(&b, " [JAIL, attempts %d]", p.Attempts)
		}
		if p.LeaveJailCards > 0 {
			fmt.Fprintf(&b, " [%d leave-jail card(s)]", p.LeaveJailCards)
		}
		b.WriteString("\n")
		if len(p.Holdings) > 0 {
			fmt.Fprintf(&b, "    holds: %s\n", strings.Join(p.Holdings, ", "))
		}
	}

	if state.DiceRolledThisTurn {
		fmt.Fprintf(&b, "\nLast dice: %d + %d\n", state.LastDice[0], state.LastDice[1])
	}
	if state.RentDue {
		b.WriteString("Rent or tax is due (collect_rent)\n")
	}
	if state.CardDue {
		b.WriteString("A card must be drawn (resolve_card)\n")
	}
	if t := state.Trade; t != nil {
		fmt.Fprintf(&b, "\nTrade %s -> %s\n", t.Origin, t.Destination)
		fmt.Fprintf(&b, "  origin offers %s (accepted: %v)\n", formatOffer(t.OriginOffer), t.OriginAccepted)
		fmt.Fprintf(&b, "  destination offers %s (accepted: %v)\n", formatOffer(t.DestinationOffer), t.DestinationAccepted)
	}
	fmt.Fprintf(&b, "\nDecks: %d Sorte, %d Revés\n", state.ChanceRemaining, state.ChestRemaining)
	return b.String()
}

func formatOffer(o engine.Offer) string {
	parts := []string{fmt.Sprintf("$%d", o.Cash)}
	if len(o.Properties) > 0 {
		parts = append(parts, strings.Join(o.Properties, ", "))
	}
	if o.LeaveJailCards > 0 {
		parts = append(parts, fmt.Sprintf("%d leave-jail card(s)", o.LeaveJailCards))
	}
	return strings.Join(parts, " + ")
}

func formatDecisions(d *engine.Decisions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current player: %s\n", d.Character)
	fmt.Fprintf(&b, "Can roll: %v\nCan end turn: %v\n", d.CanRoll, d.CanEndTurn)
	if d.RentDue {
		b.WriteString("Rent or tax due: collect_rent\n")
	}
	if d.CardDue {
		b.WriteString("Card due: resolve_card\n")
	}
	if d.Purchasable {
		fmt.Fprintf(&b, "Purchasable for $%d (affordable: %v)\n", d.Price, d.CanAffordCurrentSpace)
	}
	if len(d.Buildable) > 0 {
		fmt.Fprintf(&b, "Can build on: %s\n", strings.Join(d.Buildable, ", "))
	}
	if d.Jail.Jailed {
		fmt.Fprintf(&b, "In jail: %d attempts left, bail $%d (can pay: %v), card: %v\n",
			d.Jail.AttemptsLeft, d.Jail.BailFine, d.Jail.CanPayBail, d.Jail.HasCard)
	}
	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Message != "" {
		b.WriteString(result.Message + "\n")
	}
	if r := result.Roll; r != nil {
		fmt.Fprintf(&b, "Rolled %d + %d", r.Die1, r.Die2)
		if r.Double {
			b.WriteString(" (double)")
		}
		fmt.Fprintf(&b, " -> %s\n", r.Space)
	}
	for _, card := range result.Cards {
		fmt.Fprintf(&b, "Card: %s\n", card.Description)
	}
	if len(result.Events) > 1 {
		b.WriteString("\nEvents:\n")
		for _, e := range result.Events {
			fmt.Fprintf(&b, "- %s\n", e.Message)
		}
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(&result.State))
	b.WriteString("\n")
	b.WriteString(formatDecisions(&result.Decisions))
	return b.String()
}

func formatEvents(events *service.EventsResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Events (Page %d/%d), Total: %d\n\n", events.Page, events.TotalPages, events.TotalEvents)
	for _, e := range events.Events {
		fmt.Fprintf(&b, "[%s] %s: %s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Message)
	}
	return b.String()
}
