// Package mcp exposes Banco Imobiliário to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request to the REST
// API (see package api) and the JSON answer is rendered as plain text an
// agent can read. Errors from the API come back as tool errors carrying the
// API message.
//
// Tools:
//   - create_session, list_sessions, get_session
//   - game_state, decision_helpers, event_log
//   - roll_dice, end_turn, purchase, collect_rent, resolve_card
//   - use_jail_card, pay_bail
//   - build, sell_house, mortgage, redeem, declare_bankruptcy
//   - propose_trade, set_offer, accept_trade, execute_trade, cancel_trade
//   - list_rules, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
