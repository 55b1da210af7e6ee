// Package api serves the Banco Imobiliário game service over HTTP.
//
// Every route lives under /api and speaks JSON. Errors come back as
// {"error": "..."} with a status derived from the error: 404 for unknown
// sessions, rule sets, players or titles, 400 for malformed requests and
// invalid rules, 409 when the game forbids the command right now.
//
// Sessions:
//   - POST   /api/sessions                 {rules, players[], seed, auto_settle}
//   - GET    /api/sessions                 ?sort=created|accessed&order=asc|desc&limit=N
//   - GET    /api/sessions/{id}
//   - DELETE /api/sessions/{id}
//
// Turn commands (POST /api/sessions/{id}/...):
//
//	roll, end-turn, purchase, rent {dice_sum}, card, jail/card, jail/bail,
//	build {instrument, hotel}, sell, mortgage, redeem {instrument},
//	bankrupt {character}
//
// Trades:
//   - POST   /api/sessions/{id}/trade                {origin, destination}
//   - PUT    /api/sessions/{id}/trade/offers/{side}  {cash, properties, leave_jail_cards}
//   - DELETE /api/sessions/{id}/trade/offers/{side}
//   - POST   /api/sessions/{id}/trade/accept/{side}
//   - POST   /api/sessions/{id}/trade/execute
//   - DELETE /api/sessions/{id}/trade
//
// Read side: /state, /helpers and /events?page=&limit=&order= under a
// session, plus /api/rules and /api/rules/{name}. POST /api/rules saves a
// rule set; fields left out keep their classic values.
//
// GET /ws?session={id} upgrades to a WebSocket that receives a
// state_update after every command followed by one "event" message per
// game event.
package api
