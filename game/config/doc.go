// Package config provides rule set and process settings for the game server.
//
// Rule sets are JSON files in the configs directory, one engine.Rules per
// file. The file name without extension is the rule set id used when
// creating a session. Fields a file leaves out keep their classic values,
// so a variant only lists what it changes:
//
//	{
//	  "name": "rigoroso",
//	  "description": "Saldo obrigatório para compras e construções",
//	  "enforce_funds": true
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal().Err(err).Msg("config")
//	}
//
//	rules, err := manager.LoadRules("classic")
//	infos, err := manager.ListRules()
//
// Every loaded file is checked with engine.ValidateRules. Invalid files are
// reported by LoadRules and skipped by ListRules.
//
// Process settings (port, directories, session TTL, ngrok) come from the
// environment through LoadEnv.
package config
