package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the process settings read from the environment. CLI flags
// override them.
type Settings struct {
	Port        int           `env:"PORT" envDefault:"8080"`
	ConfigDir   string        `env:"BANCO_CONFIG_DIR" envDefault:"configs"`
	DefaultRule string        `env:"BANCO_DEFAULT_RULES" envDefault:"classic"`
	SessionTTL  time.Duration `env:"BANCO_SESSION_TTL" envDefault:"24h"`
	APIURL      string        `env:"BANCO_API_URL" envDefault:"http://localhost:8080"`
	Debug       bool          `env:"BANCO_DEBUG"`

	NgrokEnabled bool   `env:"NGROK_ENABLED"`
	NgrokDomain  string `env:"NGROK_DOMAIN"`
	NgrokToken   string `env:"NGROK_AUTHTOKEN"`
}

// LoadEnv parses Settings from the process environment
func LoadEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if s.Port <= 0 || s.Port > 65535 {
		return Settings{}, fmt.Errorf("parse env: PORT out of range: %d", s.Port)
	}
	return s, nil
}
