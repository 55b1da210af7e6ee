package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/banco-imobiliario/game/engine"
	"github.com/wricardo/banco-imobiliario/game/service"
)

var (
	ErrConfigNotFound = errors.New("rule set not found")
	ErrInvalidConfig  = errors.New("invalid rule set")
)

// Manager loads and caches rule sets stored as JSON files in a directory.
type Manager struct {
	configDir    string
	defaultRules *engine.Rules
	rules        map[string]*engine.Rules
	mu           sync.RWMutex
}

// NewManager creates a rule set manager over configDir
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		rules:     make(map[string]*engine.Rules),
	}

	if err := m.loadDefaultRules(); err != nil {
		return nil, fmt.Errorf("failed to load default rules: %w", err)
	}

	return m, nil
}

// LoadRules loads a rule set by name. Fields missing from the file keep
// their classic values.
func (m *Manager) LoadRules(name string) (*engine.Rules, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if rules, exists := m.rules[name]; exists {
		m.mu.RUnlock()
		return copyRules(rules), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if rules, exists := m.rules[name]; exists {
		return copyRules(rules), nil
	}

	rules, err := m.readRules(name)
	if err != nil {
		return nil, err
	}

	m.rules[name] = rules
	return copyRules(rules), nil
}

func (m *Manager) readRules(name string) (*engine.Rules, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, name)
		}
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}

	rules := engine.DefaultRules()
	if err := json.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}
	if err := engine.ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}
	return rules, nil
}

// ListRules describes every valid rule set in the directory, sorted by id.
// Files that fail to load are skipped.
func (m *Manager) ListRules() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var infos []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		rules, err := m.LoadRules(id)
		if err != nil {
			continue
		}

		infos = append(infos, &service.ConfigInfo{
			Filename:        entry.Name(),
			ConfigID:        id,
			Name:            rules.Name,
			Description:     rules.Description,
			StartingBalance: rules.StartingBalance,
			PassStartBonus:  rules.PassStartBonus,
			EnforceFunds:    rules.EnforceFunds,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ConfigID < infos[j].ConfigID })
	return infos, nil
}

// GetDefault returns the default rule set
func (m *Manager) GetDefault() *engine.Rules {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyRules(m.defaultRules)
}

// SetDefault sets the default rule set by name
func (m *Manager) SetDefault(name string) error {
	rules, err := m.LoadRules(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultRules = rules
	return nil
}

// RefreshCache drops every cached rule set and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.rules = make(map[string]*engine.Rules)
	m.mu.Unlock()

	return m.loadDefaultRules()
}

// loadDefaultRules prefers classic.json, then the first valid file, then the
// built-in classic rules.
func (m *Manager) loadDefaultRules() error {
	rules, err := m.LoadRules("classic")
	if err != nil {
		infos, listErr := m.ListRules()
		if listErr != nil || len(infos) == 0 {
			rules = engine.DefaultRules()
		} else if rules, err = m.LoadRules(infos[0].ConfigID); err != nil {
			rules = engine.DefaultRules()
		}
	}

	m.mu.Lock()
	m.defaultRules = rules
	m.mu.Unlock()
	return nil
}

// SaveRules validates and writes a rule set to disk
func (m *Manager) SaveRules(name string, rules *engine.Rules) error {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: bad rule set id %q", ErrInvalidConfig, name)
	}
	if err := engine.ValidateRules(rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rule set: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write rule set: %w", err)
	}

	m.mu.Lock()
	m.rules[name] = copyRules(rules)
	m.mu.Unlock()

	return nil
}

func copyRules(r *engine.Rules) *engine.Rules {
	if r == nil {
		return nil
	}
	c := *r
	c.StationRent = append([]int(nil), r.StationRent...)
	c.UtilityMultipliers = append([]int(nil), r.UtilityMultipliers...)
	return &c
}
