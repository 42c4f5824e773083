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

	"github.com/rs/zerolog/log"

	"github.com/wricardo/boggle-blast/game/engine"
	"github.com/wricardo/boggle-blast/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultBoardName is the board preferred as the default when present.
const DefaultBoardName = "classic"

// Manager handles board configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.BoardConfig
	configs       map[string]*engine.BoardConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.BoardConfig),
	}

	m.defaultConfig = m.pickDefault()
	log.Debug().
		Str("dir", configDir).
		Str("default", m.defaultConfig.Name).
		Msg("config manager ready")

	return m, nil
}

// LoadConfig loads a board configuration by name
func (m *Manager) LoadConfig(name string) (*engine.BoardConfig, error) {
	key := strings.TrimSuffix(name, ".json")
	if key == "" || strings.ContainsAny(key, `/\`) {
		return nil, fmt.Errorf("%w: bad name %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, key+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, key)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}

	if err := engine.ValidateBoardConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[key] = &config
	return &config, nil
}

// ListConfigs returns information about every valid board in the directory,
// sorted by file name.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(id)
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping invalid board")
			continue
		}

		configs = append(configs, Describe(entry.Name(), id, config))
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].Filename < configs[j].Filename })
	return configs, nil
}

// Describe summarises a board for listings.
func Describe(filename, id string, config *engine.BoardConfig) *service.ConfigInfo {
	info := &service.ConfigInfo{
		Filename:    filename,
		ConfigID:    id,
		Name:        config.Name,
		Description: config.Description,
		Cols:        len(config.Columns),
	}
	if g, err := engine.ParseColumns(config.Columns); err == nil {
		info.Rows = g.Rows()
		info.Multipliers = engine.CountMultipliers(g)
		info.Blocked = engine.CountLetter(g, engine.Blocked)
	}
	return info
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.BoardConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached board and re-picks the default.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.BoardConfig)
	m.mu.Unlock()

	def := m.pickDefault()

	m.mu.Lock()
	m.defaultConfig = def
	m.mu.Unlock()
}

// SaveConfig validates and writes a board to <dir>/<name>.json.
func (m *Manager) SaveConfig(name string, config *engine.BoardConfig) error {
	if err := engine.ValidateBoardConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	key := strings.TrimSuffix(name, ".json")
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: bad file name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, key+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[key] = config
	m.mu.Unlock()

	log.Info().Str("config", key).Msg("saved board")
	return nil
}

// pickDefault prefers classic, then the first valid board on disk, then
// the built-in board.
func (m *Manager) pickDefault() *engine.BoardConfig {
	if config, err := m.LoadConfig(DefaultBoardName); err == nil {
		return config
	}

	configs, err := m.ListConfigs()
	if err == nil && len(configs) > 0 {
		if config, err := m.LoadConfig(configs[0].ConfigID); err == nil {
			return config
		}
	}

	log.Warn().Str("dir", m.configDir).Msg("no valid boards found, using built-in classic board")
	return engine.DefaultBoardConfig()
}
