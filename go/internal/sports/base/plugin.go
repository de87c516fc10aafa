package base

import (
	"fmt"
	"sync"
)

// SportPlugin defines the interface each sport plugin must implement.
// Plugins describe the sport-specific vocabulary the core consults; today
// that is the set of recognized position codes.
type SportPlugin interface {
	SportID() string
	PositionCodes() []string
}

var (
	registry   = make(map[string]SportPlugin)
	registryMu sync.RWMutex
)

// RegisterPlugin adds a plugin implementation under a key.
// It should be called in each sport plugin's init() function.
func RegisterPlugin(key string, plugin SportPlugin) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if key == "" {
		return fmt.Errorf("plugin key cannot be empty")
	}
	if _, exists := registry[key]; exists {
		return fmt.Errorf("plugin already registered for key %q", key)
	}
	registry[key] = plugin
	return nil
}

// GetPlugin retrieves a plugin by key or returns an error if not found.
func GetPlugin(key string) (SportPlugin, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	plugin, exists := registry[key]
	if !exists {
		return nil, fmt.Errorf("no sport plugin registered for key %q", key)
	}
	return plugin, nil
}

// RegisteredSports returns the keys of all registered plugins.
func RegisteredSports() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	return keys
}

// KnownPosition reports whether code is a recognized position for the sport.
// This is an advisory lookup: leagues may define custom positions, so an
// unknown code (or an unregistered sport) is a warning for the caller to
// log, never grounds for rejecting a pick.
func KnownPosition(sportID, code string) bool {
	plugin, err := GetPlugin(sportID)
	if err != nil {
		return false
	}
	for _, c := range plugin.PositionCodes() {
		if c == code {
			return true
		}
	}
	return false
}
