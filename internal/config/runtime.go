package config

import "sync"

// RuntimeSettings holds values that may change while the demo runs
type RuntimeSettings struct {
	mu        sync.RWMutex
	fpsLimit  int // 0 = unlimited / vsync
	showPanel bool
}

var globalRuntimeSettings = &RuntimeSettings{
	showPanel: true,
}

// Apply seeds the runtime settings from a loaded config
func Apply(c Config) {
	SetFPSLimit(c.Render.FPSLimit)
	SetShowPanel(c.Render.ShowPanel)
}

// GetFPSLimit returns the current frame cap
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap, clamped to [0, 1000]
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRuntimeSettings.fpsLimit = limit
}

func GetShowPanel() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.showPanel
}

func SetShowPanel(show bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.showPanel = show
}

// ToggleShowPanel flips panel visibility and returns the new value
func ToggleShowPanel() bool {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.showPanel = !globalRuntimeSettings.showPanel
	return globalRuntimeSettings.showPanel
}
