package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDTimeouts is the identifier for the timeouts section
	SectionIDTimeouts = "timeouts"

	// Default timeout values in milliseconds
	DefaultShortTimeoutMs      = 3000.0
	DefaultActionTimeoutMs     = 10000.0
	DefaultNavigationTimeoutMs = 30000.0
)

// TimeoutsSection holds the three duration constants the action engine
// runs with: a short timeout for optimistic waits such as new-tab
// detection, a default timeout for general interactions, and the longest
// for full page navigations.
type TimeoutsSection struct {
	short      float64
	action     float64
	navigation float64
	mu         sync.RWMutex
}

// NewTimeoutsSection creates a timeouts section with default values.
func NewTimeoutsSection() *TimeoutsSection {
	return &TimeoutsSection{
		short:      DefaultShortTimeoutMs,
		action:     DefaultActionTimeoutMs,
		navigation: DefaultNavigationTimeoutMs,
	}
}

// ID returns the section identifier.
func (s *TimeoutsSection) ID() string {
	return SectionIDTimeouts
}

// Title returns the section title.
func (s *TimeoutsSection) Title() string {
	return "Timeouts"
}

// Description returns the section description.
func (s *TimeoutsSection) Description() string {
	return "Timeouts in milliseconds for browser interactions: short (optimistic waits), action (clicks and waits), navigation (full page loads)."
}

// Data returns the current configuration data.
func (s *TimeoutsSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"short_ms":      s.short,
		"action_ms":     s.action,
		"navigation_ms": s.navigation,
	}
}

// SetData updates the configuration from the provided data.
func (s *TimeoutsSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range data {
		ms, ok := value.(float64)
		if !ok {
			return fmt.Errorf("invalid value type for %q: expected number, got %T", key, value)
		}
		switch key {
		case "short_ms":
			s.short = ms
		case "action_ms":
			s.action = ms
		case "navigation_ms":
			s.navigation = ms
		default:
			return fmt.Errorf("unknown timeout key %q", key)
		}
	}
	return nil
}

// Validate validates the current configuration.
func (s *TimeoutsSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for name, ms := range map[string]float64{
		"short_ms":      s.short,
		"action_ms":     s.action,
		"navigation_ms": s.navigation,
	} {
		if ms <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, ms)
		}
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *TimeoutsSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.short = DefaultShortTimeoutMs
	s.action = DefaultActionTimeoutMs
	s.navigation = DefaultNavigationTimeoutMs
}

// Short returns the short timeout in milliseconds.
func (s *TimeoutsSection) Short() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.short
}

// Action returns the action timeout in milliseconds.
func (s *TimeoutsSection) Action() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.action
}

// Navigation returns the navigation timeout in milliseconds.
func (s *TimeoutsSection) Navigation() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.navigation
}
