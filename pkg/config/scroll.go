package config

import (
	"fmt"
	"math"
	"sync"
)

const (
	// SectionIDScroll is the identifier for the scroll section
	SectionIDScroll = "scroll"

	// DefaultMaxScrollAmount is the default scroll clamp in pixels
	DefaultMaxScrollAmount = 5000
)

// ScrollSection holds the scroll clamp applied to a single scroll action.
type ScrollSection struct {
	maxAmount int
	mu        sync.RWMutex
}

// NewScrollSection creates a scroll section with default settings.
func NewScrollSection() *ScrollSection {
	return &ScrollSection{maxAmount: DefaultMaxScrollAmount}
}

// ID returns the section identifier.
func (s *ScrollSection) ID() string {
	return SectionIDScroll
}

// Title returns the section title.
func (s *ScrollSection) Title() string {
	return "Scrolling"
}

// Description returns the section description.
func (s *ScrollSection) Description() string {
	return "Limits applied to scroll actions. max_amount caps a single scroll offset in pixels."
}

// Data returns the current configuration data.
func (s *ScrollSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{"max_amount": float64(s.maxAmount)}
}

// SetData updates the configuration from the provided data.
func (s *ScrollSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range data {
		if key != "max_amount" {
			return fmt.Errorf("unknown scroll key %q", key)
		}
		amount, ok := value.(float64)
		if !ok {
			return fmt.Errorf("invalid value type for %q: expected number, got %T", key, value)
		}
		s.maxAmount = int(math.Round(amount))
	}
	return nil
}

// Validate validates the current configuration.
func (s *ScrollSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.maxAmount <= 0 {
		return fmt.Errorf("max_amount must be positive, got %d", s.maxAmount)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *ScrollSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxAmount = DefaultMaxScrollAmount
}

// MaxAmount returns the scroll clamp in pixels.
func (s *ScrollSection) MaxAmount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxAmount
}
