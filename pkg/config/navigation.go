package config

import (
	"fmt"
	"sync"

	"github.com/gobwas/glob"
)

const (
	// SectionIDNavigation is the identifier for the navigation section
	SectionIDNavigation = "navigation"
)

// NavigationSection holds URL glob patterns constraining where the engine
// may navigate. Denied patterns take precedence; with no allowed patterns
// every URL not denied is permitted.
type NavigationSection struct {
	allowed []string
	denied  []string

	allowedGlobs []glob.Glob
	deniedGlobs  []glob.Glob
	mu           sync.RWMutex
}

// NewNavigationSection creates a navigation section with no restrictions.
func NewNavigationSection() *NavigationSection {
	return &NavigationSection{}
}

// ID returns the section identifier.
func (s *NavigationSection) ID() string {
	return SectionIDNavigation
}

// Title returns the section title.
func (s *NavigationSection) Title() string {
	return "Navigation Policy"
}

// Description returns the section description.
func (s *NavigationSection) Description() string {
	return "URL glob patterns constraining navigate actions. Denied patterns take precedence; an empty allowed list permits everything not denied."
}

// Data returns the current configuration data.
func (s *NavigationSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"allowed": toAnySlice(s.allowed),
		"denied":  toAnySlice(s.denied),
	}
}

// SetData updates the configuration from the provided data.
func (s *NavigationSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range data {
		patterns, err := toStringSlice(value)
		if err != nil {
			return fmt.Errorf("invalid value for %q: %w", key, err)
		}
		switch key {
		case "allowed":
			s.allowed = patterns
		case "denied":
			s.denied = patterns
		default:
			return fmt.Errorf("unknown navigation key %q", key)
		}
	}
	return s.compile()
}

// compile rebuilds the glob matchers. Callers must hold the write lock.
func (s *NavigationSection) compile() error {
	s.allowedGlobs = s.allowedGlobs[:0]
	for _, pattern := range s.allowed {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid allowed pattern '%s': %w", pattern, err)
		}
		s.allowedGlobs = append(s.allowedGlobs, g)
	}

	s.deniedGlobs = s.deniedGlobs[:0]
	for _, pattern := range s.denied {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid denied pattern '%s': %w", pattern, err)
		}
		s.deniedGlobs = append(s.deniedGlobs, g)
	}
	return nil
}

// Validate validates the current configuration.
func (s *NavigationSection) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compile()
}

// Reset resets the section to default configuration (no restrictions).
func (s *NavigationSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowed = nil
	s.denied = nil
	s.allowedGlobs = nil
	s.deniedGlobs = nil
}

// Allowed returns true if the URL passes the pattern rules. It satisfies
// the action engine's URLPolicy interface.
func (s *NavigationSection) Allowed(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Denied patterns take precedence
	for _, pattern := range s.deniedGlobs {
		if pattern.Match(url) {
			return false
		}
	}

	// If no allowed patterns specified, allow all (except denied)
	if len(s.allowedGlobs) == 0 {
		return true
	}

	for _, pattern := range s.allowedGlobs {
		if pattern.Match(url) {
			return true
		}
	}
	return false
}

// SetPatterns replaces both pattern lists programmatically.
func (s *NavigationSection) SetPatterns(allowed, denied []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowed = append([]string(nil), allowed...)
	s.denied = append([]string(nil), denied...)
	return s.compile()
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func toStringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string list, got %T", value)
	}
}
