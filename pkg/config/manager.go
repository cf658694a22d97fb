package config

import (
	"fmt"
	"sync"
)

// Section is one named group of settings. Sections own their typed state
// and translate it to and from the store's generic maps.
type Section interface {
	// ID returns the stable section identifier used in the store
	ID() string

	// Title returns a human-readable section title
	Title() string

	// Description returns a human-readable section description
	Description() string

	// Data returns the current configuration data
	Data() map[string]any

	// SetData updates the configuration from the provided data
	SetData(data map[string]any) error

	// Validate validates the current configuration
	Validate() error

	// Reset resets the section to default configuration
	Reset()
}

// Manager coordinates registered sections with a backing store.
type Manager struct {
	store    Store
	sections map[string]Section
	order    []string
	mu       sync.RWMutex
}

// NewManager creates a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// RegisterSection registers a section with the manager. Registering the
// same ID twice is an error.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}
	m.sections[id] = section
	m.order = append(m.order, id)
	return nil
}

// GetSection returns a registered section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns all registered sections in registration order.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.order))
	for _, id := range m.order {
		sections = append(sections, m.sections[id])
	}
	return sections
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// LoadAll reloads the store and pushes each section's data into it,
// validating as it goes.
func (m *Manager) LoadAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	for _, id := range m.order {
		section := m.sections[id]

		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to load section %q: %w", id, err)
		}
		if err := section.SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %q: %w", id, err)
		}
		if err := section.Validate(); err != nil {
			return fmt.Errorf("invalid configuration in section %q: %w", id, err)
		}
	}
	return nil
}

// SaveAll validates every registered section, writes it back to the store
// and persists the result.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		section := m.sections[id]
		if err := section.Validate(); err != nil {
			return fmt.Errorf("invalid configuration in section %q: %w", id, err)
		}
		if err := m.store.SetSection(id, section.Data()); err != nil {
			return fmt.Errorf("failed to store section %q: %w", id, err)
		}
	}
	return m.store.Save()
}

// ResetAll resets every registered section to its defaults.
func (m *Manager) ResetAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		m.sections[id].Reset()
	}
}
