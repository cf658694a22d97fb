package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates and initializes the global configuration manager.
// This should be called once at application startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	// Create file store
	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	// Create manager
	manager := NewManager(store)

	// Register default sections
	if err := manager.RegisterSection(NewTimeoutsSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewScrollSection()); err != nil {
		return err
	}

	if err := manager.RegisterSection(NewNavigationSection()); err != nil {
		return err
	}

	// Load configuration
	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetTimeouts returns the timeouts section from global config.
// Returns nil if config is not initialized.
func GetTimeouts() *TimeoutsSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDTimeouts)
	if !ok {
		return nil
	}

	timeouts, ok := section.(*TimeoutsSection)
	if !ok {
		return nil
	}

	return timeouts
}

// GetScroll returns the scroll section from global config.
// Returns nil if config is not initialized.
func GetScroll() *ScrollSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDScroll)
	if !ok {
		return nil
	}

	scroll, ok := section.(*ScrollSection)
	if !ok {
		return nil
	}

	return scroll
}

// GetNavigation returns the navigation section from global config.
// Returns nil if config is not initialized.
func GetNavigation() *NavigationSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDNavigation)
	if !ok {
		return nil
	}

	navigation, ok := section.(*NavigationSection)
	if !ok {
		return nil
	}

	return navigation
}
