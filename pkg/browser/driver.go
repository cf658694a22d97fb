package browser

import (
	"errors"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Driver is the automation capability the action engine runs against.
// A Session backed by Playwright is the production implementation; tests
// substitute in-package fakes.
//
// All timeouts are in milliseconds, matching Playwright conventions.
type Driver interface {
	// Count returns how many elements currently match the selector.
	Count(selector string) (int, error)

	// IsVisible reports whether the first matching element is visible.
	IsVisible(selector string) (bool, error)

	// IsEnabled reports whether the first matching element is enabled.
	IsEnabled(selector string) (bool, error)

	// Click clicks the first matching element.
	Click(selector string, opts ClickOptions) error

	// Fill replaces the value of the first matching input element.
	Fill(selector, value string, timeout float64) error

	// SelectByValue selects an option of the first matching select element.
	SelectByValue(selector, value string, timeout float64) error

	// TextContent returns the text content of the first matching element.
	// A detached or text-less element yields an empty string, not an error.
	TextContent(selector string, timeout float64) (string, error)

	// WaitForSelector waits until an element matching the selector is visible.
	WaitForSelector(selector string, timeout float64) error

	// Evaluate runs a script in the page with one serializable argument and
	// returns its serializable result.
	Evaluate(script string, arg any) (any, error)

	// Press presses a key or +-joined key combination on the focused element.
	Press(combination string) error

	// Navigate loads the URL and waits for the DOM to be ready.
	Navigate(url string, timeout float64) error

	// Back and Forward perform history navigation.
	Back(timeout float64) error
	Forward(timeout float64) error

	// ViewportSize returns the current viewport dimensions in CSS pixels.
	// ok is false when the viewport size is unavailable.
	ViewportSize() (width, height int, ok bool)

	// BoundingBox returns the bounding box of the first matching element,
	// or nil when the element is not rendered.
	BoundingBox(selector string) (*Rect, error)

	// ExpectNewPage arms a new-page listener, runs trigger, and waits up to
	// timeout for a page to open. The listener is armed strictly before
	// trigger runs. A trigger error is returned as-is; a quiet expiry is a
	// timeout error recognizable via IsTimeout.
	ExpectNewPage(timeout float64, trigger func() error) (Page, error)

	// PageText returns the cleaned text content of the whole page.
	PageText() (string, error)
}

// Page is the minimal handle to a newly opened page.
type Page interface {
	URL() string

	// WaitForReady waits for the page to reach the DOM-ready load state.
	WaitForReady(timeout float64) error
}

// ClickOptions configures a Driver click.
type ClickOptions struct {
	// CtrlOrMeta adds the platform link-in-new-tab modifier to the click.
	CtrlOrMeta bool

	// Force bypasses actionability checks.
	Force bool

	// Timeout in milliseconds. Zero means the driver default.
	Timeout float64
}

// Rect is an element bounding box in CSS pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of the box.
func (r *Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Tab state values reported by a TabManager.
const (
	TabStateOpen    = "open"
	TabStateClosed  = "closed"
	TabStateCrashed = "crashed"
)

// TabInfo describes one known tab.
type TabInfo struct {
	ID      string `json:"tab_id"`
	URL     string `json:"url"`
	Current bool   `json:"is_current"`
	State   string `json:"state"`
}

// TabManager enumerates and activates tabs within a browser session. It is
// an optional collaborator: an engine without one simply cannot follow
// clicks into new tabs.
type TabManager interface {
	Tabs() ([]TabInfo, error)
	Activate(id string) error
}

// IsTimeout reports whether err is a driver timeout. Playwright surfaces
// these as ErrTimeout, but errors that crossed a process boundary may only
// carry the name in their text.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return true
	}
	return strings.Contains(err.Error(), "Timeout") || strings.Contains(err.Error(), "timeout")
}
