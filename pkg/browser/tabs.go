package browser

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// sessionTabs tracks every page opened in a session's browser context and
// implements TabManager over them. Pages are registered through the
// context's OnPage hook, so tabs opened by the page itself (window.open,
// modified clicks) are captured without polling.
type sessionTabs struct {
	mu      sync.RWMutex
	ids     map[playwright.Page]string
	order   []playwright.Page
	current playwright.Page
	crashed map[playwright.Page]bool
}

var _ TabManager = (*sessionTabs)(nil)

// newSessionTabs registers the initial page and wires page lifecycle hooks
// on the context.
func newSessionTabs(context playwright.BrowserContext, initial playwright.Page) *sessionTabs {
	t := &sessionTabs{
		ids:     make(map[playwright.Page]string),
		crashed: make(map[playwright.Page]bool),
	}
	t.register(initial)
	t.current = initial

	context.OnPage(func(page playwright.Page) {
		t.register(page)
	})
	return t
}

func (t *sessionTabs) register(page playwright.Page) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.ids[page]; exists {
		return
	}
	t.ids[page] = uuid.New().String()
	t.order = append(t.order, page)

	page.OnCrash(func(crashed playwright.Page) {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.crashed[crashed] = true
	})

	page.OnClose(func(closed playwright.Page) {
		t.mu.Lock()
		defer t.mu.Unlock()

		// Keep the entry so callers still see the tab as closed, but move
		// the active page off it.
		if t.current != closed {
			return
		}
		for i := len(t.order) - 1; i >= 0; i-- {
			candidate := t.order[i]
			if candidate != closed && !candidate.IsClosed() && !t.crashed[candidate] {
				t.current = candidate
				return
			}
		}
		// No usable page remains: the session is terminal. current stays
		// on the closed page, so driver calls return page-closed errors
		// rather than dereferencing a nil page.
	})
}

// active returns the currently focused page.
func (t *sessionTabs) active() playwright.Page {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Tabs enumerates all known tabs in opening order.
func (t *sessionTabs) Tabs() ([]TabInfo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	infos := make([]TabInfo, 0, len(t.order))
	for _, page := range t.order {
		state := TabStateOpen
		switch {
		case t.crashed[page]:
			state = TabStateCrashed
		case page.IsClosed():
			state = TabStateClosed
		}

		url := ""
		if !page.IsClosed() {
			url = page.URL()
		}

		infos = append(infos, TabInfo{
			ID:      t.ids[page],
			URL:     url,
			Current: page == t.current,
			State:   state,
		})
	}
	return infos, nil
}

// Activate switches focus to the tab with the given id.
func (t *sessionTabs) Activate(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, page := range t.order {
		if t.ids[page] != id {
			continue
		}
		if page.IsClosed() {
			return fmt.Errorf("tab %s is closed", id)
		}
		if t.crashed[page] {
			return fmt.Errorf("tab %s has crashed", id)
		}
		if err := page.BringToFront(); err != nil {
			return fmt.Errorf("failed to focus tab %s: %w", id, err)
		}
		t.current = page
		return nil
	}
	return fmt.Errorf("tab %s not found", id)
}
