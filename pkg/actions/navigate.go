package actions

import (
	"context"
	"fmt"
)

// executeNavigate loads a URL under the navigation timeout and waits for
// the DOM to be ready. When a URL policy is configured, non-matching URLs
// are refused before any driver call.
func (e *Executor) executeNavigate(ctx context.Context, action *Action) (*ActionResult, error) {
	if action.URL == "" {
		return usageFailure("Error: navigate action requires 'url'", "missing_url"), nil
	}

	if e.policy != nil && !e.policy.Allowed(action.URL) {
		return failure(
			fmt.Sprintf("Error: navigation blocked by policy: %s", action.URL),
			map[string]any{"error": "navigation_blocked", "url": action.URL},
		), nil
	}

	if err := e.driver.Navigate(action.URL, e.cfg.NavigationTimeout); err != nil {
		return failure(
			fmt.Sprintf("Error: Navigation failed: %v", err),
			map[string]any{"url": action.URL},
		), nil
	}

	return outcome(
		fmt.Sprintf("Navigated to %s", action.URL),
		map[string]any{"url": action.URL},
	), nil
}

// executeBack navigates one entry back in session history.
func (e *Executor) executeBack(ctx context.Context, action *Action) (*ActionResult, error) {
	if err := e.driver.Back(e.cfg.NavigationTimeout); err != nil {
		return failure(fmt.Sprintf("Error: Back navigation failed: %v", err), nil), nil
	}
	return outcome("Navigated back", nil), nil
}

// executeForward navigates one entry forward in session history.
func (e *Executor) executeForward(ctx context.Context, action *Action) (*ActionResult, error) {
	if err := e.driver.Forward(e.cfg.NavigationTimeout); err != nil {
		return failure(fmt.Sprintf("Error: Forward navigation failed: %v", err), nil), nil
	}
	return outcome("Navigated forward", nil), nil
}
