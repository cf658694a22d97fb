package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/surf/pkg/browser"
)

// Click method values reported in result details.
const (
	clickMethodNewTab    = "ctrl_click_new_tab"
	clickMethodSameTab   = "ctrl_click_same_tab"
	clickMethodNoSession = "ctrl_click_no_session"
	clickMethodForce     = "force_click"
	clickMethodAllFailed = "all_failed"
)

// clickStrategy records one attempted click strategy for tracing.
type clickStrategy struct {
	Selector string `json:"selector"`
	Method   string `json:"method"`
	Error    string `json:"error"`
}

// executeClick resolves the ref to a live element and tries ordered click
// strategies with fallback: a modifier click first, because it is the only
// strategy that reveals link-opened-in-new-tab behavior, then a force
// click bypassing actionability checks.
func (e *Executor) executeClick(ctx context.Context, action *Action) (*ActionResult, error) {
	if action.Ref == "" {
		return usageFailure("Error: click action requires 'ref'", "missing_ref"), nil
	}
	selector := refSelector(action.Ref)

	count, err := e.driver.Count(selector)
	if err != nil {
		return nil, fmt.Errorf("locating %s: %w", selector, err)
	}
	if count == 0 {
		return failure("Error: Click failed, element not found", map[string]any{
			"error":    "element_not_found",
			"selector": selector,
		}), nil
	}

	details := map[string]any{"selector": selector}

	// Diagnostics are best effort: a collection failure is logged and the
	// click proceeds without them.
	diags, diagErr := e.collectDiagnostics(selector)
	if diagErr != nil {
		e.log.Debugf("diagnostics collection failed for %s: %v", selector, diagErr)
	}

	target := selector
	if diagErr == nil && shouldRedirectToLink(diags) {
		candidate := selector + " a[href]"
		if e.clickableTarget(candidate) {
			e.log.Infof("redirecting click from %s to descendant link", selector)
			target = candidate
			details["redirected_to"] = candidate
		}
	}

	var strategies []clickStrategy
	start := time.Now()

	if e.tabs == nil {
		// No tab collaborator: new-tab detection is impossible, click
		// plainly with the modifier.
		err := e.driver.Click(target, browser.ClickOptions{CtrlOrMeta: true, Timeout: e.cfg.ActionTimeout})
		if err == nil {
			details["click_method"] = clickMethodNoSession
			details["elapsed_ms"] = time.Since(start).Milliseconds()
			return outcome(fmt.Sprintf("Clicked element '%s'", action.Ref), details), nil
		}
		e.log.Debugf("ctrl click failed for %s: %v", target, err)
		strategies = append(strategies, clickStrategy{Selector: target, Method: "ctrl_click", Error: err.Error()})
	} else {
		result, done := e.tryCtrlClick(target, action.Ref, details, start, &strategies)
		if done {
			return result, nil
		}
	}

	// Last resort: force click with the default timeout.
	err = e.driver.Click(target, browser.ClickOptions{Force: true, Timeout: e.cfg.ActionTimeout})
	if err == nil {
		details["click_method"] = clickMethodForce
		details["strategies_tried"] = strategies
		details["elapsed_ms"] = time.Since(start).Milliseconds()
		return outcome(fmt.Sprintf("Clicked element '%s'", action.Ref), details), nil
	}
	strategies = append(strategies, clickStrategy{Selector: target, Method: "force_click", Error: err.Error()})

	details["click_method"] = clickMethodAllFailed
	details["strategies_tried"] = strategies
	return failure(fmt.Sprintf("Error: All click strategies failed for %s", target), details), nil
}

// tryCtrlClick dispatches the modifier click with a new-page wait armed
// strictly before it, so a tab that opens immediately cannot be missed.
// done is false when the click itself failed and the engine should fall
// through to the next strategy.
func (e *Executor) tryCtrlClick(target, ref string, details map[string]any, start time.Time, strategies *[]clickStrategy) (result *ActionResult, done bool) {
	var clickErr error
	page, waitErr := e.driver.ExpectNewPage(e.cfg.ShortTimeout, func() error {
		clickErr = e.driver.Click(target, browser.ClickOptions{CtrlOrMeta: true, Timeout: e.cfg.ActionTimeout})
		return clickErr
	})

	switch {
	case waitErr == nil:
		// A tab opened. Let it reach DOM-ready, then switch focus to it.
		if err := page.WaitForReady(e.cfg.ActionTimeout); err != nil {
			e.log.Debugf("new tab for %s not ready: %v", target, err)
		}
		details["click_method"] = clickMethodNewTab
		details["new_tab_created"] = true
		details["elapsed_ms"] = time.Since(start).Milliseconds()
		if tab := e.findOpenedTab(); tab != nil {
			details["new_tab_id"] = tab.ID
			details["new_tab_url"] = tab.URL
			if err := e.tabs.Activate(tab.ID); err != nil {
				e.log.Warnf("failed to activate new tab %s: %v", tab.ID, err)
			}
		}
		return outcome(fmt.Sprintf("Clicked element '%s', opened new tab", ref), details), true

	case clickErr == nil && browser.IsTimeout(waitErr):
		// The wait expired but the click itself landed: no tab was
		// opened, the click took effect in place.
		details["click_method"] = clickMethodSameTab
		details["elapsed_ms"] = time.Since(start).Milliseconds()
		return outcome(fmt.Sprintf("Clicked element '%s'", ref), details), true

	default:
		failed := clickErr
		if failed == nil {
			failed = waitErr
		}
		e.log.Debugf("ctrl click failed for %s: %v", target, failed)
		*strategies = append(*strategies, clickStrategy{Selector: target, Method: "ctrl_click", Error: failed.Error()})
		return nil, false
	}
}

// clickableTarget reports whether the selector resolves to a visible,
// enabled element.
func (e *Executor) clickableTarget(selector string) bool {
	visible, err := e.driver.IsVisible(selector)
	if err != nil || !visible {
		return false
	}
	enabled, err := e.driver.IsEnabled(selector)
	return err == nil && enabled
}

// findOpenedTab picks the tab a ctrl click just opened: the one not
// marked current and not closed or crashed.
func (e *Executor) findOpenedTab() *browser.TabInfo {
	tabs, err := e.tabs.Tabs()
	if err != nil {
		e.log.Warnf("tab enumeration failed: %v", err)
		return nil
	}
	// Scan newest-first: the freshly opened tab is the most recent
	// non-current one still open.
	for i := len(tabs) - 1; i >= 0; i-- {
		if !tabs[i].Current && tabs[i].State == browser.TabStateOpen {
			return &tabs[i]
		}
	}
	return nil
}
