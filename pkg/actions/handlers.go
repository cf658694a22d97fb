package actions

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// extractPreviewLength bounds how much extracted text is echoed in the
// result message; the full text always travels in details.
const extractPreviewLength = 200

// executeType fills the ref-resolved input with text. An empty text is
// allowed and clears the input.
func (e *Executor) executeType(ctx context.Context, action *Action) (*ActionResult, error) {
	if action.Ref == "" {
		return usageFailure("Error: type action requires 'ref'", "missing_ref"), nil
	}

	selector := refSelector(action.Ref)
	if err := e.driver.Fill(selector, action.Text, e.cfg.ShortTimeout); err != nil {
		return failure(fmt.Sprintf("Error: Type failed: %v", err), map[string]any{"selector": selector}), nil
	}

	return outcome(
		fmt.Sprintf("Typed '%s' into '%s'", truncate(action.Text, 50), action.Ref),
		map[string]any{"selector": selector, "length": len(action.Text)},
	), nil
}

// executeSelect chooses an option by value on the ref-resolved select.
func (e *Executor) executeSelect(ctx context.Context, action *Action) (*ActionResult, error) {
	if action.Ref == "" {
		return usageFailure("Error: select action requires 'ref'", "missing_ref"), nil
	}
	if action.Value == "" {
		return usageFailure("Error: select action requires 'value'", "missing_value"), nil
	}

	selector := refSelector(action.Ref)
	if err := e.driver.SelectByValue(selector, action.Value, e.cfg.ActionTimeout); err != nil {
		return failure(fmt.Sprintf("Error: Select failed: %v", err), map[string]any{"selector": selector}), nil
	}

	return outcome(
		fmt.Sprintf("Selected '%s' in '%s'", action.Value, action.Ref),
		map[string]any{"selector": selector, "value": action.Value},
	), nil
}

// executeWait sleeps a literal duration or waits for a literal selector.
func (e *Executor) executeWait(ctx context.Context, action *Action) (*ActionResult, error) {
	switch {
	case action.Timeout != nil:
		ms := *action.Timeout
		if err := sleepContext(ctx, time.Duration(ms)*time.Millisecond); err != nil {
			return nil, err
		}
		return outcome(
			fmt.Sprintf("Waited %.0fms", ms),
			map[string]any{"waited_ms": ms},
		), nil

	case action.Selector != "":
		if err := e.driver.WaitForSelector(action.Selector, e.cfg.ActionTimeout); err != nil {
			return failure(
				fmt.Sprintf("Error: Wait failed: %v", err),
				map[string]any{"selector": action.Selector},
			), nil
		}
		return outcome(
			fmt.Sprintf("Element '%s' appeared", action.Selector),
			map[string]any{"selector": action.Selector},
		), nil

	default:
		return usageFailure("Error: wait action requires 'timeout' or 'selector'", "missing_wait_condition"), nil
	}
}

// executeExtract reads the text content of the ref-resolved element, or
// the whole page when no ref is given.
func (e *Executor) executeExtract(ctx context.Context, action *Action) (*ActionResult, error) {
	if action.Ref == "" {
		text, err := e.driver.PageText()
		if err != nil {
			return failure(fmt.Sprintf("Error: Extract failed: %v", err), nil), nil
		}
		return outcome(
			fmt.Sprintf("Extracted page text: %s", truncate(text, extractPreviewLength)),
			map[string]any{"text": text, "length": len(text)},
		), nil
	}

	selector := refSelector(action.Ref)
	if err := e.driver.WaitForSelector(selector, e.cfg.ActionTimeout); err != nil {
		return failure(
			fmt.Sprintf("Error: Extract failed: %v", err),
			map[string]any{"selector": selector},
		), nil
	}

	text, err := e.driver.TextContent(selector, e.cfg.ActionTimeout)
	if err != nil {
		return failure(
			fmt.Sprintf("Error: Extract failed: %v", err),
			map[string]any{"selector": selector},
		), nil
	}

	return outcome(
		fmt.Sprintf("Extracted text from '%s': %s", action.Ref, truncate(text, extractPreviewLength)),
		map[string]any{"selector": selector, "text": text, "length": len(text)},
	), nil
}

// executeScroll applies a clamped window scroll offset, then pauses
// briefly so the page settles before the caller re-captures state.
func (e *Executor) executeScroll(ctx context.Context, action *Action) (*ActionResult, error) {
	if action.Direction != "up" && action.Direction != "down" {
		return usageFailure("Error: direction must be 'up' or 'down'", "invalid_direction"), nil
	}

	amount := int(math.Round(action.Amount))
	if amount > e.cfg.MaxScrollAmount {
		amount = e.cfg.MaxScrollAmount
	}
	if amount < -e.cfg.MaxScrollAmount {
		amount = -e.cfg.MaxScrollAmount
	}

	offset := amount
	if action.Direction == "up" {
		offset = -amount
	}

	if _, err := e.driver.Evaluate(`(dy) => window.scrollBy(0, dy)`, offset); err != nil {
		return failure(fmt.Sprintf("Error: Scroll failed: %v", err), nil), nil
	}

	if err := sleepContext(ctx, e.cfg.ScrollSettle); err != nil {
		return nil, err
	}

	return outcome(
		fmt.Sprintf("Scrolled %s %dpx", action.Direction, amount),
		map[string]any{"direction": action.Direction, "actual_amount": amount},
	), nil
}

// executeEnter presses Enter on whatever element currently has focus.
func (e *Executor) executeEnter(ctx context.Context, action *Action) (*ActionResult, error) {
	if err := e.driver.Press("Enter"); err != nil {
		return failure(fmt.Sprintf("Error: Enter failed: %v", err), nil), nil
	}
	return outcome("Pressed Enter", nil), nil
}

// executePressKey presses an ordered key combination on the focused
// element.
func (e *Executor) executePressKey(ctx context.Context, action *Action) (*ActionResult, error) {
	if len(action.Keys) == 0 {
		return usageFailure("Error: press_key action requires 'keys'", "missing_keys"), nil
	}

	combination := strings.Join(action.Keys, "+")
	if err := e.driver.Press(combination); err != nil {
		return failure(
			fmt.Sprintf("Error: Key press failed: %v", err),
			map[string]any{"combination": combination},
		), nil
	}

	return outcome(
		fmt.Sprintf("Pressed %s", combination),
		map[string]any{"combination": combination},
	), nil
}

// truncate bounds s to at most max bytes of preview, appending an
// ellipsis when anything was cut. The cut always lands on a rune
// boundary so the preview stays valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// sleepContext sleeps for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
