package actions

import (
	"context"
	"encoding/json"
	"fmt"
)

// Mouse simulation runs entirely at the DOM event layer. It exists for
// surfaces that cannot receive native OS input, such as content rendered
// off screen behind a composited view: events are synthesized in the page
// instead of dispatched through the input pipeline.

// mouseControlScript hit-tests the point and dispatches the synthetic
// event sequence for the requested control. Synthetic clicks do not
// reliably focus editable elements the way real input does, so the script
// focuses them explicitly afterwards.
const mouseControlScript = `(args) => {
	const el = document.elementFromPoint(args.x, args.y);
	if (!el) return { hit: false };
	const base = { bubbles: true, cancelable: true, view: window, clientX: args.x, clientY: args.y };
	const fire = (type, button) =>
		el.dispatchEvent(new MouseEvent(type, Object.assign({}, base, { button: button || 0 })));

	if (args.control === 'right_click') {
		fire('mousedown', 2);
		fire('mouseup', 2);
		fire('contextmenu', 2);
	} else if (args.control === 'dblclick') {
		fire('mousedown'); fire('mouseup'); fire('click');
		fire('mousedown'); fire('mouseup'); fire('click');
		fire('dblclick');
	} else {
		fire('mousedown'); fire('mouseup'); fire('click');
	}

	let focused = false;
	if (args.control !== 'right_click') {
		const tag = el.tagName;
		if (tag === 'INPUT' || tag === 'TEXTAREA' || el.isContentEditable) {
			el.focus();
			focused = true;
		}
	}
	return { hit: true, tag: el.tagName, focused: focused };
}`

// mouseDragScript synthesizes a full drag at the DOM level. One
// DataTransfer is shared across the sequence so drag payload semantics
// hold from dragstart to dragend. The drop target falls back to the
// source element when nothing hit-tests at the destination point.
const mouseDragScript = `(args) => {
	const source = document.elementFromPoint(args.fromX, args.fromY);
	if (!source) return { ok: false, reason: 'no_source' };
	const dest = document.elementFromPoint(args.toX, args.toY) || source;
	const data = new DataTransfer();

	const fire = (el, type, x, y, drag) => {
		const init = { bubbles: true, cancelable: true, view: window, clientX: x, clientY: y };
		const event = drag
			? new DragEvent(type, Object.assign({}, init, { dataTransfer: data }))
			: new MouseEvent(type, init);
		el.dispatchEvent(event);
	};

	fire(source, 'mousedown', args.fromX, args.fromY, false);
	fire(source, 'dragstart', args.fromX, args.fromY, true);
	fire(dest, 'dragover', args.toX, args.toY, true);
	fire(dest, 'drop', args.toX, args.toY, true);
	fire(dest, 'mouseup', args.toX, args.toY, false);
	fire(source, 'dragend', args.fromX, args.fromY, true);
	return { ok: true };
}`

// validControls for mouse_control.
var validControls = map[string]bool{
	"click":       true,
	"right_click": true,
	"dblclick":    true,
}

// executeMouseControl clicks at raw viewport coordinates with synthetic
// pointer events.
func (e *Executor) executeMouseControl(ctx context.Context, action *Action) (*ActionResult, error) {
	if action.Control == "" {
		return usageFailure("Error: mouse_control action requires 'control'", "missing_control"), nil
	}
	if !validControls[action.Control] {
		return usageFailure(
			fmt.Sprintf("Error: control must be 'click', 'right_click' or 'dblclick', got '%s'", action.Control),
			"invalid_control",
		), nil
	}
	if action.X == nil || action.Y == nil {
		return usageFailure("Error: mouse_control action requires 'x' and 'y'", "missing_coordinates"), nil
	}

	x, y := *action.X, *action.Y

	// Without a viewport there is no coordinate space to validate
	// against: that is a broken driver, not a failed action.
	width, height, ok := e.driver.ViewportSize()
	if !ok {
		return nil, fmt.Errorf("viewport size unavailable")
	}
	if x < 0 || x > float64(width) || y < 0 || y > float64(height) {
		return failure(
			fmt.Sprintf("Error: Invalid coordinates, outside viewport bounds (%.0f, %.0f) not within %dx%d", x, y, width, height),
			map[string]any{"error": "coordinates_out_of_bounds", "x": x, "y": y},
		), nil
	}

	raw, err := e.driver.Evaluate(mouseControlScript, map[string]any{
		"x":       x,
		"y":       y,
		"control": action.Control,
	})
	if err != nil {
		return nil, fmt.Errorf("mouse event dispatch failed: %w", err)
	}

	var hit struct {
		Hit     bool   `json:"hit"`
		Tag     string `json:"tag"`
		Focused bool   `json:"focused"`
	}
	if err := decodeScriptResult(raw, &hit); err != nil {
		return nil, err
	}
	if !hit.Hit {
		return failure(
			fmt.Sprintf("Error: No element found at coordinates (%.0f, %.0f)", x, y),
			map[string]any{"error": "no_element_at_point", "x": x, "y": y},
		), nil
	}

	details := map[string]any{
		"control": action.Control,
		"x":       x,
		"y":       y,
		"target":  hit.Tag,
	}
	if hit.Focused {
		details["focused"] = true
	}
	return outcome(fmt.Sprintf("Performed %s at (%.0f, %.0f)", action.Control, x, y), details), nil
}

// executeMouseDrag synthesizes a drag between the centers of two
// ref-resolved elements.
func (e *Executor) executeMouseDrag(ctx context.Context, action *Action) (*ActionResult, error) {
	if action.FromRef == "" {
		return usageFailure("Error: mouse_drag action requires 'from_ref'", "missing_from_ref"), nil
	}
	if action.ToRef == "" {
		return usageFailure("Error: mouse_drag action requires 'to_ref'", "missing_to_ref"), nil
	}

	fromX, fromY, result, err := e.dragPoint(action.FromRef, "source")
	if result != nil || err != nil {
		return result, err
	}
	toX, toY, result, err := e.dragPoint(action.ToRef, "target")
	if result != nil || err != nil {
		return result, err
	}

	raw, evalErr := e.driver.Evaluate(mouseDragScript, map[string]any{
		"fromX": fromX,
		"fromY": fromY,
		"toX":   toX,
		"toY":   toY,
	})
	if evalErr != nil {
		return nil, fmt.Errorf("drag event dispatch failed: %w", evalErr)
	}

	var dragged struct {
		OK     bool   `json:"ok"`
		Reason string `json:"reason"`
	}
	if err := decodeScriptResult(raw, &dragged); err != nil {
		return nil, err
	}
	if !dragged.OK {
		return failure(
			fmt.Sprintf("Error: Drag failed, no element at source point (%.0f, %.0f)", fromX, fromY),
			map[string]any{"error": "no_element_at_point"},
		), nil
	}

	return outcome(
		fmt.Sprintf("Dragged element '%s' to '%s'", action.FromRef, action.ToRef),
		map[string]any{
			"from": map[string]any{"ref": action.FromRef, "x": fromX, "y": fromY},
			"to":   map[string]any{"ref": action.ToRef, "x": toX, "y": toY},
		},
	), nil
}

// dragPoint resolves one side of a drag to the center of its bounding
// box. A non-nil result is a terminal failure to return as-is.
func (e *Executor) dragPoint(ref, side string) (x, y float64, result *ActionResult, err error) {
	selector := refSelector(ref)

	count, err := e.driver.Count(selector)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("locating %s element %s: %w", side, selector, err)
	}
	if count == 0 {
		return 0, 0, failure(
			fmt.Sprintf("Error: Drag failed, %s element '%s' not found", side, ref),
			map[string]any{"error": side + "_not_found"},
		), nil
	}

	box, err := e.driver.BoundingBox(selector)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("bounding box for %s element %s: %w", side, selector, err)
	}
	if box == nil {
		return 0, 0, failure(
			fmt.Sprintf("Error: Drag failed, could not get bounding box for %s element '%s'", side, ref),
			map[string]any{"error": side + "_no_bounding_box"},
		), nil
	}

	x, y = box.Center()
	return x, y, nil, nil
}

// decodeScriptResult lands a decoded script result map in a typed struct.
func decodeScriptResult(raw any, into any) error {
	if raw == nil {
		return fmt.Errorf("script returned no result")
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("script result encoding failed: %w", err)
	}
	if err := json.Unmarshal(encoded, into); err != nil {
		return fmt.Errorf("script result decoding failed: %w", err)
	}
	return nil
}
