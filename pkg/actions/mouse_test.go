package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/surf/pkg/browser"
)

func TestMouseControlDispatchesSyntheticClick(t *testing.T) {
	var gotArgs map[string]any
	d := &fakeDriver{}
	d.evaluateFn = func(script string, arg any) (any, error) {
		gotArgs = arg.(map[string]any)
		return map[string]any{"hit": true, "tag": "INPUT", "focused": true}, nil
	}
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseControl,
		Control: "click",
		X:       floatPtr(100),
		Y:       floatPtr(200),
	})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Performed click at (100, 200)", result.Message)
	assert.Equal(t, "INPUT", result.Details["target"])
	assert.Equal(t, true, result.Details["focused"])
	assert.Equal(t, float64(100), gotArgs["x"])
	assert.Equal(t, float64(200), gotArgs["y"])
	assert.Equal(t, "click", gotArgs["control"])
}

func TestMouseControlRejectsOutOfBoundsCoordinates(t *testing.T) {
	d := &fakeDriver{viewportWidth: 1280, viewportHeight: 720}
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseControl,
		Control: "click",
		X:       floatPtr(5000),
		Y:       floatPtr(100),
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Error: Invalid coordinates, outside viewport bounds")
	assert.Equal(t, "coordinates_out_of_bounds", result.Details["error"])
	assert.NotContains(t, d.calls, "evaluate", "no event may be dispatched for rejected coordinates")
}

func TestMouseControlWithoutViewport(t *testing.T) {
	d := &fakeDriver{noViewport: true}
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseControl,
		Control: "click",
		X:       floatPtr(10),
		Y:       floatPtr(10),
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Error executing mouse_control: viewport size unavailable")
}

func TestMouseControlNoElementAtPoint(t *testing.T) {
	d := &fakeDriver{}
	d.evaluateFn = func(string, any) (any, error) {
		return map[string]any{"hit": false}, nil
	}
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseControl,
		Control: "dblclick",
		X:       floatPtr(10),
		Y:       floatPtr(20),
	})

	assert.False(t, result.Success)
	assert.Equal(t, "Error: No element found at coordinates (10, 20)", result.Message)
	assert.Equal(t, "no_element_at_point", result.Details["error"])
}

func TestMouseDragBetweenElementCenters(t *testing.T) {
	boxes := map[string]*browser.Rect{
		`[data-ref="card-a"]`: {X: 0, Y: 0, Width: 100, Height: 50},
		`[data-ref="slot-b"]`: {X: 200, Y: 300, Width: 80, Height: 40},
	}
	var gotArgs map[string]any
	d := &fakeDriver{}
	d.boundingBoxFn = func(selector string) (*browser.Rect, error) {
		return boxes[selector], nil
	}
	d.evaluateFn = func(script string, arg any) (any, error) {
		gotArgs = arg.(map[string]any)
		return map[string]any{"ok": true}, nil
	}
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseDrag,
		FromRef: "card-a",
		ToRef:   "slot-b",
	})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Dragged element 'card-a' to 'slot-b'", result.Message)
	assert.Equal(t, float64(50), gotArgs["fromX"])
	assert.Equal(t, float64(25), gotArgs["fromY"])
	assert.Equal(t, float64(240), gotArgs["toX"])
	assert.Equal(t, float64(320), gotArgs["toY"])
}

func TestMouseDragSourceNotFound(t *testing.T) {
	d := &fakeDriver{}
	d.countFn = func(selector string) (int, error) {
		if selector == `[data-ref="gone"]` {
			return 0, nil
		}
		return 1, nil
	}
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseDrag,
		FromRef: "gone",
		ToRef:   "slot-b",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "Error: Drag failed, source element 'gone' not found", result.Message)
	assert.Equal(t, "source_not_found", result.Details["error"])
	assert.NotContains(t, d.calls, "evaluate", "no drag may be dispatched when a side is missing")
}

func TestMouseDragTargetNotFound(t *testing.T) {
	d := &fakeDriver{}
	d.countFn = func(selector string) (int, error) {
		if selector == `[data-ref="gone"]` {
			return 0, nil
		}
		return 1, nil
	}
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseDrag,
		FromRef: "card-a",
		ToRef:   "gone",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "Error: Drag failed, target element 'gone' not found", result.Message)
	assert.Equal(t, "target_not_found", result.Details["error"])
	assert.NotContains(t, d.calls, "evaluate")
}

func TestMouseDragWithoutBoundingBox(t *testing.T) {
	d := &fakeDriver{}
	d.boundingBoxFn = func(string) (*browser.Rect, error) { return nil, nil }
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseDrag,
		FromRef: "card-a",
		ToRef:   "slot-b",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "could not get bounding box for source element 'card-a'")
	assert.Equal(t, "source_no_bounding_box", result.Details["error"])
}

func TestMouseDragNoElementAtSourcePoint(t *testing.T) {
	d := &fakeDriver{}
	d.evaluateFn = func(string, any) (any, error) {
		return map[string]any{"ok": false, "reason": "no_source"}, nil
	}
	e := newTestExecutor(d)

	result := e.Execute(context.Background(), &Action{
		Type:    ActionMouseDrag,
		FromRef: "card-a",
		ToRef:   "slot-b",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Error: Drag failed, no element at source point")
}
