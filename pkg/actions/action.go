package actions

import "strings"

// ActionType identifies one kind of browser interaction. The set is
// closed: Execute dispatches over every constant below and rejects
// anything else.
type ActionType string

const (
	ActionClick        ActionType = "click"
	ActionTypeText     ActionType = "type"
	ActionSelect       ActionType = "select"
	ActionWait         ActionType = "wait"
	ActionExtract      ActionType = "extract"
	ActionScroll       ActionType = "scroll"
	ActionEnter        ActionType = "enter"
	ActionMouseControl ActionType = "mouse_control"
	ActionMouseDrag    ActionType = "mouse_drag"
	ActionPressKey     ActionType = "press_key"
	ActionNavigate     ActionType = "navigate"
	ActionBack         ActionType = "back"
	ActionForward      ActionType = "forward"
)

// Action is one declarative browser interaction. Each variant uses only
// the fields it needs; the rest stay zero. Actions are immutable inputs
// created by the calling agent layer and consumed exactly once.
type Action struct {
	Type ActionType `json:"type"`

	// Ref resolves a symbolic element reference for click, type, select
	// and extract.
	Ref string `json:"ref,omitempty"`

	// Text is the input for type.
	Text string `json:"text,omitempty"`

	// Value is the option value for select.
	Value string `json:"value,omitempty"`

	// URL is the target for navigate.
	URL string `json:"url,omitempty"`

	// Selector is a literal CSS selector for wait.
	Selector string `json:"selector,omitempty"`

	// Timeout is a literal sleep duration in milliseconds for wait.
	Timeout *float64 `json:"timeout,omitempty"`

	// Direction and Amount drive scroll.
	Direction string  `json:"direction,omitempty"`
	Amount    float64 `json:"amount,omitempty"`

	// Control, X and Y drive mouse_control.
	Control string   `json:"control,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`

	// FromRef and ToRef drive mouse_drag.
	FromRef string `json:"from_ref,omitempty"`
	ToRef   string `json:"to_ref,omitempty"`

	// Keys is the ordered key combination for press_key.
	Keys []string `json:"keys,omitempty"`
}

// refAttribute is the DOM attribute symbolic element references resolve
// through. The calling agent stamps it onto elements when it captures
// page state.
const refAttribute = "data-ref"

// refSelector turns a symbolic reference into an attribute selector.
// Quote and backslash characters are stripped from the reference so a
// hostile or malformed ref cannot break out of the selector.
func refSelector(ref string) string {
	sanitized := strings.NewReplacer(`"`, "", `'`, "", `\`, "").Replace(ref)
	return `[` + refAttribute + `="` + sanitized + `"]`
}
