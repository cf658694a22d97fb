package actions

import "strings"

// ActionResult is the uniform outcome contract every action produces.
// Success mirrors the message: a message carrying a failure marker is a
// failure, anything else is a success. Details is an open, handler-specific
// bag used for tracing.
type ActionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Failure marker prefixes handlers must use in failure messages. The
// message scan is a deliberate compatibility wart: handlers reuse one
// natural-language message for logging and classification, which only
// works while every failure message carries a marker.
const (
	errorMarker  = "Error:"
	failedMarker = "Action failed:"
)

// classifyOutcome derives success from a handler message. All knowledge of
// the marker convention lives here.
func classifyOutcome(message string) bool {
	return !strings.Contains(message, errorMarker) && !strings.Contains(message, failedMarker)
}

// outcome builds a result whose success is classified from the message.
func outcome(message string, details map[string]any) *ActionResult {
	return &ActionResult{
		Success: classifyOutcome(message),
		Message: message,
		Details: details,
	}
}

// failure builds an unconditional failure result, for dispatcher-level
// rejections whose message may not carry a marker.
func failure(message string, details map[string]any) *ActionResult {
	return &ActionResult{
		Success: false,
		Message: message,
		Details: details,
	}
}

// usageFailure builds a failure for a malformed action, tagged with a
// machine-readable error code. Usage failures are detected before any
// driver call.
func usageFailure(message, code string) *ActionResult {
	return failure(message, map[string]any{"error": code})
}
