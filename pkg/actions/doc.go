// Package actions executes declarative browser actions for an AI agent.
//
// The entry point is the Executor: it validates an incoming Action,
// routes it by type to a handler, and normalizes every outcome into an
// ActionResult. Handlers never leak errors or panics to the caller; any
// abnormal condition becomes a failure result with a human-readable
// message.
//
// # Click strategies
//
// Clicks are the hard case. The engine resolves the symbolic ref to an
// attribute selector, collects best-effort diagnostics about the target,
// optionally redirects the click to a single descendant link when the
// target is a generic container wrapping one real anchor, and then tries
// ordered strategies: a modifier click with a new-tab wait armed first
// (the only strategy that reveals link-in-new-tab behavior), falling back
// to a force click that bypasses actionability checks. The result records
// which strategy landed and every strategy that failed along the way.
//
// # Synthetic mouse input
//
// mouse_control and mouse_drag synthesize pointer event sequences in the
// page itself, for surfaces that cannot receive native input. Coordinates
// are validated against the viewport, targets are resolved by hit-testing,
// and drags share one DataTransfer across the whole event sequence.
//
// # Result contract
//
// Success is derived from the message: messages carrying "Error:" or
// "Action failed:" are failures. Handlers therefore prefix every failure
// message with a marker; classifyOutcome centralizes the convention.
package actions
