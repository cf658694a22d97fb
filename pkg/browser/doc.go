// Package browser provides browser automation sessions through Playwright.
//
// A Session wraps one Playwright browser instance with its context and
// active page, and exposes the Driver interface the action engine runs
// against: element queries, clicks, fills, script evaluation, navigation
// and viewport geometry. The SessionManager owns all active sessions and
// the Playwright driver process lifecycle.
//
// Tabs opened during a session (window.open, modifier clicks) are tracked
// by the session's TabManager, which assigns each page a stable id and can
// switch the active page. The action engine uses this to follow clicks
// that open links in new tabs.
//
// Sessions are independent: each owns its own browser process, so multiple
// sessions can be driven concurrently. A single session must only be
// driven by one executor at a time.
package browser
