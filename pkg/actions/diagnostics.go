package actions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ElementDiagnostics is best-effort metadata about a click target,
// computed fresh per click attempt and used only to inform heuristics.
// It is never required for correctness.
type ElementDiagnostics struct {
	Tag          string `json:"tag"`
	Href         string `json:"href"`
	AncestorHref string `json:"ancestorHref"`
	Role         string `json:"role"`
	Text         string `json:"text"`
	LinkHref     string `json:"linkHref"`
	LinkText     string `json:"linkText"`
	LinkCount    int    `json:"linkCount"`
	HasOnClick   bool   `json:"hasOnclick"`
	InViewport   bool   `json:"inViewport"`
}

// diagnosticsScript inspects the first element matching the selector:
// its own link/role/onclick signals, its visible text, its descendant
// links, and whether it intersects the viewport.
const diagnosticsScript = `(selector) => {
	const el = document.querySelector(selector);
	if (!el) return null;
	const rect = el.getBoundingClientRect();
	const links = el.querySelectorAll('a[href]');
	const ancestor = el.parentElement ? el.parentElement.closest('a[href]') : null;
	const info = {
		tag: el.tagName,
		href: el.getAttribute('href') || '',
		ancestorHref: ancestor ? (ancestor.getAttribute('href') || '') : '',
		role: el.getAttribute('role') || '',
		text: (el.innerText || '').trim(),
		linkCount: links.length,
		linkHref: '',
		linkText: '',
		hasOnclick: el.onclick !== null || el.hasAttribute('onclick'),
		inViewport: rect.top < window.innerHeight && rect.bottom > 0 &&
			rect.left < window.innerWidth && rect.right > 0
	};
	if (links.length === 1) {
		info.linkHref = links[0].getAttribute('href') || '';
		info.linkText = (links[0].innerText || '').trim();
	}
	return info;
}`

// collectDiagnostics inspects the first element matching the selector.
// Callers treat the error as ignorable: diagnostics must never change the
// outcome of a click.
func (e *Executor) collectDiagnostics(selector string) (*ElementDiagnostics, error) {
	raw, err := e.driver.Evaluate(diagnosticsScript, selector)
	if err != nil {
		return nil, fmt.Errorf("diagnostics script failed: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("element vanished before diagnostics")
	}

	// The driver hands back a decoded map; round-trip through JSON to
	// land it in the typed struct.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("diagnostics encoding failed: %w", err)
	}
	var diags ElementDiagnostics
	if err := json.Unmarshal(encoded, &diags); err != nil {
		return nil, fmt.Errorf("diagnostics decoding failed: %w", err)
	}
	return &diags, nil
}

// shouldRedirectToLink decides whether a click on a generic container
// should be redirected to its single descendant link. Many "clickable
// rows" wrap one real anchor; clicking the row directly often misses the
// navigation. The text-overlap check bounds false positives on unrelated
// nested links.
func shouldRedirectToLink(d *ElementDiagnostics) bool {
	switch d.Tag {
	case "LI", "DIV", "SPAN":
	default:
		return false
	}

	// The container must have no click signal of its own.
	if d.Href != "" || d.AncestorHref != "" || d.Role != "" || d.HasOnClick {
		return false
	}

	// Exactly one descendant link with a real href.
	if d.LinkCount != 1 || d.LinkHref == "" {
		return false
	}

	// Container text and link text must overlap, case-insensitive, in
	// either direction.
	containerText := strings.ToLower(strings.TrimSpace(d.Text))
	linkText := strings.ToLower(strings.TrimSpace(d.LinkText))
	if containerText == "" || linkText == "" {
		return false
	}
	return strings.Contains(containerText, linkText) || strings.Contains(linkText, containerText)
}
