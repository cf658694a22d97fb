package browser

import (
	"fmt"
	"runtime"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session implements Driver over the active Playwright page.
var _ Driver = (*Session)(nil)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// CurrentURL returns the URL of the active page.
func (s *Session) CurrentURL() string {
	return s.activePage().URL()
}

// Tabs returns the session's tab manager.
func (s *Session) Tabs() TabManager {
	return s.tabs
}

func (s *Session) activePage() playwright.Page {
	return s.tabs.active()
}

// Count returns how many elements currently match the selector.
func (s *Session) Count(selector string) (int, error) {
	s.UpdateLastUsed()
	return s.activePage().Locator(selector).Count()
}

// IsVisible reports whether the first matching element is visible.
func (s *Session) IsVisible(selector string) (bool, error) {
	s.UpdateLastUsed()
	return s.activePage().Locator(selector).First().IsVisible()
}

// IsEnabled reports whether the first matching element is enabled.
func (s *Session) IsEnabled(selector string) (bool, error) {
	s.UpdateLastUsed()
	return s.activePage().Locator(selector).First().IsEnabled()
}

// Click clicks the first matching element.
func (s *Session) Click(selector string, opts ClickOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.LocatorClickOptions{}
	if opts.CtrlOrMeta {
		modifier := playwright.KeyboardModifier(newTabModifier())
		playwrightOpts.Modifiers = []playwright.KeyboardModifier{modifier}
	}
	if opts.Force {
		playwrightOpts.Force = playwright.Bool(true)
	}
	if opts.Timeout > 0 {
		playwrightOpts.Timeout = playwright.Float(opts.Timeout)
	}

	if err := s.activePage().Locator(selector).First().Click(playwrightOpts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// newTabModifier returns the platform modifier that turns a link click into
// an open-in-new-tab click.
func newTabModifier() string {
	if runtime.GOOS == "darwin" {
		return "Meta"
	}
	return "Control"
}

// Fill replaces the value of the first matching input element.
func (s *Session) Fill(selector, value string, timeout float64) error {
	s.UpdateLastUsed()

	opts := playwright.LocatorFillOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	if err := s.activePage().Locator(selector).First().Fill(value, opts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// SelectByValue selects an option of the first matching select element.
func (s *Session) SelectByValue(selector, value string, timeout float64) error {
	s.UpdateLastUsed()

	opts := playwright.LocatorSelectOptionOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	_, err := s.activePage().Locator(selector).First().SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	}, opts)
	if err != nil {
		return fmt.Errorf("select failed: %w", err)
	}
	return nil
}

// TextContent returns the text content of the first matching element.
func (s *Session) TextContent(selector string, timeout float64) (string, error) {
	s.UpdateLastUsed()

	opts := playwright.LocatorTextContentOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	text, err := s.activePage().Locator(selector).First().TextContent(opts)
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

// WaitForSelector waits until an element matching the selector is visible.
func (s *Session) WaitForSelector(selector string, timeout float64) error {
	s.UpdateLastUsed()

	opts := playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	if err := s.activePage().Locator(selector).First().WaitFor(opts); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// Evaluate runs a script in the page with one serializable argument.
func (s *Session) Evaluate(script string, arg any) (any, error) {
	s.UpdateLastUsed()

	if arg == nil {
		return s.activePage().Evaluate(script)
	}
	return s.activePage().Evaluate(script, arg)
}

// Press presses a key or +-joined key combination on the focused element.
func (s *Session) Press(combination string) error {
	s.UpdateLastUsed()
	return s.activePage().Keyboard().Press(combination)
}

// Navigate loads the URL and waits for the DOM to be ready.
func (s *Session) Navigate(url string, timeout float64) error {
	s.UpdateLastUsed()

	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	if _, err := s.activePage().Goto(url, opts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Back performs history navigation to the previous page.
func (s *Session) Back(timeout float64) error {
	s.UpdateLastUsed()

	opts := playwright.PageGoBackOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	if _, err := s.activePage().GoBack(opts); err != nil {
		return fmt.Errorf("back navigation failed: %w", err)
	}
	return nil
}

// Forward performs history navigation to the next page.
func (s *Session) Forward(timeout float64) error {
	s.UpdateLastUsed()

	opts := playwright.PageGoForwardOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	if _, err := s.activePage().GoForward(opts); err != nil {
		return fmt.Errorf("forward navigation failed: %w", err)
	}
	return nil
}

// ViewportSize returns the current viewport dimensions.
func (s *Session) ViewportSize() (width, height int, ok bool) {
	size := s.activePage().ViewportSize()
	if size == nil {
		return 0, 0, false
	}
	return size.Width, size.Height, true
}

// BoundingBox returns the bounding box of the first matching element, or
// nil when the element is not rendered.
func (s *Session) BoundingBox(selector string) (*Rect, error) {
	s.UpdateLastUsed()

	box, err := s.activePage().Locator(selector).First().BoundingBox()
	if err != nil {
		return nil, fmt.Errorf("bounding box query failed: %w", err)
	}
	if box == nil {
		return nil, nil
	}
	return &Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

// ExpectNewPage arms a new-page listener on the browser context, runs
// trigger, and waits up to timeout for a page to open. ExpectPage installs
// its listener before invoking the callback, so the page event cannot be
// missed even when the new tab opens immediately.
func (s *Session) ExpectNewPage(timeout float64, trigger func() error) (Page, error) {
	s.UpdateLastUsed()

	opts := playwright.BrowserContextExpectPageOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	page, err := s.Context.ExpectPage(trigger, opts)
	if err != nil {
		return nil, err
	}
	return &sessionPage{page: page}, nil
}

// PageText returns the cleaned text content of the whole page.
func (s *Session) PageText() (string, error) {
	s.UpdateLastUsed()

	content, err := s.activePage().Content()
	if err != nil {
		return "", fmt.Errorf("content query failed: %w", err)
	}
	text, err := extractText(content)
	if err != nil {
		return "", fmt.Errorf("content cleanup failed: %w", err)
	}
	return text, nil
}

// sessionPage adapts a Playwright page to the Page interface.
type sessionPage struct {
	page playwright.Page
}

func (p *sessionPage) URL() string {
	return p.page.URL()
}

func (p *sessionPage) WaitForReady(timeout float64) error {
	opts := playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	return p.page.WaitForLoadState(opts)
}
