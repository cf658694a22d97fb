package actions

import (
	"errors"
	"fmt"

	"github.com/entrhq/surf/pkg/browser"
)

// errFakeTimeout mimics the text of a driver wait timeout.
var errFakeTimeout = errors.New("timeout 3000ms exceeded while waiting for event \"page\"")

// fakeDriver implements browser.Driver with overridable behavior per
// method. The zero value behaves like a page with exactly one match for
// every selector. Every driver call is recorded in calls.
type fakeDriver struct {
	calls []string

	countFn       func(selector string) (int, error)
	isVisibleFn   func(selector string) (bool, error)
	isEnabledFn   func(selector string) (bool, error)
	clickFn       func(selector string, opts browser.ClickOptions) error
	fillFn        func(selector, value string, timeout float64) error
	selectFn      func(selector, value string, timeout float64) error
	textContentFn func(selector string, timeout float64) (string, error)
	waitFn        func(selector string, timeout float64) error
	evaluateFn    func(script string, arg any) (any, error)
	pressFn       func(combination string) error
	navigateFn    func(url string, timeout float64) error
	backFn        func(timeout float64) error
	forwardFn     func(timeout float64) error
	boundingBoxFn func(selector string) (*browser.Rect, error)
	expectPageFn  func(timeout float64, trigger func() error) (browser.Page, error)
	pageTextFn    func() (string, error)

	viewportWidth  int
	viewportHeight int
	noViewport     bool
}

var _ browser.Driver = (*fakeDriver)(nil)

func (d *fakeDriver) record(call string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(call, args...))
}

func (d *fakeDriver) Count(selector string) (int, error) {
	d.record("count %s", selector)
	if d.countFn != nil {
		return d.countFn(selector)
	}
	return 1, nil
}

func (d *fakeDriver) IsVisible(selector string) (bool, error) {
	d.record("visible %s", selector)
	if d.isVisibleFn != nil {
		return d.isVisibleFn(selector)
	}
	return true, nil
}

func (d *fakeDriver) IsEnabled(selector string) (bool, error) {
	d.record("enabled %s", selector)
	if d.isEnabledFn != nil {
		return d.isEnabledFn(selector)
	}
	return true, nil
}

func (d *fakeDriver) Click(selector string, opts browser.ClickOptions) error {
	mode := "plain"
	switch {
	case opts.CtrlOrMeta:
		mode = "ctrl"
	case opts.Force:
		mode = "force"
	}
	d.record("click %s %s", mode, selector)
	if d.clickFn != nil {
		return d.clickFn(selector, opts)
	}
	return nil
}

func (d *fakeDriver) Fill(selector, value string, timeout float64) error {
	d.record("fill %s", selector)
	if d.fillFn != nil {
		return d.fillFn(selector, value, timeout)
	}
	return nil
}

func (d *fakeDriver) SelectByValue(selector, value string, timeout float64) error {
	d.record("select %s", selector)
	if d.selectFn != nil {
		return d.selectFn(selector, value, timeout)
	}
	return nil
}

func (d *fakeDriver) TextContent(selector string, timeout float64) (string, error) {
	d.record("text %s", selector)
	if d.textContentFn != nil {
		return d.textContentFn(selector, timeout)
	}
	return "", nil
}

func (d *fakeDriver) WaitForSelector(selector string, timeout float64) error {
	d.record("wait %s", selector)
	if d.waitFn != nil {
		return d.waitFn(selector, timeout)
	}
	return nil
}

func (d *fakeDriver) Evaluate(script string, arg any) (any, error) {
	d.record("evaluate")
	if d.evaluateFn != nil {
		return d.evaluateFn(script, arg)
	}
	return nil, nil
}

func (d *fakeDriver) Press(combination string) error {
	d.record("press %s", combination)
	if d.pressFn != nil {
		return d.pressFn(combination)
	}
	return nil
}

func (d *fakeDriver) Navigate(url string, timeout float64) error {
	d.record("navigate %s", url)
	if d.navigateFn != nil {
		return d.navigateFn(url, timeout)
	}
	return nil
}

func (d *fakeDriver) Back(timeout float64) error {
	d.record("back")
	if d.backFn != nil {
		return d.backFn(timeout)
	}
	return nil
}

func (d *fakeDriver) Forward(timeout float64) error {
	d.record("forward")
	if d.forwardFn != nil {
		return d.forwardFn(timeout)
	}
	return nil
}

func (d *fakeDriver) ViewportSize() (int, int, bool) {
	if d.noViewport {
		return 0, 0, false
	}
	if d.viewportWidth == 0 && d.viewportHeight == 0 {
		return 1280, 720, true
	}
	return d.viewportWidth, d.viewportHeight, true
}

func (d *fakeDriver) BoundingBox(selector string) (*browser.Rect, error) {
	d.record("box %s", selector)
	if d.boundingBoxFn != nil {
		return d.boundingBoxFn(selector)
	}
	return &browser.Rect{X: 0, Y: 0, Width: 100, Height: 50}, nil
}

func (d *fakeDriver) ExpectNewPage(timeout float64, trigger func() error) (browser.Page, error) {
	d.record("expect_page")
	if d.expectPageFn != nil {
		return d.expectPageFn(timeout, trigger)
	}
	// Default: the click lands but no tab opens.
	if err := trigger(); err != nil {
		return nil, err
	}
	return nil, errFakeTimeout
}

func (d *fakeDriver) PageText() (string, error) {
	d.record("page_text")
	if d.pageTextFn != nil {
		return d.pageTextFn()
	}
	return "", nil
}

// fakePage implements browser.Page.
type fakePage struct {
	url      string
	readyErr error
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) WaitForReady(timeout float64) error { return p.readyErr }

// fakeTabs implements browser.TabManager and records activations.
type fakeTabs struct {
	tabs        []browser.TabInfo
	tabsErr     error
	activateErr error
	activated   []string
}

var _ browser.TabManager = (*fakeTabs)(nil)

func (t *fakeTabs) Tabs() ([]browser.TabInfo, error) {
	if t.tabsErr != nil {
		return nil, t.tabsErr
	}
	return t.tabs, nil
}

func (t *fakeTabs) Activate(id string) error {
	t.activated = append(t.activated, id)
	return t.activateErr
}

// diagnosticsResult builds the map the diagnostics script would return.
func diagnosticsResult(overrides map[string]any) map[string]any {
	result := map[string]any{
		"tag":          "BUTTON",
		"href":         "",
		"ancestorHref": "",
		"role":         "",
		"text":         "Submit",
		"linkCount":    0,
		"linkHref":     "",
		"linkText":     "",
		"hasOnclick":   false,
		"inViewport":   true,
	}
	for key, value := range overrides {
		result[key] = value
	}
	return result
}
