package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/surf/pkg/browser"
	"github.com/entrhq/surf/pkg/logging"
)

// Config carries the duration constants and clamps the engine runs with.
// All timeouts are in milliseconds.
type Config struct {
	// ShortTimeout bounds optimistic waits: new-tab detection and fills.
	ShortTimeout float64

	// ActionTimeout is the general timeout for clicks, selects, waits and
	// text extraction.
	ActionTimeout float64

	// NavigationTimeout bounds full page loads and history navigation.
	NavigationTimeout float64

	// MaxScrollAmount clamps a single scroll offset, in pixels.
	MaxScrollAmount int

	// ScrollSettle is how long to pause after scrolling so the page can
	// settle before the caller re-captures state.
	ScrollSettle time.Duration
}

// DefaultConfig returns the stock engine configuration.
func DefaultConfig() Config {
	return Config{
		ShortTimeout:      3000,
		ActionTimeout:     10000,
		NavigationTimeout: 30000,
		MaxScrollAmount:   5000,
		ScrollSettle:      500 * time.Millisecond,
	}
}

// URLPolicy decides whether a navigation target is acceptable. A nil
// policy allows everything.
type URLPolicy interface {
	Allowed(url string) bool
}

// Executor turns declarative actions into driver operations. It holds no
// mutable state of its own; one executor per session is safe, and Execute
// runs one action to completion at a time.
type Executor struct {
	driver browser.Driver
	tabs   browser.TabManager
	policy URLPolicy
	cfg    Config
	log    *logging.Logger
}

// Option configures optional executor collaborators.
type Option func(*Executor)

// WithTabManager injects the tab collaborator used to follow clicks into
// new tabs. Without one the click engine cannot detect new tabs and
// reports ctrl_click_no_session on success.
func WithTabManager(tabs browser.TabManager) Option {
	return func(e *Executor) { e.tabs = tabs }
}

// WithURLPolicy injects a navigation URL policy.
func WithURLPolicy(policy URLPolicy) Option {
	return func(e *Executor) { e.policy = policy }
}

// WithLogger injects the logger for diagnostics and strategy tracing.
func WithLogger(log *logging.Logger) Option {
	return func(e *Executor) { e.log = log }
}

// NewExecutor creates an executor over the given driver. Zero config
// fields are filled from DefaultConfig.
func NewExecutor(driver browser.Driver, cfg Config, opts ...Option) *Executor {
	defaults := DefaultConfig()
	if cfg.ShortTimeout == 0 {
		cfg.ShortTimeout = defaults.ShortTimeout
	}
	if cfg.ActionTimeout == 0 {
		cfg.ActionTimeout = defaults.ActionTimeout
	}
	if cfg.NavigationTimeout == 0 {
		cfg.NavigationTimeout = defaults.NavigationTimeout
	}
	if cfg.MaxScrollAmount == 0 {
		cfg.MaxScrollAmount = defaults.MaxScrollAmount
	}

	e := &Executor{
		driver: driver,
		cfg:    cfg,
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type handlerFunc func(ctx context.Context, action *Action) (*ActionResult, error)

// Execute validates the action, routes it to its handler, and normalizes
// the handler's outcome into an ActionResult. It never panics and never
// returns nil: every error surfaces as a failure result.
func (e *Executor) Execute(ctx context.Context, action *Action) *ActionResult {
	if action == nil {
		return failure("No action to execute", nil)
	}
	if action.Type == "" {
		return failure("Error: action has no type", nil)
	}

	handler, known := e.handlerFor(action.Type)
	if !known {
		return failure(
			fmt.Sprintf("Error: Unknown action type '%s'", action.Type),
			map[string]any{"action_type": string(action.Type)},
		)
	}

	result, err := e.runHandler(ctx, handler, action)
	if err != nil {
		e.log.Errorf("action %s failed: %v", action.Type, err)
		return failure(fmt.Sprintf("Error executing %s: %v", action.Type, err), nil)
	}

	// Success is always re-derived from the message so every handler
	// shares one classification rule.
	result.Success = classifyOutcome(result.Message)
	return result
}

// handlerFor maps an action type to its handler. The switch is exhaustive
// over the ActionType constants; an unlisted type is a usage error.
func (e *Executor) handlerFor(t ActionType) (handlerFunc, bool) {
	switch t {
	case ActionClick:
		return e.executeClick, true
	case ActionTypeText:
		return e.executeType, true
	case ActionSelect:
		return e.executeSelect, true
	case ActionWait:
		return e.executeWait, true
	case ActionExtract:
		return e.executeExtract, true
	case ActionScroll:
		return e.executeScroll, true
	case ActionEnter:
		return e.executeEnter, true
	case ActionMouseControl:
		return e.executeMouseControl, true
	case ActionMouseDrag:
		return e.executeMouseDrag, true
	case ActionPressKey:
		return e.executePressKey, true
	case ActionNavigate:
		return e.executeNavigate, true
	case ActionBack:
		return e.executeBack, true
	case ActionForward:
		return e.executeForward, true
	default:
		return nil, false
	}
}

// runHandler shields the dispatcher from handler panics; a recovered panic
// becomes an ordinary handler error.
func (e *Executor) runHandler(ctx context.Context, handler handlerFunc, action *Action) (result *ActionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return handler(ctx, action)
}

// ShouldUpdateSnapshot reports whether an action is expected to mutate
// page state, so the caller knows to re-capture it. wait and extract are
// read-only; everything else mutates.
func ShouldUpdateSnapshot(action *Action) bool {
	if action == nil {
		return false
	}
	switch action.Type {
	case ActionWait, ActionExtract:
		return false
	case ActionClick, ActionTypeText, ActionSelect, ActionScroll, ActionEnter,
		ActionMouseControl, ActionMouseDrag, ActionPressKey,
		ActionNavigate, ActionBack, ActionForward:
		return true
	default:
		return false
	}
}
