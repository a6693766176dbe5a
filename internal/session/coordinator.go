// Package session implements the view-state coordinator: the single
// authority over which screen is showing, the data that screen needs, and
// the history of past results.
package session

import (
	"sync"

	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/history"
	"github.com/proofylabs/proofy/internal/logger"
)

// KeySelector is the injected credential-selection affordance invoked when
// the gateway reports a missing credential.
type KeySelector interface {
	OpenSelectKey()
}

// Releaser frees a transient resource, typically a media preview.
type Releaser interface {
	Release() error
}

// Coordinator owns the view state and the history store. It is the single
// writer for both: no other component mutates them. Navigation rules live in
// the pure Transition function; the coordinator adds the side effects
// (history appends, credential selection, preview release).
type Coordinator struct {
	mu      sync.Mutex
	state   State
	history *history.Store
	keys    KeySelector
	log     *logger.Logger

	// pending is the preview of the media currently being analyzed;
	// current is the preview of the loaded result. Both are released when
	// no view displays them anymore.
	pending Releaser
	current Releaser
}

// New creates a coordinator over a loaded history store. keys may be nil
// when no credential selector is available.
func New(hist *history.Store, keys KeySelector, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.New("session", nil)
	}
	return &Coordinator{state: NewState(), history: hist, keys: keys, log: log}
}

// State returns the current view-state snapshot.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// History returns the entries for the history view, most recent first.
func (c *Coordinator) History() []*forensic.AnalysisResult {
	return c.history.Entries()
}

// Submit moves home to processing for a new upload. Returns false when the
// submission is rejected because an analysis is already in flight; the
// caller must not start a second request. preview is released by the
// coordinator once no screen displays it.
func (c *Coordinator) Submit(preview Releaser) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := Transition(c.state, SubmitMedia{})
	if next.View != ViewProcessing || c.state.View == ViewProcessing {
		c.log.Debug("submission rejected", logger.F("view", c.state.View))
		return false
	}
	c.state = next
	c.pending = preview
	return true
}

// Complete settles the in-flight analysis with a success. The result is
// appended to history regardless of the current view; navigation to results
// happens only if the user is still on the processing screen.
func (c *Coordinator) Complete(result *forensic.AnalysisResult) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.history.Append(result); err != nil {
		c.log.Warn("history append failed", logger.Err(err))
	}

	next := Transition(c.state, AnalysisSettled{Result: result})
	if next.View == ViewResults && next.Result == result {
		c.releaseCurrent()
		c.current = c.pending
		c.pending = nil
	} else {
		// Late completion: accepted into history, no forced navigation,
		// nothing displays the preview.
		c.releasePending()
	}
	c.state = next
	return c.state
}

// Fail settles the in-flight analysis with a classified gateway error. A
// missing credential additionally triggers the key-selection affordance.
// Failures never touch history.
func (c *Coordinator) Fail(err error) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	ge := gateway.Classify("", err)
	c.log.Error("analysis failed", logger.F("kind", ge.Kind), logger.Err(err))

	c.releasePending()
	c.state = Transition(c.state, AnalysisSettled{Error: ge.UserMessage()})

	if ge.Kind == gateway.KindCredentialMissing && c.keys != nil {
		c.keys.OpenSelectKey()
	}
	return c.state
}

// Apply performs a user navigation event.
func (c *Coordinator) Apply(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	c.state = Transition(prev, ev)

	// Reset and result replacement drop the preview nothing displays.
	switch ev.(type) {
	case Reset:
		c.releaseCurrent()
	case SelectResult:
		if c.state.Result != prev.Result {
			c.releaseCurrent()
		}
	}
	return c.state
}

// SelectFromHistory re-displays a stored entry by id. An unknown id leaves
// the state unchanged.
func (c *Coordinator) SelectFromHistory(id string) State {
	entry, ok := c.history.Select(id)
	if !ok {
		c.log.Warn("unknown history id", logger.F("id", id))
		return c.State()
	}
	return c.Apply(SelectResult{Result: entry})
}

// Close releases remaining transient resources at teardown.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releasePending()
	c.releaseCurrent()
}

func (c *Coordinator) releasePending() {
	if c.pending != nil {
		if err := c.pending.Release(); err != nil {
			c.log.Debug("preview release failed", logger.Err(err))
		}
		c.pending = nil
	}
}

func (c *Coordinator) releaseCurrent() {
	if c.current != nil {
		if err := c.current.Release(); err != nil {
			c.log.Debug("preview release failed", logger.Err(err))
		}
		c.current = nil
	}
}
