package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/history"
)

type fakeKeySelector struct {
	opened int
}

func (f *fakeKeySelector) OpenSelectKey() { f.opened++ }

type fakePreview struct {
	released int
}

func (f *fakePreview) Release() error {
	f.released++
	return nil
}

func newCoordinator(t *testing.T) (*Coordinator, *history.Store, *fakeKeySelector) {
	t.Helper()
	store := history.NewStore(filepath.Join(t.TempDir(), "history.json"), nil)
	store.Load()
	keys := &fakeKeySelector{}
	return New(store, keys, nil), store, keys
}

func TestSuccessfulAnalysisFlow(t *testing.T) {
	c, store, _ := newCoordinator(t)
	preview := &fakePreview{}

	if !c.Submit(preview) {
		t.Fatal("first submission should be accepted")
	}
	if c.State().View != ViewProcessing {
		t.Fatalf("View = %v, want processing", c.State().View)
	}

	result := fabricated("res-1")
	state := c.Complete(result)

	if state.View != ViewResults || state.Result != result {
		t.Errorf("completion should show results, got %+v", state)
	}
	if store.Len() != 1 {
		t.Errorf("history Len = %d, want 1", store.Len())
	}
	if head := store.Entries()[0]; head.ID != "res-1" {
		t.Errorf("history head = %s, want res-1", head.ID)
	}
	if preview.released != 0 {
		t.Error("preview must stay alive while results display it")
	}
}

func TestSecondSubmissionRejectedWhileInFlight(t *testing.T) {
	c, _, _ := newCoordinator(t)

	if !c.Submit(&fakePreview{}) {
		t.Fatal("first submission should be accepted")
	}
	if c.Submit(&fakePreview{}) {
		t.Error("second submission during processing must be rejected")
	}
}

func TestCredentialFailure(t *testing.T) {
	c, store, keys := newCoordinator(t)
	preview := &fakePreview{}
	c.Submit(preview)

	state := c.Fail(gateway.NewError(gateway.KindCredentialMissing, "gemini", errors.New("no key")))

	if state.View != ViewHome {
		t.Errorf("View = %v, want home", state.View)
	}
	if state.Error != "API Key Required for Neural Processing" {
		t.Errorf("Error = %q", state.Error)
	}
	if keys.opened != 1 {
		t.Errorf("key selector opened %d times, want 1", keys.opened)
	}
	if store.Len() != 0 {
		t.Error("failures must never append to history")
	}
	if preview.released != 1 {
		t.Error("failed submission must release its preview")
	}
}

func TestSafetyFailureDoesNotOpenKeySelector(t *testing.T) {
	c, store, keys := newCoordinator(t)
	c.Submit(&fakePreview{})

	state := c.Fail(gateway.NewError(gateway.KindSafetyRejected, "gemini", errors.New("blocked")))

	if state.View != ViewHome || state.Error == "" {
		t.Errorf("safety failure should return home with a message, got %+v", state)
	}
	if keys.opened != 0 {
		t.Error("safety failure must not open the key selector")
	}
	if store.Len() != 0 {
		t.Error("history must stay unchanged")
	}
}

func TestRawErrorIsClassifiedBeforeDisplay(t *testing.T) {
	c, _, _ := newCoordinator(t)
	c.Submit(&fakePreview{})

	state := c.Fail(errors.New("dial tcp: connection refused"))
	if state.Error != "Interrogation failure: The neural engine encountered an unhandled exception." {
		t.Errorf("unclassified failures should show the generic message, got %q", state.Error)
	}
}

func TestResetClearsStateButNotHistory(t *testing.T) {
	c, store, _ := newCoordinator(t)
	preview := &fakePreview{}
	c.Submit(preview)
	c.Complete(fabricated("res-1"))

	state := c.Apply(Reset{})

	if state.View != ViewHome || state.Result != nil || state.Error != "" {
		t.Errorf("reset should clear result and error, got %+v", state)
	}
	if store.Len() != 1 {
		t.Error("reset must leave the history store unchanged")
	}
	if preview.released != 1 {
		t.Error("reset must release the displayed preview")
	}
}

func TestLateCompletionAppendsSilently(t *testing.T) {
	c, store, _ := newCoordinator(t)
	preview := &fakePreview{}
	c.Submit(preview)

	// User navigates away before settlement.
	c.Apply(Reset{})
	c.Apply(OpenTool{View: ViewHistory})

	state := c.Complete(fabricated("late-1"))

	if state.View != ViewHistory {
		t.Errorf("late completion must not force navigation, got %v", state.View)
	}
	if store.Len() != 1 {
		t.Error("late completion still lands in history")
	}
	if preview.released != 1 {
		t.Error("late completion must release the undisplayed preview")
	}

	// The request settled, so a fresh submission is accepted again.
	c.Apply(Reset{})
	if !c.Submit(&fakePreview{}) {
		t.Error("submission after settlement should be accepted")
	}
}

func TestSelectFromHistory(t *testing.T) {
	c, _, _ := newCoordinator(t)
	c.Submit(&fakePreview{})
	c.Complete(fabricated("res-1"))
	c.Apply(Reset{})
	c.Apply(OpenTool{View: ViewHistory})

	state := c.SelectFromHistory("res-1")
	if state.View != ViewResults || state.Result == nil || state.Result.ID != "res-1" {
		t.Errorf("history selection should re-display the entry, got %+v", state)
	}

	// Unknown ids leave the state unchanged.
	before := c.State()
	if after := c.SelectFromHistory("absent"); after != before {
		t.Error("unknown history id must be a no-op")
	}
}

func TestHistoryCapThroughCoordinator(t *testing.T) {
	c, store, _ := newCoordinator(t)

	for i := 0; i < 20; i++ {
		c.Submit(&fakePreview{})
		c.Complete(fabricated(fmt.Sprintf("res-%02d", i)))
		c.Apply(Reset{})
	}

	if store.Len() != history.MaxEntries {
		t.Errorf("history Len = %d, want %d", store.Len(), history.MaxEntries)
	}
	if head := store.Entries()[0]; head.ID != "res-19" {
		t.Errorf("head = %s, want res-19 (oldest evicted first)", head.ID)
	}
}

func TestPreviewHandoffAcrossResults(t *testing.T) {
	c, _, _ := newCoordinator(t)

	first := &fakePreview{}
	c.Submit(first)
	c.Complete(fabricated("res-1"))

	c.Apply(GoBack{})
	second := &fakePreview{}
	c.Submit(second)
	c.Complete(fabricated("res-2"))

	if first.released != 1 {
		t.Error("replacing the displayed result must release the old preview")
	}
	if second.released != 0 {
		t.Error("the new preview must stay alive")
	}

	c.Close()
	if second.released != 1 {
		t.Error("teardown must release the remaining preview")
	}
}

func TestNilKeySelectorIsSafe(t *testing.T) {
	store := history.NewStore(filepath.Join(t.TempDir(), "history.json"), nil)
	store.Load()
	c := New(store, nil, nil)

	c.Submit(&fakePreview{})
	state := c.Fail(gateway.NewError(gateway.KindCredentialMissing, "gemini", nil))
	if state.View != ViewHome {
		t.Error("credential failure without a selector still returns home")
	}
}
