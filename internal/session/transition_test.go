package session

import (
	"testing"

	"github.com/proofylabs/proofy/internal/forensic"
)

func fabricated(id string) *forensic.AnalysisResult {
	return &forensic.AnalysisResult{
		ID:                  id,
		Verdict:             forensic.VerdictFabricated,
		DeepfakeProbability: 82,
		ConfidenceLevel:     forensic.ConfidenceHigh,
	}
}

func TestTransitionSubmit(t *testing.T) {
	s := NewState()
	s.Error = "stale failure"

	s = Transition(s, SubmitMedia{})
	if s.View != ViewProcessing {
		t.Fatalf("View = %v, want processing", s.View)
	}
	if s.Error != "" {
		t.Error("submit must clear the previous error")
	}
	if !s.InFlight {
		t.Error("submit must mark a request in flight")
	}
}

func TestTransitionSecondSubmitIsNoOp(t *testing.T) {
	s := Transition(NewState(), SubmitMedia{})
	again := Transition(s, SubmitMedia{})
	if again != s {
		t.Error("a second submission during processing must be a no-op")
	}
}

func TestTransitionSubmitOnlyFromHome(t *testing.T) {
	s := NewState()
	s.View = ViewHistory
	if got := Transition(s, SubmitMedia{}); got != s {
		t.Error("submit outside home must be a no-op")
	}
}

func TestTransitionSuccess(t *testing.T) {
	s := Transition(NewState(), SubmitMedia{})
	result := fabricated("r1")

	s = Transition(s, AnalysisSettled{Result: result})
	if s.View != ViewResults {
		t.Fatalf("View = %v, want results", s.View)
	}
	if s.Result != result {
		t.Error("success must store the result")
	}
	if s.InFlight {
		t.Error("settlement must clear in-flight")
	}
}

func TestTransitionFailureReturnsHome(t *testing.T) {
	s := Transition(NewState(), SubmitMedia{})
	s = Transition(s, AnalysisSettled{Error: "API Key Required for Neural Processing"})

	if s.View != ViewHome {
		t.Fatalf("View = %v, want home", s.View)
	}
	if s.Error == "" {
		t.Error("failure must surface a non-empty error message")
	}
	if s.Result != nil {
		t.Error("failure must not install a result")
	}
}

func TestTransitionLateSettlementDoesNotNavigate(t *testing.T) {
	s := Transition(NewState(), SubmitMedia{})
	// User walks away before the request settles.
	s = Transition(s, Reset{})
	s = Transition(s, OpenTool{View: ViewSignalLibrary})

	late := Transition(s, AnalysisSettled{Result: fabricated("late")})
	if late.View != ViewSignalLibrary {
		t.Errorf("late completion must not force navigation, got %v", late.View)
	}
	if late.Result != nil {
		t.Error("late completion must not install a result")
	}
	if late.InFlight {
		t.Error("late settlement still clears in-flight")
	}
}

func TestTransitionResultsGuard(t *testing.T) {
	// A transition into a results-derived screen without a result is
	// invalid and must be ignored.
	s := NewState()
	if got := Transition(s, OpenReport{}); got.View != ViewHome {
		t.Error("report without result must not render")
	}
	if got := Transition(s, OpenTimeline{}); got.View != ViewHome {
		t.Error("timeline without result must not render")
	}
	if got := Transition(s, SelectResult{Result: nil}); got.View != ViewHome {
		t.Error("nil selection must not reach results")
	}
}

func TestTransitionReportRoundTrip(t *testing.T) {
	s := State{View: ViewResults, Result: fabricated("r1")}

	s = Transition(s, OpenReport{})
	if s.View != ViewJudicialReport {
		t.Fatalf("View = %v, want judicial_report", s.View)
	}
	s = Transition(s, GoBack{})
	if s.View != ViewResults {
		t.Errorf("back from report should return to results, got %v", s.View)
	}

	s = Transition(s, OpenTimeline{})
	if s.View != ViewForensicTimeline {
		t.Fatalf("View = %v, want forensic_timeline", s.View)
	}
	if s = Transition(s, GoBack{}); s.View != ViewResults {
		t.Errorf("back from timeline should return to results, got %v", s.View)
	}
}

func TestTransitionSelectFromAnyView(t *testing.T) {
	entry := fabricated("hist")
	for _, view := range []View{ViewHome, ViewResults, ViewHistory, ViewSignalLibrary, ViewBatchTriage} {
		s := State{View: view}
		got := Transition(s, SelectResult{Result: entry})
		if got.View != ViewResults || got.Result != entry {
			t.Errorf("select from %v: got view %v", view, got.View)
		}
	}
}

func TestTransitionReset(t *testing.T) {
	s := State{View: ViewJudicialReport, Result: fabricated("r1"), Error: "old"}
	s = Transition(s, Reset{})

	if s.View != ViewHome || s.Result != nil || s.Error != "" {
		t.Errorf("reset must clear result and error and return home, got %+v", s)
	}
}

func TestTransitionOpenTool(t *testing.T) {
	for _, tool := range []View{ViewBatchTriage, ViewReverseGrounding, ViewTextLab, ViewLive, ViewHistory, ViewSignalLibrary} {
		s := Transition(NewState(), OpenTool{View: tool})
		if s.View != tool {
			t.Errorf("OpenTool(%v) = %v", tool, s.View)
		}
	}

	// Non-tool destinations are rejected.
	if s := Transition(NewState(), OpenTool{View: ViewResults}); s.View != ViewHome {
		t.Error("OpenTool must reject non-tool views")
	}

	// Navigation away from processing is driven by settlement, not tools.
	processing := Transition(NewState(), SubmitMedia{})
	if s := Transition(processing, OpenTool{View: ViewHistory}); s.View != ViewProcessing {
		t.Error("OpenTool during processing must be a no-op")
	}
}

func TestViewStrings(t *testing.T) {
	if ViewJudicialReport.String() != "judicial_report" {
		t.Errorf("unexpected name %q", ViewJudicialReport.String())
	}
	if View(99).String() != "unknown" {
		t.Error("out-of-range view should stringify as unknown")
	}
}
