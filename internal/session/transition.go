package session

import (
	"github.com/proofylabs/proofy/internal/forensic"
)

// State is the explicit view-state bag: the active view, the currently
// loaded result, the last error message, and whether an analysis request is
// in flight. Created once at startup (home, no result) and mutated only
// through Transition.
type State struct {
	View     View
	Result   *forensic.AnalysisResult
	Error    string
	InFlight bool
}

// NewState returns the initial state.
func NewState() State {
	return State{View: ViewHome}
}

// Event is a trigger the transition function consumes.
type Event interface{ isEvent() }

// SubmitMedia is the user submitting a file for analysis.
type SubmitMedia struct{}

// AnalysisSettled is the in-flight analysis request completing, with either
// a result or an error message.
type AnalysisSettled struct {
	Result *forensic.AnalysisResult
	Error  string
}

// OpenReport opens the judicial report for the current result.
type OpenReport struct{}

// OpenTimeline opens the forensic timeline for the current result.
type OpenTimeline struct{}

// GoBack leaves a result-derived or tool view.
type GoBack struct{}

// SelectResult replaces the current result with a history or triage entry
// and shows the results screen.
type SelectResult struct {
	Result *forensic.AnalysisResult
}

// Reset returns to home, clearing result and error. History is untouched.
type Reset struct{}

// OpenTool navigates to a peripheral tool view.
type OpenTool struct {
	View View
}

func (SubmitMedia) isEvent()     {}
func (AnalysisSettled) isEvent() {}
func (OpenReport) isEvent()      {}
func (OpenTimeline) isEvent()    {}
func (GoBack) isEvent()          {}
func (SelectResult) isEvent()    {}
func (Reset) isEvent()           {}
func (OpenTool) isEvent()        {}

// Transition is the pure view-state transition function. It owns every
// navigation rule and guard; side effects (history writes, credential
// selection, preview release) live in the Coordinator. Unknown or invalid
// triggers leave the state unchanged.
func Transition(s State, ev Event) State {
	switch ev := ev.(type) {
	case SubmitMedia:
		// At most one in-flight request: a second submission during
		// processing is a no-op until the first settles.
		if s.InFlight || s.View != ViewHome {
			return s
		}
		s.View = ViewProcessing
		s.Error = ""
		s.InFlight = true
		return s

	case AnalysisSettled:
		wasProcessing := s.View == ViewProcessing
		s.InFlight = false
		if !wasProcessing {
			// Late settlement after the user navigated away: never force
			// navigation. The coordinator still records a success in
			// history.
			return s
		}
		if ev.Result != nil {
			s.View = ViewResults
			s.Result = ev.Result
			s.Error = ""
			return s
		}
		s.View = ViewHome
		s.Error = ev.Error
		return s

	case OpenReport:
		// A results-derived screen without a result must never render.
		if s.View != ViewResults || s.Result == nil {
			return s
		}
		s.View = ViewJudicialReport
		return s

	case OpenTimeline:
		if s.View != ViewResults || s.Result == nil {
			return s
		}
		s.View = ViewForensicTimeline
		return s

	case GoBack:
		switch s.View {
		case ViewJudicialReport, ViewForensicTimeline:
			s.View = ViewResults
		case ViewResults:
			if !s.InFlight {
				s.View = ViewHome
			}
		default:
			if s.View.IsTool() {
				s.View = ViewHome
			}
		}
		return s

	case SelectResult:
		if ev.Result == nil {
			return s
		}
		s.View = ViewResults
		s.Result = ev.Result
		return s

	case Reset:
		s.View = ViewHome
		s.Result = nil
		s.Error = ""
		return s

	case OpenTool:
		if !ev.View.IsTool() || s.View == ViewProcessing {
			return s
		}
		s.View = ev.View
		return s
	}

	return s
}
