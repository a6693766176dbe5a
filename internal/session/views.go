package session

// View identifies one named screen of the application. Exactly one is active
// at a time.
type View int

const (
	ViewHome View = iota
	ViewProcessing
	ViewResults
	ViewJudicialReport
	ViewForensicTimeline
	ViewBatchTriage
	ViewReverseGrounding
	ViewTextLab
	ViewLive
	ViewHistory
	ViewSignalLibrary
)

var viewNames = map[View]string{
	ViewHome:             "home",
	ViewProcessing:       "processing",
	ViewResults:          "results",
	ViewJudicialReport:   "judicial_report",
	ViewForensicTimeline: "forensic_timeline",
	ViewBatchTriage:      "batch_triage",
	ViewReverseGrounding: "reverse_grounding",
	ViewTextLab:          "text_lab",
	ViewLive:             "live",
	ViewHistory:          "history",
	ViewSignalLibrary:    "signal_library",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}

// IsTool reports whether the view is one of the peripheral tool screens
// reachable from home.
func (v View) IsTool() bool {
	switch v {
	case ViewBatchTriage, ViewReverseGrounding, ViewTextLab, ViewLive, ViewHistory, ViewSignalLibrary:
		return true
	default:
		return false
	}
}
