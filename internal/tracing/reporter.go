package tracing

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirkon/streamtrace/internal/chain"
)

// Reporter collects failures discovered during tracing.
type Reporter struct {
	mu      sync.Mutex
	reports []Report
}

// Report represents a single diagnostic entry.
type Report struct {
	Phase ReportPhase

	// Call is an index of the pipeline call the report is about, it is -1
	// for reports about the whole pipeline.
	Call    int
	Range   chain.Range
	Message string
	Err     error
}

// ReportPhase marks the tracing stage where a report was generated.
type ReportPhase int

const (
	reportPhaseInvalid ReportPhase = iota
	ReportBuild                    // trace expression building
	ReportEvaluate                 // evaluation in the debuggee
	ReportInterpret                // decoding of the evaluation result
	ReportResolve                  // correspondence computation
)

func (p ReportPhase) String() string {
	switch p {
	case ReportBuild:
		return "build"
	case ReportEvaluate:
		return "evaluate"
	case ReportInterpret:
		return "interpret"
	case ReportResolve:
		return "resolve"
	default:
		return fmt.Sprintf("unknown-phase(%d)", p)
	}
}

// ReporterPhase binds a Reporter to a fixed phase.
type ReporterPhase struct {
	parent *Reporter
	phase  ReportPhase
}

// Phase returns a reporter that sets the given phase for all reports
// produced through it.
func (r *Reporter) Phase(p ReportPhase) *ReporterPhase {
	return &ReporterPhase{parent: r, phase: p}
}

// Report adds a new record to the reporter.
func (r *Reporter) Report(rep Report) {
	r.mu.Lock()
	r.reports = append(r.reports, rep)
	r.mu.Unlock()
}

// Report records a failure of the whole pipeline under the bound phase.
func (rp *ReporterPhase) Report(message string, err error) {
	rp.parent.Report(Report{
		Phase:   rp.phase,
		Call:    -1,
		Message: message,
		Err:     err,
	})
}

// ReportCall records a failure related to the i-th call of the pipeline.
func (rp *ReporterPhase) ReportCall(c *chain.Chain, i int, err error) {
	call := c.Call(i)
	rp.parent.Report(Report{
		Phase:   rp.phase,
		Call:    i,
		Range:   call.Range,
		Message: call.Name,
		Err:     err,
	})
}

// Reports returns a snapshot of all collected records.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// PrintSummary prints all collected reports in a compact, human-readable form.
func (r *Reporter) PrintSummary(w io.Writer) {
	for _, rep := range r.Reports() {
		if rep.Call < 0 {
			fmt.Fprintf(w, "[%s] %s: %v\n", rep.Phase, rep.Message, rep.Err)
			continue
		}
		fmt.Fprintf(w, "[%s] call %d %s (%d:%d): %v\n",
			rep.Phase,
			rep.Call,
			rep.Message,
			rep.Range.Start,
			rep.Range.End,
			rep.Err)
	}
}
