package crawler

import (
	"log"
	"sync"

	"github.com/meejain/da-crawl/internal/analyzer"
	"github.com/meejain/da-crawl/internal/model"
	"github.com/meejain/da-crawl/internal/repository"
)

// reportRecorder is the EventSink used by job workers: it persists one
// PageReport row per event and tallies the summary counts. A failed insert
// is logged and dropped; reporting must never disturb the crawl.
type reportRecorder struct {
	jobID   uint
	reports repository.PageReportRepository

	mu      sync.Mutex
	summary model.CrawlSummary
}

func newReportRecorder(jobID uint, reports repository.PageReportRepository) *reportRecorder {
	return &reportRecorder{jobID: jobID, reports: reports}
}

// Record implements EventSink.
func (r *reportRecorder) Record(ev Event) {
	report := &model.PageReport{
		JobID: r.jobID,
		Path:  ev.Path,
	}
	if ev.Err != nil {
		report.Error = ev.Err.Error()
	}

	r.mu.Lock()
	switch ev.Kind {
	case EventPublished:
		report.Verdict = string(analyzer.VerdictSubstantive)
		report.Published = true
		r.summary.Published++
	case EventPublishFailed:
		report.Verdict = string(analyzer.VerdictSubstantive)
		r.summary.Errors++
	case EventBlank:
		report.Verdict = string(analyzer.VerdictBlank)
		r.summary.Blank++
	case EventFileSkipped:
		report.Verdict = "skipped"
	case EventFetchFailed, EventListFailed:
		report.Verdict = "error"
		r.summary.Errors++
	default:
		report.Verdict = "error"
	}
	r.mu.Unlock()

	if err := r.reports.Add(report); err != nil {
		log.Printf("[crawler] job=%d report %s: %v", r.jobID, ev.Path, err)
	}
}

// Summary returns a snapshot of the tallied counts.
func (r *reportRecorder) Summary() model.CrawlSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}
