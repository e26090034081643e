package crawler

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/meejain/da-crawl/internal/analyzer"
	"github.com/meejain/da-crawl/internal/model"
	"github.com/meejain/da-crawl/internal/repository"
	"github.com/meejain/da-crawl/internal/treeclient"
)

// docExtension is the only leaf type the orchestrator touches; everything
// else in the tree (sheets, media, configs) is left alone.
const docExtension = ".html"

type worker struct {
	id      int
	ctx     context.Context
	jobs    repository.CrawlJobRepository
	reports repository.PageReportRepository
	client  treeclient.Client
	anal    analyzer.Analyzer
}

func newWorker(
	id int,
	ctx context.Context,
	jobs repository.CrawlJobRepository,
	reports repository.PageReportRepository,
	client treeclient.Client,
	anal analyzer.Analyzer,
) *worker {
	return &worker{id: id, ctx: ctx, jobs: jobs, reports: reports, client: client, anal: anal}
}

// run processes job IDs from the channel until it closes or the context ends.
func (w *worker) run(tasks <-chan uint) {
	for {
		select {
		case <-w.ctx.Done():
			return
		case id, ok := <-tasks:
			if !ok {
				return
			}
			if id == 0 {
				continue
			}
			w.process(id)
		}
	}
}

// process runs one crawl job end to end: traverse the tree from the job's
// root, classify and republish every document, persist per-path reports,
// and flip the job status.
func (w *worker) process(id uint) {
	logf := func(fmt string, v ...any) {
		log.Printf("[crawler:%d] job=%d – "+fmt, append([]any{id}, v...)...)
	}

	// status → running.
	if err := w.jobs.UpdateStatus(id, model.StatusRunning); err != nil {
		logf("cannot set running: %v", err)
		return
	}

	job, err := w.jobs.FindByID(id)
	if err != nil {
		setErr(w.jobs, id, err)
		logf("lookup: %v", err)
		return
	}

	// A stop request that raced the dequeue takes precedence.
	if job.Status == model.StatusStopped {
		logf("aborting crawl because status is 'stopped'")
		return
	}

	rec := newReportRecorder(job.ID, w.reports)
	sched := NewScheduler(w.client, job.Concurrency, w.fileWork(rec), rec)

	start := time.Now()
	files := sched.Crawl(w.ctx, job.RootPath)

	summary := rec.Summary()
	summary.Files = len(files)
	if err := w.jobs.SaveSummary(id, summary); err != nil {
		logf("save summary: %v", err)
	}

	if w.ctx.Err() != nil {
		_ = w.jobs.UpdateStatus(id, model.StatusStopped)
		logf("stopped by ctx")
		return
	}

	// Only mark as done if the status wasn't changed to stopped meanwhile.
	updated, err := w.jobs.FindByID(id)
	if err != nil {
		logf("lookup after crawl failed: %v", err)
		return
	}
	if updated.Status != model.StatusStopped {
		_ = w.jobs.UpdateStatus(id, model.StatusDone)
	}
	logf("done in %s (files=%d published=%d blank=%d errors=%d)",
		time.Since(start).Truncate(time.Millisecond),
		summary.Files, summary.Published, summary.Blank, summary.Errors)
}

// fileWork builds the per-file unit of work: fetch, classify, and for
// substantive documents republish the normalized payload to the same path.
// Every failure is converted into an event; nothing propagates back to the
// scheduler.
func (w *worker) fileWork(rec *reportRecorder) FileFunc {
	return func(ctx context.Context, entry treeclient.Entry) {
		if !strings.HasSuffix(entry.Path, docExtension) {
			rec.Record(Event{Kind: EventFileSkipped, Path: entry.Path})
			return
		}

		markup, err := w.client.FetchSource(ctx, entry.Path)
		if err != nil {
			rec.Record(Event{Kind: EventFetchFailed, Path: entry.Path, Err: err})
			return
		}

		verdict, payload, err := w.anal.Inspect(markup)
		if err != nil {
			rec.Record(Event{Kind: EventFetchFailed, Path: entry.Path, Err: err})
			return
		}

		if verdict == analyzer.VerdictBlank {
			rec.Record(Event{Kind: EventBlank, Path: entry.Path, Verdict: verdict})
			return
		}

		if err := w.client.Publish(ctx, entry.Path, payload); err != nil {
			rec.Record(Event{Kind: EventPublishFailed, Path: entry.Path, Verdict: verdict, Err: err})
			return
		}
		rec.Record(Event{Kind: EventPublished, Path: entry.Path, Verdict: verdict})
	}
}

// setErr updates the status to Error if the error is not a record not found.
func setErr(jobs repository.CrawlJobRepository, id uint, err error) {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		_ = jobs.UpdateStatus(id, model.StatusError)
	}
}
