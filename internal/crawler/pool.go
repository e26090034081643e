package crawler

import (
	"context"
	"log"
	"sync"

	"github.com/meejain/da-crawl/internal/analyzer"
	"github.com/meejain/da-crawl/internal/repository"
	"github.com/meejain/da-crawl/internal/treeclient"
)

// Pool is injected into crawl_service so handlers can queue jobs.
type Pool interface {
	// Start runs background workers until the passed context is cancelled.
	Start(ctx context.Context)
	Enqueue(id uint)
	Shutdown()
}

// New creates a crawler pool over the given repositories, tree client, and
// analyzer.
func New(
	jobs repository.CrawlJobRepository,
	reports repository.PageReportRepository,
	client treeclient.Client,
	anal analyzer.Analyzer,
	workers, buf int,
) Pool {
	if workers <= 0 {
		workers = 4
	}
	if buf <= 0 {
		buf = 128
	}

	// The pool's own context lives from construction to Shutdown; it is
	// never swapped, so Enqueue can read it without synchronization.
	ctx, cancel := context.WithCancel(context.Background())

	return &pool{
		jobs:    jobs,
		reports: reports,
		client:  client,
		anal:    anal,
		workers: workers,
		tasks:   make(chan uint, buf),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// pool manages a set of workers that process crawl jobs.
type pool struct {
	jobs    repository.CrawlJobRepository
	reports repository.PageReportRepository
	client  treeclient.Client
	anal    analyzer.Analyzer
	workers int
	tasks   chan uint

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// Start spins up background workers and blocks until ctx is cancelled,
// then shuts the pool down.
func (p *pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		w := newWorker(i+1, p.ctx, p.jobs, p.reports, p.client, p.anal)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.run(p.tasks)
		}()
	}

	select {
	case <-ctx.Done():
	case <-p.ctx.Done():
	}
	p.Shutdown()
}

// Enqueue drops a crawl-job ID onto the buffered channel.
func (p *pool) Enqueue(id uint) {
	select {
	case <-p.ctx.Done():
	case p.tasks <- id:
	default:
		log.Printf("[crawler] queue full – dropping job id=%d", id)
	}
}

// Shutdown cancels the pool context, waits for the workers, and closes the
// task channel. Safe to call more than once.
func (p *pool) Shutdown() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
		close(p.tasks)
	})
}
