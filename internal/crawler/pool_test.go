package crawler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meejain/da-crawl/internal/analyzer"
	"github.com/meejain/da-crawl/internal/model"
	"github.com/meejain/da-crawl/internal/treeclient"
)

func TestPool_ProcessesEnqueuedJob(t *testing.T) {
	client := newDocClient()
	client.tree["/site"] = []treeclient.Entry{{Path: "/site/page.html", Ext: "html"}}
	client.sources["/site/page.html"] = `<body><p>Enough words to count as content.</p></body>`

	jobs := newMemJobRepo(&model.CrawlJob{ID: 9, RootPath: "/site", Concurrency: 2, Status: model.StatusQueued})
	reports := &memReportRepo{}

	p := New(jobs, reports, client, analyzer.New(), 2, 8)

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	go func() {
		close(started)
		p.Start(ctx)
	}()
	<-started

	p.Enqueue(9)

	require.Eventually(t, func() bool {
		return jobs.status(9) == model.StatusDone
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, client.published["/site/page.html"])

	cancel()
}

func TestPool_EnqueueDropsWhenQueueFull(t *testing.T) {
	jobs := newMemJobRepo()
	p := New(jobs, &memReportRepo{}, newDocClient(), analyzer.New(), 1, 1).(*pool)

	// No workers started; the buffer holds one ID, the second is dropped.
	p.Enqueue(1)
	p.Enqueue(2)

	assert.Len(t, p.tasks, 1)
}

func TestPool_DefaultSizing(t *testing.T) {
	p := New(newMemJobRepo(), &memReportRepo{}, newDocClient(), analyzer.New(), 0, 0).(*pool)
	assert.Equal(t, 4, p.workers)
	assert.Equal(t, 128, cap(p.tasks))
}

func TestPool_EnqueueConcurrentWithStart(t *testing.T) {
	jobs := newMemJobRepo()
	p := New(jobs, &memReportRepo{}, newDocClient(), analyzer.New(), 2, 64)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	// Enqueue from several goroutines while the pool is starting up; the
	// pool context must be stable under this interleaving.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 16; j++ {
				p.Enqueue(0)
			}
		}()
	}
	wg.Wait()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool did not stop after context cancellation")
	}
}

func TestPool_ShutdownTwice(t *testing.T) {
	p := New(newMemJobRepo(), &memReportRepo{}, newDocClient(), analyzer.New(), 1, 4)

	assert.NotPanics(t, func() {
		p.Shutdown()
		p.Shutdown()
	})
}

func TestPool_ShutdownOnContextCancel(t *testing.T) {
	p := New(newMemJobRepo(), &memReportRepo{}, newDocClient(), analyzer.New(), 2, 8)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool did not stop after context cancellation")
	}
}
