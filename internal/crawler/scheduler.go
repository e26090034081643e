package crawler

import (
	"context"
	"sync"

	"github.com/meejain/da-crawl/internal/treeclient"
)

// DefaultConcurrency bounds parallel folder expansions when the caller does
// not supply a limit.
const DefaultConcurrency = 50

// FileFunc is the per-file unit of work invoked for every discovered
// document. It runs independently of the traversal; its failure must never
// abort the crawl, so implementations swallow their own errors and report
// them through the event sink instead.
type FileFunc func(ctx context.Context, entry treeclient.Entry)

// Scheduler drives a bounded-concurrency depth-first expansion of the
// remote tree. The frontier holds folders discovered but not yet expanded;
// a fixed set of workers pops from it LIFO, lists each folder once, pushes
// child folders back, and hands files to the FileFunc.
//
// The frontier, in-flight counter, visited set, and result slice are the
// only shared state; one mutex guards them all so the termination condition
// (empty frontier AND zero in-flight expansions) is observed atomically.
type Scheduler struct {
	client treeclient.Client
	limit  int
	onFile FileFunc
	events EventSink

	mu       sync.Mutex
	cond     *sync.Cond
	frontier []string
	inFlight int
	visited  map[string]struct{}
	files    []treeclient.Entry
}

// NewScheduler creates a Scheduler. A non-positive limit falls back to
// DefaultConcurrency; a nil sink discards events.
func NewScheduler(client treeclient.Client, limit int, onFile FileFunc, events EventSink) *Scheduler {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	if events == nil {
		events = NopSink{}
	}
	s := &Scheduler{
		client:  client,
		limit:   limit,
		onFile:  onFile,
		events:  events,
		visited: make(map[string]struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Crawl expands every folder reachable from root exactly once and returns
// the file entries in discovery order. It blocks until the tree is
// exhausted and every per-file unit of work has finished. Remote failures
// are recorded on the event sink and never abort the traversal, so Crawl
// always returns whatever it accumulated.
func (s *Scheduler) Crawl(ctx context.Context, root string) []treeclient.Entry {
	s.mu.Lock()
	s.visited[root] = struct{}{}
	s.frontier = append(s.frontier, root)
	s.mu.Unlock()

	var workers sync.WaitGroup
	var fileWork sync.WaitGroup
	for i := 0; i < s.limit; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			s.run(ctx, &fileWork)
		}()
	}
	workers.Wait()

	// Folder traversal is done; wait out the file callbacks so callers
	// never observe a "complete" crawl with publishes still running.
	fileWork.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files
}

func (s *Scheduler) run(ctx context.Context, fileWork *sync.WaitGroup) {
	for {
		s.mu.Lock()
		for len(s.frontier) == 0 && s.inFlight > 0 {
			s.cond.Wait()
		}
		if len(s.frontier) == 0 && s.inFlight == 0 {
			// Terminal state. Wake the remaining waiters so they observe
			// it and exit too.
			s.cond.Broadcast()
			s.mu.Unlock()
			return
		}
		n := len(s.frontier) - 1
		folder := s.frontier[n]
		s.frontier = s.frontier[:n]
		s.inFlight++
		s.mu.Unlock()

		s.expand(ctx, folder, fileWork)

		s.mu.Lock()
		s.inFlight--
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// expand lists one folder. Files are appended to the result and handed to
// the FileFunc; folders not seen before join the frontier. A list failure
// drops the subtree silently beyond its event.
func (s *Scheduler) expand(ctx context.Context, folder string, fileWork *sync.WaitGroup) {
	children, err := s.client.List(ctx, folder)
	if err != nil {
		s.events.Record(Event{Kind: EventListFailed, Path: folder, Err: err})
		return
	}

	for _, child := range children {
		if child.IsFile() {
			s.mu.Lock()
			s.files = append(s.files, child)
			s.mu.Unlock()

			if s.onFile != nil {
				fileWork.Add(1)
				go func(entry treeclient.Entry) {
					defer fileWork.Done()
					s.onFile(ctx, entry)
				}(child)
			}
			continue
		}

		s.mu.Lock()
		if _, seen := s.visited[child.Path]; !seen {
			s.visited[child.Path] = struct{}{}
			s.frontier = append(s.frontier, child.Path)
			s.cond.Broadcast()
		}
		s.mu.Unlock()
	}
}
