package crawler

import "github.com/meejain/da-crawl/internal/analyzer"

// EventKind names the structured observations a crawl emits.
type EventKind string

const (
	// EventListFailed means a folder could not be enumerated; its subtree
	// is dropped and the crawl continues.
	EventListFailed EventKind = "list_failed"

	// EventFileSkipped means a file did not carry the expected document
	// extension and was never fetched.
	EventFileSkipped EventKind = "file_skipped"

	// EventFetchFailed means a document could not be retrieved or parsed.
	EventFetchFailed EventKind = "fetch_failed"

	// EventBlank means the document was classified blank; nothing is
	// published for it.
	EventBlank EventKind = "blank"

	// EventPublished means a substantive document was republished.
	EventPublished EventKind = "published"

	// EventPublishFailed means the write-back failed; the failure is
	// surfaced here and nowhere else.
	EventPublishFailed EventKind = "publish_failed"
)

// Event is one per-path observation. Events never alter control flow; they
// exist so a collaborator can report counts and outcomes.
type Event struct {
	Kind    EventKind
	Path    string
	Verdict analyzer.Verdict
	Err     error
}

// EventSink consumes crawl events. Implementations must be safe for
// concurrent use; the scheduler and file workers record from many
// goroutines.
type EventSink interface {
	Record(ev Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(Event) {}
