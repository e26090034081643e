package analyzer

// Verdict is the outcome of classifying a document's rendered content.
type Verdict string

const (
	VerdictBlank       Verdict = "blank"
	VerdictSubstantive Verdict = "substantive"
)

// Analyzer turns fetched markup into a verdict and, for substantive
// documents, the payload to publish back.
type Analyzer interface {
	Inspect(markup []byte) (Verdict, string, error)
}

// New creates a new HTML analyzer instance.
func New() Analyzer { return &htmlAnalyzer{} }
