package analyzer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	wordRe  = regexp.MustCompile(`[A-Za-z]{3,}`)
)

// Document is a parsed view over one fetched page. It exposes only what
// classification needs: the root content element, its normalized text and
// inner markup, and its element children. The parser behind it is an
// implementation detail.
type Document struct {
	root *goquery.Selection
}

// Parse builds a Document from raw markup. The root content element is the
// first <main> if present, otherwise <body>.
func Parse(markup []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		return nil, fmt.Errorf("document has no content root")
	}
	return &Document{root: root}, nil
}

// Text returns the root's text content with whitespace runs collapsed to a
// single space and the ends trimmed.
func (d *Document) Text() string {
	return collapse(d.root.Text())
}

// InnerMarkup returns the root's serialized inner HTML, normalized the same
// way as Text.
func (d *Document) InnerMarkup() string {
	h, err := d.root.Html()
	if err != nil {
		return ""
	}
	return collapse(h)
}

// ChildCount returns the number of child elements of the root.
func (d *Document) ChildCount() int {
	return d.root.Children().Length()
}

// OuterHTML serializes the root content element itself, tag and attributes
// included. This is the payload republished for substantive documents.
func (d *Document) OuterHTML() (string, error) {
	return goquery.OuterHtml(d.root)
}

// Classify applies the blank-page heuristic to a parsed document. The rules
// are a flat disjunction; any single hit makes the page blank:
//
//  1. normalized text is empty
//  2. normalized markup is empty
//  3. normalized text is a single space
//  4. normalized markup is a single space
//  5. the root has zero child elements
//  6. the root has exactly one child element whose trimmed text is empty
//  7. normalized text is under 20 characters with no run of 3+ letters
//
// Classify is a pure function of the document's content.
func Classify(d *Document) Verdict {
	text := d.Text()
	markup := d.InnerMarkup()

	switch {
	case text == "":
		return VerdictBlank
	case markup == "":
		return VerdictBlank
	case text == " ":
		return VerdictBlank
	case markup == " ":
		return VerdictBlank
	case d.ChildCount() == 0:
		return VerdictBlank
	case d.hasSingleEmptyChild():
		return VerdictBlank
	case utf8.RuneCountInString(text) < 20 && !wordRe.MatchString(text):
		return VerdictBlank
	}
	return VerdictSubstantive
}

func (d *Document) hasSingleEmptyChild() bool {
	children := d.root.Children()
	return children.Length() == 1 && strings.TrimSpace(children.First().Text()) == ""
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// htmlAnalyzer is the goquery-backed Analyzer.
type htmlAnalyzer struct{}

// Inspect parses markup, classifies it, and derives the publish payload for
// substantive documents. Blank documents get no payload.
func (a *htmlAnalyzer) Inspect(markup []byte) (Verdict, string, error) {
	doc, err := Parse(markup)
	if err != nil {
		return "", "", err
	}

	verdict := Classify(doc)
	if verdict != VerdictSubstantive {
		return verdict, "", nil
	}

	payload, err := doc.OuterHTML()
	if err != nil {
		return verdict, "", fmt.Errorf("serialize payload: %w", err)
	}
	return verdict, payload, nil
}
