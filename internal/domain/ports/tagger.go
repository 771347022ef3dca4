// Package ports defines interfaces for external service communication.
package ports

import "context"

// SpanLabel is a named-entity-recognition label.
type SpanLabel string

// Labels emitted by the tagger.
const (
	LabelPerson   SpanLabel = "PERSON"
	LabelOrg      SpanLabel = "ORG"
	LabelNorp     SpanLabel = "NORP"
	LabelDate     SpanLabel = "DATE"
	LabelMoney    SpanLabel = "MONEY"
	LabelGPE      SpanLabel = "GPE"
	LabelLoc      SpanLabel = "LOC"
	LabelCardinal SpanLabel = "CARDINAL"
)

// TaggedSpan is one labelled span of text.
type TaggedSpan struct {
	Text  string    `json:"text"`
	Label SpanLabel `json:"label"`
}

// EntityTagger is the named-entity-recognition capability. It must handle
// arbitrary natural-language English sentences.
type EntityTagger interface {
	// ExtractEntities returns every labelled span found in the text, in
	// document order.
	ExtractEntities(ctx context.Context, text string) ([]TaggedSpan, error)
}
