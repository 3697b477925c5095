// Package result holds the typed search result hierarchy reconstructed from
// engine responses: families of hits, where a hit is either a whole document
// or a single passage within one.
package result

import "time"

// Engine schema names used as hit discriminators.
const (
	SchemaFamilyDocument  = "family_document"
	SchemaDocumentPassage = "document_passage"
)

// Common is the metadata shared by both hit variants: the family the hit
// belongs to plus the matched document.
type Common struct {
	FamilyName          string
	FamilyDescription   string
	FamilyImportID      string
	FamilySlug          string
	FamilyCategory      string
	FamilyPublicationTS time.Time
	FamilyGeography     string
	FamilySource        string
	DocumentImportID    string
	DocumentSlug        string
	DocumentLanguages   []string
	DocumentContentType string
	DocumentCDNObject   string
	DocumentSourceURL   string
}

// Hit is a single search result at document or passage granularity.
type Hit interface {
	// Fields returns the shared family/document metadata.
	Fields() *Common
	// Schema returns the engine schema the hit was built from.
	Schema() string
}

// Document is a hit at whole-document granularity.
type Document struct {
	Common
}

func (d *Document) Fields() *Common { return &d.Common }
func (d *Document) Schema() string  { return SchemaFamilyDocument }

// Passage is a hit at text-block granularity, carrying the matched text and
// its location within the document.
type Passage struct {
	Common

	TextBlock       string
	TextBlockID     string
	TextBlockType   string
	TextBlockPage   *int
	TextBlockCoords [][2]float64
}

func (p *Passage) Fields() *Common { return &p.Common }
func (p *Passage) Schema() string  { return SchemaDocumentPassage }

// Family is one group of related documents in a search response.
// ContinuationToken and PrevContinuationToken page through this family's
// passages; resuming them also requires the response-level
// ThisContinuationToken so the engine stays anchored to the same family page.
type Family struct {
	ID                    string
	Hits                  []Hit
	TotalPassageHits      int
	ContinuationToken     string
	PrevContinuationToken string
}

// SearchResponse is a parsed engine response.
type SearchResponse struct {
	TotalHits       int
	TotalFamilyHits int
	Families        []Family

	// Family-level pagination. ContinuationToken fetches the next page of
	// families, PrevContinuationToken the previous one, and
	// ThisContinuationToken anchors passage-level continuations to the
	// current family page.
	ContinuationToken     string
	ThisContinuationToken string
	PrevContinuationToken string

	// Timing, filled in by the orchestrator rather than the parser.
	QueryDuration time.Duration
	TotalDuration time.Duration
}
