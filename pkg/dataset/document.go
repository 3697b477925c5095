package dataset

import (
	"fmt"
	"time"
)

// Metadata describes a document's provenance.
type Metadata struct {
	PublicationTS time.Time
	Geography     string
	Category      string
	Source        string
	Type          string
	Sectors       []string
}

// Document is a pipeline document normalized across content types.
//
// HTML documents get synthetic Text blocks with page number -1 and no
// coordinates. PDF documents always count as having valid text. Documents
// with no content type carry no blocks at all.
type Document struct {
	DocumentID          string
	DocumentName        string
	DocumentDescription string
	DocumentSourceURL   string
	DocumentCDNObject   string
	DocumentContentType string
	DocumentMD5Sum      string
	DocumentSlug        string
	DocumentMetadata    Metadata
	Languages           []string
	Translated          bool
	HasValidText        bool
	TextBlocks          []TextBlock
	PageMetadata        []PageMetadata

	// DocumentURL is the CDN URL when a CDN object exists, otherwise the
	// source URL. Set when loading through a Dataset.
	DocumentURL string
}

// FromParserDocument normalizes parser output into a Document.
func FromParserDocument(pd *ParserDocument) (Document, error) {
	if err := pd.Validate(); err != nil {
		return Document{}, err
	}

	doc := Document{
		DocumentID:          pd.DocumentID,
		DocumentName:        pd.DocumentName,
		DocumentDescription: pd.DocumentDescription,
		DocumentSourceURL:   pd.DocumentSourceURL,
		DocumentCDNObject:   pd.DocumentCDNObject,
		DocumentContentType: pd.DocumentContentType,
		DocumentMD5Sum:      pd.DocumentMD5Sum,
		DocumentSlug:        pd.DocumentSlug,
		DocumentMetadata:    metadataFromSource(pd.DocumentMetadata),
		Languages:           pd.Languages,
		Translated:          pd.Translated,
	}

	switch pd.DocumentContentType {
	case ContentTypeHTML:
		doc.HasValidText = pd.HTMLData.HasValidText
		for _, block := range pd.HTMLData.TextBlocks {
			doc.TextBlocks = append(doc.TextBlocks, TextBlock{
				Text:           block.Text,
				TextBlockID:    block.TextBlockID,
				Language:       block.Language,
				Type:           BlockTypeText,
				TypeConfidence: 1,
				PageNumber:     -1,
			})
		}
	case ContentTypePDF:
		doc.HasValidText = true
		doc.PageMetadata = pd.PDFData.PageMetadata
		for _, block := range pd.PDFData.TextBlocks {
			doc.TextBlocks = append(doc.TextBlocks, TextBlock{
				Text:           block.Text,
				TextBlockID:    block.TextBlockID,
				Language:       block.Language,
				Type:           block.Type,
				TypeConfidence: block.TypeConfidence,
				PageNumber:     block.PageNumber,
				Coords:         block.Coords,
			})
		}
	}
	return doc, nil
}

// WithDocumentURL returns a copy with DocumentURL resolved against the CDN.
func (d Document) WithDocumentURL(cdnDomain string) Document {
	if d.DocumentCDNObject != "" {
		d.DocumentURL = fmt.Sprintf("https://%s/%s", cdnDomain, d.DocumentCDNObject)
	} else {
		d.DocumentURL = d.DocumentSourceURL
	}
	return d
}

// Text returns all text blocks joined as a single string. HTML documents
// without valid text yield nothing unless includeInvalidHTML is set.
func (d Document) Text(includeInvalidHTML bool) string {
	blocks := d.ValidTextBlocks(includeInvalidHTML)
	out := ""
	for i, block := range blocks {
		if i > 0 {
			out += " "
		}
		out += block.String()
	}
	return out
}

// ValidTextBlocks returns the document's text blocks, skipping HTML blocks
// that failed text validation unless includeInvalidHTML is set.
func (d Document) ValidTextBlocks(includeInvalidHTML bool) []TextBlock {
	if d.DocumentContentType == ContentTypeHTML && !d.HasValidText && !includeInvalidHTML {
		return nil
	}
	return d.TextBlocks
}

func metadataFromSource(src SourceMetadata) Metadata {
	md := Metadata{
		Geography: src.Geography,
		Category:  src.Category,
		Source:    src.Source,
		Type:      src.Type,
		Sectors:   src.Sectors,
	}
	if src.PublicationTS != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if ts, err := time.Parse(layout, src.PublicationTS); err == nil {
				md.PublicationTS = ts
				break
			}
		}
	}
	return md
}
