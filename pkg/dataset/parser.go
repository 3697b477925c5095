package dataset

import (
	"encoding/json"
	"fmt"
)

// HTMLTextBlock is a text block extracted from an HTML document. The layout
// model does not run on HTML, so type information is fixed at load time.
type HTMLTextBlock struct {
	Text        []string `json:"text"`
	TextBlockID string   `json:"text_block_id"`
	Language    string   `json:"language,omitempty"`
}

// PDFTextBlock is a text block extracted from a PDF page, with its position.
type PDFTextBlock struct {
	Text           []string     `json:"text"`
	TextBlockID    string       `json:"text_block_id"`
	Language       string       `json:"language,omitempty"`
	Type           BlockType    `json:"type"`
	TypeConfidence float64      `json:"type_confidence"`
	Coords         [][2]float64 `json:"coords"`
	PageNumber     int          `json:"page_number"`
}

// HTMLData is parser output specific to HTML documents.
type HTMLData struct {
	DetectedTitle string          `json:"detected_title,omitempty"`
	DetectedDate  string          `json:"detected_date,omitempty"`
	HasValidText  bool            `json:"has_valid_text"`
	TextBlocks    []HTMLTextBlock `json:"text_blocks"`
}

// PDFData is parser output specific to PDF documents.
type PDFData struct {
	PageMetadata []PageMetadata `json:"page_metadata"`
	MD5Sum       string         `json:"md5sum"`
	TextBlocks   []PDFTextBlock `json:"text_blocks"`
}

// ParserDocument is one document as emitted by the ingest parser. Exactly one
// of HTMLData and PDFData is set, matching the content type.
type ParserDocument struct {
	DocumentID          string         `json:"document_id"`
	DocumentName        string         `json:"document_name"`
	DocumentDescription string         `json:"document_description"`
	DocumentSourceURL   string         `json:"document_source_url,omitempty"`
	DocumentCDNObject   string         `json:"document_cdn_object,omitempty"`
	DocumentContentType string         `json:"document_content_type,omitempty"`
	DocumentMD5Sum      string         `json:"document_md5_sum,omitempty"`
	DocumentSlug        string         `json:"document_slug"`
	DocumentMetadata    SourceMetadata `json:"document_metadata"`
	Languages           []string       `json:"languages,omitempty"`
	Translated          bool           `json:"translated"`
	HTMLData            *HTMLData      `json:"html_data,omitempty"`
	PDFData             *PDFData       `json:"pdf_data,omitempty"`
}

// SourceMetadata is the document metadata carried through from the source
// backend.
type SourceMetadata struct {
	PublicationTS string   `json:"publication_ts,omitempty"`
	Geography     string   `json:"geography"`
	Category      string   `json:"category"`
	Source        string   `json:"source"`
	Type          string   `json:"type"`
	Sectors       []string `json:"sectors,omitempty"`
}

// ParseDocument decodes and validates one parser output document.
func ParseDocument(data []byte) (*ParserDocument, error) {
	var doc ParserDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode parser document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks that the structured data present matches the declared
// content type.
func (d *ParserDocument) Validate() error {
	switch d.DocumentContentType {
	case ContentTypeHTML:
		if d.HTMLData == nil {
			return fmt.Errorf("document %s: html_data must be set for HTML documents", d.DocumentID)
		}
	case ContentTypePDF:
		if d.PDFData == nil {
			return fmt.Errorf("document %s: pdf_data must be set for PDF documents", d.DocumentID)
		}
	default:
		if d.HTMLData != nil || d.PDFData != nil {
			return fmt.Errorf(
				"document %s: html_data and pdf_data must be null for documents with no content type",
				d.DocumentID,
			)
		}
	}
	return nil
}
