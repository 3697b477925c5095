// Package dataset models documents produced by the ingest pipeline and loads
// them from local directories or S3, independently of the search engine.
package dataset

import "strings"

// Document content types the pipeline emits structured data for.
const (
	ContentTypeHTML = "text/html"
	ContentTypePDF  = "application/pdf"
)

// BlockType is the predicted layout role of a text block.
type BlockType string

// Block types predicted by the layout model.
const (
	BlockTypeText      BlockType = "Text"
	BlockTypeTitle     BlockType = "Title"
	BlockTypeList      BlockType = "List"
	BlockTypeTable     BlockType = "Table"
	BlockTypeFigure    BlockType = "Figure"
	BlockTypeInferred  BlockType = "Inferred from gaps"
	BlockTypeAmbiguous BlockType = "Ambiguous"
)

// TextBlock is a unit of extracted text, generic across content types. HTML
// blocks have PageNumber -1 and no coordinates; PDF blocks carry both.
type TextBlock struct {
	Text           []string     `json:"text"`
	TextBlockID    string       `json:"text_block_id"`
	Language       string       `json:"language,omitempty"`
	Type           BlockType    `json:"type"`
	TypeConfidence float64      `json:"type_confidence"`
	PageNumber     int          `json:"page_number"`
	Coords         [][2]float64 `json:"coords,omitempty"`
}

// String joins the block's trimmed lines with spaces.
func (b TextBlock) String() string {
	lines := make([]string, 0, len(b.Text))
	for _, line := range b.Text {
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.Join(lines, " ")
}

// PageMetadata describes one page of a paged document.
type PageMetadata struct {
	PageNumber int        `json:"page_number"`
	Dimensions [2]float64 `json:"dimensions"`
}
