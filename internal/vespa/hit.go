package vespa

import (
	"fmt"
	"time"

	"github.com/openlex/lexsearch/internal/domain/search/result"
)

// HitFromResponse builds a typed hit from one raw engine record. The variant
// is chosen by the sddocname discriminator when present; get-by-id responses
// lack it, so the schema component of the record id is used instead. Unknown
// discriminators are an error, never a silent default.
func HitFromResponse(raw map[string]any) (result.Hit, error) {
	fields, _ := raw["fields"].(map[string]any)
	if fields == nil {
		return nil, fmt.Errorf("hit record has no fields object")
	}

	schema, _ := fields["sddocname"].(string)
	if schema == "" {
		id, _ := raw["id"].(string)
		var err error
		if _, schema, _, err = SplitDocumentID(id); err != nil {
			return nil, fmt.Errorf("hit record has no sddocname and no parseable id: %w", err)
		}
	}

	switch schema {
	case result.SchemaFamilyDocument:
		return &result.Document{Common: commonFields(fields)}, nil
	case result.SchemaDocumentPassage:
		return passageFromFields(fields)
	default:
		return nil, fmt.Errorf("unknown response type: %s", schema)
	}
}

func passageFromFields(fields map[string]any) (*result.Passage, error) {
	text, _ := fields["text_block"].(string)
	blockID, _ := fields["text_block_id"].(string)
	blockType, _ := fields["text_block_type"].(string)
	if text == "" || blockID == "" || blockType == "" {
		return nil, fmt.Errorf(
			"passage hit is missing text_block, text_block_id or text_block_type",
		)
	}

	p := &result.Passage{
		Common:        commonFields(fields),
		TextBlock:     text,
		TextBlockID:   blockID,
		TextBlockType: blockType,
	}
	if page, ok := fields["text_block_page"].(float64); ok {
		n := int(page)
		p.TextBlockPage = &n
	}
	if coords, ok := fields["text_block_coords"].([]any); ok {
		p.TextBlockCoords = parseCoords(coords)
	}
	return p, nil
}

// commonFields reads the shared family/document metadata. Optional fields
// default to empty values; the publication timestamp stays zero when absent
// or unparseable.
func commonFields(fields map[string]any) result.Common {
	c := result.Common{
		FamilyName:          stringField(fields, "family_name"),
		FamilyDescription:   stringField(fields, "family_description"),
		FamilyImportID:      stringField(fields, "family_import_id"),
		FamilySlug:          stringField(fields, "family_slug"),
		FamilyCategory:      stringField(fields, "family_category"),
		FamilyGeography:     stringField(fields, "family_geography"),
		FamilySource:        stringField(fields, "family_source"),
		DocumentImportID:    stringField(fields, "document_import_id"),
		DocumentSlug:        stringField(fields, "document_slug"),
		DocumentLanguages:   stringSliceField(fields, "document_languages"),
		DocumentContentType: stringField(fields, "document_content_type"),
		DocumentCDNObject:   stringField(fields, "document_cdn_object"),
		DocumentSourceURL:   stringField(fields, "document_source_url"),
	}
	if ts := stringField(fields, "family_publication_ts"); ts != "" {
		c.FamilyPublicationTS = parseTimestamp(ts)
	}
	return c
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func stringSliceField(fields map[string]any, key string) []string {
	raw, _ := fields[key].([]any)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// parseTimestamp accepts ISO-8601 with or without a zone offset, which is
// how the engine serializes publication timestamps.
func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func parseCoords(raw []any) [][2]float64 {
	coords := make([][2]float64, 0, len(raw))
	for _, pair := range raw {
		xy, ok := pair.([]any)
		if !ok || len(xy) != 2 {
			continue
		}
		x, xok := xy[0].(float64)
		y, yok := xy[1].(float64)
		if xok && yok {
			coords = append(coords, [2]float64{x, y})
		}
	}
	return coords
}
