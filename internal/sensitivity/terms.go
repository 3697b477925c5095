// Package sensitivity classifies queries against a curated list of sensitive
// terms so that such queries can be ranked without closeness signals.
package sensitivity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

const keywordColumn = "keyword"

// LoadTerms reads sensitive terms from tab-separated input with a header
// row. Terms come from the keyword column and are lowercased and
// deduplicated for case-insensitive matching.
func LoadTerms(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read terms header: %w", err)
	}
	keywordIdx := -1
	for i, col := range header {
		if col == keywordColumn {
			keywordIdx = i
			break
		}
	}
	if keywordIdx < 0 {
		return nil, fmt.Errorf("terms file has no %q column", keywordColumn)
	}

	seen := make(map[string]struct{})
	var terms []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read terms row: %w", err)
		}
		if keywordIdx >= len(record) {
			continue
		}
		term := strings.ToLower(strings.TrimSpace(record[keywordIdx]))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms, nil
}

// LoadTermsFile reads sensitive terms from a TSV file on disk.
func LoadTermsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open terms file: %w", err)
	}
	defer f.Close()
	return LoadTerms(f)
}
