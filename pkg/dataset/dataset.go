package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openlex/lexsearch/internal/storage"
)

// DefaultCDNDomain serves published document files.
const DefaultCDNDomain = "cdn.openlex.org"

// datasetPrefix is the bucket folder holding parser output documents.
const datasetPrefix = "embeddings_input"

// Dataset is an in-memory corpus of documents.
type Dataset struct {
	CDNDomain string
	Documents []Document
}

// New creates an empty dataset using the default CDN domain.
func New() *Dataset {
	return &Dataset{CDNDomain: DefaultCDNDomain}
}

// Len returns the number of documents.
func (d *Dataset) Len() int { return len(d.Documents) }

// Filter returns a dataset holding only documents the predicate keeps.
func (d *Dataset) Filter(keep func(Document) bool) *Dataset {
	out := &Dataset{CDNDomain: d.CDNDomain}
	for _, doc := range d.Documents {
		if keep(doc) {
			out.Documents = append(out.Documents, doc)
		}
	}
	return out
}

// FilterByLanguage keeps documents whose language list contains lang.
func (d *Dataset) FilterByLanguage(lang string) *Dataset {
	return d.Filter(func(doc Document) bool {
		for _, l := range doc.Languages {
			if l == lang {
				return true
			}
		}
		return false
	})
}

// GetByID returns the document with the given import id, or false.
func (d *Dataset) GetByID(documentID string) (Document, bool) {
	for _, doc := range d.Documents {
		if doc.DocumentID == documentID {
			return doc, true
		}
	}
	return Document{}, false
}

// LoadFromLocal fills the dataset from a directory of parser output JSON
// files. A limit of 0 loads everything.
func (d *Dataset) LoadFromLocal(path string, limit int) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("dataset path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("dataset path %s is not a directory", path)
	}

	entries, err := filepath.Glob(filepath.Join(path, "*.json"))
	if err != nil {
		return fmt.Errorf("list dataset files: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("dataset path %s contains no json files", path)
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	for _, entry := range entries {
		data, err := os.ReadFile(entry)
		if err != nil {
			return fmt.Errorf("read %s: %w", entry, err)
		}
		if err := d.appendParsed(data); err != nil {
			return fmt.Errorf("%s: %w", entry, err)
		}
	}
	return nil
}

// LoadFromRemote fills the dataset from the embeddings_input folder of an S3
// bucket. A limit of 0 loads everything.
func (d *Dataset) LoadFromRemote(ctx context.Context, reader *storage.Reader, bucket string, limit int) error {
	keys, err := reader.ListKeys(ctx, bucket, datasetPrefix)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("no objects found under %s/ in bucket %s", datasetPrefix, bucket)
	}
	if limit > 0 && limit < len(keys) {
		keys = keys[:limit]
	}

	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		data, err := reader.ReadObject(ctx, bucket, key)
		if err != nil {
			return err
		}
		if err := d.appendParsed(data); err != nil {
			return fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
		}
	}
	return nil
}

// DocumentFromRemote loads a single document by import id from an S3 bucket.
func DocumentFromRemote(ctx context.Context, reader *storage.Reader, bucket, documentID string) (Document, error) {
	key := fmt.Sprintf("%s/%s.json", datasetPrefix, documentID)
	data, err := reader.ReadObject(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return Document{}, fmt.Errorf("document %s not found in bucket %s: %w",
				documentID, bucket, err)
		}
		return Document{}, err
	}
	pd, err := ParseDocument(data)
	if err != nil {
		return Document{}, err
	}
	return FromParserDocument(pd)
}

// DocumentFromLocal loads a single document by import id from a directory.
func DocumentFromLocal(path, documentID string) (Document, error) {
	data, err := os.ReadFile(filepath.Join(path, documentID+".json"))
	if err != nil {
		return Document{}, fmt.Errorf("document %s: %w", documentID, err)
	}
	pd, err := ParseDocument(data)
	if err != nil {
		return Document{}, err
	}
	return FromParserDocument(pd)
}

func (d *Dataset) appendParsed(data []byte) error {
	pd, err := ParseDocument(data)
	if err != nil {
		return err
	}
	doc, err := FromParserDocument(pd)
	if err != nil {
		return err
	}
	d.Documents = append(d.Documents, doc.WithDocumentURL(d.CDNDomain))
	return nil
}
