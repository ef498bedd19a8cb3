package article

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
)

// FileSource reads the collection from a YAML or JSON document:
//
//	articles:
//	  - id: 1
//	    title: ...
//	    tags: [Go, HTTP]
type FileSource struct {
	path string
}

// NewFileSource creates a file source. The format follows the extension:
// .json is JSON, anything else is YAML.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and validates the file.
func (s *FileSource) Load(_ context.Context) ([]domarticle.Article, error) {
	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc collectionDTO
	if strings.EqualFold(filepath.Ext(s.path), ".json") {
		err = decodeJSON(data, &doc)
	} else {
		err = decodeYAML(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	articles, err := toDomain(doc.Articles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return articles, nil
}

func decodeYAML(data []byte, doc *collectionDTO) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

func decodeJSON(data []byte, doc *collectionDTO) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
