package catalogfile

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/statuary/internal/validation"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Loader reads a catalog document from a file, or from the embedded
// default catalog when no path is set.
type Loader struct {
	filePath string
}

// NewLoader creates a new catalog loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Source describes where Load reads from.
func (l *Loader) Source() string {
	if l.filePath == "" {
		return "embedded"
	}
	return l.filePath
}

// Load reads, parses and validates the catalog document.
func (l *Loader) Load() (*Document, error) {
	data := defaultCatalog
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}

	return Parse(data)
}

// Parse decodes and validates a catalog document. Unknown fields are
// rejected so typos in the file surface at startup.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	if err := validation.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &doc, nil
}
