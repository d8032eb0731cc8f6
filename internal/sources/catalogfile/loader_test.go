package catalogfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoaderLoadEmbedded(t *testing.T) {
	loader := NewLoader("")
	doc, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(doc.Statues) != 6 {
		t.Errorf("Load() returned %d statues, want 6", len(doc.Statues))
	}
	if len(doc.Presets) != 6 {
		t.Errorf("Load() returned %d presets, want 6", len(doc.Presets))
	}
	if doc.Statues[0].ID != "david" || doc.Statues[5].ID != "laocoon" {
		t.Errorf("document order not kept: first=%s last=%s", doc.Statues[0].ID, doc.Statues[5].ID)
	}
	if loader.Source() != "embedded" {
		t.Errorf("Source() = %q, want embedded", loader.Source())
	}
}

func TestLoaderLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "catalog.yaml")

	yamlContent := `---
statues:
  - id: nike
    name: Nike
    period: Klassik
    foundCoordinates: { lat: 37.97, lng: 23.72 }
`
	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	doc, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(doc.Statues) != 1 || doc.Statues[0].ID != "nike" {
		t.Errorf("Load() = %+v", doc.Statues)
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	if _, err := NewLoader("/nonexistent/catalog.yaml").Load(); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{
			name:    "missing id",
			yaml:    "statues:\n  - name: X\n",
			errPart: "ID is required",
		},
		{
			name:    "missing name",
			yaml:    "statues:\n  - id: x\n",
			errPart: "Name is required",
		},
		{
			name:    "uppercase id",
			yaml:    "statues:\n  - id: David\n    name: David\n",
			errPart: "lowercase",
		},
		{
			name:    "latitude out of range",
			yaml:    "statues:\n  - id: x\n    name: X\n    foundCoordinates: { lat: 120, lng: 0 }\n",
			errPart: "latitude",
		},
		{
			name:    "longitude out of range",
			yaml:    "statues:\n  - id: x\n    name: X\n    foundCoordinates: { lat: 0, lng: 200 }\n",
			errPart: "longitude",
		},
		{
			name:    "model without file",
			yaml:    "statues:\n  - id: x\n    name: X\n    model: { scale: 2 }\n",
			errPart: "File is required",
		},
		{
			name:    "empty document",
			yaml:    "statues: []\n",
			errPart: "Statues",
		},
		{
			name:    "unknown field",
			yaml:    "statues:\n  - id: x\n    name: X\n    sculptor: Y\n",
			errPart: "sculptor",
		},
		{
			name:    "broken yaml",
			yaml:    "statues: [",
			errPart: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Parse() error = %q, want it to mention %q", err, tt.errPart)
			}
		})
	}
}
