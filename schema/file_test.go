package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTypesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTypesFile(t, `types:
  - name: Person
    fields:
      - key: name
        type: string
  - name: Movie
    fields:
      - key: title
        type: string
      - key: year
        type: number
      - key: director
        type: pointer
        references: Person
`)

	file, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(file.Types) != 2 {
		t.Fatalf("expected 2 types, got %d", len(file.Types))
	}
	if file.Types[0].Name != "Person" || file.Types[1].Name != "Movie" {
		t.Errorf("declaration order not preserved: %v", file.Types)
	}

	descriptors, err := file.Types[1].Descriptors()
	if err != nil {
		t.Fatalf("Descriptors failed: %v", err)
	}
	if len(descriptors) != 3 {
		t.Fatalf("expected 3 descriptors, got %d", len(descriptors))
	}
	if descriptors[0].Key != "title" || descriptors[0].Type != FieldTypeString {
		t.Errorf("unexpected first descriptor: %+v", descriptors[0])
	}
	if descriptors[2].Type != FieldTypePointer || descriptors[2].ReferencedType != "Person" {
		t.Errorf("unexpected pointer descriptor: %+v", descriptors[2])
	}
}

func TestLoadFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty type name",
			content: `types:
  - fields:
      - key: title
        type: string
`,
		},
		{
			name: "no fields",
			content: `types:
  - name: Movie
`,
		},
		{
			name:    "not yaml",
			content: "types: [unclosed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTypesFile(t, tt.content)
			if _, err := LoadFile(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDescriptorsRejectsUnknownFieldType(t *testing.T) {
	decl := TypeDeclaration{
		Name:   "Movie",
		Fields: []FieldDeclaration{{Key: "title", Type: "varchar"}},
	}
	if _, err := decl.Descriptors(); err == nil {
		t.Fatal("expected error for unknown field type")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
