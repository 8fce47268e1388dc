package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TypeFile is the parsed form of a YAML type declaration file. Types and
// fields are lists, not maps, so declaration order is preserved and becomes
// descriptor order.
type TypeFile struct {
	Types []TypeDeclaration `yaml:"types"`
}

// TypeDeclaration declares one type and its fields.
type TypeDeclaration struct {
	Name   string             `yaml:"name"`
	Fields []FieldDeclaration `yaml:"fields"`
}

// FieldDeclaration declares one field of a type.
type FieldDeclaration struct {
	Key        string `yaml:"key"`
	Type       string `yaml:"type"`
	References string `yaml:"references,omitempty"`
}

// LoadFile loads a YAML type declaration file.
func LoadFile(path string) (*TypeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read types file %s: %w", path, err)
	}

	var file TypeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse types file %s: %w", path, err)
	}

	for _, decl := range file.Types {
		if decl.Name == "" {
			return nil, fmt.Errorf("types file %s: type with empty name", path)
		}
		if len(decl.Fields) == 0 {
			return nil, fmt.Errorf("types file %s: type %s declares no fields", path, decl.Name)
		}
	}
	return &file, nil
}

// Descriptors converts the declaration's fields in declaration order.
func (t TypeDeclaration) Descriptors() ([]Descriptor, error) {
	descriptors := make([]Descriptor, 0, len(t.Fields))
	for _, f := range t.Fields {
		fieldType, err := ParseFieldType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("type %s, key %s: %w", t.Name, f.Key, err)
		}
		descriptors = append(descriptors, Descriptor{
			Key:            f.Key,
			Type:           fieldType,
			ReferencedType: f.References,
		})
	}
	return descriptors, nil
}
