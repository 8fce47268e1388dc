package schema

import (
	"strings"
	"testing"
)

func movieDescriptors() []Descriptor {
	return []Descriptor{
		{Key: "title", Type: FieldTypeString},
		{Key: "year", Type: FieldTypeNumber},
		{Key: "director", Type: FieldTypePointer, ReferencedType: "Person"},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("Movie", movieDescriptors()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !r.Registered("Movie") {
		t.Error("Registered(Movie) = false")
	}
	if r.Registered("Person") {
		t.Error("Registered(Person) = true for undeclared type")
	}

	d, ok := r.Descriptor("Movie", "director")
	if !ok {
		t.Fatal("Descriptor(Movie, director) not found")
	}
	if d.Type != FieldTypePointer || d.ReferencedType != "Person" {
		t.Errorf("descriptor = %+v", d)
	}

	if _, ok := r.Descriptor("Movie", "nope"); ok {
		t.Error("Descriptor returned a value for an unknown key")
	}
}

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("Movie", movieDescriptors()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register("Movie", movieDescriptors()); err != nil {
		t.Fatalf("identical re-register should be a no-op, got %v", err)
	}
	if got := len(r.Descriptors("Movie")); got != 3 {
		t.Errorf("descriptors duplicated: len = %d", got)
	}

	different := []Descriptor{{Key: "title", Type: FieldTypeString}}
	if err := r.Register("Movie", different); err == nil {
		t.Error("conflicting re-register should fail")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name        string
		typeName    string
		descriptors []Descriptor
		wantSubstr  string
	}{
		{
			name:        "empty type name",
			typeName:    "",
			descriptors: movieDescriptors(),
			wantSubstr:  "empty type name",
		},
		{
			name:     "duplicate key",
			typeName: "Movie",
			descriptors: []Descriptor{
				{Key: "title", Type: FieldTypeString},
				{Key: "title", Type: FieldTypeNumber},
			},
			wantSubstr: "duplicate key",
		},
		{
			name:     "pointer without referenced type",
			typeName: "Movie",
			descriptors: []Descriptor{
				{Key: "director", Type: FieldTypePointer},
			},
			wantSubstr: "names no referenced type",
		},
		{
			name:     "non-pointer with referenced type",
			typeName: "Movie",
			descriptors: []Descriptor{
				{Key: "title", Type: FieldTypeString, ReferencedType: "Person"},
			},
			wantSubstr: "not a pointer",
		},
		{
			name:     "reserved key",
			typeName: "Movie",
			descriptors: []Descriptor{
				{Key: "_id", Type: FieldTypeNumber},
			},
			wantSubstr: "reserved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.typeName, tt.descriptors)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantSubstr)
			}
		})
	}
}

func TestKeysOrder(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("Movie", movieDescriptors()); err != nil {
		t.Fatal(err)
	}

	keys := r.Keys("Movie")
	want := []string{"title", "year", "director"}
	if len(keys) != len(want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestFieldTypeRoundTrip(t *testing.T) {
	for _, ft := range []FieldType{
		FieldTypeNumber, FieldTypeString, FieldTypeBoolean, FieldTypeDate, FieldTypePointer,
	} {
		parsed, err := ParseFieldType(ft.String())
		if err != nil {
			t.Fatalf("ParseFieldType(%q): %v", ft.String(), err)
		}
		if parsed != ft {
			t.Errorf("ParseFieldType(%q) = %v, want %v", ft.String(), parsed, ft)
		}
	}

	if _, err := ParseFieldType("blob"); err == nil {
		t.Error("ParseFieldType(blob) should fail")
	}
}
