package mesh

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Mesh
		wantErr error
	}{
		{
			name: "Valid",
			build: func() *Mesh {
				m := New(4)
				m.AddTriangle(0, 1, 2)
				m.AddTetrahedron(0, 1, 2, 3)
				return m
			},
		},
		{
			name: "OutOfRange",
			build: func() *Mesh {
				m := New(2)
				m.AddTriangle(0, 1, 2)
				return m
			},
			wantErr: ErrVertexOutOfRange,
		},
		{
			name: "NegativeIndex",
			build: func() *Mesh {
				m := New(3)
				m.AddTriangle(-1, 1, 2)
				return m
			},
			wantErr: ErrVertexOutOfRange,
		},
		{
			name: "Degenerate",
			build: func() *Mesh {
				m := New(4)
				m.AddTetrahedron(0, 1, 2, 2)
				return m
			},
			wantErr: ErrDegenerateCell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := New(3)
	if err := m.AddField("height", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddField: %v", err)
	}
	if err := m.AddField("density", []float64{4, 5, 6}); err != nil {
		t.Fatalf("AddField: %v", err)
	}

	if err := m.AddField("height", []float64{1, 2, 3}); !errors.Is(err, ErrDuplicateField) {
		t.Errorf("duplicate AddField = %v, want ErrDuplicateField", err)
	}
	if err := m.AddField("short", []float64{1}); !errors.Is(err, ErrFieldSize) {
		t.Errorf("short AddField = %v, want ErrFieldSize", err)
	}

	if f, ok := m.Field("density"); !ok || f[1] != 5 {
		t.Errorf("Field(density) = %v, %v", f, ok)
	}
	if _, ok := m.Field("missing"); ok {
		t.Error("Field(missing) should not exist")
	}
	if f, ok := m.FieldByIndex(0); !ok || f[0] != 1 {
		t.Errorf("FieldByIndex(0) = %v, %v", f, ok)
	}
	if _, ok := m.FieldByIndex(2); ok {
		t.Error("FieldByIndex(2) should not exist")
	}
	if names := m.FieldNames(); len(names) != 2 || names[0] != "height" {
		t.Errorf("FieldNames = %v", names)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	m := New(4)
	m.AddTriangle(0, 1, 2)
	m.AddTriangle(1, 3, 2)
	if err := m.AddField("height", []float64{0, 1, 1, 2}); err != nil {
		t.Fatalf("AddField: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(m, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.VertexCount != 4 || len(back.Triangles) != 2 || back.CellCount() != 2 {
		t.Errorf("round trip lost structure: %+v", back)
	}
	f, ok := back.Field("height")
	if !ok || len(f) != 4 || f[3] != 2 {
		t.Errorf("round trip lost field: %v %v", f, ok)
	}
}

func TestReadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "BadJSON", doc: `{"vertex_count": }`},
		{name: "ShortField", doc: `{"vertex_count":3,"triangles":[[0,1,2]],"fields":{"h":[1]}}`},
		{name: "OutOfRange", doc: `{"vertex_count":2,"triangles":[[0,1,2]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.doc)); err == nil {
				t.Error("Read accepted an invalid document")
			}
		})
	}
}
