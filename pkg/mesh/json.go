package mesh

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// document is the JSON wire form of a mesh.
type document struct {
	VertexCount int                  `json:"vertex_count"`
	Triangles   [][3]int64           `json:"triangles,omitempty"`
	Tetrahedra  [][4]int64           `json:"tetrahedra,omitempty"`
	Fields      map[string][]float64 `json:"fields,omitempty"`
}

// Read decodes a mesh document from r and validates it.
func Read(r io.Reader) (*Mesh, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode mesh: %w", err)
	}
	m := New(doc.VertexCount)
	m.Triangles = doc.Triangles
	m.Tetrahedra = doc.Tetrahedra
	for name, values := range doc.Fields {
		m.fields[name] = values
		m.order = append(m.order, name)
	}
	// Field registration order must not depend on map iteration.
	sort.Strings(m.order)
	for _, name := range m.order {
		if len(m.fields[name]) != m.VertexCount {
			return nil, fmt.Errorf("field %q: %w", name, ErrFieldSize)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadFile reads and validates a mesh document from a JSON file.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the mesh as a JSON document.
func Write(m *Mesh, w io.Writer) error {
	doc := document{
		VertexCount: m.VertexCount,
		Triangles:   m.Triangles,
		Tetrahedra:  m.Tetrahedra,
	}
	if len(m.fields) > 0 {
		doc.Fields = m.fields
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode mesh: %w", err)
	}
	return nil
}
