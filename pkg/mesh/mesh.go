// Package mesh holds the simplicial mesh documents the Reeb builder
// consumes: a vertex count, triangle or tetrahedron connectivity, and
// named per-vertex scalar fields. The core streaming algorithm never
// touches this package; it exists for the Build drivers, the CLI and the
// server.
package mesh

import "errors"

// Sentinel errors for mesh validation.
var (
	// ErrVertexOutOfRange is returned when a cell references a vertex
	// index outside [0, VertexCount).
	ErrVertexOutOfRange = errors.New("cell references vertex out of range")

	// ErrDegenerateCell is returned when a cell repeats a vertex.
	ErrDegenerateCell = errors.New("cell repeats a vertex")

	// ErrFieldSize is returned by AddField when the field does not have
	// one value per vertex.
	ErrFieldSize = errors.New("field size does not match vertex count")

	// ErrDuplicateField is returned by AddField for an already-registered
	// field name.
	ErrDuplicateField = errors.New("duplicate field name")
)

// Mesh is a simplicial mesh: triangles for surfaces, tetrahedra for
// volumes. A well-formed mesh carries one cell kind only; Validate does
// not enforce that (a document may legitimately hold both while being
// assembled), the Build surface does.
type Mesh struct {
	VertexCount int
	Triangles   [][3]int64
	Tetrahedra  [][4]int64

	fields map[string][]float64
	order  []string
}

// New creates an empty mesh over vertexCount vertices.
func New(vertexCount int) *Mesh {
	return &Mesh{
		VertexCount: vertexCount,
		fields:      make(map[string][]float64),
	}
}

// AddTriangle appends a surface cell.
func (m *Mesh) AddTriangle(a, b, c int64) {
	m.Triangles = append(m.Triangles, [3]int64{a, b, c})
}

// AddTetrahedron appends a volume cell.
func (m *Mesh) AddTetrahedron(a, b, c, d int64) {
	m.Tetrahedra = append(m.Tetrahedra, [4]int64{a, b, c, d})
}

// AddField registers a named per-vertex scalar field.
func (m *Mesh) AddField(name string, values []float64) error {
	if len(values) != m.VertexCount {
		return ErrFieldSize
	}
	if m.fields == nil {
		m.fields = make(map[string][]float64)
	}
	if _, dup := m.fields[name]; dup {
		return ErrDuplicateField
	}
	m.fields[name] = values
	m.order = append(m.order, name)
	return nil
}

// Field returns the field with the given name.
func (m *Mesh) Field(name string) ([]float64, bool) {
	f, ok := m.fields[name]
	return f, ok
}

// FieldByIndex returns the field at the given index, in registration
// order.
func (m *Mesh) FieldByIndex(i int) ([]float64, bool) {
	if i < 0 || i >= len(m.order) {
		return nil, false
	}
	return m.fields[m.order[i]], true
}

// FieldNames returns the registered field names in registration order.
// The returned slice is owned by the mesh.
func (m *Mesh) FieldNames() []string { return m.order }

// CellCount returns the total number of cells.
func (m *Mesh) CellCount() int { return len(m.Triangles) + len(m.Tetrahedra) }

// Validate checks that every cell references in-range, distinct vertices.
func (m *Mesh) Validate() error {
	check := func(vs []int64) error {
		for i, v := range vs {
			if v < 0 || v >= int64(m.VertexCount) {
				return ErrVertexOutOfRange
			}
			for j := i + 1; j < len(vs); j++ {
				if v == vs[j] {
					return ErrDegenerateCell
				}
			}
		}
		return nil
	}
	for _, t := range m.Triangles {
		if err := check(t[:]); err != nil {
			return err
		}
	}
	for _, t := range m.Tetrahedra {
		if err := check(t[:]); err != nil {
			return err
		}
	}
	return nil
}
