package reeb

import "github.com/matzehuels/topograph/pkg/mesh"

// Build entry points: non-streaming construction from a whole mesh plus
// scalar field. They are thin drivers over the streaming surface; because
// the full mesh is known, per-vertex simplex counts are declared up front
// so interior vertices finalize (and collapse) as early as possible.

// Build computes the Reeb graph of field over m and closes the stream.
// field must carry one value per mesh vertex (ErrIncorrectField). The
// mesh must be purely simplicial: triangles or tetrahedra, not both, with
// in-range distinct vertex indices (ErrNotSimplicial). Error codes are
// stable via WireCode.
func Build(g *Graph, m *mesh.Mesh, field []float64) error {
	if len(field) != m.VertexCount {
		return ErrIncorrectField
	}
	if err := m.Validate(); err != nil {
		return ErrNotSimplicial
	}
	if len(m.Triangles) > 0 && len(m.Tetrahedra) > 0 {
		return ErrNotSimplicial
	}

	counts := make(map[int64]int)
	for _, t := range m.Triangles {
		for _, v := range t {
			counts[v]++
		}
	}
	for _, t := range m.Tetrahedra {
		for _, v := range t {
			counts[v]++
		}
	}
	for v, c := range counts {
		if err := g.SetVertexSimplexCount(v, c); err != nil {
			return err
		}
	}

	for _, t := range m.Triangles {
		err := g.StreamTriangle(
			t[0], field[t[0]],
			t[1], field[t[1]],
			t[2], field[t[2]],
		)
		if err != nil {
			return err
		}
	}
	for _, t := range m.Tetrahedra {
		err := g.StreamTetrahedron(
			t[0], field[t[0]],
			t[1], field[t[1]],
			t[2], field[t[2]],
			t[3], field[t[3]],
		)
		if err != nil {
			return err
		}
	}
	return g.CloseStream()
}

// BuildByName builds from the mesh field with the given name.
// Returns ErrNoSuchField if the mesh has no such field.
func BuildByName(g *Graph, m *mesh.Mesh, name string) error {
	field, ok := m.Field(name)
	if !ok {
		return ErrNoSuchField
	}
	return Build(g, m, field)
}

// BuildByIndex builds from the mesh field at the given index, in field
// registration order. Returns ErrNoSuchField for an out-of-range index.
func BuildByIndex(g *Graph, m *mesh.Mesh, index int) error {
	field, ok := m.FieldByIndex(index)
	if !ok {
		return ErrNoSuchField
	}
	return Build(g, m, field)
}
