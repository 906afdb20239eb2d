// Package metric ships simplification-metric plug-ins for the Reeb graph
// simplifier. Each metric is a pure function of an arc's endpoint scalars
// and interior mesh vertices; the simplifier treats the returned value
// exactly like normalized persistence, so well-behaved metrics stay in
// [0, 1].
package metric

import "gonum.org/v1/gonum/stat"

// Persistence is the default importance measure made explicit: the arc's
// scalar span as a fraction of the field's overall span.
type Persistence struct {
	Min, Max float64 // overall scalar range of the field
}

// Compute returns the normalized scalar span of the arc.
func (m Persistence) Compute(lowerScalar, upperScalar float64, _ []int64) float64 {
	span := m.Max - m.Min
	if span == 0 {
		return 0
	}
	return (upperScalar - lowerScalar) / span
}

// SpanWeight scales persistence by the mass of the arc: regions carrying
// many mesh vertices resist simplification longer than thin ones of the
// same height. The weight saturates so results stay comparable to plain
// persistence.
type SpanWeight struct {
	Min, Max float64 // overall scalar range of the field
	Saturate int     // vertex count at which the weight reaches 1; default 1
}

// Compute returns normalized span times the saturated interior mass.
func (m SpanWeight) Compute(lowerScalar, upperScalar float64, vertexIDs []int64) float64 {
	span := m.Max - m.Min
	if span == 0 {
		return 0
	}
	sat := m.Saturate
	if sat < 1 {
		sat = 1
	}
	mass := float64(len(vertexIDs)+1) / float64(sat+1)
	if mass > 1 {
		mass = 1
	}
	return (upperScalar - lowerScalar) / span * mass
}

// Deviation measures an arc by the standard deviation of the scalar field
// over its endpoints and interior vertices, normalized by the overall
// span: flat noisy
// shelves score near zero regardless of their nominal height. Field must
// be indexable by mesh vertex id.
type Deviation struct {
	Min, Max float64   // overall scalar range of the field
	Field    []float64 // per-vertex scalar values
}

// Compute returns the normalized standard deviation of the arc's samples,
// endpoints included.
func (m Deviation) Compute(lowerScalar, upperScalar float64, vertexIDs []int64) float64 {
	span := m.Max - m.Min
	if span == 0 {
		return 0
	}
	values := make([]float64, 0, len(vertexIDs)+2)
	values = append(values, lowerScalar)
	for _, vid := range vertexIDs {
		if vid >= 0 && vid < int64(len(m.Field)) {
			values = append(values, m.Field[vid])
		}
	}
	values = append(values, upperScalar)
	return stat.StdDev(values, nil) / span
}
