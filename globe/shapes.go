package globe

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Shapes is a land region: an immutable set of closed contours in
// (longitude, latitude) degrees. The first ring of each polygon is the outer
// contour, further rings are holes.
//
// Points on a contour count as inside. Points on a hole's contour count as
// outside the polygon.
type Shapes struct {
	polys  []orb.Polygon
	bounds []orb.Bound
}

// NewShapes builds a land region from the given polygons. Polygons without an
// outer ring are dropped.
func NewShapes(polys ...orb.Polygon) *Shapes {
	s := &Shapes{
		polys:  make([]orb.Polygon, 0, len(polys)),
		bounds: make([]orb.Bound, 0, len(polys)),
	}
	for _, p := range polys {
		if len(p) == 0 || len(p[0]) == 0 {
			continue
		}
		s.polys = append(s.polys, p)
		s.bounds = append(s.bounds, p.Bound())
	}
	return s
}

// Len reports the number of polygons in the region.
func (s *Shapes) Len() int {
	if s == nil {
		return 0
	}
	return len(s.polys)
}

// Contains reports whether the point lies inside any polygon of the region.
func (s *Shapes) Contains(lon, lat float64) bool {
	if s == nil {
		return false
	}
	pt := orb.Point{lon, lat}
	for i, p := range s.polys {
		if !s.bounds[i].Contains(pt) {
			continue
		}
		if planar.PolygonContains(p, pt) {
			return true
		}
	}
	return false
}
