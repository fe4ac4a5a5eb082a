package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

func layerFilter(mask Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
}

// overlap collects the colliders whose shapes lie within radius of point on
// the given layers, in spatial index enumeration order. The bounding box query
// narrows candidates and the shape point query measures the real distance.
func (s *Space) overlap(point cp.Vector, radius float64, mask Layer) []*Collider {
	if s == nil || s.space == nil || radius < 0 {
		return nil
	}
	var hits []*Collider
	s.space.BBQuery(cp.NewBBForCircle(point, radius), layerFilter(mask), func(shape *cp.Shape, _ interface{}) {
		c, ok := s.colliders[shape]
		if !ok {
			return
		}
		if shape.PointQuery(point).Distance <= radius {
			hits = append(hits, c)
		}
	}, nil)
	return hits
}

// FindNearest returns the tagged collider on mask within radius of point whose
// origin is closest by squared distance. Equal distances keep the first
// enumerated candidate. An empty tag matches every collider.
func (s *Space) FindNearest(point cp.Vector, radius float64, mask Layer, tag string) (*Collider, bool) {
	var (
		best     *Collider
		bestDist = math.MaxFloat64
	)
	for _, c := range s.overlap(point, radius, mask) {
		if tag != "" && c.Tag != tag {
			continue
		}
		d := c.Position().Sub(point).LengthSq()
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, best != nil
}

// OverlapFirst returns the first collider on mask within radius of point.
func (s *Space) OverlapFirst(point cp.Vector, radius float64, mask Layer) (*Collider, bool) {
	hits := s.overlap(point, radius, mask)
	if len(hits) == 0 {
		return nil, false
	}
	return hits[0], true
}
