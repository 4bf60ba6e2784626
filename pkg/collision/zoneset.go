package collision

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"
)

// Query rectangles are widened before the R-tree search because the tree
// treats touching boxes as disjoint. The exact Overlap test decides. The
// margin grows with the coordinates so rounding far from the origin cannot
// swallow it.
const (
	minBroadPhaseSlack      = 1e-6
	relativeBroadPhaseSlack = 1e-9
)

func broadPhaseSlack(r Rect) float64 {
	size := max(math.Abs(r.Position.X()), math.Abs(r.Position.Y()), r.Width, r.Height)
	return max(minBroadPhaseSlack, relativeBroadPhaseSlack*size)
}

// R-tree node fan-out. Track zone lists are small, so a shallow tree is enough.
const (
	treeMinChildren = 2
	treeMaxChildren = 8
)

type zone struct {
	rect   Rect
	bounds rtreego.Rect
}

func (z *zone) Bounds() rtreego.Rect {
	return z.bounds
}

// ZoneSet is an immutable list of rectangles answering "does this collider
// touch any of them". The answer is the logical OR of Overlap across the list.
type ZoneSet struct {
	rects []Rect
	tree  *rtreego.Rtree
}

// NewZoneSet validates every rectangle and indexes them.
func NewZoneSet(rects ...Rect) (*ZoneSet, error) {
	zs := &ZoneSet{
		rects: make([]Rect, len(rects)),
		tree:  rtreego.NewTree(2, treeMinChildren, treeMaxChildren),
	}
	copy(zs.rects, rects)

	for i, r := range zs.rects {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "zone %d", i)
		}
		min := r.Min()
		bounds, err := rtreego.NewRect(rtreego.Point{min.X(), min.Y()}, []float64{r.Width, r.Height})
		if err != nil {
			return nil, errors.Wrapf(err, "zone %d", i)
		}
		zs.tree.Insert(&zone{rect: r, bounds: bounds})
	}
	return zs, nil
}

// MustZoneSet is NewZoneSet for static geometry; it panics on invalid rectangles.
func MustZoneSet(rects ...Rect) *ZoneSet {
	zs, err := NewZoneSet(rects...)
	if err != nil {
		panic(err)
	}
	return zs
}

// Len returns the number of zones.
func (zs *ZoneSet) Len() int {
	if zs == nil {
		return 0
	}
	return len(zs.rects)
}

// Rects returns a copy of the zone rectangles in insertion order.
func (zs *ZoneSet) Rects() []Rect {
	if zs == nil {
		return nil
	}
	out := make([]Rect, len(zs.rects))
	copy(out, zs.rects)
	return out
}

// Overlaps reports whether other touches at least one zone. An empty set never matches.
func (zs *ZoneSet) Overlaps(other Rect) bool {
	if zs.Len() == 0 {
		return false
	}

	slack := broadPhaseSlack(other)
	min := other.Min()
	query, err := rtreego.NewRect(
		rtreego.Point{min.X() - slack, min.Y() - slack},
		[]float64{other.Width + 2*slack, other.Height + 2*slack},
	)
	if err != nil {
		// Degenerate query box: fall back to the linear scan.
		return zs.scan(other)
	}

	hits := zs.tree.SearchIntersect(query, func(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
		if Overlap(obj.(*zone).rect, other) {
			return false, true
		}
		return true, false
	})
	return len(hits) > 0
}

func (zs *ZoneSet) scan(other Rect) bool {
	for _, r := range zs.rects {
		if Overlap(r, other) {
			return true
		}
	}
	return false
}
