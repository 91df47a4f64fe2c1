package render

// SegmentOp identifies the kind of a path segment.
type SegmentOp int

const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
	Close
)

// Point is a position in canvas pixels.
type Point struct {
	X, Y float32
}

// Segment is one drawing instruction. Only the first N points are used:
// MoveTo/LineTo use 1, QuadTo 2 (control, end), CubeTo 3, Close none.
type Segment struct {
	Op  SegmentOp
	Pts [3]Point
}

// Path is a backend-neutral vector path. Canvases translate it into
// their native representation.
type Path struct {
	Segments []Segment
	// groups holds the segment index where each group starts.
	groups []int
}

// Group starts a new group. Contours of one group must be filled together
// (a glyph and its holes); separate groups may be drawn separately.
func (p *Path) Group() {
	if n := len(p.Segments); len(p.groups) == 0 || p.groups[len(p.groups)-1] != n {
		p.groups = append(p.groups, n)
	}
}

// Parts splits the path at its group starts. A path without groups is
// one part.
func (p *Path) Parts() []*Path {
	if p.Empty() {
		return nil
	}
	var parts []*Path
	start := 0
	for _, g := range p.groups {
		if g > start {
			parts = append(parts, &Path{Segments: p.Segments[start:g]})
		}
		start = g
	}
	if start < len(p.Segments) {
		parts = append(parts, &Path{Segments: p.Segments[start:]})
	}
	return parts
}

func (p *Path) MoveTo(x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: MoveTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) LineTo(x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: LineTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: QuadTo, Pts: [3]Point{{cx, cy}, {x, y}}})
}

func (p *Path) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: CubeTo, Pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: Close})
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool {
	return p == nil || len(p.Segments) == 0
}

// Bounds returns the bounding box of all points, control points included.
func (p *Path) Bounds() (minPt, maxPt Point) {
	first := true
	for _, s := range p.Segments {
		for _, pt := range s.Pts[:s.Op.points()] {
			if first {
				minPt, maxPt = pt, pt
				first = false
				continue
			}
			minPt.X = min(minPt.X, pt.X)
			minPt.Y = min(minPt.Y, pt.Y)
			maxPt.X = max(maxPt.X, pt.X)
			maxPt.Y = max(maxPt.Y, pt.Y)
		}
	}
	return minPt, maxPt
}

func (op SegmentOp) points() int {
	switch op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubeTo:
		return 3
	}
	return 0
}
