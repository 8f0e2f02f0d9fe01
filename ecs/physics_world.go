package ecs

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Box is an axis-aligned block of level geometry.
type Box struct {
	Name string
	Min  mgl64.Vec3
	Max  mgl64.Vec3
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// RayHit is the first contact of a probe segment with level geometry.
type RayHit struct {
	Box      int
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Fraction float64
}

// PhysicsWorld indexes level boxes in a Chipmunk space by their XY
// footprint. Chipmunk answers the broadphase; the Z extent is resolved
// against the box itself.
type PhysicsWorld struct {
	space *cp.Space
	boxes []Box
}

// NewPhysicsWorld builds the static index for boxes.
func NewPhysicsWorld(boxes []Box) *PhysicsWorld {
	space := cp.NewSpace()
	pw := &PhysicsWorld{space: space}
	for _, b := range boxes {
		pw.addBox(b)
	}
	return pw
}

func (pw *PhysicsWorld) addBox(b Box) {
	for i := 0; i < 3; i++ {
		if b.Min[i] > b.Max[i] {
			b.Min[i], b.Max[i] = b.Max[i], b.Min[i]
		}
	}
	if b.Max.X()-b.Min.X() <= 0 || b.Max.Y()-b.Min.Y() <= 0 {
		log.Printf("PhysicsWorld: skipping box %q with empty footprint", b.Name)
		return
	}
	bb := cp.BB{L: b.Min.X(), B: b.Min.Y(), R: b.Max.X(), T: b.Max.Y()}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.UserData = len(pw.boxes)
	pw.space.AddShape(shape)
	pw.boxes = append(pw.boxes, b)
}

// Boxes returns the indexed boxes. Callers must not modify it.
func (pw *PhysicsWorld) Boxes() []Box {
	if pw == nil {
		return nil
	}
	return pw.boxes
}

// candidates returns the indices of boxes whose footprint touches the
// XY bounding box of the segment grown by radius.
func (pw *PhysicsWorld) candidates(start, end mgl64.Vec3, radius float64) []int {
	r := math.Max(radius, 1e-6)
	bb := cp.BB{
		L: math.Min(start.X(), end.X()) - r,
		B: math.Min(start.Y(), end.Y()) - r,
		R: math.Max(start.X(), end.X()) + r,
		T: math.Max(start.Y(), end.Y()) + r,
	}

	seen := map[int]bool{}
	var out []int
	pw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		idx, ok := shape.UserData.(int)
		if !ok || seen[idx] {
			return
		}
		seen[idx] = true
		out = append(out, idx)
	}, nil)
	return out
}

// Raycast returns the first box face the segment enters. Segments that
// start inside a box do not hit that box.
func (pw *PhysicsWorld) Raycast(start, end mgl64.Vec3) (RayHit, bool) {
	if pw == nil {
		return RayHit{}, false
	}
	best := RayHit{Fraction: math.Inf(1)}
	found := false
	for _, idx := range pw.candidates(start, end, 0) {
		t, normal, ok := segmentBoxHit(start, end, pw.boxes[idx])
		if !ok || t >= best.Fraction {
			continue
		}
		best = RayHit{Box: idx, Fraction: t, Normal: normal, Point: start.Add(end.Sub(start).Mul(t))}
		found = true
	}
	return best, found
}

// SweepPlanar moves a vertical capsule of the given radius from start to
// end in XY and returns the first side wall it would touch. Boxes that do
// not overlap [zMin, zMax] are ignored.
func (pw *PhysicsWorld) SweepPlanar(start, end mgl64.Vec3, radius, zMin, zMax float64) (RayHit, bool) {
	if pw == nil {
		return RayHit{}, false
	}
	best := RayHit{Fraction: math.Inf(1)}
	found := false
	for _, idx := range pw.candidates(start, end, radius) {
		b := pw.boxes[idx]
		if b.Max.Z() <= zMin || b.Min.Z() >= zMax {
			continue
		}
		grown := Box{
			Min: mgl64.Vec3{b.Min.X() - radius, b.Min.Y() - radius, math.Inf(-1)},
			Max: mgl64.Vec3{b.Max.X() + radius, b.Max.Y() + radius, math.Inf(1)},
		}
		flatStart := mgl64.Vec3{start.X(), start.Y(), 0}
		flatEnd := mgl64.Vec3{end.X(), end.Y(), 0}
		t, normal, ok := segmentBoxHit(flatStart, flatEnd, grown)
		if !ok || t >= best.Fraction {
			continue
		}
		p := start.Add(end.Sub(start).Mul(t))
		best = RayHit{Box: idx, Fraction: t, Normal: normal, Point: p}
		found = true
	}
	return best, found
}

// GroundHeight returns the highest box top under the capsule footprint at
// xy that is not above maxZ.
func (pw *PhysicsWorld) GroundHeight(pos mgl64.Vec3, radius, maxZ float64) (float64, bool) {
	if pw == nil {
		return 0, false
	}
	top := math.Inf(-1)
	found := false
	for _, idx := range pw.candidates(pos, pos, radius) {
		b := pw.boxes[idx]
		if b.Max.Z() > maxZ || b.Max.Z() <= top {
			continue
		}
		top = b.Max.Z()
		found = true
	}
	return top, found
}

// segmentBoxHit is the slab test: it returns the entry fraction and face
// normal of the segment p0->p1 against box.
func segmentBoxHit(p0, p1 mgl64.Vec3, box Box) (float64, mgl64.Vec3, bool) {
	if box.Contains(p0) {
		return 0, mgl64.Vec3{}, false
	}
	d := p1.Sub(p0)
	tmin, tmax := 0.0, 1.0
	axis, sign := -1, 0.0

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if p0[i] < box.Min[i] || p0[i] > box.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1.0 / d[i]
		t1 := (box.Min[i] - p0[i]) * inv
		t2 := (box.Max[i] - p0[i]) * inv
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}
		if t1 > tmin {
			tmin = t1
			axis, sign = i, s
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}
	if axis < 0 {
		return 0, mgl64.Vec3{}, false
	}
	var normal mgl64.Vec3
	normal[axis] = sign
	return tmin, normal, true
}

// Space exposes the Chipmunk index, for debug drawing.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}
