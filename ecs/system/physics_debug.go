package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4

	levelMapSize   = 160
	levelMapMargin = 10
)

// DrawLevelMap draws the level footprints indexed in the physics world
// from above, in a corner of the screen, with a dot per avatar.
func DrawLevelMap(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	pw := w.PhysicsWorld()
	space := pw.Space()
	if space == nil {
		return
	}

	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, b := range pw.Boxes() {
		minX, minY = math.Min(minX, b.Min.X()), math.Min(minY, b.Min.Y())
		maxX, maxY = math.Max(maxX, b.Max.X()), math.Max(maxY, b.Max.Y())
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span <= 0 || math.IsInf(span, 0) {
		return
	}

	sw := float64(screen.Bounds().Dx())
	drawer := &physicsDebugDrawer{
		screen:  screen,
		originX: sw - levelMapSize - levelMapMargin,
		originY: levelMapMargin,
		minX:    minX,
		maxY:    maxY,
		zoom:    levelMapSize / span,
	}
	vector.FillRect(screen, float32(drawer.originX), float32(drawer.originY), levelMapSize, levelMapSize, color.NRGBA{A: 160}, false)
	cp.DrawSpace(space, drawer)

	ecs.ForEach2(w, component.AvatarTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.AvatarTag, tr *component.Transform) {
		drawer.DrawDot(debugDotSize*2, cp.Vector{X: tr.Position.X(), Y: tr.Position.Y()}, cp.FColor{R: 1, G: 0.2, B: 0.2, A: 1}, nil)
	})
}

// physicsDebugDrawer maps the XY plane of the level onto a square inset
// with +Y up.
type physicsDebugDrawer struct {
	screen  *ebiten.Image
	originX float64
	originY float64
	minX    float64
	maxY    float64
	zoom    float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.toScreen(pos)
	half := float32(size / 2)
	vector.FillRect(d.screen, x-half, y-half, half*2, half*2, toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32(d.originX + (v.X-d.minX)*d.zoom), float32(d.originY + (d.maxY-v.Y)*d.zoom)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
