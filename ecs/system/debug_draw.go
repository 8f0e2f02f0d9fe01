package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
	"golang.org/x/image/colornames"
)

// DebugDrawSystem renders the level and avatars in side view (X right, Z
// up) with their probes, plus a top-down map of the level footprints.
type DebugDrawSystem struct {
	ShowProbes bool
	ShowMap    bool
	// BoxColor fills level boxes that carry no color of their own.
	BoxColor color.Color
}

func NewDebugDrawSystem() *DebugDrawSystem {
	return &DebugDrawSystem{ShowProbes: true, ShowMap: true}
}

func (d *DebugDrawSystem) Update(w *ecs.World) {}

func (d *DebugDrawSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)
	view := sideViewFor(w, screen)

	ecs.ForEach(w, component.StaticBoxComponent.Kind(), func(e ecs.Entity, box *component.StaticBox) {
		c := box.Color
		if c == nil {
			c = d.BoxColor
		}
		if c == nil {
			c = colornames.Slategray
		}
		x0, y0 := view.toScreen(box.Min.X(), box.Max.Z())
		x1, y1 := view.toScreen(box.Max.X(), box.Min.Z())
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, c, false)
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, colornames.Lightsteelblue, false)
	})

	var hud []string
	ecs.ForEach3(w, component.AvatarTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, tag *component.AvatarTag, tr *component.Transform, body *component.PhysicsBody) {
		state := "-"
		if trav, ok := ecs.Get(w, e, component.TraversalComponent.Kind()); ok && trav.Machine != nil {
			state = trav.Machine.State().String()
		}
		d.drawAvatar(screen, view, tr, body, stateColor(state))

		sensors, hasSensors := ecs.Get(w, e, component.SensorsComponent.Kind())
		if d.ShowProbes && hasSensors {
			d.drawProbes(screen, view, tr, sensors)
		}

		line := fmt.Sprintf("%s: %s mode=%s pos=(%.0f, %.0f, %.0f) vz=%.0f", tag.Name, state, body.Mode, tr.Position.X(), tr.Position.Y(), tr.Position.Z(), body.Velocity.Z())
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			line += " clip=" + anim.Current
		}
		if hasSensors {
			s := sensors.Snapshot
			line += fmt.Sprintf(" floor=%t wall=%t ledge=%t", s.NearFloor, s.NearWall, s.NearLedgeHeight)
		}
		hud = append(hud, line)
	})

	if d.ShowMap {
		DrawLevelMap(w, screen)
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(hud, "\n"), 10, 10)
}

func (d *DebugDrawSystem) drawAvatar(screen *ebiten.Image, view sideView, tr *component.Transform, body *component.PhysicsBody, c color.Color) {
	p := tr.Position
	x0, y0 := view.toScreen(p.X()-body.Radius, p.Z()+body.HalfHeight)
	x1, y1 := view.toScreen(p.X()+body.Radius, p.Z()-body.HalfHeight)
	vector.FillRect(screen, x0, y0, x1-x0, y1-y0, c, false)

	// facing
	nose := p.Add(tr.Rotation.Forward().Mul(body.Radius * 1.5))
	cx, cy := view.toScreen(p.X(), p.Z())
	nx, ny := view.toScreen(nose.X(), nose.Z())
	vector.StrokeLine(screen, cx, cy, nx, ny, 2, colornames.White, true)
}

func (d *DebugDrawSystem) drawProbes(screen *ebiten.Image, view sideView, tr *component.Transform, sensors *component.Sensors) {
	segs := ProbeSegments(tr.Position, tr.Rotation, sensors)
	s := sensors.Snapshot
	hits := [3]bool{s.NearWall, s.NearFloor, s.NearLedgeHeight}
	for i, seg := range segs {
		c := color.Color(colornames.Gray)
		if hits[i] {
			c = colornames.Lime
		}
		view.line(screen, seg.Start, seg.End, c)
	}
	if s.NearWall {
		tip := s.WallImpactPoint.Add(s.WallNormal.Mul(30))
		view.line(screen, s.WallImpactPoint, tip, colornames.Orange)
	}
}

func stateColor(state string) color.Color {
	switch state {
	case traversal.Jumping.String():
		return colornames.Gold
	case traversal.Hanging.String():
		return colornames.Orangered
	case traversal.Climbing.String():
		return colornames.Violet
	case traversal.WallSliding.String():
		return colornames.Deepskyblue
	}
	return colornames.Crimson
}

type sideView struct {
	camX, camZ float64
	zoom       float64
	halfW      float64
	halfH      float64
}

func sideViewFor(w *ecs.World, screen *ebiten.Image) sideView {
	b := screen.Bounds()
	v := sideView{zoom: 1, halfW: float64(b.Dx()) / 2, halfH: float64(b.Dy()) / 2}
	if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
			v.camX, v.camZ = cam.X, cam.Z
			if cam.Zoom > 0 {
				v.zoom = cam.Zoom
			}
		}
	}
	return v
}

func (v sideView) toScreen(x, z float64) (float32, float32) {
	return float32((x-v.camX)*v.zoom + v.halfW), float32(v.halfH - (z-v.camZ)*v.zoom)
}

func (v sideView) line(screen *ebiten.Image, a, b mgl64.Vec3, c color.Color) {
	x0, y0 := v.toScreen(a.X(), a.Z())
	x1, y1 := v.toScreen(b.X(), b.Z())
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, c, true)
}
