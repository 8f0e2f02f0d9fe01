package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jumper/ecs"
	"github.com/milk9111/jumper/ecs/component"
	"github.com/milk9111/jumper/traversal"
)

func TestSense(t *testing.T) {
	pw := ecs.NewPhysicsWorld([]ecs.Box{floorBox, towerBox})
	sensors := component.DefaultSensors()
	facingTower := traversal.Rotator{}
	facingAway := traversal.Rotator{Yaw: 180}

	cases := []struct {
		name      string
		pos       mgl64.Vec3
		rot       traversal.Rotator
		wantFloor bool
		wantWall  bool
		wantLedge bool
	}{
		{"standing_in_the_open", mgl64.Vec3{0, 0, standingZ}, facingTower, true, false, false},
		{"standing_at_tower", mgl64.Vec3{258, 0, standingZ}, facingTower, true, true, true},
		{"airborne_at_ledge_height", mgl64.Vec3{258, 0, 130}, facingTower, false, true, true},
		{"airborne_below_ledge_window", mgl64.Vec3{258, 0, 60}, facingTower, true, true, false},
		{"back_to_tower", mgl64.Vec3{258, 0, 130}, facingAway, false, false, false},
		{"above_tower_top", mgl64.Vec3{258, 0, 400}, facingTower, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := Sense(pw, tc.pos, tc.rot, &sensors)
			if snap.NearFloor != tc.wantFloor || snap.NearWall != tc.wantWall || snap.NearLedgeHeight != tc.wantLedge {
				t.Fatalf("got floor=%v wall=%v ledge=%v, want floor=%v wall=%v ledge=%v",
					snap.NearFloor, snap.NearWall, snap.NearLedgeHeight, tc.wantFloor, tc.wantWall, tc.wantLedge)
			}
			if snap.NearWall {
				if snap.WallNormal != (mgl64.Vec3{-1, 0, 0}) {
					t.Fatalf("unexpected wall normal %v", snap.WallNormal)
				}
				if !near(snap.WallImpactPoint.X(), 300, 1e-6) || !near(snap.WallImpactPoint.Z(), tc.pos.Z(), 1e-6) {
					t.Fatalf("unexpected wall impact %v", snap.WallImpactPoint)
				}
			}
			if snap.NearLedgeHeight && !near(snap.LedgeHeight.Z(), 250, 1e-6) {
				t.Fatalf("unexpected ledge height %v", snap.LedgeHeight)
			}
		})
	}
}

func TestSenseWithoutLevel(t *testing.T) {
	sensors := component.DefaultSensors()
	if snap := Sense(nil, mgl64.Vec3{}, traversal.Rotator{}, &sensors); snap != (traversal.SensorSnapshot{}) {
		t.Fatalf("expected an empty snapshot, got %+v", snap)
	}
}

func TestPerceptionSystemWritesSnapshot(t *testing.T) {
	w := newTestWorld(floorBox, towerBox)
	e := spawnTestAvatar(t, w, mgl64.Vec3{258, 0, standingZ})
	NewPerceptionSystem().Update(w)

	sensors := getT(t, w, e, component.SensorsComponent.Kind())
	if !sensors.Snapshot.NearFloor || !sensors.Snapshot.NearWall {
		t.Fatalf("expected floor and wall, got %+v", sensors.Snapshot)
	}
}
