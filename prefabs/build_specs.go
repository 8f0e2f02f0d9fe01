package prefabs

import (
	"time"

	"github.com/milk9111/jumper/traversal"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type AvatarTagComponentSpec struct {
	Name string `yaml:"name"`
}

type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
	Roll  float64 `yaml:"roll"`
}

// PhysicsBodyComponentSpec overrides the stock capsule. Unset fields keep
// their defaults.
type PhysicsBodyComponentSpec struct {
	Radius        *float64 `yaml:"radius"`
	HalfHeight    *float64 `yaml:"half_height"`
	JumpZVelocity *float64 `yaml:"jump_z_velocity"`
	AirControl    *float64 `yaml:"air_control"`
	MaxWalkSpeed  *float64 `yaml:"max_walk_speed"`
	Acceleration  *float64 `yaml:"acceleration"`
	YawRate       *float64 `yaml:"yaw_rate"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type SensorsComponentSpec struct {
	WallZOffset        *float64 `yaml:"wall_z_offset"`
	WallLength         *float64 `yaml:"wall_length"`
	FloorDistance      *float64 `yaml:"floor_distance"`
	LedgeStartHeight   *float64 `yaml:"ledge_start_height"`
	LedgeDistance      *float64 `yaml:"ledge_distance"`
	LedgeForwardOffset *float64 `yaml:"ledge_forward_offset"`
}

type TraversalComponentSpec struct {
	LedgeGrabHeightOffset *float64       `yaml:"ledge_grab_height_offset"`
	LedgeGrabNormalOffset *float64       `yaml:"ledge_grab_normal_offset"`
	LedgeSnapDuration     *time.Duration `yaml:"ledge_snap_duration"`
	WallSlideDistance     *float64       `yaml:"wall_slide_distance"`
	WallSlideMaxRiseSpeed *float64       `yaml:"wall_slide_max_rise_speed"`
	WallSlideGravityScale *float64       `yaml:"wall_slide_gravity_scale"`
	WallJumpForward       *float64       `yaml:"wall_jump_forward"`
	WallJumpUp            *float64       `yaml:"wall_jump_up"`
	DefaultYawRate        *float64       `yaml:"default_yaw_rate"`
	ApexGravityScale      *float64       `yaml:"apex_gravity_scale"`
}

// Tuning applies the spec on top of the stock traversal tuning.
func (s TraversalComponentSpec) Tuning() traversal.Tuning {
	t := traversal.DefaultTuning()
	setFloat(&t.LedgeGrabHeightOffset, s.LedgeGrabHeightOffset)
	setFloat(&t.LedgeGrabNormalOffset, s.LedgeGrabNormalOffset)
	if s.LedgeSnapDuration != nil {
		t.LedgeSnapDuration = *s.LedgeSnapDuration
	}
	setFloat(&t.WallSlideDistance, s.WallSlideDistance)
	setFloat(&t.WallSlideMaxRiseSpeed, s.WallSlideMaxRiseSpeed)
	setFloat(&t.WallSlideGravityScale, s.WallSlideGravityScale)
	setFloat(&t.WallJumpForward, s.WallJumpForward)
	setFloat(&t.WallJumpUp, s.WallJumpUp)
	if s.DefaultYawRate != nil {
		t.DefaultRotationRate = traversal.YawRate(*s.DefaultYawRate)
	}
	setFloat(&t.ApexGravityScale, s.ApexGravityScale)
	return t
}

type ClimbComponentSpec struct {
	Duration time.Duration `yaml:"duration"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type ScriptInputComponentSpec struct {
	Name string `yaml:"name"`
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
