// Package config loads camera rig configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbit/engine/planet"
	"gopkg.in/yaml.v3"
)

// Curve type names accepted in CurveConfig.Type.
const (
	CurveConstant = "constant"
	CurveLinear   = "linear"
	CurveLog      = "log"
)

// Move mode names accepted in MoveConfig.Mode.
const (
	MoveModeDirect      = "direct"
	MoveModeGreatCircle = "great-circle"
)

// Comparison names accepted in RegenerationConfig.Comparison.
const (
	ComparisonExact   = "exact"
	ComparisonEpsilon = "epsilon"
)

// RigConfig is the YAML document describing one orbital camera.
//
// Example:
//
//	camera:
//	  entity: Camera
//	  orbitCenter: Mars
//	altitude:
//	  min: 3400
//	  max: 20000
//	zoom:
//	  curve: {type: log, base: 10, scale: 5.5, ref: 1000, lo: 1, hi: 15000}
//	move:
//	  mode: great-circle
//	  curve: {type: constant, value: 100}
type RigConfig struct {
	Camera       CameraConfig       `yaml:"camera"`
	Altitude     AltitudeConfig     `yaml:"altitude"`
	Drag         DragConfig         `yaml:"drag"`
	Zoom         ZoomConfig         `yaml:"zoom"`
	Move         MoveConfig         `yaml:"move"`
	Regeneration RegenerationConfig `yaml:"regeneration"`
}

// CameraConfig names the entities the camera script works with.
type CameraConfig struct {
	// Entity is the camera entity name. Defaults to "Camera".
	Entity string `yaml:"entity"`
	// OrbitCenter is the body entity name. Empty orbits the world origin.
	OrbitCenter string `yaml:"orbitCenter"`
	// Followers are moved by the camera's displacement each tick.
	Followers []string `yaml:"followers"`
}

// AltitudeConfig holds altitude bounds. An omitted bound keeps the rig default;
// Max below Min is raised to Min by the rig.
type AltitudeConfig struct {
	Min                float32 `yaml:"min"`
	Max                float32 `yaml:"max"`
	AltimeterThreshold float32 `yaml:"altimeterThreshold"`
}

// DragConfig holds pointer drag settings.
type DragConfig struct {
	// Sensitivity is radians per pixel. Zero uses camera.DefaultSensitivity.
	Sensitivity float32 `yaml:"sensitivity"`
}

// ZoomConfig holds scroll zoom settings.
type ZoomConfig struct {
	Curve CurveConfig `yaml:"curve"`
	// WheelDeadzone is the largest wheel magnitude ignored. Zero zooms on any movement.
	WheelDeadzone float32 `yaml:"wheelDeadzone"`
}

// MoveConfig holds keyboard movement settings.
type MoveConfig struct {
	Mode  string      `yaml:"mode"`
	Curve CurveConfig `yaml:"curve"`
}

// CurveConfig describes a camera.SpeedCurve. Only the fields of the chosen type are read.
type CurveConfig struct {
	Type  string  `yaml:"type"`
	Value float32 `yaml:"value"`
	K     float32 `yaml:"k"`
	M     float32 `yaml:"m"`
	Base  float32 `yaml:"base"`
	Scale float32 `yaml:"scale"`
	Ref   float32 `yaml:"ref"`
	Lo    float32 `yaml:"lo"`
	Hi    float32 `yaml:"hi"`
}

// RegenerationConfig controls planet regeneration notifications.
type RegenerationConfig struct {
	Comparison string  `yaml:"comparison"`
	Epsilon    float32 `yaml:"epsilon"`
	Async      bool    `yaml:"async"`
	Workers    int     `yaml:"workers"`
}

// LoadRigConfig reads and validates a rig configuration file.
//
// Parameters:
//   - path: YAML file path
//
// Returns:
//   - *RigConfig: the loaded configuration
//   - error: read, parse or validation failure
func LoadRigConfig(path string) (*RigConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rig config: %w", err)
	}
	return ParseRigConfig(data)
}

// ParseRigConfig parses and validates a rig configuration document.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *RigConfig: the parsed configuration
//   - error: parse or validation failure
func ParseRigConfig(data []byte) (*RigConfig, error) {
	var cfg RigConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rig config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rig config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the rig cannot use.
func (c *RigConfig) Validate() error {
	if c.Altitude.Min < 0 {
		return fmt.Errorf("altitude.min must be >= 0, got %g", c.Altitude.Min)
	}
	if c.Altitude.AltimeterThreshold < 0 {
		return fmt.Errorf("altitude.altimeterThreshold must be >= 0, got %g", c.Altitude.AltimeterThreshold)
	}
	if c.Drag.Sensitivity < 0 {
		return fmt.Errorf("drag.sensitivity must be >= 0, got %g", c.Drag.Sensitivity)
	}
	if c.Zoom.WheelDeadzone < 0 {
		return fmt.Errorf("zoom.wheelDeadzone must be >= 0, got %g", c.Zoom.WheelDeadzone)
	}
	if err := c.Zoom.Curve.validate(); err != nil {
		return fmt.Errorf("zoom.curve: %w", err)
	}
	if err := c.Move.Curve.validate(); err != nil {
		return fmt.Errorf("move.curve: %w", err)
	}
	switch strings.ToLower(c.Move.Mode) {
	case "", MoveModeDirect, MoveModeGreatCircle:
	default:
		return fmt.Errorf("move.mode %q is not one of %q, %q", c.Move.Mode, MoveModeDirect, MoveModeGreatCircle)
	}
	switch strings.ToLower(c.Regeneration.Comparison) {
	case "", ComparisonExact:
	case ComparisonEpsilon:
		if c.Regeneration.Epsilon <= 0 {
			return fmt.Errorf("regeneration.epsilon must be > 0 for epsilon comparison, got %g", c.Regeneration.Epsilon)
		}
	default:
		return fmt.Errorf("regeneration.comparison %q is not one of %q, %q", c.Regeneration.Comparison, ComparisonExact, ComparisonEpsilon)
	}
	if c.Regeneration.Workers < 0 {
		return fmt.Errorf("regeneration.workers must be >= 0, got %d", c.Regeneration.Workers)
	}
	return nil
}

func (cc CurveConfig) validate() error {
	switch strings.ToLower(cc.Type) {
	case "":
		return nil
	case CurveConstant:
		if cc.Value < 0 {
			return fmt.Errorf("constant value must be >= 0, got %g", cc.Value)
		}
	case CurveLinear:
	case CurveLog:
		if cc.Ref <= 0 {
			return fmt.Errorf("log ref must be > 0, got %g", cc.Ref)
		}
		if cc.Hi < cc.Lo {
			return fmt.Errorf("log hi(%g) < lo(%g)", cc.Hi, cc.Lo)
		}
	default:
		return fmt.Errorf("unknown curve type %q", cc.Type)
	}
	return nil
}

// SpeedCurve builds the configured curve, or nil when no type is set.
func (cc CurveConfig) SpeedCurve() camera.SpeedCurve {
	switch strings.ToLower(cc.Type) {
	case CurveConstant:
		return camera.ConstantCurve{Value: cc.Value}
	case CurveLinear:
		return camera.LinearCurve{K: cc.K, M: cc.M}
	case CurveLog:
		return camera.LogCurve{Base: cc.Base, Scale: cc.Scale, Ref: cc.Ref, Lo: cc.Lo, Hi: cc.Hi}
	default:
		return nil
	}
}

// MoveMode returns the configured move mode.
func (c *RigConfig) MoveMode() camera.MoveMode {
	if strings.ToLower(c.Move.Mode) == MoveModeGreatCircle {
		return camera.MoveGreatCircle
	}
	return camera.MoveDirect
}

// Comparison returns the configured change comparison for planet regeneration.
func (c *RigConfig) Comparison() planet.Comparison {
	if strings.ToLower(c.Regeneration.Comparison) == ComparisonEpsilon {
		return planet.CompareEpsilon(c.Regeneration.Epsilon)
	}
	return planet.CompareExact
}

// RigOptions converts the configuration into CameraRig options.
// Omitted values keep the rig's defaults.
func (c *RigConfig) RigOptions() []camera.RigOption {
	opts := []camera.RigOption{
		camera.WithSensitivity(common.Coalesce(c.Drag.Sensitivity, camera.DefaultSensitivity)),
		camera.WithMoveMode(c.MoveMode()),
		camera.WithZoomCurve(c.Zoom.Curve.SpeedCurve()),
		camera.WithMoveCurve(c.Move.Curve.SpeedCurve()),
	}
	if c.Altitude.Min != 0 || c.Altitude.Max != 0 {
		opts = append(opts, camera.WithAltitudeBounds(
			common.Coalesce(c.Altitude.Min, camera.DefaultMinAltitude),
			common.Coalesce(c.Altitude.Max, camera.DefaultMaxAltitude),
		))
	}
	if c.Zoom.WheelDeadzone > 0 {
		opts = append(opts, camera.WithWheelDeadzone(c.Zoom.WheelDeadzone))
	}
	return opts
}

// ControllerOptions converts the configuration into CameraController options.
// The regenerator is supplied by the caller; it is wrapped in a planet.AsyncRegenerator
// when regeneration.async is set. A nil regenerator disables notifications.
//
// Parameters:
//   - regen: the planet collaborator, or nil
//
// Returns:
//   - []camera.CameraControllerOption: controller options
func (c *RigConfig) ControllerOptions(regen planet.Regenerator) []camera.CameraControllerOption {
	opts := []camera.CameraControllerOption{
		camera.WithCameraEntity(common.Coalesce(c.Camera.Entity, "Camera")),
		camera.WithRigOptions(c.RigOptions()...),
		camera.WithChangeComparison(c.Comparison()),
		camera.WithAltimeterThreshold(common.Coalesce(c.Altitude.AltimeterThreshold, camera.DefaultAltimeterThreshold)),
	}
	if c.Camera.OrbitCenter != "" {
		opts = append(opts, camera.WithOrbitCenterEntity(c.Camera.OrbitCenter))
	}
	if len(c.Camera.Followers) > 0 {
		opts = append(opts, camera.WithFollowers(c.Camera.Followers...))
	}
	if regen != nil {
		if c.Regeneration.Async {
			regen = planet.NewAsyncRegenerator(regen, planet.WithWorkers(c.Regeneration.Workers))
		}
		opts = append(opts, camera.WithRegenerator(regen))
	}
	return opts
}
