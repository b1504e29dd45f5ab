package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type MatchSpec struct {
	Name        string          `yaml:"name"`
	Transform   TransformSpec   `yaml:"transform"`
	Head        HeadSpec        `yaml:"head"`
	Flame       FlameSpec       `yaml:"flame"`
	Tuning      MatchTuningSpec `yaml:"tuning"`
	Debug       DebugSpec       `yaml:"debug"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadMatchSpec() (*MatchSpec, error) {
	spec, err := LoadSpec[MatchSpec]("match.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// HeadSpec is the collider at the tip of the match. Sensor heads are
// repaired to solid when the match is bound.
type HeadSpec struct {
	Radius float64 `yaml:"radius"`
	Sensor bool    `yaml:"sensor"`
}

type MatchTuningSpec struct {
	MinStrikeSpeed        float64 `yaml:"min_strike_speed"`
	StrikeProgressNeeded  float64 `yaml:"strike_progress_needed"`
	RequireInputForStrike bool    `yaml:"require_input_for_strike"`
	RequireInputToHeat    bool    `yaml:"require_input_to_heat"`
	BurnDurationSeconds   float64 `yaml:"burn_duration_seconds"`
	FollowPlaneOffset     float64 `yaml:"follow_plane_offset"`
	StrikeSpeedFactor     float64 `yaml:"strike_speed_factor"`
	HeatPerSecond         float64 `yaml:"heat_per_second"`
}

type DebugSpec struct {
	Logs              bool `yaml:"logs"`
	LogSpeedEveryTick bool `yaml:"log_speed_every_tick"`
	LogHeatEveryAdd   bool `yaml:"log_heat_every_add"`
}

type CandleSpec struct {
	Name        string          `yaml:"name"`
	Transform   TransformSpec   `yaml:"transform"`
	Body        ColliderSpec    `yaml:"body"`
	Wick        WickSpec        `yaml:"wick"`
	Zone        ZoneSpec        `yaml:"zone"`
	Flame       FlameSpec       `yaml:"flame"`
	Color       YAMLColor       `yaml:"color"`
	Debug       DebugSpec       `yaml:"debug"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadCandleSpec() (*CandleSpec, error) {
	spec, err := LoadSpec[CandleSpec]("candle.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type WickSpec struct {
	SecondsToIgnite float64 `yaml:"seconds_to_ignite"`
}

// ZoneSpec is a circular heat transfer region. Candle names an explicit
// candle to feed; empty means the zone's parent candle.
type ZoneSpec struct {
	Name    string  `yaml:"name"`
	Candle  string  `yaml:"candle"`
	Radius  float64 `yaml:"radius"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type StrikerSpec struct {
	Name        string          `yaml:"name"`
	Transform   TransformSpec   `yaml:"transform"`
	Collider    ColliderSpec    `yaml:"collider"`
	Color       YAMLColor       `yaml:"color"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadStrikerSpec() (*StrikerSpec, error) {
	spec, err := LoadSpec[StrikerSpec]("striker.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// SceneSpec places prefabs. Placements override the prefab's name and
// transform; zones are free standing and bind by candle name.
type SceneSpec struct {
	Name     string          `yaml:"name"`
	Camera   CameraSpec      `yaml:"camera"`
	Match    PlacementSpec   `yaml:"match"`
	Candles  []PlacementSpec `yaml:"candles"`
	Strikers []PlacementSpec `yaml:"strikers"`
	Zones    []ZonePlacement `yaml:"zones"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Zoom float64 `yaml:"zoom"`
}

type PlacementSpec struct {
	Prefab    string        `yaml:"prefab"`
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
}

type ZonePlacement struct {
	Zone      ZoneSpec      `yaml:"zone"`
	Transform TransformSpec `yaml:"transform"`
}

type FlameSpec struct {
	Radius  float64   `yaml:"radius"`
	OffsetX float64   `yaml:"offset_x"`
	OffsetY float64   `yaml:"offset_y"`
	Color   YAMLColor `yaml:"color"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the color, or fallback when none was configured.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
