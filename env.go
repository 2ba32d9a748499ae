package loom

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColorMode distinguishes how a Color is expressed on the backend.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // backend default
	Color16                       // basic 16-color palette (0-15)
	Color256                      // 256-color palette
	ColorRGB                      // 24-bit true color
)

// Color is a paint color. The terminal backend maps palette modes
// natively; vector-ish backends use the RGB channels.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// DefaultColor returns the backend's default color.
func DefaultColor() Color {
	return Color{Mode: ColorDefault}
}

// BasicColor returns one of the 16 basic palette colors.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index}
}

// PaletteColor returns one of the 256 palette colors.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex returns a 24-bit color from a packed value (e.g. 0xFF5500).
func Hex(hex uint32) Color {
	return Color{
		Mode: ColorRGB,
		R:    uint8((hex >> 16) & 0xFF),
		G:    uint8((hex >> 8) & 0xFF),
		B:    uint8(hex & 0xFF),
	}
}

// HexString renders the color as "#rrggbb" for RGB mode colors.
func (c Color) HexString() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// EnvKey names one environment value. Keys are opaque symbols resolved
// at call time, not compile time.
type EnvKey string

// Theme and metric keys consumed by the built-in widgets.
const (
	KeyTextSize        EnvKey = "text-size"
	KeyTextColor       EnvKey = "text-color"
	KeyPrimaryLight    EnvKey = "primary-light"
	KeyButtonDark      EnvKey = "button-dark"
	KeyBackgroundLight EnvKey = "background-light"
	KeyBackgroundDark  EnvKey = "background-dark"
	KeyBorderDark      EnvKey = "border-dark"
	KeyTabPadding      EnvKey = "tab-padding"
)

// Env is the read-only key/value lookup shared by a whole tree during a
// dispatch round. The host may replace it wholesale between rounds; nodes
// never mutate it.
type Env struct {
	values map[EnvKey]any
}

// NewEnv returns an environment populated with the default theme.
func NewEnv() Env {
	return Env{values: map[EnvKey]any{
		KeyTextSize:        14.0,
		KeyTextColor:       RGB(0xf0, 0xf0, 0xea),
		KeyPrimaryLight:    Hex(0x5cc4ff),
		KeyButtonDark:      Hex(0x3a3a3a),
		KeyBackgroundLight: Hex(0x3c3f41),
		KeyBackgroundDark:  Hex(0x2b2b2b),
		KeyBorderDark:      Hex(0x3a3a3a),
		KeyTabPadding:      5.0,
	}}
}

// With returns a copy of the environment with one value replaced. The
// receiver is unchanged, preserving read-only semantics mid-round.
func (e Env) With(key EnvKey, value any) Env {
	next := make(map[EnvKey]any, len(e.values)+1)
	for k, v := range e.values {
		next[k] = v
	}
	next[key] = value
	return Env{values: next}
}

// Float looks up a numeric value, falling back to def on a missing key or
// a wrong type (with a warning; theme misconfiguration must not crash).
func (e Env) Float(key EnvKey, def float64) float64 {
	v, ok := e.values[key]
	if !ok {
		return def
	}
	f, ok := v.(float64)
	if !ok {
		logger.Warn("env value has wrong type", "key", key, "want", "float64", "got", fmt.Sprintf("%T", v))
		return def
	}
	return f
}

// Color looks up a color value with the same fallback behavior as Float.
func (e Env) Color(key EnvKey, def Color) Color {
	v, ok := e.values[key]
	if !ok {
		return def
	}
	c, ok := v.(Color)
	if !ok {
		logger.Warn("env value has wrong type", "key", key, "want", "Color", "got", fmt.Sprintf("%T", v))
		return def
	}
	return c
}

// String looks up a string value with the same fallback behavior as Float.
func (e Env) String(key EnvKey, def string) string {
	v, ok := e.values[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		logger.Warn("env value has wrong type", "key", key, "want", "string", "got", fmt.Sprintf("%T", v))
		return def
	}
	return s
}

// LoadEnv reads a YAML theme document and layers it over the defaults.
// Scalars become floats or strings; strings of the form "#rrggbb" become
// colors. Unknown value shapes are rejected.
//
//	text-size: 16
//	primary-light: "#80d0ff"
func LoadEnv(r io.Reader) (Env, error) {
	raw := map[string]any{}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return Env{}, fmt.Errorf("decoding theme: %w", err)
	}

	env := NewEnv()
	for k, v := range raw {
		switch val := v.(type) {
		case int:
			env.values[EnvKey(k)] = float64(val)
		case float64:
			env.values[EnvKey(k)] = val
		case string:
			if strings.HasPrefix(val, "#") && len(val) == 7 {
				packed, err := strconv.ParseUint(val[1:], 16, 32)
				if err != nil {
					return Env{}, fmt.Errorf("theme key %q: bad color %q: %w", k, val, err)
				}
				env.values[EnvKey(k)] = Hex(uint32(packed))
			} else {
				env.values[EnvKey(k)] = val
			}
		default:
			return Env{}, fmt.Errorf("theme key %q: unsupported value type %T", k, v)
		}
	}
	return env, nil
}
