package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Tint is the rain colour plus the alpha of a streak's top and bottom
// edges. A low top alpha and higher bottom alpha gives a fading trail.
type Tint struct {
	R, G, B     float32
	AlphaTop    float32
	AlphaBottom float32
}

func DefaultTint() Tint {
	return Tint{R: 0.75, G: 0.8, B: 0.9, AlphaTop: 0.0, AlphaBottom: 0.5}
}

// ParseTint parses "r/g/b/alphaTop/alphaBottom". Trailing components may be
// omitted and are left at zero.
func ParseTint(s string) (Tint, error) {
	var v [5]float32
	parts := strings.Split(s, "/")
	if len(parts) > len(v) {
		return Tint{}, fmt.Errorf("tint %q: want at most %d components, got %d", s, len(v), len(parts))
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return Tint{}, fmt.Errorf("tint %q: component %d: %w", s, i, err)
		}
		v[i] = float32(f)
	}
	return Tint{R: v[0], G: v[1], B: v[2], AlphaTop: v[3], AlphaBottom: v[4]}, nil
}

func (t Tint) String() string {
	return strings.Join([]string{
		strconv.FormatFloat(float64(t.R), 'g', -1, 32),
		strconv.FormatFloat(float64(t.G), 'g', -1, 32),
		strconv.FormatFloat(float64(t.B), 'g', -1, 32),
		strconv.FormatFloat(float64(t.AlphaTop), 'g', -1, 32),
		strconv.FormatFloat(float64(t.AlphaBottom), 'g', -1, 32),
	}, "/")
}

// Set and Type let a *Tint be used as a command-line flag value.
func (t *Tint) Set(s string) error {
	v, err := ParseTint(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *Tint) Type() string { return "r/g/b/a/a" }

func (t *Tint) UnmarshalText(b []byte) error { return t.Set(string(b)) }

func (t Tint) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t Tint) top() mgl32.Vec4    { return mgl32.Vec4{t.R, t.G, t.B, t.AlphaTop} }
func (t Tint) bottom() mgl32.Vec4 { return mgl32.Vec4{t.R, t.G, t.B, t.AlphaBottom} }
