package matrix

import (
	"fmt"
	"strings"
)

// Target is one cell of the build matrix.
type Target struct {
	Platform     Platform
	Windowing    Windowing
	Graphics     Graphics
	Optimization Optimization
}

// String returns the target as "platform/windowing/graphics/optimization",
// the same form ParseTarget accepts.
func (t Target) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", t.Platform, t.Windowing, t.Graphics, t.Optimization)
}

// ParseTarget parses a target in the form "linux/GLFW/OpenGL3/Debug".
// Values are matched case-insensitively against the known axis values.
func ParseTarget(s string) (Target, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 4 {
		return Target{}, fmt.Errorf("invalid target %q: want platform/windowing/graphics/optimization", s)
	}
	p, err := ParsePlatform(parts[0])
	if err != nil {
		return Target{}, fmt.Errorf("invalid target %q: %w", s, err)
	}
	w, err := ParseWindowing(parts[1])
	if err != nil {
		return Target{}, fmt.Errorf("invalid target %q: %w", s, err)
	}
	g, err := ParseGraphics(parts[2])
	if err != nil {
		return Target{}, fmt.Errorf("invalid target %q: %w", s, err)
	}
	o, err := ParseOptimization(parts[3])
	if err != nil {
		return Target{}, fmt.Errorf("invalid target %q: %w", s, err)
	}
	return Target{Platform: p, Windowing: w, Graphics: g, Optimization: o}, nil
}
