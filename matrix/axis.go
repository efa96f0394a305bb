package matrix

import (
	"fmt"
	"strings"
)

// Platform is the operating system a target is built for.
type Platform string

const (
	Linux   Platform = "linux"
	MacOS   Platform = "macos"
	Windows Platform = "windows"
)

// Windowing is the windowing/input backend the application runs on.
type Windowing string

const (
	GLFW Windowing = "GLFW"
	SDL2 Windowing = "SDL2"
	SDL3 Windowing = "SDL3"
)

// Graphics is the rendering backend.
type Graphics string

const (
	OpenGL3 Graphics = "OpenGL3"
	Vulkan  Graphics = "Vulkan"
	Metal   Graphics = "Metal"
)

// Optimization is the build configuration.
type Optimization string

const (
	Debug   Optimization = "Debug"
	Release Optimization = "Release"
)

func (p Platform) String() string     { return string(p) }

// ArtifactName is the platform's name in generated solution names and
// directories. macOS keeps the short "mac" the demo's build files use.
func (p Platform) ArtifactName() string {
	if p == MacOS {
		return "mac"
	}
	return string(p)
}

func (w Windowing) String() string    { return string(w) }
func (g Graphics) String() string     { return string(g) }
func (o Optimization) String() string { return string(o) }

// Known values of each axis. Registries may only be built from these.
var (
	KnownPlatforms     = []Platform{Linux, MacOS, Windows}
	KnownWindowing     = []Windowing{GLFW, SDL2, SDL3}
	KnownGraphics      = []Graphics{OpenGL3, Vulkan, Metal}
	KnownOptimizations = []Optimization{Debug, Release}
)

// ParsePlatform returns the known platform named s, ignoring case.
// "mac" is accepted as an alias of macos.
func ParsePlatform(s string) (Platform, error) {
	if strings.EqualFold(s, "mac") {
		return MacOS, nil
	}
	return parseKnown("platform", s, KnownPlatforms)
}

// ParseWindowing returns the known windowing backend named s, ignoring case.
func ParseWindowing(s string) (Windowing, error) {
	return parseKnown("windowing backend", s, KnownWindowing)
}

// ParseGraphics returns the known graphics backend named s, ignoring case.
func ParseGraphics(s string) (Graphics, error) {
	return parseKnown("graphics backend", s, KnownGraphics)
}

// ParseOptimization returns the known optimization level named s, ignoring case.
func ParseOptimization(s string) (Optimization, error) {
	return parseKnown("optimization level", s, KnownOptimizations)
}

func parseKnown[T ~string](what, s string, known []T) (T, error) {
	for _, v := range known {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", what, s)
}
