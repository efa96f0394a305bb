package matrix

import (
	"fmt"
	"slices"

	qerrors "github.com/qiniu/x/errors"
)

// -----------------------------------------------------------------------------

// Registry is the closed set of values of every axis of the build matrix,
// plus the graphics backends each platform can pair with.
//
// Declaration order of each axis is the sort order of enumerated targets.
type Registry struct {
	Platforms     []Platform
	Windowing     []Windowing
	Graphics      []Graphics
	Optimizations []Optimization

	// Supported maps a platform to the graphics backends it supports.
	// A platform missing from the map supports none.
	Supported map[Platform][]Graphics
}

// DefaultSupport returns the platform/graphics pairing table: Metal exists
// only on macOS, OpenGL3 and Vulkan are available everywhere.
func DefaultSupport() map[Platform][]Graphics {
	return map[Platform][]Graphics{
		Linux:   {OpenGL3, Vulkan},
		MacOS:   {OpenGL3, Vulkan, Metal},
		Windows: {OpenGL3, Vulkan},
	}
}

// Default returns the registry of the ImPlatform demo: linux and macOS,
// every windowing and graphics backend, Debug and Release.
func Default() *Registry {
	return &Registry{
		Platforms:     []Platform{Linux, MacOS},
		Windowing:     []Windowing{GLFW, SDL2, SDL3},
		Graphics:      []Graphics{OpenGL3, Vulkan, Metal},
		Optimizations: []Optimization{Debug, Release},
		Supported:     DefaultSupport(),
	}
}

// Validate checks that every axis is non-empty, holds known values only and
// has no duplicates.
func (r *Registry) Validate() error {
	var errs qerrors.List
	checkAxis(&errs, "platforms", r.Platforms, KnownPlatforms)
	checkAxis(&errs, "windowing", r.Windowing, KnownWindowing)
	checkAxis(&errs, "graphics", r.Graphics, KnownGraphics)
	checkAxis(&errs, "optimizations", r.Optimizations, KnownOptimizations)
	for p, gs := range r.Supported {
		if !slices.Contains(KnownPlatforms, p) {
			errs.Add(fmt.Errorf("registry: supported: unknown platform %q", p))
		}
		for _, g := range gs {
			if !slices.Contains(KnownGraphics, g) {
				errs.Add(fmt.Errorf("registry: supported[%s]: unknown graphics backend %q", p, g))
			}
		}
	}
	return errs.ToError()
}

func checkAxis[T ~string](errs *qerrors.List, name string, values, known []T) {
	if len(values) == 0 {
		errs.Add(fmt.Errorf("registry: %s: no values", name))
		return
	}
	seen := make(map[T]bool, len(values))
	for _, v := range values {
		if !slices.Contains(known, v) {
			errs.Add(fmt.Errorf("registry: %s: unknown value %q", name, v))
		}
		if seen[v] {
			errs.Add(fmt.Errorf("registry: %s: duplicate value %q", name, v))
		}
		seen[v] = true
	}
}

// Supports reports whether platform p can be paired with graphics backend g.
func (r *Registry) Supports(p Platform, g Graphics) bool {
	return slices.Contains(r.Supported[p], g)
}

// Check returns an InvalidCombination error if t names a value outside the
// registry or pairs a graphics backend its platform does not support.
func (r *Registry) Check(t Target) error {
	switch {
	case !slices.Contains(r.Platforms, t.Platform):
		return Errorf(InvalidCombination, t, "platform %q is not registered", t.Platform)
	case !slices.Contains(r.Windowing, t.Windowing):
		return Errorf(InvalidCombination, t, "windowing backend %q is not registered", t.Windowing)
	case !slices.Contains(r.Graphics, t.Graphics):
		return Errorf(InvalidCombination, t, "graphics backend %q is not registered", t.Graphics)
	case !slices.Contains(r.Optimizations, t.Optimization):
		return Errorf(InvalidCombination, t, "optimization level %q is not registered", t.Optimization)
	case !r.Supports(t.Platform, t.Graphics):
		return Errorf(InvalidCombination, t, "graphics backend %s is not supported on %s", t.Graphics, t.Platform)
	}
	return nil
}

// Targets returns every valid cell of the cross product, built layer by
// layer (platform, windowing, graphics, optimization) in declaration order.
// Cells pairing a platform with an unsupported graphics backend are skipped.
func (r *Registry) Targets() []Target {
	result := make([]Target, 0, r.CombinationCount())
	for _, p := range r.Platforms {
		for _, w := range r.Windowing {
			for _, g := range r.Graphics {
				if !r.Supports(p, g) {
					continue
				}
				for _, o := range r.Optimizations {
					result = append(result, Target{Platform: p, Windowing: w, Graphics: g, Optimization: o})
				}
			}
		}
	}
	return result
}

// CombinationCount returns the number of targets Targets would return.
func (r *Registry) CombinationCount() int {
	count := 0
	for _, p := range r.Platforms {
		for _, g := range r.Graphics {
			if r.Supports(p, g) {
				count++
			}
		}
	}
	return count * len(r.Windowing) * len(r.Optimizations)
}

// Curated returns the pruned matrix the ImPlatform demo ships: the full
// product except Vulkan on macOS, which the demo builds through Metal.
func (r *Registry) Curated() []Target {
	all := r.Targets()
	return slices.DeleteFunc(all, func(t Target) bool {
		return t.Platform == MacOS && t.Graphics == Vulkan
	})
}

// Select validates an explicit target list against the registry and returns
// it deduplicated and in the same order Targets uses. Every invalid target
// is reported, not just the first.
func (r *Registry) Select(targets []Target) ([]Target, error) {
	var errs qerrors.List
	seen := make(map[Target]bool, len(targets))
	result := make([]Target, 0, len(targets))
	for _, t := range targets {
		if seen[t] {
			continue
		}
		seen[t] = true
		if err := r.Check(t); err != nil {
			errs.Add(err)
			continue
		}
		result = append(result, t)
	}
	if err := errs.ToError(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(result, r.Compare)
	return result, nil
}

// Compare orders targets by platform, windowing, graphics and optimization,
// each by its position in the registry.
func (r *Registry) Compare(a, b Target) int {
	if c := slices.Index(r.Platforms, a.Platform) - slices.Index(r.Platforms, b.Platform); c != 0 {
		return c
	}
	if c := slices.Index(r.Windowing, a.Windowing) - slices.Index(r.Windowing, b.Windowing); c != 0 {
		return c
	}
	if c := slices.Index(r.Graphics, a.Graphics) - slices.Index(r.Graphics, b.Graphics); c != 0 {
		return c
	}
	return slices.Index(r.Optimizations, a.Optimization) - slices.Index(r.Optimizations, b.Optimization)
}

// -----------------------------------------------------------------------------
