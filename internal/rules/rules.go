package rules

import (
	"github.com/goplus/gfxmatrix/matrix"
	"github.com/goplus/gfxmatrix/pkgs/buildsys"
)

// Fragment is what one rule contributes to a descriptor. Rules build a new
// fragment on every call and never hold on to it.
type Fragment struct {
	Sources       []string
	Defines       []string
	IncludePaths  []string
	LibraryPaths  []string
	LibraryFiles  []string
	Frameworks    []string
	CompilerFlags []string
	LinkerFlags   []string

	// Native marks the target as using the platform's native integration
	// layer instead of the windowing backend's.
	Native bool
}

// Values returns the fragment's contribution to field f.
func (f *Fragment) Values(field buildsys.Field) []string {
	switch field {
	case buildsys.Sources:
		return f.Sources
	case buildsys.Defines:
		return f.Defines
	case buildsys.IncludePaths:
		return f.IncludePaths
	case buildsys.LibraryPaths:
		return f.LibraryPaths
	case buildsys.LibraryFiles:
		return f.LibraryFiles
	case buildsys.Frameworks:
		return f.Frameworks
	case buildsys.CompilerFlags:
		return f.CompilerFlags
	case buildsys.LinkerFlags:
		return f.LinkerFlags
	}
	return nil
}

// Func computes a fragment from the target alone.
type Func func(t matrix.Target) Fragment

// Exception is a rule that applies only to targets matching When. It runs
// before every axis rule.
type Exception struct {
	Name  string
	When  func(t matrix.Target) bool
	Apply Func
}

// WindowingRule is the contribution of a windowing backend, split in two:
// Integration is the platform-integration define and source, skipped when an
// exception switched the target to native integration; Input is the
// backend's input-handling source, always applied.
type WindowingRule struct {
	Integration Func
	Input       Func
}

// PlatformWindowing keys rules that depend on a platform and a windowing
// backend together.
type PlatformWindowing struct {
	Platform  matrix.Platform
	Windowing matrix.Windowing
}

// PlatformGraphics keys rules that depend on a platform and a graphics
// backend together.
type PlatformGraphics struct {
	Platform matrix.Platform
	Graphics matrix.Graphics
}

// Table maps axis values to the rules they contribute. Adding a platform or
// backend means adding entries, not branches.
type Table struct {
	// App names the application; it prefixes every artifact name.
	App string
	// Slots are the define groups every descriptor carries exactly once.
	Slots []buildsys.Slot

	Common        Func
	Exceptions    []Exception
	Windowing     map[matrix.Windowing]WindowingRule
	WindowingLibs map[PlatformWindowing]Func
	Graphics      map[matrix.Graphics]Func
	Optimization  map[matrix.Optimization]Func
	PlatformLibs  map[matrix.Platform]Func
	GraphicsLibs  map[PlatformGraphics]Func
}

// Contribution is a fragment tagged with the rule that produced it.
type Contribution struct {
	Rule     string
	Fragment Fragment
}

// Contributions evaluates the table for t and returns the fragments in
// composition order:
//
//	common, exceptions, windowing (integration, input, platform libraries),
//	graphics, optimization, platform libraries, graphics libraries.
//
// A target whose windowing, graphics, optimization or platform has no entry
// is an InvalidCombination.
func (tbl *Table) Contributions(t matrix.Target) ([]Contribution, error) {
	win, ok := tbl.Windowing[t.Windowing]
	if !ok {
		return nil, matrix.Errorf(matrix.InvalidCombination, t, "no windowing rule for %s", t.Windowing)
	}
	gfx, ok := tbl.Graphics[t.Graphics]
	if !ok {
		return nil, matrix.Errorf(matrix.InvalidCombination, t, "no graphics rule for %s", t.Graphics)
	}
	opt, ok := tbl.Optimization[t.Optimization]
	if !ok {
		return nil, matrix.Errorf(matrix.InvalidCombination, t, "no optimization rule for %s", t.Optimization)
	}
	plat, ok := tbl.PlatformLibs[t.Platform]
	if !ok {
		return nil, matrix.Errorf(matrix.InvalidCombination, t, "no platform library rule for %s", t.Platform)
	}

	var out []Contribution
	add := func(rule string, f Func) {
		if f != nil {
			out = append(out, Contribution{Rule: rule, Fragment: f(t)})
		}
	}

	add("common", tbl.Common)

	native := false
	for _, ex := range tbl.Exceptions {
		if ex.When == nil || ex.Apply == nil || !ex.When(t) {
			continue
		}
		frag := ex.Apply(t)
		native = native || frag.Native
		out = append(out, Contribution{Rule: "exception:" + ex.Name, Fragment: frag})
	}

	if !native {
		add("windowing:"+string(t.Windowing), win.Integration)
	}
	add("windowing-input:"+string(t.Windowing), win.Input)
	add("windowing-libs:"+string(t.Platform)+"/"+string(t.Windowing), tbl.WindowingLibs[PlatformWindowing{t.Platform, t.Windowing}])

	add("graphics:"+string(t.Graphics), gfx)
	add("optimization:"+string(t.Optimization), opt)

	add("platform-libs:"+string(t.Platform), plat)
	add("graphics-libs:"+string(t.Platform)+"/"+string(t.Graphics), tbl.GraphicsLibs[PlatformGraphics{t.Platform, t.Graphics}])

	return out, nil
}
