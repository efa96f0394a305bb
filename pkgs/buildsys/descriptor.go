package buildsys

import (
	"fmt"
	"path"
	"slices"

	"github.com/goplus/gfxmatrix/matrix"
)

// Field is a set-valued field of a build descriptor.
type Field int

const (
	Sources Field = iota
	Defines
	IncludePaths
	LibraryPaths
	LibraryFiles
	Frameworks
	CompilerFlags
	LinkerFlags

	numFields
)

// Fields lists every descriptor field in rendering order.
var Fields = []Field{Sources, Defines, IncludePaths, LibraryPaths, LibraryFiles, Frameworks, CompilerFlags, LinkerFlags}

var fieldNames = [numFields]string{
	Sources:       "sources",
	Defines:       "defines",
	IncludePaths:  "includePaths",
	LibraryPaths:  "libraryPaths",
	LibraryFiles:  "libraryFiles",
	Frameworks:    "frameworks",
	CompilerFlags: "compilerFlags",
	LinkerFlags:   "linkerFlags",
}

func (f Field) String() string {
	if f >= 0 && f < numFields {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// -----------------------------------------------------------------------------

// Identity names the artifacts a descriptor turns into. Solution groups
// targets of one platform; Project is one (windowing, graphics) pair inside
// it; Config is one optimization level of a project.
type Identity struct {
	Solution string
	Project  string
	Config   string
	// Dir is where the emitter places the platform's solution, relative to
	// the repository root.
	Dir string
}

// NewIdentity derives the identity of target t for application app. It is a
// pure function of its arguments.
func NewIdentity(app string, t matrix.Target) Identity {
	return Identity{
		Solution: fmt.Sprintf("%s_%s", app, t.Platform.ArtifactName()),
		Project:  fmt.Sprintf("%s_%s_%s", app, t.Windowing, t.Graphics),
		Config:   fmt.Sprintf("%s_%s_%s", t.Windowing, t.Graphics, t.Optimization),
		Dir:      path.Join("generated", t.Platform.ArtifactName()),
	}
}

// OutputName returns the artifact name, unique across a resolved matrix.
func (id Identity) OutputName() string {
	return id.Solution + "_" + id.Config
}

// -----------------------------------------------------------------------------

// Descriptor is the resolved build description of one target. It cannot be
// modified once built; accessors return copies.
type Descriptor struct {
	target   matrix.Target
	identity Identity
	native   bool
	fields   [numFields][]string
}

// Target returns the target the descriptor was resolved from.
func (d *Descriptor) Target() matrix.Target { return d.target }

// Identity returns the descriptor's artifact names.
func (d *Descriptor) Identity() Identity { return d.identity }

// OutputName is shorthand for d.Identity().OutputName().
func (d *Descriptor) OutputName() string { return d.identity.OutputName() }

// UsesNativePlatformIntegration reports whether the platform's native
// integration layer replaced the windowing backend's one.
func (d *Descriptor) UsesNativePlatformIntegration() bool { return d.native }

// Get returns a copy of field f.
func (d *Descriptor) Get(f Field) []string { return slices.Clone(d.fields[f]) }

// Has reports whether field f contains v.
func (d *Descriptor) Has(f Field, v string) bool { return slices.Contains(d.fields[f], v) }

func (d *Descriptor) Sources() []string       { return d.Get(Sources) }
func (d *Descriptor) Defines() []string       { return d.Get(Defines) }
func (d *Descriptor) IncludePaths() []string  { return d.Get(IncludePaths) }
func (d *Descriptor) LibraryPaths() []string  { return d.Get(LibraryPaths) }
func (d *Descriptor) LibraryFiles() []string  { return d.Get(LibraryFiles) }
func (d *Descriptor) Frameworks() []string    { return d.Get(Frameworks) }
func (d *Descriptor) CompilerFlags() []string { return d.Get(CompilerFlags) }
func (d *Descriptor) LinkerFlags() []string   { return d.Get(LinkerFlags) }

// -----------------------------------------------------------------------------

// Builder accumulates a descriptor for one target. Every field starts empty
// and only grows; values already present are collapsed.
type Builder struct {
	target matrix.Target
	native bool
	fields [numFields][]string
	seen   [numFields]map[string]bool
}

// NewBuilder returns an empty builder for target t.
func NewBuilder(t matrix.Target) *Builder {
	return &Builder{target: t}
}

// Target returns the target being built.
func (b *Builder) Target() matrix.Target { return b.target }

// Add appends values to field f, skipping those already present.
func (b *Builder) Add(f Field, values ...string) {
	if b.seen[f] == nil {
		b.seen[f] = make(map[string]bool)
	}
	for _, v := range values {
		if b.seen[f][v] {
			continue
		}
		b.seen[f][v] = true
		b.fields[f] = append(b.fields[f], v)
	}
}

// Has reports whether field f already contains v.
func (b *Builder) Has(f Field, v string) bool {
	return b.seen[f][v]
}

// Values returns a copy of field f.
func (b *Builder) Values(f Field) []string {
	return slices.Clone(b.fields[f])
}

// SetNative marks the descriptor as using native platform integration.
func (b *Builder) SetNative() { b.native = true }

// Native reports whether SetNative was called.
func (b *Builder) Native() bool { return b.native }

// Build freezes the accumulated fields into a descriptor named after app.
// The builder may keep being used; the descriptor does not see later changes.
func (b *Builder) Build(app string) *Descriptor {
	d := &Descriptor{
		target:   b.target,
		identity: NewIdentity(app, b.target),
		native:   b.native,
	}
	for f := range b.fields {
		d.fields[f] = slices.Clone(b.fields[f])
	}
	return d
}

// -----------------------------------------------------------------------------

// Record is the serializable form of a descriptor.
type Record struct {
	Target        string   `json:"target" yaml:"target"`
	OutputName    string   `json:"outputName" yaml:"outputName"`
	Solution      string   `json:"solution" yaml:"solution"`
	Project       string   `json:"project" yaml:"project"`
	Config        string   `json:"config" yaml:"config"`
	Native        bool     `json:"usesNativePlatformIntegration,omitempty" yaml:"usesNativePlatformIntegration,omitempty"`
	Sources       []string `json:"sources" yaml:"sources"`
	Defines       []string `json:"defines" yaml:"defines"`
	IncludePaths  []string `json:"includePaths,omitempty" yaml:"includePaths,omitempty"`
	LibraryPaths  []string `json:"libraryPaths,omitempty" yaml:"libraryPaths,omitempty"`
	LibraryFiles  []string `json:"libraryFiles,omitempty" yaml:"libraryFiles,omitempty"`
	Frameworks    []string `json:"frameworks,omitempty" yaml:"frameworks,omitempty"`
	CompilerFlags []string `json:"compilerFlags,omitempty" yaml:"compilerFlags,omitempty"`
	LinkerFlags   []string `json:"linkerFlags,omitempty" yaml:"linkerFlags,omitempty"`
}

// Record returns the serializable form of d.
func (d *Descriptor) Record() Record {
	return Record{
		Target:        d.target.String(),
		OutputName:    d.OutputName(),
		Solution:      d.identity.Solution,
		Project:       d.identity.Project,
		Config:        d.identity.Config,
		Native:        d.native,
		Sources:       d.Sources(),
		Defines:       d.Defines(),
		IncludePaths:  d.IncludePaths(),
		LibraryPaths:  d.LibraryPaths(),
		LibraryFiles:  d.LibraryFiles(),
		Frameworks:    d.Frameworks(),
		CompilerFlags: d.CompilerFlags(),
		LinkerFlags:   d.LinkerFlags(),
	}
}
