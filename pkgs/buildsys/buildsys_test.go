package buildsys

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goplus/gfxmatrix/matrix"
)

var (
	linuxGLFW = matrix.Target{Platform: matrix.Linux, Windowing: matrix.GLFW, Graphics: matrix.OpenGL3, Optimization: matrix.Debug}
	macMetal  = matrix.Target{Platform: matrix.MacOS, Windowing: matrix.SDL2, Graphics: matrix.Metal, Optimization: matrix.Release}
)

var testSlots = []Slot{
	{Name: "windowing", Keys: []string{"WINDOW"}},
	{Name: "graphics", Keys: []string{"GFX"}},
	{Name: "optimization", Keys: []string{"DEBUG", "NDEBUG"}, Flags: map[string]string{"DEBUG": "-O0", "NDEBUG": "-O3"}},
}

// complete returns a builder holding a descriptor that passes testSlots.
func complete(t matrix.Target) *Builder {
	b := NewBuilder(t)
	b.Add(Sources, "main.cpp")
	b.Add(Defines, "WINDOW=GLFW", "GFX=OPENGL3", "DEBUG")
	b.Add(CompilerFlags, "-O0")
	return b
}

func TestBuilder_AddCollapsesDuplicates(t *testing.T) {
	b := NewBuilder(linuxGLFW)
	b.Add(Sources, "a.cpp", "b.cpp")
	b.Add(Sources, "a.cpp", "c.cpp", "b.cpp")
	b.Add(LibraryFiles, "dl")
	b.Add(LibraryFiles, "dl")

	if got, want := b.Values(Sources), []string{"a.cpp", "b.cpp", "c.cpp"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sources = %v, want %v", got, want)
	}
	if got, want := b.Values(LibraryFiles), []string{"dl"}; !reflect.DeepEqual(got, want) {
		t.Errorf("LibraryFiles = %v, want %v", got, want)
	}
	if !b.Has(Sources, "c.cpp") || b.Has(Sources, "d.cpp") {
		t.Errorf("Has() gave wrong answer")
	}
}

func TestDescriptor_Immutable(t *testing.T) {
	b := complete(linuxGLFW)
	d := b.Build("Demo")

	b.Add(Sources, "late.cpp")
	if d.Has(Sources, "late.cpp") {
		t.Fatalf("descriptor sees changes made to its builder after Build")
	}

	srcs := d.Sources()
	srcs[0] = "mutated.cpp"
	if d.Sources()[0] != "main.cpp" {
		t.Fatalf("descriptor field mutated through accessor copy")
	}
}

func TestNewIdentity(t *testing.T) {
	got := NewIdentity("ImPlatformDemo", macMetal)
	want := Identity{
		Solution: "ImPlatformDemo_mac",
		Project:  "ImPlatformDemo_SDL2_Metal",
		Config:   "SDL2_Metal_Release",
		Dir:      "generated/mac",
	}
	if got != want {
		t.Fatalf("NewIdentity() = %+v, want %+v", got, want)
	}
	if name := got.OutputName(); name != "ImPlatformDemo_mac_SDL2_Metal_Release" {
		t.Errorf("OutputName() = %q", name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Builder
		kinds []matrix.Kind
	}{
		{
			name:  "complete",
			build: func() *Builder { return complete(linuxGLFW) },
		},
		{
			name: "no sources",
			build: func() *Builder {
				b := NewBuilder(linuxGLFW)
				b.Add(Defines, "WINDOW=GLFW", "GFX=OPENGL3", "DEBUG")
				b.Add(CompilerFlags, "-O0")
				return b
			},
			kinds: []matrix.Kind{matrix.IncompleteDescriptor},
		},
		{
			name: "missing graphics define",
			build: func() *Builder {
				b := NewBuilder(linuxGLFW)
				b.Add(Sources, "main.cpp")
				b.Add(Defines, "WINDOW=GLFW", "DEBUG")
				b.Add(CompilerFlags, "-O0")
				return b
			},
			kinds: []matrix.Kind{matrix.IncompleteDescriptor},
		},
		{
			name: "two windowing defines",
			build: func() *Builder {
				b := complete(linuxGLFW)
				b.Add(Defines, "WINDOW=SDL2")
				return b
			},
			kinds: []matrix.Kind{matrix.RuleConflict},
		},
		{
			name: "debug and release",
			build: func() *Builder {
				b := complete(linuxGLFW)
				b.Add(Defines, "NDEBUG")
				b.Add(CompilerFlags, "-O3")
				return b
			},
			kinds: []matrix.Kind{matrix.RuleConflict},
		},
		{
			name: "debug with release flag",
			build: func() *Builder {
				b := complete(linuxGLFW)
				b.Add(CompilerFlags, "-O3")
				return b
			},
			kinds: []matrix.Kind{matrix.RuleConflict},
		},
		{
			name: "neither optimization",
			build: func() *Builder {
				b := NewBuilder(linuxGLFW)
				b.Add(Sources, "main.cpp")
				b.Add(Defines, "WINDOW=GLFW", "GFX=OPENGL3")
				return b
			},
			kinds: []matrix.Kind{matrix.IncompleteDescriptor},
		},
		{
			name: "every problem reported",
			build: func() *Builder {
				b := NewBuilder(linuxGLFW)
				b.Add(Defines, "DEBUG")
				return b
			},
			kinds: []matrix.Kind{
				matrix.IncompleteDescriptor, // sources
				matrix.IncompleteDescriptor, // windowing
				matrix.IncompleteDescriptor, // graphics
				matrix.IncompleteDescriptor, // -O0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.build().Build("Demo"), testSlots)
			problems := matrix.Problems(err)
			if len(problems) != len(tt.kinds) {
				t.Fatalf("Validate() = %v, want %d problems", err, len(tt.kinds))
			}
			for i, p := range problems {
				var e *matrix.Error
				if !errors.As(p, &e) || e.Kind != tt.kinds[i] {
					t.Errorf("problem[%d] = %v, want kind %v", i, p, tt.kinds[i])
				}
			}
		})
	}
}

func TestCheckUnique(t *testing.T) {
	a := complete(linuxGLFW).Build("Demo")
	b := complete(macMetal).Build("Demo")
	if err := CheckUnique([]*Descriptor{a, b}); err != nil {
		t.Fatalf("CheckUnique() = %v, want nil", err)
	}

	// Same output name for distinct targets: force it through the identity.
	c := complete(macMetal).Build("Demo")
	c.identity = a.identity
	err := CheckUnique([]*Descriptor{a, b, c})
	if !errors.Is(err, matrix.ErrIdentityCollision) {
		t.Fatalf("CheckUnique() = %v, want %v", err, matrix.ErrIdentityCollision)
	}

	// The same target resolved twice also repeats its output name.
	again := complete(linuxGLFW).Build("Demo")
	err = CheckUnique([]*Descriptor{a, b, again, again})
	if problems := matrix.Problems(err); len(problems) != 2 {
		t.Fatalf("CheckUnique() = %v, want 2 problems", err)
	}
	if !matrix.HasKind(err, matrix.IdentityCollision) {
		t.Fatalf("CheckUnique() = %v, want %v", err, matrix.ErrIdentityCollision)
	}
}

func TestBuilder_TargetAndNative(t *testing.T) {
	b := complete(macMetal)
	if b.Target() != macMetal {
		t.Fatalf("Target() = %v, want %v", b.Target(), macMetal)
	}
	if b.Native() || b.Build("Demo").UsesNativePlatformIntegration() {
		t.Fatalf("new builder is native")
	}
	b.SetNative()
	if !b.Native() || !b.Build("Demo").UsesNativePlatformIntegration() {
		t.Fatalf("SetNative() not carried into the descriptor")
	}
}

func TestGroup(t *testing.T) {
	targets := []matrix.Target{
		{Platform: matrix.Linux, Windowing: matrix.GLFW, Graphics: matrix.OpenGL3, Optimization: matrix.Debug},
		{Platform: matrix.Linux, Windowing: matrix.GLFW, Graphics: matrix.OpenGL3, Optimization: matrix.Release},
		{Platform: matrix.Linux, Windowing: matrix.SDL3, Graphics: matrix.Vulkan, Optimization: matrix.Debug},
		{Platform: matrix.MacOS, Windowing: matrix.GLFW, Graphics: matrix.Metal, Optimization: matrix.Debug},
	}
	var ds []*Descriptor
	for _, tgt := range targets {
		ds = append(ds, complete(tgt).Build("Demo"))
	}

	sols := Group(ds)
	if len(sols) != 2 {
		t.Fatalf("Group() returned %d solutions, want 2", len(sols))
	}
	linux := sols[0]
	if linux.Name != "Demo_linux" || linux.Dir != "generated/linux" {
		t.Errorf("solution[0] = %q in %q", linux.Name, linux.Dir)
	}
	if len(linux.Projects) != 2 {
		t.Fatalf("linux has %d projects, want 2", len(linux.Projects))
	}
	glfw := linux.Projects[0]
	if glfw.Name != "Demo_GLFW_OpenGL3" || len(glfw.Configs) != 2 {
		t.Errorf("project[0] = %q with %d configs", glfw.Name, len(glfw.Configs))
	}
	if glfw.Configs[1].Name != "GLFW_OpenGL3_Release" || glfw.Configs[1].Descriptor != ds[1] {
		t.Errorf("config[1] = %+v", glfw.Configs[1])
	}
	if sols[1].Platform != matrix.MacOS || sols[1].Projects[0].Configs[0].Descriptor != ds[3] {
		t.Errorf("solution[1] = %+v", sols[1])
	}
}

func TestArgs(t *testing.T) {
	b := NewBuilder(macMetal)
	b.Add(Defines, "GFX=METAL", "NDEBUG")
	b.Add(IncludePaths, "imgui", "$(VULKAN_SDK)/include")
	b.Add(CompilerFlags, "-O3", "`sdl2-config --cflags`")
	b.Add(LibraryPaths, "/opt/homebrew/lib")
	b.Add(LibraryFiles, "glfw")
	b.Add(Frameworks, "Metal", "Cocoa")
	b.Add(LinkerFlags, "`sdl2-config --libs`")
	d := b.Build("Demo")

	wantCompile := []string{"-DGFX=METAL", "-DNDEBUG", "-Iimgui", "-I$(VULKAN_SDK)/include", "-O3", "`sdl2-config --cflags`"}
	if got := d.CompilerArgs(); !reflect.DeepEqual(got, wantCompile) {
		t.Errorf("CompilerArgs() = %q, want %q", got, wantCompile)
	}
	wantLink := []string{"-L/opt/homebrew/lib", "-lglfw", "-framework", "Metal", "-framework", "Cocoa", "`sdl2-config --libs`"}
	if got := d.LinkerArgs(); !reflect.DeepEqual(got, wantLink) {
		t.Errorf("LinkerArgs() = %q, want %q", got, wantLink)
	}
}
