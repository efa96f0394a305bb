package rules

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/goplus/gfxmatrix/matrix"
	"github.com/goplus/gfxmatrix/pkgs/buildsys"
)

func ruleNames(cs []Contribution) []string {
	var names []string
	for _, c := range cs {
		names = append(names, c.Rule)
	}
	return names
}

func TestContributions_Order(t *testing.T) {
	tbl := Default("", DefaultLayout())

	tests := []struct {
		name   string
		target matrix.Target
		want   []string
	}{
		{
			name:   "linux glfw",
			target: matrix.Target{Platform: matrix.Linux, Windowing: matrix.GLFW, Graphics: matrix.OpenGL3, Optimization: matrix.Debug},
			want: []string{
				"common",
				"windowing:GLFW",
				"windowing-input:GLFW",
				"windowing-libs:linux/GLFW",
				"graphics:OpenGL3",
				"optimization:Debug",
				"platform-libs:linux",
				"graphics-libs:linux/OpenGL3",
			},
		},
		{
			name:   "macos metal skips windowing integration",
			target: matrix.Target{Platform: matrix.MacOS, Windowing: matrix.SDL3, Graphics: matrix.Metal, Optimization: matrix.Release},
			want: []string{
				"common",
				"exception:apple-native",
				"windowing-input:SDL3",
				"windowing-libs:macos/SDL3",
				"graphics:Metal",
				"optimization:Release",
				"platform-libs:macos",
				"graphics-libs:macos/Metal",
			},
		},
		{
			name:   "macos opengl keeps windowing integration",
			target: matrix.Target{Platform: matrix.MacOS, Windowing: matrix.SDL2, Graphics: matrix.OpenGL3, Optimization: matrix.Debug},
			want: []string{
				"common",
				"windowing:SDL2",
				"windowing-input:SDL2",
				"windowing-libs:macos/SDL2",
				"graphics:OpenGL3",
				"optimization:Debug",
				"platform-libs:macos",
				"graphics-libs:macos/OpenGL3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := tbl.Contributions(tt.target)
			if err != nil {
				t.Fatalf("Contributions() error = %v", err)
			}
			if got := ruleNames(cs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Contributions() rules = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContributions_Missing(t *testing.T) {
	target := matrix.Target{Platform: matrix.Linux, Windowing: matrix.SDL3, Graphics: matrix.Vulkan, Optimization: matrix.Debug}

	tests := []struct {
		name  string
		strip func(*Table)
	}{
		{"windowing", func(tbl *Table) { delete(tbl.Windowing, matrix.SDL3) }},
		{"graphics", func(tbl *Table) { delete(tbl.Graphics, matrix.Vulkan) }},
		{"optimization", func(tbl *Table) { delete(tbl.Optimization, matrix.Debug) }},
		{"platform", func(tbl *Table) { delete(tbl.PlatformLibs, matrix.Linux) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := Default("", DefaultLayout())
			tt.strip(tbl)
			_, err := tbl.Contributions(target)
			if !errors.Is(err, matrix.ErrInvalidCombination) {
				t.Fatalf("Contributions() error = %v, want %v", err, matrix.ErrInvalidCombination)
			}
		})
	}
}

func TestContributions_Pure(t *testing.T) {
	tbl := Default("", DefaultLayout())
	target := matrix.Target{Platform: matrix.Linux, Windowing: matrix.GLFW, Graphics: matrix.Vulkan, Optimization: matrix.Release}

	first, err := tbl.Contributions(target)
	if err != nil {
		t.Fatal(err)
	}
	// Scribble over the first result; a second evaluation must not see it.
	for i := range first {
		for _, f := range buildsys.Fields {
			vals := first[i].Fragment.Values(f)
			for j := range vals {
				vals[j] = "scribbled"
			}
		}
	}
	second, err := tbl.Contributions(target)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range second {
		for _, f := range buildsys.Fields {
			if slices.Contains(c.Fragment.Values(f), "scribbled") {
				t.Fatalf("rule %s shares %s with an earlier evaluation", c.Rule, f)
			}
		}
	}
}

func TestDefault_Layout(t *testing.T) {
	l := DefaultLayout()
	l.Root = "/src/implatform"
	tbl := Default("", l)
	cs, err := tbl.Contributions(matrix.Target{Platform: matrix.Linux, Windowing: matrix.GLFW, Graphics: matrix.OpenGL3, Optimization: matrix.Debug})
	if err != nil {
		t.Fatal(err)
	}
	if got := cs[0].Fragment.Sources[0]; got != "/src/implatform/imgui/imgui.cpp" {
		t.Errorf("first common source = %q", got)
	}
	if tbl.App != DefaultApp {
		t.Errorf("App = %q, want %q", tbl.App, DefaultApp)
	}
}
