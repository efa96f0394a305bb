package rules

import (
	"path"
	"slices"

	"github.com/goplus/gfxmatrix/matrix"
	"github.com/goplus/gfxmatrix/pkgs/buildsys"
)

// Define symbols the ImPlatform sources switch on.
const (
	PlatformKey = "IM_CONFIG_PLATFORM"
	GfxKey      = "IM_CONFIG_GFX"

	DebugDefine   = "_DEBUG"
	ReleaseDefine = "NDEBUG"
	DebugFlag     = "-O0"
	ReleaseFlag   = "-O3"
)

// DefaultApp is the application the default table builds.
const DefaultApp = "ImPlatformDemo"

// Slots returns the define slots of the ImPlatform table: one platform
// layer, one graphics backend and one optimization level.
func Slots() []buildsys.Slot {
	return []buildsys.Slot{
		{Name: "windowing", Keys: []string{PlatformKey}},
		{Name: "graphics", Keys: []string{GfxKey}},
		{
			Name:  "optimization",
			Keys:  []string{DebugDefine, ReleaseDefine},
			Flags: map[string]string{DebugDefine: DebugFlag, ReleaseDefine: ReleaseFlag},
		},
	}
}

// Layout locates the source trees relative to the repository root.
type Layout struct {
	Root       string
	Imgui      string
	ImPlatform string
	Demo       string
}

// DefaultLayout is the checkout layout of the ImPlatform repository.
func DefaultLayout() Layout {
	return Layout{Imgui: "imgui", ImPlatform: "ImPlatform", Demo: "ImPlatformDemo"}
}

func (l Layout) imgui(elem ...string) string {
	return path.Join(append([]string{l.Root, l.Imgui}, elem...)...)
}

func (l Layout) implatform(elem ...string) string {
	return path.Join(append([]string{l.Root, l.ImPlatform}, elem...)...)
}

func (l Layout) demo(elem ...string) string {
	return path.Join(append([]string{l.Root, l.Demo}, elem...)...)
}

func platformDefine(layer string) string { return PlatformKey + "=IM_PLATFORM_" + layer }
func gfxDefine(backend string) string    { return GfxKey + "=IM_GFX_" + backend }

// Default returns the rule table of the ImPlatform demo.
func Default(app string, l Layout) *Table {
	if app == "" {
		app = DefaultApp
	}

	appleNative := func(t matrix.Target) bool {
		return t.Platform == matrix.MacOS && t.Graphics == matrix.Metal
	}

	// integration returns the platform-integration part of a windowing backend.
	integration := func(layer, src string) Func {
		return func(matrix.Target) Fragment {
			return Fragment{
				Defines: []string{platformDefine(layer)},
				Sources: []string{l.implatform(src)},
			}
		}
	}
	input := func(src string) Func {
		return func(matrix.Target) Fragment {
			return Fragment{Sources: []string{l.imgui("backends", src)}}
		}
	}
	// configTool returns the opaque flags of an external config-query tool.
	configTool := func(cflags, libs string) Func {
		return func(matrix.Target) Fragment {
			return Fragment{CompilerFlags: []string{cflags}, LinkerFlags: []string{libs}}
		}
	}
	graphics := func(backend, imguiSrc, appSrc string, extra ...string) Func {
		return func(matrix.Target) Fragment {
			return Fragment{
				Defines: append([]string{gfxDefine(backend)}, extra...),
				Sources: []string{l.imgui("backends", imguiSrc), l.implatform(appSrc)},
			}
		}
	}
	libs := func(files ...string) Func {
		return func(matrix.Target) Fragment {
			return Fragment{LibraryFiles: slices.Clone(files)}
		}
	}
	frameworks := func(names ...string) Func {
		return func(matrix.Target) Fragment {
			return Fragment{Frameworks: slices.Clone(names)}
		}
	}
	sdl2 := configTool("`sdl2-config --cflags`", "`sdl2-config --libs`")
	sdl3 := configTool("`pkg-config --cflags sdl3`", "`pkg-config --libs sdl3`")

	return &Table{
		App:   app,
		Slots: Slots(),

		Common: func(matrix.Target) Fragment {
			return Fragment{
				Sources: []string{
					l.imgui("imgui.cpp"),
					l.imgui("imgui_demo.cpp"),
					l.imgui("imgui_draw.cpp"),
					l.imgui("imgui_tables.cpp"),
					l.imgui("imgui_widgets.cpp"),
					l.demo("main.cpp"),
					l.implatform("ImPlatform_titlebar.cpp"),
				},
				IncludePaths:  []string{l.implatform(), l.imgui(), l.imgui("backends")},
				CompilerFlags: []string{"-std=c++17", "-Wall"},
			}
		},

		Exceptions: []Exception{{
			Name: "apple-native",
			When: appleNative,
			Apply: func(matrix.Target) Fragment {
				return Fragment{
					Native:  true,
					Defines: []string{platformDefine("APPLE")},
					Sources: []string{l.implatform("ImPlatform_app_apple.mm")},
				}
			},
		}},

		Windowing: map[matrix.Windowing]WindowingRule{
			matrix.GLFW: {Integration: integration("GLFW", "ImPlatform_app_glfw.cpp"), Input: input("imgui_impl_glfw.cpp")},
			matrix.SDL2: {Integration: integration("SDL2", "ImPlatform_app_sdl2.cpp"), Input: input("imgui_impl_sdl2.cpp")},
			matrix.SDL3: {Integration: integration("SDL3", "ImPlatform_app_sdl3.cpp"), Input: input("imgui_impl_sdl3.cpp")},
		},

		WindowingLibs: map[PlatformWindowing]Func{
			{matrix.Linux, matrix.GLFW}: func(matrix.Target) Fragment {
				return Fragment{
					LibraryPaths: []string{"/usr/lib/x86_64-linux-gnu"},
					LibraryFiles: []string{"glfw"},
				}
			},
			{matrix.MacOS, matrix.GLFW}: func(matrix.Target) Fragment {
				return Fragment{
					LibraryPaths: []string{"/usr/local/lib", "/opt/homebrew/lib"},
					IncludePaths: []string{"/usr/local/include", "/opt/homebrew/include"},
					LibraryFiles: []string{"glfw"},
				}
			},
			{matrix.Windows, matrix.GLFW}: libs("glfw3"),
			{matrix.Linux, matrix.SDL2}:   sdl2,
			{matrix.MacOS, matrix.SDL2}:   sdl2,
			{matrix.Windows, matrix.SDL2}: libs("SDL2", "SDL2main"),
			{matrix.Linux, matrix.SDL3}:   sdl3,
			{matrix.MacOS, matrix.SDL3}:   sdl3,
			{matrix.Windows, matrix.SDL3}: libs("SDL3"),
		},

		Graphics: map[matrix.Graphics]Func{
			matrix.OpenGL3: graphics("OPENGL3", "imgui_impl_opengl3.cpp", "ImPlatform_gfx_opengl3.cpp", "IMGUI_IMPL_OPENGL_LOADER_CUSTOM"),
			matrix.Vulkan:  graphics("VULKAN", "imgui_impl_vulkan.cpp", "ImPlatform_gfx_vulkan.cpp"),
			matrix.Metal:   graphics("METAL", "imgui_impl_metal.mm", "ImPlatform_gfx_metal.mm"),
		},

		Optimization: map[matrix.Optimization]Func{
			matrix.Debug: func(matrix.Target) Fragment {
				return Fragment{Defines: []string{DebugDefine}, CompilerFlags: []string{DebugFlag}}
			},
			matrix.Release: func(matrix.Target) Fragment {
				return Fragment{Defines: []string{ReleaseDefine}, CompilerFlags: []string{ReleaseFlag}}
			},
		},

		PlatformLibs: map[matrix.Platform]Func{
			matrix.Linux:   libs("dl", "pthread"),
			matrix.MacOS:   frameworks("Cocoa", "IOKit", "CoreVideo"),
			matrix.Windows: libs("gdi32", "user32", "shell32"),
		},

		GraphicsLibs: map[PlatformGraphics]Func{
			{matrix.Linux, matrix.OpenGL3}: libs("GL"),
			{matrix.Linux, matrix.Vulkan}:  libs("vulkan"),
			{matrix.MacOS, matrix.OpenGL3}: frameworks("OpenGL"),
			{matrix.MacOS, matrix.Vulkan}: func(matrix.Target) Fragment {
				return Fragment{
					LibraryFiles: []string{"vulkan"},
					IncludePaths: []string{"$(VULKAN_SDK)/include"},
					LibraryPaths: []string{"$(VULKAN_SDK)/lib"},
				}
			},
			{matrix.MacOS, matrix.Metal}:     frameworks("Metal", "MetalKit", "QuartzCore"),
			{matrix.Windows, matrix.OpenGL3}: libs("opengl32"),
			{matrix.Windows, matrix.Vulkan}: func(matrix.Target) Fragment {
				return Fragment{
					LibraryFiles: []string{"vulkan-1"},
					IncludePaths: []string{"$(VULKAN_SDK)/Include"},
					LibraryPaths: []string{"$(VULKAN_SDK)/Lib"},
				}
			},
		},
	}
}
