// Package manifest renders resolved descriptors as a data manifest (JSON or
// YAML) grouped the way project emitters consume them: one solution per
// platform, one project per (windowing, graphics) pair, one config per
// optimization level.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goplus/gfxmatrix/pkgs/buildsys"
	"gopkg.in/yaml.v3"
)

// Format is a manifest encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown manifest format %q (want json or yaml)", s)
}

type Manifest struct {
	Solutions []Solution `json:"solutions" yaml:"solutions"`
}

type Solution struct {
	Name     string    `json:"name" yaml:"name"`
	Platform string    `json:"platform" yaml:"platform"`
	Dir      string    `json:"dir" yaml:"dir"`
	Projects []Project `json:"projects" yaml:"projects"`
}

type Project struct {
	Name      string   `json:"name" yaml:"name"`
	Windowing string   `json:"windowing" yaml:"windowing"`
	Graphics  string   `json:"graphics" yaml:"graphics"`
	Configs   []Config `json:"configs" yaml:"configs"`
}

type Config struct {
	Name         string          `json:"name" yaml:"name"`
	Optimization string          `json:"optimization" yaml:"optimization"`
	Descriptor   buildsys.Record `json:"descriptor" yaml:"descriptor"`
	CompilerArgs []string        `json:"compilerArgs" yaml:"compilerArgs"`
	LinkerArgs   []string        `json:"linkerArgs" yaml:"linkerArgs"`
}

// Build converts grouped descriptors into a manifest.
func Build(solutions []buildsys.Solution) *Manifest {
	m := &Manifest{Solutions: make([]Solution, 0, len(solutions))}
	for _, sol := range solutions {
		s := Solution{Name: sol.Name, Platform: string(sol.Platform), Dir: sol.Dir}
		for _, proj := range sol.Projects {
			p := Project{Name: proj.Name, Windowing: string(proj.Windowing), Graphics: string(proj.Graphics)}
			for _, conf := range proj.Configs {
				p.Configs = append(p.Configs, Config{
					Name:         conf.Name,
					Optimization: string(conf.Optimization),
					Descriptor:   conf.Descriptor.Record(),
					CompilerArgs: conf.Descriptor.CompilerArgs(),
					LinkerArgs:   conf.Descriptor.LinkerArgs(),
				})
			}
			s.Projects = append(s.Projects, p)
		}
		m.Solutions = append(m.Solutions, s)
	}
	return m
}

// Emitter writes manifests in one format. It implements buildsys.Emitter.
type Emitter struct {
	Format Format
}

var _ buildsys.Emitter = (*Emitter)(nil)

// New returns an emitter for format.
func New(format Format) *Emitter {
	return &Emitter{Format: format}
}

// Emit writes the manifest of solutions to w.
func (e *Emitter) Emit(w io.Writer, solutions []buildsys.Solution) error {
	m := Build(solutions)
	switch e.Format {
	case JSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("manifest: unknown format %q", e.Format)
}
