package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goplus/gfxmatrix/internal/rules"
	"github.com/goplus/gfxmatrix/matrix"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// MaxFileSize bounds the size of a matrix file.
const MaxFileSize = 1 << 20

// SchemaMajor is the major schema version this package reads.
const SchemaMajor = "v1"

// File is the YAML form of a matrix file.
type File struct {
	Schema   string       `yaml:"schema" validate:"required,semver"`
	App      string       `yaml:"app" validate:"omitempty,excludesall=/"`
	Root     string       `yaml:"root"`
	Registry RegistryFile `yaml:"registry"`
	Curated  bool         `yaml:"curated"`
	Targets  []string     `yaml:"targets" validate:"omitempty,unique,dive,required"`
}

// RegistryFile lists the values of each axis, in sort order.
type RegistryFile struct {
	Platforms     []string `yaml:"platforms" validate:"required,unique,dive,required"`
	Windowing     []string `yaml:"windowing" validate:"required,unique,dive,required"`
	Graphics      []string `yaml:"graphics" validate:"required,unique,dive,required"`
	Optimizations []string `yaml:"optimizations" validate:"required,unique,dive,required"`
	// Supported overrides the platform/graphics pairing table.
	Supported map[string][]string `yaml:"supported" validate:"omitempty,dive,keys,required,endkeys,required,unique"`
}

// Config is a loaded matrix file.
type Config struct {
	App      string
	Layout   rules.Layout
	Registry *matrix.Registry
	// Targets is the explicit target list, nil for the full product.
	Targets []matrix.Target
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	err := validate.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
		return semver.IsValid(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Default returns the configuration used when no matrix file is given: the
// default registry and layout, full product.
func Default() *Config {
	return &Config{
		App:      rules.DefaultApp,
		Layout:   rules.DefaultLayout(),
		Registry: matrix.Default(),
	}
}

// Load reads the matrix file at path.
func Load(path string) (*Config, error) {
	return Parse(path, nil)
}

// Parse decodes a matrix file. If data is nil the file is read from disk.
func Parse(file string, data []byte) (*Config, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewReader(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	data, err := io.ReadAll(io.LimitReader(reader, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%s: file exceeds %d bytes", file, MaxFileSize)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty matrix file", file)
		}
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	cfg, err := f.Config()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}

// Config validates f and converts it.
func (f *File) Config() (*Config, error) {
	if err := validate.Struct(f); err != nil {
		return nil, err
	}
	if major := semver.Major(f.Schema); major != SchemaMajor {
		return nil, fmt.Errorf("unsupported schema %s, want %s.x", f.Schema, SchemaMajor)
	}
	if f.Curated && len(f.Targets) > 0 {
		return nil, errors.New("curated and targets are mutually exclusive")
	}

	reg, err := f.Registry.registry()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App:      f.App,
		Layout:   rules.DefaultLayout(),
		Registry: reg,
	}
	if cfg.App == "" {
		cfg.App = rules.DefaultApp
	}
	cfg.Layout.Root = f.Root

	switch {
	case f.Curated:
		cfg.Targets = reg.Curated()
	case len(f.Targets) > 0:
		cfg.Targets = make([]matrix.Target, 0, len(f.Targets))
		for _, s := range f.Targets {
			t, err := matrix.ParseTarget(s)
			if err != nil {
				return nil, err
			}
			cfg.Targets = append(cfg.Targets, t)
		}
	}
	return cfg, nil
}

func (r *RegistryFile) registry() (*matrix.Registry, error) {
	reg := &matrix.Registry{}
	var err error
	if reg.Platforms, err = parseAll(r.Platforms, matrix.ParsePlatform); err != nil {
		return nil, err
	}
	if reg.Windowing, err = parseAll(r.Windowing, matrix.ParseWindowing); err != nil {
		return nil, err
	}
	if reg.Graphics, err = parseAll(r.Graphics, matrix.ParseGraphics); err != nil {
		return nil, err
	}
	if reg.Optimizations, err = parseAll(r.Optimizations, matrix.ParseOptimization); err != nil {
		return nil, err
	}

	if len(r.Supported) == 0 {
		reg.Supported = matrix.DefaultSupport()
	} else {
		reg.Supported = make(map[matrix.Platform][]matrix.Graphics, len(r.Supported))
		for name, gs := range r.Supported {
			p, err := matrix.ParsePlatform(name)
			if err != nil {
				return nil, fmt.Errorf("supported: %w", err)
			}
			if reg.Supported[p], err = parseAll(gs, matrix.ParseGraphics); err != nil {
				return nil, fmt.Errorf("supported[%s]: %w", name, err)
			}
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func parseAll[T any](values []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, s := range values {
		v, err := parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
