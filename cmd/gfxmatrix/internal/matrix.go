package internal

import (
	"errors"
	"fmt"

	"github.com/goplus/gfxmatrix/internal/config"
	"github.com/goplus/gfxmatrix/internal/resolve"
	"github.com/goplus/gfxmatrix/internal/rules"
	"github.com/goplus/gfxmatrix/matrix"
	"github.com/goplus/gfxmatrix/pkgs/buildsys"
	"github.com/qiniu/x/log"
)

// loadConfig returns the matrix file named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load matrix file: %w", err)
	}
	log.Debugf("loaded matrix file %s", configPath)
	return cfg, nil
}

// selectTargets applies --curated and --target on top of cfg. It returns nil
// for the full product.
func selectTargets(cfg *config.Config) ([]matrix.Target, error) {
	if curated && len(targetArgs) > 0 {
		return nil, errors.New("--curated and --target are mutually exclusive")
	}
	switch {
	case curated:
		return cfg.Registry.Curated(), nil
	case len(targetArgs) > 0:
		targets := make([]matrix.Target, 0, len(targetArgs))
		for _, arg := range targetArgs {
			t, err := matrix.ParseTarget(arg)
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		}
		return targets, nil
	}
	return cfg.Targets, nil
}

// resolveMatrix loads the configuration and resolves the selected targets.
func resolveMatrix() ([]*buildsys.Descriptor, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	targets, err := selectTargets(cfg)
	if err != nil {
		return nil, err
	}
	r := resolve.New(cfg.Registry, rules.Default(cfg.App, cfg.Layout), resolve.Options{Jobs: jobs})
	ds, err := r.All(targets)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve matrix:\n%w", err)
	}
	log.Infof("resolved %d targets", len(ds))
	return ds, nil
}
