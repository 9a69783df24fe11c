package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/resilience-works/continuity/pkg/domain/model/config"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// App holds the optional TOML application configuration. Only the risk
// scale is configurable today; an absent file means defaults.
type App struct {
	path string
}

type appFile struct {
	Scale scaleSection `toml:"scale"`
}

type scaleSection struct {
	Min         *float64 `toml:"min"`
	Max         *float64 `toml:"max"`
	DefaultBase *float64 `toml:"default_base"`
}

// Flags returns CLI flags for application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to application configuration file (TOML)",
			Sources:     cli.EnvVars("CONTINUITY_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Scale loads the configured risk scale, falling back to the default scale
// when no config file is given or the section is absent.
func (a *App) Scale() (*domainConfig.Scale, error) {
	scale := domainConfig.DefaultScale()
	if a.path == "" {
		return scale, nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "cannot load config", goerr.V("path", a.path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
	}

	var file appFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", a.path))
	}

	if file.Scale.Min != nil {
		scale.Min = types.RiskLevel(*file.Scale.Min)
	}
	if file.Scale.Max != nil {
		scale.Max = types.RiskLevel(*file.Scale.Max)
	}
	if file.Scale.DefaultBase != nil {
		scale.DefaultBase = types.RiskLevel(*file.Scale.DefaultBase)
	}

	if scale.Min >= scale.Max {
		return nil, goerr.Wrap(ErrInvalidConfig, "scale min must be below max",
			goerr.V("min", scale.Min), goerr.V("max", scale.Max))
	}
	if scale.DefaultBase < scale.Min || scale.DefaultBase > scale.Max {
		return nil, goerr.Wrap(ErrInvalidConfig, "scale default_base must be within [min, max]",
			goerr.V("default_base", scale.DefaultBase))
	}

	return scale, nil
}
