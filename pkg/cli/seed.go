package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/cli/config"
	"github.com/resilience-works/continuity/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var file string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Usage:       "Path to seed data file (TOML)",
			Required:    true,
			Sources:     cli.EnvVars("CONTINUITY_SEED_FILE"),
			Destination: &file,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load hazards, rules, strategies and profiles from a TOML file into the configured backend",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			seed, err := config.LoadSeed(file)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			logger := logging.Default()

			for _, h := range seed.Hazards {
				hazard := h.Model()
				if err := repo.Hazard().Put(ctx, hazard); err != nil {
					return goerr.Wrap(err, "failed to seed hazard", goerr.V("id", hazard.ID))
				}
			}
			logger.Info("seeded hazards", "count", len(seed.Hazards))

			for _, r := range seed.Rules {
				if _, err := repo.Rule().Put(ctx, r.Model()); err != nil {
					return goerr.Wrap(err, "failed to seed rule", goerr.V("name", r.Name))
				}
			}
			logger.Info("seeded multiplier rules", "count", len(seed.Rules))

			for _, s := range seed.Strategies {
				strategy := s.Model()
				if err := repo.Strategy().Put(ctx, strategy); err != nil {
					return goerr.Wrap(err, "failed to seed strategy", goerr.V("id", strategy.ID))
				}
			}
			logger.Info("seeded strategies", "count", len(seed.Strategies))

			for _, p := range seed.Profiles {
				profile := p.Model()
				if err := repo.Profile().Put(ctx, profile); err != nil {
					return goerr.Wrap(err, "failed to seed profile", goerr.V("id", profile.ID))
				}
			}
			logger.Info("seeded business profiles", "count", len(seed.Profiles))

			return nil
		},
	}
}
