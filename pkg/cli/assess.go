package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/cli/config"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/service/cache"
	"github.com/resilience-works/continuity/pkg/usecase"
	"github.com/resilience-works/continuity/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdAssess() *cli.Command {
	var hazards []string
	var businessTypeID string
	var locationID string
	var appCfg config.App
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "hazard",
			Usage:       "Hazard identifier to assess (repeatable)",
			Required:    true,
			Destination: &hazards,
		},
		&cli.StringFlag{
			Name:        "business",
			Usage:       "Business type profile ID",
			Destination: &businessTypeID,
		},
		&cli.StringFlag{
			Name:        "location",
			Usage:       "Location profile ID",
			Destination: &locationID,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "assess",
		Usage: "Run a one-shot risk assessment and print recommended strategies",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			scale, err := appCfg.Scale()
			if err != nil {
				return goerr.Wrap(err, "failed to load application config")
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

			uc := usecase.New(repo, cache.New(), usecase.WithScale(scale))

			results, err := uc.Assessment.ComputeRisks(ctx, hazards, businessTypeID, locationID)
			if err != nil {
				return goerr.Wrap(err, "failed to compute risks")
			}

			rec, err := uc.Assessment.RecommendStrategies(ctx, results)
			if err != nil {
				return goerr.Wrap(err, "failed to recommend strategies")
			}

			printAssessment(results, rec)
			return nil
		},
	}
}

func printAssessment(results []model.RiskResult, rec *model.Recommendation) {
	title := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)

	title.Println("Risk assessment")
	for _, r := range results {
		fmt.Printf("  %-28s base %.1f -> adjusted %s\n",
			r.HazardID, float64(r.BaseLevel), levelColor(float64(r.AdjustedLevel)))
		if !r.KnownHazard {
			warn.Printf("    (not in catalog, assessed from the default base level)\n")
		}
		for _, reason := range r.Reasoning {
			fmt.Printf("    * %s\n", reason)
		}
	}

	title.Println("\nAuto-selected strategies")
	if len(rec.AutoSelected) == 0 {
		fmt.Println("  (none)")
	}
	for _, s := range rec.AutoSelected {
		fmt.Printf("  [%s] %s\n", s.Tier, s.ID)
	}

	title.Println("\nOptional strategies")
	if len(rec.Optional) == 0 {
		fmt.Println("  (none)")
	}
	for _, s := range rec.Optional {
		fmt.Printf("  [%s] %s\n", s.Tier, s.ID)
	}
}

func levelColor(level float64) string {
	s := fmt.Sprintf("%.1f", level)
	switch {
	case level >= 7:
		return color.RedString(s)
	case level >= 4:
		return color.YellowString(s)
	default:
		return color.GreenString(s)
	}
}
