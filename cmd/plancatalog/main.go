// Plan Catalog CLI - scraped insurance listings to validated catalog
//
// Usage:
//   plancatalog transform --input scraped.json --out-dir dist
//   plancatalog check --input dist/plans_v2.json
//   plancatalog load --input dist/plans_v2.json --database-url postgres://...
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"plan-catalog/db/postgres"
	"plan-catalog/internal/check"
	"plan-catalog/internal/output"
	"plan-catalog/internal/transform"
	"plan-catalog/pkg/catalog"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "plancatalog",
		Usage:   "Batch ETL for scraped insurance-plan listings",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"PLANCATALOG_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			return setupLogging(c.String("log-level"))
		},

		Commands: []*cli.Command{
			transformCommand(),
			checkCommand(),
			loadCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}

// =============================================================================
// TRANSFORM COMMAND
// =============================================================================

func transformCommand() *cli.Command {
	return &cli.Command{
		Name:  "transform",
		Usage: "Transform a scraped JSON dump into the validated catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Path to scraped listings JSON (array, or object with rows/data)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Aliases: []string{"o"},
				Value:   "dist",
				Usage:   "Directory for the output artifacts",
				EnvVars: []string{"PLANCATALOG_OUT_DIR"},
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 0,
				Usage: "Row-processing goroutines (0 = number of CPUs)",
			},
		},
		Action: runTransform,
	}
}

func runTransform(c *cli.Context) error {
	input, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	rows, err := transform.DecodeDocument(input)
	if err != nil {
		return err
	}
	log.Info().Int("rows", len(rows)).Str("input", c.String("input")).Msg("starting transform")

	result, err := transform.Run(context.Background(), transform.RunID(input), rows, c.Int("workers"))
	if err != nil {
		return err
	}

	writer, err := output.NewWriter(c.String("out-dir"))
	if err != nil {
		return err
	}
	if err := writer.WriteAll(result.Plans, result.Rejects, result.Report); err != nil {
		return err
	}

	output.PrintSummary(os.Stderr, result.Report, c.String("out-dir"))
	return nil
}

// =============================================================================
// CHECK COMMAND
// =============================================================================

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Re-validate a written catalog against the strict schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   "dist/" + output.PlansJSONFile,
				Usage:   "Path to the catalog JSON to check",
			},
		},
		Action: runCheck,
	}
}

func runCheck(c *cli.Context) error {
	res, err := check.File(c.String("input"))
	if err != nil {
		return err
	}
	if !res.OK() {
		for _, p := range res.Problems {
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", p)
		}
		return fmt.Errorf("%d consistency problems in %d rows", len(res.Problems), res.Rows)
	}
	fmt.Printf("Validation OK. Rows: %d. USD rows: %d\n", res.Rows, res.USDRows)
	return nil
}

// =============================================================================
// LOAD COMMAND
// =============================================================================

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Load a validated catalog into the plans_v2 Postgres table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   "dist/" + output.PlansJSONFile,
				Usage:   "Path to the catalog JSON to load",
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Postgres connection string",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Action: runLoad,
	}
}

func runLoad(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	// Never load a catalog the checker would not pass.
	res, err := check.Bytes(data)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("catalog failed consistency check (%d problems), refusing to load", len(res.Problems))
	}
	var plans []catalog.Plan
	if err := json.Unmarshal(data, &plans); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	store, err := postgres.NewStore(&postgres.Config{URL: c.String("database-url")})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := store.Refresh(ctx, plans); err != nil {
		return err
	}
	log.Info().Int("plans", len(plans)).Msg("catalog refreshed")
	return nil
}
