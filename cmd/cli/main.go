package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"sukuyo/adapters/ephemeris"
	"sukuyo/adapters/excel"
	"sukuyo/app"
	"sukuyo/internal/birthdate"
	"sukuyo/internal/config"
	"sukuyo/internal/container"
	"sukuyo/internal/errors"
	"sukuyo/internal/logging"
	"sukuyo/internal/survey"
	"sukuyo/models"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sukuyo-cli",
		Short:         "Lunar mansion diagnosis from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newDiagnoseCmd(),
		newShukuCmd(),
		newMansionsCmd(),
		newSurveyCmd(),
		newMigrateCmd(),
	)
	return rootCmd
}

// bootstrap loads configuration and wires the services the same way the
// server does
func bootstrap(ctx context.Context) (*container.Container, error) {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}
	c, err := container.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := c.InitWithDatabase(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func newDiagnoseCmd() *cobra.Command {
	var name, clock, format string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "diagnose [birthdate]",
		Short: "Compute the mansion triple and free diagnosis for a birth date",
		Long: `Compute the primary, karma and origin mansions for a birth date and print
the free diagnosis text.

Example: sukuyo-cli diagnose 1990-04-12 --time 08:30 --name 山田`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			d, err := c.DiagnosisService.Diagnose(cmd.Context(), app.DiagnoseInput{
				Name:      name,
				Birthdate: args[0],
				Birthtime: clock,
				Format:    format,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, d)
			}
			if strings.ToLower(strings.TrimSpace(format)) == models.FormatHTML {
				fmt.Fprintln(out, d.HTML)
				return nil
			}
			fmt.Fprintln(out, d.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name to address the diagnosis to")
	cmd.Flags().StringVar(&clock, "time", "", "Birth time as HH:MM (default 12:00)")
	cmd.Flags().StringVar(&format, "format", models.FormatText, "Output format: text or html")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full diagnosis as JSON")

	return cmd
}

func newShukuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shuku [id]",
		Short: "Show a catalog record (1-27)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.InvalidInput("shuku id must be an integer, got " + args[0])
			}

			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			detail, err := c.DiagnosisService.Shuku(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), detail)
		},
	}
}

func newMansionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mansions",
		Short: "List the 28-mansion cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			for _, m := range c.DiagnosisService.Mansions() {
				fmt.Fprintf(out, "%2d  %s\n", m.Index, m)
			}
			return nil
		},
	}
}

func newSurveyCmd() *cobra.Command {
	var from, to, xlsxPath, reference, candidate string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Compare two longitude strategies over a date range",
		Long: `Evaluate both ephemeris strategies for every day in a range and report how
often they agree on the primary mansion, how far apart their longitudes are and
whether the reference strategy spreads days evenly over the cycle.

Example: sukuyo-cli survey --from 1990-01-01 --to 1999-12-31 --xlsx survey.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := birthdate.Parse(from)
			if err != nil {
				return err
			}
			end, err := birthdate.Parse(to)
			if err != nil {
				return err
			}
			ref, err := ephemeris.New(reference)
			if err != nil {
				return err
			}
			cand, err := ephemeris.New(candidate)
			if err != nil {
				return err
			}

			report, err := survey.Run(cmd.Context(), ref, cand, survey.Options{
				From:        start.At(time.UTC),
				To:          end.At(time.UTC),
				Concurrency: concurrency,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s vs %s, %s to %s (%d days)\n", report.Reference, report.Candidate, report.From, report.To, report.Days)
			fmt.Fprintf(out, "agreement:      %.2f%%\n", report.Agreement*100)
			fmt.Fprintf(out, "difference:     mean %.2f° sd %.2f° median %.2f° p90 %.2f° max %.2f°\n",
				report.Difference.Mean, report.Difference.StdDev, report.Difference.Median, report.Difference.P90, report.Difference.Max)
			fmt.Fprintf(out, "uniformity:     chi² %.2f p=%.4f\n", report.Uniformity.ChiSquare, report.Uniformity.PValue)

			if xlsxPath != "" {
				if err := excel.WriteSurvey(xlsxPath, report); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the per-day samples to this workbook")
	cmd.Flags().StringVar(&reference, "reference", ephemeris.StrategyMeeus, "Reference strategy")
	cmd.Flags().StringVar(&candidate, "candidate", ephemeris.StrategyLinear, "Strategy compared against the reference")
	cmd.Flags().IntVar(&concurrency, "concurrency", survey.DefaultConcurrency, "Days evaluated in parallel")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create and seed the catalog table in CATALOG_DSN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			if c.DB == nil {
				return errors.ConfigInvalid("CATALOG_DSN is not set; nothing to migrate")
			}

			records, err := c.Catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog ready: %d records (%s, schema %s)\n", len(records), c.Config.Catalog.Driver, c.Migrator.Version())
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
