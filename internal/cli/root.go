// Package cli is the offline command line front end of the calendar engine.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/amlich/internal/logger"
	"github.com/guttosm/amlich/internal/lunar"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	tz     float64
	output string
}

// NewRootCmd builds the amlich command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "amlich",
		Short:        "Vietnamese lunar calendar from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger.SetOutput(cmd.ErrOrStderr())
			if !lunar.ValidTimeZone(opts.tz) {
				return fmt.Errorf("--tz must be within -12..14, got %v", opts.tz)
			}
			switch opts.output {
			case "text", "json", "yaml":
				return nil
			}
			return fmt.Errorf("--output must be text, json or yaml, got %q", opts.output)
		},
	}

	cmd.PersistentFlags().Float64Var(&opts.tz, "tz", lunar.DefaultTimeZone, "UTC offset in hours")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json or yaml")

	cmd.AddCommand(
		convertCmd(opts),
		solarCmd(opts),
		canchiCmd(opts),
		hoursCmd(opts),
		monthCmd(opts),
		holidaysCmd(opts),
	)
	return cmd
}

// render writes v as JSON or YAML, or calls text for the text format.
func (o *options) render(w io.Writer, v any, text func(io.Writer) error) error {
	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return text(w)
	}
}

func parseDate(s string) (lunar.SolarDate, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return lunar.SolarDate{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return lunar.SolarDate{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}, nil
}

func today(tz float64) lunar.SolarDate {
	t := time.Now().UTC().Add(time.Duration(tz * float64(time.Hour)))
	return lunar.SolarDate{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}
