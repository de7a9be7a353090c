package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/guttosm/amlich/internal/canchi"
	"github.com/guttosm/amlich/internal/hoangdao"
	"github.com/guttosm/amlich/internal/holiday"
	"github.com/guttosm/amlich/internal/lunar"
	"github.com/guttosm/amlich/internal/lunarcache"
	"github.com/guttosm/amlich/internal/service"
)

const cliCacheSize = 512

type hoursView struct {
	Date      *lunar.SolarDate `json:"date,omitempty" yaml:"date,omitempty"`
	DayBranch string           `json:"day_branch" yaml:"day_branch"`
	Hours     []hoangdao.Hour  `json:"hours" yaml:"hours"`
}

func hoursCmd(opts *options) *cobra.Command {
	var branch string
	var all bool

	cmd := &cobra.Command{
		Use:   "hours [YYYY-MM-DD]",
		Short: "List the hoàng đạo hours of a day (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var view hoursView
			switch {
			case branch != "":
				if len(args) > 0 {
					return fmt.Errorf("pass either a date or --branch, not both")
				}
				i, err := hoangdao.BranchIndex(branch)
				if err != nil {
					return err
				}
				hours, _ := hoangdao.ForBranch(branch)
				view = hoursView{DayBranch: canchi.Branches[i], Hours: hours}
			default:
				d := today(opts.tz)
				if len(args) == 1 {
					var err error
					if d, err = parseDate(args[0]); err != nil {
						return err
					}
				}
				view = hoursView{
					Date:      &d,
					DayBranch: hoangdao.DayBranch(d.Day, d.Month, d.Year),
					Hours:     hoangdao.Hours(d.Day, d.Month, d.Year),
				}
			}
			if !all {
				kept := view.Hours[:0]
				for _, h := range view.Hours {
					if h.Auspicious {
						kept = append(kept, h)
					}
				}
				view.Hours = kept
			}

			return opts.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintf(tw, "Ngày %s\n", view.DayBranch)
				for _, h := range view.Hours {
					mark := ""
					if h.Auspicious {
						mark = "hoàng đạo"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Branch, h.TimeRange, mark)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "Earthly branch of the day instead of a date")
	cmd.Flags().BoolVar(&all, "all", false, "Include the hắc đạo hours too")
	return cmd
}

func monthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "month YEAR MONTH",
		Short: "Print a solar month with lunar dates, can chi, holidays and moon days",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year %q is not an integer", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil || month < 1 || month > 12 {
				return fmt.Errorf("month %q must be an integer within 1..12", args[1])
			}

			cache, err := lunarcache.New(lunar.Engine{}, cliCacheSize)
			if err != nil {
				return err
			}
			cal := service.NewCalendarService(service.CalendarOptions{Converter: cache, TimeZone: opts.tz})
			days, err := cal.Month(cmd.Context(), year, month)
			if err != nil {
				return err
			}

			return opts.render(cmd.OutOrStdout(), days, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "DƯƠNG\tTHỨ\tÂM\tNGÀY\tGHI CHÚ")
				for _, d := range days {
					notes := make([]string, 0, len(d.Holidays)+1)
					if d.SpecialDay != "" {
						notes = append(notes, d.SpecialDay)
					}
					for _, h := range d.Holidays {
						notes = append(notes, h.Name)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Solar, d.Weekday[:3], d.Lunar, d.DayCanChi, strings.Join(notes, ", "))
				}
				return tw.Flush()
			})
		},
	}
}

func holidaysCmd(opts *options) *cobra.Command {
	var isLunar bool

	cmd := &cobra.Command{
		Use:   "holidays [MONTH]",
		Short: "List built-in holidays, optionally for one solar or lunar month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal := holiday.Builtin()
			list := cal.All()
			if len(args) == 1 {
				month, err := strconv.Atoi(args[0])
				if err != nil || month < 1 || month > 12 {
					return fmt.Errorf("month %q must be an integer within 1..12", args[0])
				}
				list = cal.ForMonth(month, isLunar)
			}

			return opts.render(cmd.OutOrStdout(), list, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				for _, h := range list {
					kind := "dương"
					if h.IsLunar {
						kind = "âm"
					}
					fmt.Fprintf(tw, "%d/%d\t%s\t%s %s\n", h.Day, h.Month, kind, h.Emoji, h.Name)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&isLunar, "lunar", false, "Interpret MONTH as a lunar month")
	return cmd
}
