package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/guttosm/amlich/internal/canchi"
	"github.com/guttosm/amlich/internal/holiday"
	"github.com/guttosm/amlich/internal/lunar"
)

type conversion struct {
	Solar  lunar.SolarDate `json:"solar" yaml:"solar"`
	Lunar  lunar.LunarDate `json:"lunar" yaml:"lunar"`
	CanChi string          `json:"can_chi" yaml:"can_chi"`
	Day    string          `json:"day_can_chi" yaml:"day_can_chi"`
	Note   string          `json:"special_day,omitempty" yaml:"special_day,omitempty"`
}

func newConversion(d lunar.SolarDate, ld lunar.LunarDate) conversion {
	c := conversion{
		Solar:  d,
		Lunar:  ld,
		CanChi: canchi.CanChi(ld.Year),
		Day:    canchi.DayCanChi(d.Day, d.Month, d.Year),
	}
	if name, ok := holiday.IsSpecialLunarDay(ld); ok {
		c.Note = name
	}
	return c
}

func (c conversion) text(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s → %s (năm %s, ngày %s)", c.Solar, c.Lunar, c.CanChi, c.Day)
	if err == nil && c.Note != "" {
		_, err = fmt.Fprintf(w, " %s", c.Note)
	}
	if err == nil {
		_, err = fmt.Fprintln(w)
	}
	return err
}

func convertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [YYYY-MM-DD]",
		Short: "Convert a solar date to the lunar calendar (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := today(opts.tz)
			if len(args) == 1 {
				var err error
				if d, err = parseDate(args[0]); err != nil {
					return err
				}
			}
			c := newConversion(d, lunar.ConvertSolarToLunar(d.Day, d.Month, d.Year, opts.tz))
			return opts.render(cmd.OutOrStdout(), c, c.text)
		},
	}
}

func solarCmd(opts *options) *cobra.Command {
	var leap bool

	cmd := &cobra.Command{
		Use:   "solar DAY MONTH YEAR",
		Short: "Convert a lunar date to the solar calendar",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var nums [3]int
			for i, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("argument %d (%q) is not an integer", i+1, a)
				}
				nums[i] = n
			}
			ld := lunar.LunarDate{Day: nums[0], Month: nums[1], Year: nums[2], IsLeapMonth: leap}
			d, err := lunar.ConvertLunarToSolar(ld, opts.tz)
			if err != nil {
				return fmt.Errorf("%s: %w", ld, err)
			}
			c := newConversion(d, ld)
			return opts.render(cmd.OutOrStdout(), c, c.text)
		},
	}

	cmd.Flags().BoolVar(&leap, "leap", false, "The month is the leap month of its year")
	return cmd
}

type yearInfo struct {
	Year          int    `json:"year" yaml:"year"`
	CanChi        string `json:"can_chi" yaml:"can_chi"`
	Zodiac        string `json:"zodiac" yaml:"zodiac"`
	ZodiacEnglish string `json:"zodiac_english" yaml:"zodiac_english"`
	LeapMonth     int    `json:"leap_month" yaml:"leap_month"`
}

func canchiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "canchi YEAR",
		Short: "Show the can chi name, zodiac animal and leap month of a lunar year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year %q is not an integer", args[0])
			}
			info := yearInfo{
				Year:          year,
				CanChi:        canchi.CanChi(year),
				Zodiac:        canchi.ZodiacAnimal(year),
				ZodiacEnglish: canchi.ZodiacAnimalEnglish(year),
				LeapMonth:     lunar.LeapMonth(year, opts.tz),
			}
			return opts.render(cmd.OutOrStdout(), info, func(w io.Writer) error {
				leap := "không có tháng nhuận"
				if info.LeapMonth > 0 {
					leap = fmt.Sprintf("nhuận tháng %d", info.LeapMonth)
				}
				_, err := fmt.Fprintf(w, "%d: %s, tuổi %s (%s), %s\n", info.Year, info.CanChi, info.Zodiac, info.ZodiacEnglish, leap)
				return err
			})
		},
	}
}
