// Package holiday resolves Vietnamese observances for solar days.
package holiday

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/lunar"
)

//go:embed holidays.yaml
var builtinYAML []byte

const (
	// SpecialNewMoon labels the first day of a lunar month.
	SpecialNewMoon = "Mồng 1 - Sóc"
	// SpecialFullMoon labels the fifteenth day of a lunar month.
	SpecialFullMoon = "Rằm - Vọng"
)

// Calendar is an immutable set of holidays.
type Calendar struct {
	solar []models.Holiday
	lunar []models.Holiday
}

// Parse decodes a YAML list of holidays and tags each with source.
func Parse(data []byte, source string) ([]models.Holiday, error) {
	var hs []models.Holiday
	if err := yaml.Unmarshal(data, &hs); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}
	for i := range hs {
		if err := Validate(hs[i]); err != nil {
			return nil, fmt.Errorf("holiday %d: %w", i, err)
		}
		hs[i].Source = source
	}
	return hs, nil
}

// Validate checks a holiday's calendar position.
func Validate(h models.Holiday) error {
	if h.Name == "" {
		return fmt.Errorf("missing name")
	}
	if h.Month < 1 || h.Month > 12 {
		return fmt.Errorf("%s: month %d out of range", h.Name, h.Month)
	}
	if h.Day < 1 || h.Day > 31 || (h.IsLunar && h.Day > 30) {
		return fmt.Errorf("%s: day %d out of range", h.Name, h.Day)
	}
	return nil
}

// Builtin returns the calendar embedded in the binary.
func Builtin() *Calendar {
	hs, err := Parse(builtinYAML, models.SourceBuiltin)
	if err != nil {
		panic(err)
	}
	return New(hs...)
}

// New builds a calendar from holidays, keeping their order.
func New(hs ...models.Holiday) *Calendar {
	c := &Calendar{}
	for _, h := range hs {
		if h.IsLunar {
			c.lunar = append(c.lunar, h)
		} else {
			c.solar = append(c.solar, h)
		}
	}
	return c
}

// With returns a new calendar holding c's holidays followed by extra.
func (c *Calendar) With(extra ...models.Holiday) *Calendar {
	all := make([]models.Holiday, 0, len(c.solar)+len(c.lunar)+len(extra))
	all = append(all, c.solar...)
	all = append(all, c.lunar...)
	all = append(all, extra...)
	return New(all...)
}

// ForSolarDate lists the holidays on a solar day: solar holidays matching
// (day, month) followed by lunar holidays matching the converted lunar date.
// The leap flag of the lunar date is ignored.
func (c *Calendar) ForSolarDate(d lunar.SolarDate, conv lunar.Converter, tz float64) []models.Holiday {
	return c.Match(d, conv.SolarToLunar(d, tz))
}

// Match is ForSolarDate with the lunar date already known.
func (c *Calendar) Match(d lunar.SolarDate, ld lunar.LunarDate) []models.Holiday {
	out := []models.Holiday{}
	for _, h := range c.solar {
		if h.Day == d.Day && h.Month == d.Month {
			out = append(out, h)
		}
	}
	for _, h := range c.lunar {
		if h.Day == ld.Day && h.Month == ld.Month {
			out = append(out, h)
		}
	}
	return out
}

// ForMonth lists the holidays of a solar or lunar month.
func (c *Calendar) ForMonth(month int, isLunar bool) []models.Holiday {
	src := c.solar
	if isLunar {
		src = c.lunar
	}
	out := []models.Holiday{}
	for _, h := range src {
		if h.Month == month {
			out = append(out, h)
		}
	}
	return out
}

// All returns every holiday, solar first.
func (c *Calendar) All() []models.Holiday {
	out := make([]models.Holiday, 0, len(c.solar)+len(c.lunar))
	out = append(out, c.solar...)
	return append(out, c.lunar...)
}

// IsSpecialLunarDay names the first and fifteenth of a lunar month.
func IsSpecialLunarDay(ld lunar.LunarDate) (string, bool) {
	switch ld.Day {
	case 1:
		return SpecialNewMoon, true
	case 15:
		return SpecialFullMoon, true
	}
	return "", false
}
