// Package hoangdao computes the auspicious ("hoàng đạo") two-hour periods of a day.
//
// Each day carries an earthly branch; that branch selects six of the twelve
// double-hours as favorable.
package hoangdao

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/guttosm/amlich/internal/canchi"
	"github.com/guttosm/amlich/internal/lunar"
)

// ErrUnknownBranch is returned when a branch name is not one of the twelve earthly branches.
var ErrUnknownBranch = errors.New("unknown earthly branch")

// Hour describes one double-hour of a day.
type Hour struct {
	Branch     string `json:"branch"`
	TimeRange  string `json:"time_range"`
	Auspicious bool   `json:"auspicious"`
}

// favorable maps a day branch to the six favorable hour branches, by index into canchi.Branches.
var favorable = [12][6]int{
	{2, 8, 0, 6, 1, 7},   // Tý: Dần, Thân, Tý, Ngọ, Sửu, Mùi
	{2, 3, 5, 8, 10, 11}, // Sửu: Dần, Mão, Tỵ, Thân, Tuất, Hợi
	{0, 1, 4, 5, 7, 10},  // Dần: Tý, Sửu, Thìn, Tỵ, Mùi, Tuất
	{0, 2, 3, 6, 7, 9},   // Mão: Tý, Dần, Mão, Ngọ, Mùi, Dậu
	{2, 4, 5, 8, 9, 11},  // Thìn: Dần, Thìn, Tỵ, Thân, Dậu, Hợi
	{1, 4, 6, 7, 10, 11}, // Tỵ: Sửu, Thìn, Ngọ, Mùi, Tuất, Hợi
	{0, 2, 3, 6, 7, 9},   // Ngọ
	{2, 3, 5, 8, 10, 11}, // Mùi
	{0, 1, 4, 5, 7, 10},  // Thân
	{0, 2, 3, 6, 7, 9},   // Dậu
	{2, 4, 5, 8, 9, 11},  // Tuất
	{1, 4, 6, 7, 10, 11}, // Hợi
}

// TimeRange returns the clock span of the i-th branch hour; Tý straddles midnight.
func TimeRange(i int) string {
	start := lunar.PosMod(23+2*i, 24)
	end := lunar.PosMod(start+2, 24)
	return fmt.Sprintf("%02d:00 - %02d:00", start, end)
}

var folder = cases.Lower(language.Vietnamese)

// BranchIndex resolves a branch name to its position. Matching ignores case and
// Unicode normalization form, so decomposed input is accepted.
func BranchIndex(name string) (int, error) {
	key := folder.String(norm.NFC.String(strings.TrimSpace(name)))
	for i, b := range canchi.Branches {
		if folder.String(b) == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBranch, name)
}

// FavorableBranches returns the six favorable hour branches for a day branch.
func FavorableBranches(dayBranch string) ([]string, error) {
	i, err := BranchIndex(dayBranch)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, 6)
	for _, h := range favorable[i] {
		out = append(out, canchi.Branches[h])
	}
	return out, nil
}

// IsFavorable reports whether hourBranch is auspicious on a day of dayBranch.
func IsFavorable(dayBranch, hourBranch string) (bool, error) {
	d, err := BranchIndex(dayBranch)
	if err != nil {
		return false, err
	}
	h, err := BranchIndex(hourBranch)
	if err != nil {
		return false, err
	}
	return isFavorable(d, h), nil
}

func isFavorable(day, hour int) bool {
	for _, f := range favorable[day] {
		if f == hour {
			return true
		}
	}
	return false
}

// tableRow selects the row of favorable for a day. It is kept separate from
// canchi.DayBranchIndex; the two agree for every JDN.
func tableRow(jdn int) int {
	return lunar.PosMod(jdn+1, 12)
}

// DayBranch returns the earthly branch of a solar date.
func DayBranch(day, month, year int) string {
	return canchi.Branches[tableRow(lunar.JulianDayNumber(day, month, year))]
}

// ForBranch lists all twelve hours, starting at Tý, flagged for a day of the given branch.
func ForBranch(dayBranch string) ([]Hour, error) {
	d, err := BranchIndex(dayBranch)
	if err != nil {
		return nil, err
	}
	return hoursFor(d), nil
}

// Hours lists all twelve hours of a solar date.
func Hours(day, month, year int) []Hour {
	return hoursFor(tableRow(lunar.JulianDayNumber(day, month, year)))
}

// Auspicious returns only the favorable hours of a solar date.
func Auspicious(day, month, year int) []Hour {
	var out []Hour
	for _, h := range Hours(day, month, year) {
		if h.Auspicious {
			out = append(out, h)
		}
	}
	return out
}

func hoursFor(day int) []Hour {
	hours := make([]Hour, 12)
	for i := range hours {
		hours[i] = Hour{
			Branch:     canchi.Branches[i],
			TimeRange:  TimeRange(i),
			Auspicious: isFavorable(day, i),
		}
	}
	return hours
}
