// Package canchi names years and days in the sexagenary cycle: a heavenly
// stem (can) paired with an earthly branch (chi).
package canchi

import (
	"fmt"

	"github.com/guttosm/amlich/internal/lunar"
)

// Stems lists the ten heavenly stems in cycle order.
var Stems = [10]string{"Giáp", "Ất", "Bính", "Đinh", "Mậu", "Kỷ", "Canh", "Tân", "Nhâm", "Quý"}

// Branches lists the twelve earthly branches in cycle order, starting at Tý.
var Branches = [12]string{"Tý", "Sửu", "Dần", "Mão", "Thìn", "Tỵ", "Ngọ", "Mùi", "Thân", "Dậu", "Tuất", "Hợi"}

var animalsEnglish = [12]string{"Rat", "Ox", "Tiger", "Cat", "Dragon", "Snake", "Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig"}

// StemIndex returns the stem position of a (lunar) year.
func StemIndex(year int) int { return lunar.PosMod(year+6, 10) }

// BranchIndex returns the branch position of a (lunar) year.
func BranchIndex(year int) int { return lunar.PosMod(year+8, 12) }

// CanChi returns the stem-branch name of year, e.g. 2024 -> "Giáp Thìn".
func CanChi(year int) string {
	return fmt.Sprintf("%s %s", Stems[StemIndex(year)], Branches[BranchIndex(year)])
}

// ZodiacAnimal returns the Vietnamese animal name of year.
func ZodiacAnimal(year int) string {
	return Branches[lunar.PosMod(year-4, 12)]
}

// ZodiacAnimalEnglish returns the English animal name of year. Vietnam uses
// the Cat where other traditions use the Rabbit.
func ZodiacAnimalEnglish(year int) string {
	return animalsEnglish[lunar.PosMod(year-4, 12)]
}

// DayStemIndex returns the index into Stems of the day with Julian day number jdn.
func DayStemIndex(jdn int) int { return lunar.PosMod(jdn+9, 10) }

// DayBranchIndex returns the index into Branches of the day with Julian day number jdn.
func DayBranchIndex(jdn int) int { return lunar.PosMod(jdn+1, 12) }

// DayCanChi names the solar day in the sexagenary cycle.
func DayCanChi(day, month, year int) string {
	jdn := lunar.JulianDayNumber(day, month, year)
	return fmt.Sprintf("%s %s", Stems[DayStemIndex(jdn)], Branches[DayBranchIndex(jdn)])
}
