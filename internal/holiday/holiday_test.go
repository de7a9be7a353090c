package holiday

import (
	"testing"

	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/lunar"
)

func names(hs []models.Holiday) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Name
	}
	return out
}

func TestBuiltin_Loads(t *testing.T) {
	c := Builtin()
	if got := len(c.All()); got != 19 {
		t.Fatalf("expected 19 builtin holidays, got %d", got)
	}
	for _, h := range c.All() {
		if h.Source != models.SourceBuiltin {
			t.Fatalf("%s not tagged builtin", h.Name)
		}
	}
}

func TestForSolarDate(t *testing.T) {
	c := Builtin()
	tests := []struct {
		name string
		date lunar.SolarDate
		want []string
	}{
		{"new year", lunar.SolarDate{Day: 1, Month: 1, Year: 2025}, []string{"Tết Dương Lịch"}},
		{"tet 2024", lunar.SolarDate{Day: 10, Month: 2, Year: 2024}, []string{"Tết Nguyên Đán"}},
		{"mid autumn 2024", lunar.SolarDate{Day: 17, Month: 9, Year: 2024}, []string{"Tết Trung Thu"}},
		{"national day", lunar.SolarDate{Day: 2, Month: 9, Year: 2024}, []string{"Quốc khánh"}},
		{"ordinary day", lunar.SolarDate{Day: 5, Month: 3, Year: 2024}, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := names(c.ForSolarDate(tc.date, lunar.Engine{}, lunar.DefaultTimeZone))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestMatch_HungKingsIsLunar(t *testing.T) {
	c := Builtin()
	got := names(c.Match(lunar.SolarDate{Day: 10, Month: 3, Year: 2024}, lunar.LunarDate{Day: 1, Month: 2, Year: 2024}))
	if len(got) != 0 {
		t.Fatalf("solar 10/3 must not match Giỗ Tổ: %v", got)
	}
	got = names(c.Match(lunar.SolarDate{Day: 18, Month: 4, Year: 2024}, lunar.LunarDate{Day: 10, Month: 3, Year: 2024}))
	if len(got) != 1 || got[0] != "Giỗ Tổ Hùng Vương" {
		t.Fatalf("lunar 10/3 should match Giỗ Tổ, got %v", got)
	}
}

func TestMatch_LeapMonthIgnored(t *testing.T) {
	c := Builtin()
	got := c.Match(lunar.SolarDate{Day: 1, Month: 6, Year: 2020}, lunar.LunarDate{Day: 15, Month: 4, Year: 2020, IsLeapMonth: true})
	if len(got) != 1 || got[0].NameEnglish != "Buddha's Birthday" {
		t.Fatalf("expected Buddha's Birthday in leap month, got %v", names(got))
	}
}

func TestForMonth(t *testing.T) {
	c := Builtin()
	if got := c.ForMonth(1, true); len(got) != 4 {
		t.Fatalf("lunar month 1 should have 4 holidays, got %v", names(got))
	}
	if got := c.ForMonth(9, false); len(got) != 1 {
		t.Fatalf("solar September should have 1 holiday, got %v", names(got))
	}
	if got := c.ForMonth(6, false); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestWith(t *testing.T) {
	base := New()
	extended := base.With(models.Holiday{Name: "Ngày Nhà giáo", Day: 20, Month: 11})
	if len(base.All()) != 0 {
		t.Fatalf("With mutated the receiver")
	}
	if got := extended.ForMonth(11, false); len(got) != 1 {
		t.Fatalf("extra holiday missing: %v", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":    "- name: [",
		"bad month":   "- {name: X, day: 1, month: 13}",
		"lunar day31": "- {name: X, day: 31, month: 1, is_lunar: true}",
		"no name":     "- {day: 1, month: 1}",
	}
	for name, in := range cases {
		if _, err := Parse([]byte(in), "test"); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestIsSpecialLunarDay(t *testing.T) {
	tests := []struct {
		day  int
		name string
		ok   bool
	}{
		{1, SpecialNewMoon, true},
		{15, SpecialFullMoon, true},
		{14, "", false},
		{30, "", false},
	}
	for _, tc := range tests {
		name, ok := IsSpecialLunarDay(lunar.LunarDate{Day: tc.day, Month: 3, Year: 2024})
		if name != tc.name || ok != tc.ok {
			t.Fatalf("day %d: got (%q, %v)", tc.day, name, ok)
		}
	}
}
