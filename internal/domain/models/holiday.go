package models

// Holiday is a fixed observance on either the solar or the lunar calendar.
//
// Fields:
//   - Name: Vietnamese name (e.g., "Tết Nguyên Đán").
//   - NameEnglish: English name.
//   - Day, Month: calendar position; lunar when IsLunar is set.
//   - IsLunar: whether Day/Month are lunar.
//   - Description: short free-form text.
//   - Emoji: optional display glyph.
//   - Source: "builtin" for the embedded table, or the ingested file name.
//
// swagger:model Holiday
type Holiday struct {
	Name        string `json:"name" yaml:"name" example:"Tết Nguyên Đán"`
	NameEnglish string `json:"name_english" yaml:"name_english" example:"Lunar New Year"`
	Day         int    `json:"day" yaml:"day" example:"1"`
	Month       int    `json:"month" yaml:"month" example:"1"`
	IsLunar     bool   `json:"is_lunar" yaml:"is_lunar" example:"true"`
	Description string `json:"description,omitempty" yaml:"description"`
	Emoji       string `json:"emoji,omitempty" yaml:"emoji"`
	Source      string `json:"source,omitempty" yaml:"-"`
}

// SourceBuiltin tags holidays that ship with the binary.
const SourceBuiltin = "builtin"
