package types

import "fmt"

// Theme represents the UI color theme preference stored in settings
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// AllThemes returns all valid themes
func AllThemes() []Theme {
	return []Theme{
		ThemeLight,
		ThemeDark,
		ThemeAuto,
	}
}

// IsValid checks if the theme is valid
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeAuto:
		return true
	default:
		return false
	}
}

// Normalize returns the theme, treating empty as ThemeAuto
func (t Theme) Normalize() Theme {
	if t == "" {
		return ThemeAuto
	}
	return t
}

// String returns the string representation of the theme
func (t Theme) String() string {
	return string(t)
}

// ParseTheme parses a string into a Theme
func ParseTheme(s string) (Theme, error) {
	theme := Theme(s)
	if !theme.IsValid() {
		return "", fmt.Errorf("invalid theme: %s", s)
	}
	return theme, nil
}
