package domain

// Theme is the binary presentation preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// ThemeSystem defers to the browser's prefers-color-scheme media query.
	// It is never stored.
	ThemeSystem Theme = "system"
)

// ParseTheme returns the theme for s and whether s named one.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// Toggle returns the opposite theme. ThemeSystem toggles like light.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
