// Package theme resolves the light/dark presentation preference of a visitor.
package theme

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// ClientHintHeader carries the ambient color scheme of the visitor's browser.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

// Store persists explicit theme choices per visitor.
type Store interface {
	// Get returns the stored theme of visitor and whether one exists.
	Get(ctx context.Context, visitor string) (domain.Theme, bool, error)
	// Set records an explicit choice for visitor.
	Set(ctx context.Context, visitor string, t domain.Theme) error
}

// Resolve picks the effective theme: an explicit stored choice wins, then the
// ambient client hint. Without either the page follows the browser's
// color scheme (domain.ThemeSystem).
func Resolve(stored domain.Theme, hasStored bool, ambient string) domain.Theme {
	if hasStored {
		if t, ok := domain.ParseTheme(string(stored)); ok {
			return t
		}
	}
	hint := strings.ToLower(strings.Trim(strings.TrimSpace(ambient), `"`))
	if t, ok := domain.ParseTheme(hint); ok {
		return t
	}
	return domain.ThemeSystem
}

// Shown returns the theme a visitor currently sees. For ThemeSystem only the
// browser knows; shown is what the page reported, light when it reported nothing usable.
func Shown(resolved domain.Theme, shown string) domain.Theme {
	if resolved != domain.ThemeSystem {
		return resolved
	}
	if t, ok := domain.ParseTheme(shown); ok {
		return t
	}
	return domain.ThemeLight
}
