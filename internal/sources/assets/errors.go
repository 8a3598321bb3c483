package assets

import (
	"fmt"
	"path"
	"strings"
)

// LoadError reports that the asset list could not be fetched or decoded.
// Callers show a fallback message and keep the item list empty.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load assets from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// File returns the base name of the source, used in user-facing messages.
func (e *LoadError) File() string {
	return SourceFile(e.Source)
}

// SourceFile returns the file name part of a path or URL.
func SourceFile(source string) string {
	s := source
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(strings.ReplaceAll(s, `\`, "/"), "/")
	if s == "" {
		return source
	}
	return path.Base(s)
}
