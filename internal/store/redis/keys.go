package redis

const (
	// KeyPrefixTheme is the prefix for per-visitor theme preference keys
	KeyPrefixTheme = "shelf:theme:"
)

// ThemeKey returns the Redis key holding the theme preference of a visitor
func ThemeKey(visitor string) string {
	return KeyPrefixTheme + visitor
}
