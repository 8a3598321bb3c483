package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Catalog
	DataSource     string        // path or http(s) URL of the asset list (ex: ./vrchat_assets.json)
	FetchTimeout   time.Duration // timeout for fetching a remote data source
	MaxDataBytes   int64         // upper bound on the asset list size
	ReloadInterval time.Duration // periodic reload of the data source, 0 = only manual reloads
	Locale         string        // BCP 47 tag used to collate names (ex: "en", "fr")
	DefaultSort    string        // sort key used when the request has none

	// Theme preferences
	PreferenceTTL      time.Duration // lifetime of a stored theme choice
	PreferenceSweep    time.Duration // sweep interval of the in-memory preference store
	CookieHashKey      string        // HMAC key for the visitor cookie, random per process when empty
	CookieSecure       bool          // mark the visitor cookie Secure
	ClientHintsEnabled bool          // advertise Sec-CH-Prefers-Color-Scheme

	// Redis (optional, empty address => in-memory preferences)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password when Redis is enabled
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Access restrictions
	AllowedHosts []string // optional, restrict page routes to specific Host headers
	AllowedCIDRS []string // optional, restrict /reload, /readyz, /infra to specific IPs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Rate limiting of mutating endpoints (/theme, /reload)
	RateLimitBurst  int // bucket size per client IP
	RateLimitPerMin int // refill per client IP per minute
}

// RedisEnabled reports whether a Redis preference store is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SHELF_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SHELF_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("SHELF_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SHELF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SHELF_PRETTY_LOG", true),

		// Catalog
		DataSource:     getenv("SHELF_DATA_SOURCE", "vrchat_assets.json"),
		FetchTimeout:   mustDuration("SHELF_FETCH_TIMEOUT", 10*time.Second),
		MaxDataBytes:   int64(getenvInt("SHELF_MAX_DATA_BYTES", 16<<20)),
		ReloadInterval: mustDuration("SHELF_RELOAD_INTERVAL", time.Hour),
		Locale:         getenv("SHELF_LOCALE", "en"),
		DefaultSort:    getenv("SHELF_DEFAULT_SORT", "name-asc"),

		// Theme preferences
		PreferenceTTL:      mustDuration("SHELF_PREFERENCE_TTL", 365*24*time.Hour),
		PreferenceSweep:    mustDuration("SHELF_PREFERENCE_SWEEP_INTERVAL", time.Hour),
		CookieHashKey:      getenv("SHELF_COOKIE_HASH_KEY", ""),
		CookieSecure:       mustBool("SHELF_COOKIE_SECURE", false),
		ClientHintsEnabled: mustBool("SHELF_CLIENT_HINTS", true),

		// Redis settings
		RedisAddr:             getenv("SHELF_REDIS_ADDR", ""),
		RedisUser:             getenv("SHELF_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SHELF_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SHELF_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SHELF_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SHELF_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("SHELF_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SHELF_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("SHELF_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("SHELF_RATE_LIMIT_PER_MIN", 60),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.CookieHashKey != "" {
			cfgCopy.CookieHashKey = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() error {
	if c.DataSource == "" {
		return fmt.Errorf("SHELF_DATA_SOURCE must not be empty")
	}
	if c.MaxDataBytes <= 0 {
		return fmt.Errorf("SHELF_MAX_DATA_BYTES must be > 0, got %d", c.MaxDataBytes)
	}
	if c.ReloadInterval < 0 {
		return fmt.Errorf("SHELF_RELOAD_INTERVAL must be >= 0, got %v", c.ReloadInterval)
	}
	if c.PreferenceTTL <= 0 {
		return fmt.Errorf("SHELF_PREFERENCE_TTL must be > 0, got %v", c.PreferenceTTL)
	}
	if c.PreferenceSweep <= 0 {
		return fmt.Errorf("SHELF_PREFERENCE_SWEEP_INTERVAL must be > 0, got %v", c.PreferenceSweep)
	}
	if c.RedisEnabled() && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("SHELF_REDIS_PASSWORD is required when SHELF_REDIS_PASSWORD_REQUIRED=true")
	}
	if n := len(c.CookieHashKey); n != 0 && n < 32 {
		return fmt.Errorf("SHELF_COOKIE_HASH_KEY must be at least 32 bytes, got %d", n)
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
