package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the HTTP service settings.
type Config struct {
	ListenPort      string        // ex: ":3000"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	PublicBaseURL      string        // public origin for generated slug URLs (optional; derived from request when empty)
	DestinationBaseURL string        // origin resolved slugs redirect to
	DestinationPath    string        // path appended to the destination origin (default "/evm")
	SlugTTL            time.Duration // default slug lifetime when the caller supplies no expiry
	SlugSweepInterval  time.Duration // interval between slug store sweeps

	SessionSweepInterval time.Duration // interval between legacy session store sweeps

	LandingFile string // override for the embedded landing page template
	ExpiredFile string // override for the embedded expired page template

	PrimarySlugID      string // slug the root path redirects to when RedirectRootToSlug is set
	RedirectRootToSlug bool

	AllowedHosts []string // optional, restrict access to specific Host headers
}

// BotConfig holds the Discord bot settings.
type BotConfig struct {
	LogLevel  string
	PrettyLog bool

	DiscordToken string // required; missing token aborts startup

	LinkBaseURL      string        // base URL generated links point at
	AppendRenderPath bool          // append the canonical render path to generated links
	LinkExpiryMins   int           // minutes a generated link stays valid

	SlugServiceEnabled bool          // register generated links with the slug service
	SlugServiceOrigin  string        // slug service origin (defaults to LinkBaseURL)
	SlugTimeout        time.Duration // per-registration request timeout

	TemplatesFile string // optional YAML override for bot copy
}

// Load reads the HTTP service configuration from the environment.
func Load() *Config {
	cfg := &Config{
		ListenPort:      getenv("LINKGATE_LISTEN_PORT", ":3000"),
		ShutdownTimeout: mustDuration("LINKGATE_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("LINKGATE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKGATE_PRETTY_LOG", true),

		PublicBaseURL:      normalizeBaseURL(getenv("LINKGATE_PUBLIC_BASE_URL", "")),
		DestinationBaseURL: normalizeBaseURL(requireEnv("LINKGATE_DESTINATION_BASE_URL")),
		DestinationPath:    normalizePath(getenv("LINKGATE_DESTINATION_PATH", "/evm")),
		SlugTTL:            time.Duration(getenvInt("LINKGATE_SLUG_TTL_SECONDS", 600)) * time.Second,
		SlugSweepInterval:  mustDuration("LINKGATE_SLUG_SWEEP_INTERVAL", time.Minute),

		SessionSweepInterval: mustDuration("LINKGATE_SESSION_SWEEP_INTERVAL", 10*time.Minute),

		LandingFile: getenv("LINKGATE_LANDING_FILE", ""),
		ExpiredFile: getenv("LINKGATE_EXPIRED_FILE", ""),

		PrimarySlugID:      getenv("LINKGATE_PRIMARY_SLUG", ""),
		RedirectRootToSlug: mustBool("LINKGATE_REDIRECT_ROOT_TO_SLUG", false),

		AllowedHosts: splitAndTrim(getenv("LINKGATE_ALLOWED_HOSTS", "")),
	}

	return cfg
}

// LoadBot reads the bot configuration from the environment.
func LoadBot() *BotConfig {
	linkBase := normalizeBaseURL(requireEnv("LINKGATE_LINK_BASE_URL"))

	cfg := &BotConfig{
		LogLevel:  getenv("LINKGATE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKGATE_PRETTY_LOG", true),

		DiscordToken: requireEnv("DISCORD_TOKEN"),

		LinkBaseURL:      linkBase,
		AppendRenderPath: mustBool("LINKGATE_APPEND_RENDER_PATH", true),
		LinkExpiryMins:   getenvInt("LINKGATE_LINK_EXPIRATION_MINUTES", 6),

		SlugServiceEnabled: mustBool("LINKGATE_ENABLE_SLUG_SERVICE", true),
		SlugServiceOrigin:  normalizeBaseURL(getenv("LINKGATE_SLUG_SERVICE_ORIGIN", linkBase)),
		SlugTimeout:        mustDuration("LINKGATE_SLUG_REQUEST_TIMEOUT", 5*time.Second),

		TemplatesFile: getenv("LINKGATE_BOT_TEMPLATES_FILE", ""),
	}

	if cfg.LinkExpiryMins <= 0 {
		cfg.LinkExpiryMins = 6
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
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

// normalizeBaseURL trims whitespace and a trailing slash so URL composition
// never doubles separators.
func normalizeBaseURL(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, "/")
}

// normalizePath guarantees a leading slash.
func normalizePath(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "/"
	}
	if !strings.HasPrefix(s, "/") {
		return "/" + s
	}
	return s
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
