package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultLocalAPIURL is the development backend origin.
const DefaultLocalAPIURL = "http://localhost:3001"

// staticHostingDomains are host substrings served by the static hosting
// platform, where the API lives on the same origin as the page.
var staticHostingDomains = []string{"netlify.app", "netlify.com"}

// ClientConfig holds configuration for the qboard terminal client.
type ClientConfig struct {
	APIURL    string
	PageHost  string
	MirrorDir string
	LogLevel  string
	PIN       string
	Password  string
	Debounce  time.Duration
	Retries   int
	RetryUnit time.Duration
	Timeout   time.Duration
}

// LoadClient reads client configuration from the environment.
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	return &ClientConfig{
		APIURL:    os.Getenv("QBOARD_API_URL"),
		PageHost:  os.Getenv("QBOARD_PAGE_HOST"),
		MirrorDir: getEnv("QBOARD_MIRROR_DIR", defaultMirrorDir()),
		LogLevel:  getEnv("QBOARD_LOG_LEVEL", "warn"),
		PIN:       getEnv("QBOARD_PIN", "1965"),
		Password:  getEnv("QBOARD_PASSWORD", "1965"),
		Debounce:  getEnvDuration("QBOARD_DEBOUNCE", 500*time.Millisecond),
		Retries:   getEnvInt("QBOARD_RETRIES", 2),
		RetryUnit: getEnvDuration("QBOARD_RETRY_UNIT", time.Second),
		Timeout:   getEnvDuration("QBOARD_TIMEOUT", 10*time.Second),
	}
}

// BaseURL resolves the backend base URL for this client.
func (c *ClientConfig) BaseURL() string {
	return ResolveBaseURL(c.APIURL, c.PageHost)
}

// Endpoint returns an absolute origin for HTTP calls. A same-origin base
// resolves against the page host.
func (c *ClientConfig) Endpoint() string {
	base := c.BaseURL()
	if base == "" && c.PageHost != "" {
		return "https://" + c.PageHost
	}
	return base
}

// ResolveBaseURL picks the backend base URL. An explicit override wins.
// Pages served from the static hosting platform use the same origin, which
// is reported as an empty base. Everything else targets local development.
func ResolveBaseURL(override, pageHost string) string {
	if override != "" {
		return strings.TrimRight(override, "/")
	}
	host := strings.ToLower(pageHost)
	for _, domain := range staticHostingDomains {
		if host != "" && strings.Contains(host, domain) {
			return ""
		}
	}
	return DefaultLocalAPIURL
}

func defaultMirrorDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "qboard", "mirror")
}
