package ncbi

import (
	"os"
	"time"
)

// Environment variables read once at startup
const (
	EnvAPIKey            = "NCBI_API_KEY"
	EnvEmail             = "NCBI_EMAIL"
	EnvBlastPollInterval = "NCBI_BLAST_POLL_INTERVAL"
	EnvBlastMaxWait      = "NCBI_BLAST_MAX_WAIT"
)

// Defaults
const (
	// ToolName identifies this client to NCBI, required by usage policy
	ToolName = "ncbi-mcp-server"

	// DefaultEmail is sent when NCBI_EMAIL is unset; NCBI asks for a
	// contact address on every request.
	DefaultEmail = "user@example.com"

	DefaultBaseURL      = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultBlastBaseURL = "https://blast.ncbi.nlm.nih.gov/Blast.cgi"

	DefaultHTTPTimeout = 30 * time.Second

	// BLAST jobs routinely take minutes. NCBI asks clients not to poll
	// more than once every 10 seconds.
	DefaultBlastPollInterval = 15 * time.Second
	DefaultBlastMaxWait      = 5 * time.Minute

	// MaxIDsPerSummary bounds a single esummary request. The remote cap is
	// higher, but large id lists belong in multiple requests.
	MaxIDsPerSummary = 200
)

// Config holds NCBI client configuration. Loaded once at startup and
// immutable for the process lifetime.
type Config struct {
	APIKey string
	Email  string
	Tool   string

	BaseURL      string
	BlastBaseURL string

	HTTPTimeout       time.Duration
	BlastPollInterval time.Duration
	BlastMaxWait      time.Duration
}

// NewFromEnv builds a Config from environment variables, falling back to
// package defaults for anything unset. Malformed durations fall back rather
// than fail: a misconfigured poll interval should not keep the server from
// starting.
func NewFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv(EnvAPIKey)
	if email := os.Getenv(EnvEmail); email != "" {
		cfg.Email = email
	}
	if d := durationFromEnv(EnvBlastPollInterval); d > 0 {
		cfg.BlastPollInterval = d
	}
	if d := durationFromEnv(EnvBlastMaxWait); d > 0 {
		cfg.BlastMaxWait = d
	}
	return cfg
}

// DefaultConfig returns a Config with all defaults and no credentials
func DefaultConfig() Config {
	return Config{
		Email:             DefaultEmail,
		Tool:              ToolName,
		BaseURL:           DefaultBaseURL,
		BlastBaseURL:      DefaultBlastBaseURL,
		HTTPTimeout:       DefaultHTTPTimeout,
		BlastPollInterval: DefaultBlastPollInterval,
		BlastMaxWait:      DefaultBlastMaxWait,
	}
}

func durationFromEnv(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}
