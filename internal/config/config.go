package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/terraincognita07/hushline/internal/logger"
)

const minSecretKeyLength = 32

var (
	ErrSecretKeyMissing     = errors.New("secret key is required (--secret-key or HUSHLINE_SECRET_KEY)")
	ErrSecretKeyPlaceholder = errors.New("secret key uses an insecure placeholder value")
	ErrSecretKeyTooShort    = fmt.Errorf("secret key must be at least %d characters", minSecretKeyLength)
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

// Options holds the global command line options. Every option can also be
// set through its environment variable.
type Options struct {
	DBPath    string        `long:"db" env:"HUSHLINE_DB_PATH" default:"data/hushline.db" description:"Path to the credential database"`
	SecretKey string        `long:"secret-key" env:"HUSHLINE_SECRET_KEY" description:"Key used to sign session tokens (at least 32 characters)"`
	Attempts  int           `long:"attempts" env:"HUSHLINE_ATTEMPTS" default:"3" description:"Password attempts before giving up"`
	LogLevel  string        `long:"log-level" env:"HUSHLINE_LOG_LEVEL" default:"warn" description:"Log level (debug, info, warn, error)"`
	TokenTTL  time.Duration `long:"token-ttl" env:"HUSHLINE_TOKEN_TTL" default:"12h" description:"Lifetime of issued session tokens"`
}

// NewParser returns a go-flags parser bound to opts. Commands are added by
// the caller.
func NewParser(opts *Options) *flags.Parser {
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "hushline"
	return parser
}

func (opts *Options) Validate() error {
	if strings.TrimSpace(opts.DBPath) == "" {
		return errors.New("database path is required")
	}
	if opts.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", opts.Attempts)
	}
	if opts.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", opts.TokenTTL)
	}
	if _, err := logger.ParseLevel(opts.LogLevel); err != nil {
		return err
	}
	return nil
}

// ResolveSecretKey returns the signing key. Only commands that issue or
// check tokens need it, so it is validated on demand.
func (opts *Options) ResolveSecretKey() ([]byte, error) {
	secret := strings.TrimSpace(opts.SecretKey)
	if secret == "" {
		return nil, ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[secret]; insecure {
		return nil, ErrSecretKeyPlaceholder
	}
	if len(secret) < minSecretKeyLength {
		return nil, ErrSecretKeyTooShort
	}
	return []byte(secret), nil
}
