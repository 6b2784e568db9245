package app

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const minSecretLength = 32

type Config struct {
	RunAddress     string
	DatabaseURI    string
	LogLevel       string
	JWTSecretKey   string
	MigrationsPath string
	RedisAddr      string
	TokenTTL       time.Duration
	RefreshTTL     time.Duration
	LoginRPS       float64
	LoginBurst     int
	AdminLogin     string
	AdminPassword  string
	TrustProxy     bool
}

func NewConfigFromFlags() (*Config, error) {
	return ParseConfig(os.Args[1:], os.Getenv)
}

// ParseConfig reads flags from args, then lets non-empty environment variables override them.
func ParseConfig(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("ezion", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", "localhost:8080", "Server address (env: RUN_ADDRESS)")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "Database URI (env: DATABASE_URI)")
	fs.StringVar(&cfg.LogLevel, "l", "debug", "Log level (debug|info|warn|error) (env: LOG_LEVEL)")
	fs.StringVar(&cfg.JWTSecretKey, "jwt-secret", "", "JWT secret key (env: JWT_SECRET_KEY)")
	fs.StringVar(&cfg.MigrationsPath, "migrations", "./migrations", "Path to migrations folder (env: MIGRATIONS_PATH)")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "Redis address for revoked tokens, in-memory when empty (env: REDIS_ADDR)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 24*time.Hour, "Access token lifetime (env: TOKEN_TTL)")
	fs.DurationVar(&cfg.RefreshTTL, "refresh-ttl", 7*24*time.Hour, "Refresh token lifetime (env: REFRESH_TOKEN_TTL)")
	fs.Float64Var(&cfg.LoginRPS, "login-rps", 1, "Login attempts per second per client (env: LOGIN_RATE_RPS)")
	fs.IntVar(&cfg.LoginBurst, "login-burst", 5, "Login burst per client (env: LOGIN_RATE_BURST)")
	fs.StringVar(&cfg.AdminLogin, "admin-login", "admin", "Bootstrap administrator username (env: ADMIN_LOGIN)")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Bootstrap administrator password, skipped when empty (env: ADMIN_PASSWORD)")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Take the client IP from X-Forwarded-For/X-Real-IP (env: TRUST_PROXY)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvVars(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvVars(getenv func(string) string) error {
	texts := map[string]*string{
		"RUN_ADDRESS":     &c.RunAddress,
		"DATABASE_URI":    &c.DatabaseURI,
		"LOG_LEVEL":       &c.LogLevel,
		"JWT_SECRET_KEY":  &c.JWTSecretKey,
		"MIGRATIONS_PATH": &c.MigrationsPath,
		"REDIS_ADDR":      &c.RedisAddr,
		"ADMIN_LOGIN":     &c.AdminLogin,
		"ADMIN_PASSWORD":  &c.AdminPassword,
	}
	for name, dst := range texts {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"TOKEN_TTL":         &c.TokenTTL,
		"REFRESH_TOKEN_TTL": &c.RefreshTTL,
	}
	for name, dst := range durations {
		if v := getenv(name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = d
		}
	}

	if v := getenv("TRUST_PROXY"); v != "" {
		trust, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TRUST_PROXY: %w", err)
		}
		c.TrustProxy = trust
	}

	if v := getenv("LOGIN_RATE_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid LOGIN_RATE_RPS: %w", err)
		}
		c.LoginRPS = rps
	}
	if v := getenv("LOGIN_RATE_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LOGIN_RATE_BURST: %w", err)
		}
		c.LoginBurst = burst
	}
	return nil
}

// Validate reports configuration the server cannot start with.
// Outside debug level the JWT secret must be set and at least 32 bytes long.
func (c *Config) Validate() error {
	if c.DatabaseURI == "" {
		return errors.New("database URI is required (use -d flag or DATABASE_URI env)")
	}
	if c.LogLevel != "debug" && len(c.JWTSecretKey) < minSecretLength {
		return fmt.Errorf("JWT secret key must be at least %d bytes (use -jwt-secret flag or JWT_SECRET_KEY env)", minSecretLength)
	}
	if c.TokenTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.LoginRPS <= 0 || c.LoginBurst <= 0 {
		return errors.New("login rate limit must be positive")
	}
	return nil
}

func (c *Config) MaskDBPassword() string {
	u, err := url.Parse(c.DatabaseURI)
	if err != nil {
		return c.DatabaseURI
	}

	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}
