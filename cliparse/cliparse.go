package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	AuthTokenSecret string
	ShareCodeSalt   string
	SiteURL         string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("behavior-chart", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.SiteURL, "site-url", "", "Public site URL used in share links")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AuthTokenSecret, "token-secret", "", "Bearer token signing secret (prefer env)")
	fs.StringVar(&cfg.ShareCodeSalt, "code-salt", "", "Session share code salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4210 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.AuthTokenSecret == "" {
		cfg.AuthTokenSecret = os.Getenv("AUTH_TOKEN_SECRET")
	}
	if cfg.AuthTokenSecret == "" {
		return Config{}, errors.New("AUTH_TOKEN_SECRET required")
	}

	if cfg.ShareCodeSalt == "" {
		cfg.ShareCodeSalt = os.Getenv("SHARE_CODE_SALT")
	}
	if cfg.ShareCodeSalt == "" {
		return Config{}, errors.New("SHARE_CODE_SALT required")
	}

	if cfg.SiteURL == "" {
		cfg.SiteURL = os.Getenv("SITE_URL")
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	return cfg, nil
}

// DriverName maps the configured database type to its sql driver name.
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
