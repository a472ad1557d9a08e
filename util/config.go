package util

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

// DevSigningKey is the only signing key accepted in development mode when
// none is configured. Startup fails if it leaks into a non-development
// configuration.
const DevSigningKey = "taskhub-development-signing-key-0000000000000000"

// minimum signing key length, 256 bits
const minSigningKeyLength = 32

// Config is TaskHub base configuration
type Config struct {
	Server Server `yaml:"server"`
	Auth   Auth   `yaml:"auth"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Auth struct {
	SigningKey string `yaml:"signingKey"`
	Issuer     string `yaml:"issuer"`
	Audience   string `yaml:"audience"`
	TokenTTL   string `yaml:"tokenTTL"`
	DevMode    bool   `yaml:"devMode"`
}

// TTL returns the configured token lifetime, defaulting to one hour.
// Issuing longer-lived tokens is a caller policy choice, not a codec one.
func (a Auth) TTL() time.Duration {
	if a.TokenTTL == "" {
		return time.Hour
	}
	ttl, err := time.ParseDuration(a.TokenTTL)
	if err != nil || ttl <= 0 {
		return time.Hour
	}
	return ttl
}

// Load loads taskhub config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&c)
	if err != nil {
		return err
	}

	return nil
}

// Validate enforces the signing-key contract. Outside development mode the
// key must be externally supplied; the process refuses to start otherwise.
func (c *Config) Validate() error {
	if c.Auth.DevMode && c.Auth.SigningKey == "" {
		c.Auth.SigningKey = DevSigningKey
	}

	if c.Auth.SigningKey == "" {
		return fmt.Errorf("auth.signingKey is required")
	}

	if !c.Auth.DevMode && c.Auth.SigningKey == DevSigningKey {
		return fmt.Errorf("auth.signingKey is the development default; refusing to start outside devMode")
	}

	if len(c.Auth.SigningKey) < minSigningKeyLength {
		return fmt.Errorf("auth.signingKey must be at least %d bytes", minSigningKeyLength)
	}

	return nil
}
