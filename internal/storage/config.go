package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/aquascope-io/aquascope/internal/config"
)

const (
	// DefaultDatabaseName is the logical database used when MONGO_DB_NAME is unset.
	DefaultDatabaseName = "water_quality_db"

	defaultConnectTimeout = 10 * time.Second
	defaultPingTimeout    = 5 * time.Second
)

var (
	// ErrMongoURIEmpty is returned when the connection URI is an empty string.
	ErrMongoURIEmpty = errors.New("mongo URI cannot be empty")
)

// Config holds MongoDB connection configuration with defaults.
// Pool sizing and multiplexing are delegated entirely to the driver.
type Config struct {
	mongoURI       string
	DatabaseName   string
	ConnectTimeout time.Duration // Maximum time to establish the initial connection
	PingTimeout    time.Duration // Maximum time for the startup liveness check
}

// LoadConfig loads MongoDB configuration from environment variables with
// fallback to defaults. MONGO_URI has no default: a missing URI surfaces as a
// connection error at connect time rather than a validated pre-check.
func LoadConfig() *Config {
	return &Config{
		mongoURI:       config.GetEnvStr("MONGO_URI", ""), // mongoURI is private for obvious reasons.
		DatabaseName:   config.GetEnvStr("MONGO_DB_NAME", DefaultDatabaseName),
		ConnectTimeout: config.GetEnvDuration("MONGO_CONNECT_TIMEOUT", defaultConnectTimeout),
		PingTimeout:    config.GetEnvDuration("MONGO_PING_TIMEOUT", defaultPingTimeout),
	}
}

// Validate checks if the MongoDB configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.mongoURI) == "" {
		return ErrMongoURIEmpty
	}

	return nil
}

// MaskMongoURI returns a masked connection URI safe for logging.
func (c *Config) MaskMongoURI() string {
	if c.mongoURI == "" {
		return ""
	}

	// Find the scheme separator
	schemeEnd := strings.Index(c.mongoURI, "://")
	if schemeEnd == -1 {
		return c.mongoURI
	}

	// Find the last @ which separates userinfo from host
	afterScheme := c.mongoURI[schemeEnd+3:]

	lastAtIndex := strings.LastIndex(afterScheme, "@")
	if lastAtIndex == -1 {
		// No @ found, no userinfo
		return c.mongoURI
	}

	// Extract userinfo
	userInfo := afterScheme[:lastAtIndex]

	colonIndex := strings.Index(userInfo, ":")
	if colonIndex == -1 {
		// No password
		return c.mongoURI
	}

	username := userInfo[:colonIndex]
	password := userInfo[colonIndex+1:]

	if password == "" {
		// Empty password, don't mask
		return c.mongoURI
	}

	scheme := c.mongoURI[:schemeEnd]
	hostAndRest := afterScheme[lastAtIndex:]

	return scheme + "://" + username + ":***" + hostAndRest
}
