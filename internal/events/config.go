package events

import (
	"errors"
	"time"

	"github.com/aquascope-io/aquascope/internal/config"
)

const (
	defaultTopic        = "aquascope.report-events"
	defaultBatchTimeout = 100 * time.Millisecond
)

// ErrNoBrokers is returned when event publishing is enabled without any broker addresses.
var ErrNoBrokers = errors.New("kafka brokers cannot be empty when events are enabled")

// Config holds Kafka publisher configuration.
type Config struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// LoadConfig loads Kafka publisher configuration from environment variables.
// Publishing is opt-in: with KAFKA_EVENTS_ENABLED unset the stores fall back
// to the no-op publisher.
func LoadConfig() *Config {
	return &Config{
		Enabled:      config.GetEnvBool("KAFKA_EVENTS_ENABLED", false),
		Brokers:      config.ParseCommaSeparatedList(config.GetEnvStr("KAFKA_BROKERS", "")),
		Topic:        config.GetEnvStr("KAFKA_TOPIC", defaultTopic),
		BatchTimeout: config.GetEnvDuration("KAFKA_BATCH_TIMEOUT", defaultBatchTimeout),
	}
}

// Validate checks the configuration is usable for publishing.
func (c *Config) Validate() error {
	if c.Enabled && len(c.Brokers) == 0 {
		return ErrNoBrokers
	}

	return nil
}
