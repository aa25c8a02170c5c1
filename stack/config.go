package stack

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Config holds the four inputs the stack is a function of. All fields are
// required; there is no defaulting.
type Config struct {
	// ThingName is the registry name of the device connecting to the broker.
	ThingName string `yaml:"thingName" env:"RUUVITAG_THING_NAME"`

	// IoTTopicPrefix is the MQTT topic prefix the device publishes under.
	IoTTopicPrefix string `yaml:"iotTopicPrefix" env:"RUUVITAG_IOT_TOPIC_PREFIX"`

	// CloudWatchMetricNamespace is the base namespace for ingested metrics.
	CloudWatchMetricNamespace string `yaml:"cloudWatchMetricNameSpace" env:"RUUVITAG_CLOUDWATCH_METRIC_NAMESPACE"`

	// RuuviTagID is the beacon identifier, the last topic segment.
	RuuviTagID string `yaml:"ruuviTagId" env:"RUUVITAG_TAG_ID"`
}

// LoadConfig reads a YAML config file and applies RUUVITAG_* environment
// overrides on top. Unknown YAML keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Environment variables win over the file.
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("reading environment overrides: %w", err)
	}

	return cfg, nil
}

// Validate reports every missing required field at once.
func (c Config) Validate() error {
	var missing []string
	if c.ThingName == "" {
		missing = append(missing, "thingName")
	}
	if c.IoTTopicPrefix == "" {
		missing = append(missing, "iotTopicPrefix")
	}
	if c.CloudWatchMetricNamespace == "" {
		missing = append(missing, "cloudWatchMetricNameSpace")
	}
	if c.RuuviTagID == "" {
		missing = append(missing, "ruuviTagId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// MetricNamespace returns the namespace the routing rule publishes under and
// the dashboard reads from: {namespace}/{tagId}.
func (c Config) MetricNamespace() string {
	return c.CloudWatchMetricNamespace + "/" + c.RuuviTagID
}

// SensorTopic returns the exact topic the routing rule filters on:
// {prefix}/{tagId}.
func (c Config) SensorTopic() string {
	return c.IoTTopicPrefix + "/" + c.RuuviTagID
}
