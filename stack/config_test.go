package stack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ruuvitag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `thingName: RaspberryPi
iotTopicPrefix: ruuvitag
cloudWatchMetricNameSpace: RuuviTag
ruuviTagId: f3d619998f38
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "RaspberryPi", cfg.ThingName)
	assert.Equal(t, "ruuvitag", cfg.IoTTopicPrefix)
	assert.Equal(t, "RuuviTag", cfg.CloudWatchMetricNamespace)
	assert.Equal(t, "f3d619998f38", cfg.RuuviTagID)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, `thingName: RaspberryPi
topicPrefix: ruuvitag
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topicPrefix")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	path := writeConfig(t, `thingName: RaspberryPi
iotTopicPrefix: ruuvitag
cloudWatchMetricNameSpace: RuuviTag
ruuviTagId: f3d619998f38
`)

	t.Setenv("RUUVITAG_TAG_ID", "c0ffee123456")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "c0ffee123456", cfg.RuuviTagID)
	assert.Equal(t, "RaspberryPi", cfg.ThingName)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		ThingName:                 "RaspberryPi",
		IoTTopicPrefix:            "ruuvitag",
		CloudWatchMetricNamespace: "RuuviTag",
		RuuviTagID:                "f3d619998f38",
	}
	assert.NoError(t, valid.Validate())

	err := Config{ThingName: "RaspberryPi"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iotTopicPrefix")
	assert.Contains(t, err.Error(), "cloudWatchMetricNameSpace")
	assert.Contains(t, err.Error(), "ruuviTagId")
	assert.NotContains(t, err.Error(), "thingName")
}

func TestConfig_DerivedNames(t *testing.T) {
	cfg := Config{
		IoTTopicPrefix:            "ruuvitag",
		CloudWatchMetricNamespace: "RuuviTag",
		RuuviTagID:                "f3d619998f38",
	}

	assert.Equal(t, "ruuvitag/f3d619998f38", cfg.SensorTopic())
	assert.Equal(t, "RuuviTag/f3d619998f38", cfg.MetricNamespace())
}
