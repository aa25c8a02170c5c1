package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
)

const exampleConfig = "../../examples/ruuvitag.yaml"

func TestRunSynth_ExampleConfig(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "template.json")

	err := runSynth(exampleConfig, "json", outputFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var template ruuvitag.Template
	require.NoError(t, json.Unmarshal(data, &template))

	assert.Equal(t, "2010-09-09", template.AWSTemplateFormatVersion)
	assert.Len(t, template.Resources, 10)

	rule, ok := template.Resources["SensorDataRule"]
	require.True(t, ok)
	payload := rule.Properties["TopicRulePayload"].(map[string]any)
	assert.Equal(t, "SELECT temperature, humidity FROM 'ruuvitag/f3d619998f38'", payload["Sql"])
}

func TestRunSynth_MissingConfig(t *testing.T) {
	err := runSynth(filepath.Join(t.TempDir(), "absent.yaml"), "json", "")
	require.Error(t, err)
}

func TestRunSynth_UnknownFormat(t *testing.T) {
	err := runSynth(exampleConfig, "toml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestLoadStack_EnvironmentOverride(t *testing.T) {
	t.Setenv("RUUVITAG_TAG_ID", "c0ffee123456")

	st, err := loadStack(exampleConfig)
	require.NoError(t, err)

	entry, ok := st.Lookup("MonitoringDashboard")
	require.True(t, ok)
	assert.NotNil(t, entry.Resource)
}
