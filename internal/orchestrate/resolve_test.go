package orchestrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/synth"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/stack"
)

func buildTemplate(t *testing.T) *Resolved {
	t.Helper()
	st, err := stack.New(stack.Config{
		ThingName:                 "RaspberryPi",
		IoTTopicPrefix:            "ruuvitag",
		CloudWatchMetricNamespace: "RuuviTag",
		RuuviTagID:                "f3d619998f38",
	})
	require.NoError(t, err)

	template, err := synth.NewBuilder(st).Build()
	require.NoError(t, err)

	resolved, err := ResolveCredentials(template)
	require.NoError(t, err)
	return resolved
}

func TestResolveCredentials_RemovesPlaceholder(t *testing.T) {
	resolved := buildTemplate(t)

	assert.NotContains(t, resolved.Template.Resources, stack.DeviceCredentials)
	assert.Len(t, resolved.Template.Resources, 9)
}

func TestResolveCredentials_InjectsParameters(t *testing.T) {
	resolved := buildTemplate(t)

	// Arn from the attachments, Pem and PrivateKey from the secret.
	assert.ElementsMatch(t, []string{
		"DeviceCredentialsArn",
		"DeviceCredentialsCertificatePem",
		"DeviceCredentialsPrivateKey",
	}, resolved.ParameterNames())

	assert.False(t, resolved.Template.Parameters["DeviceCredentialsArn"].NoEcho)
	assert.True(t, resolved.Template.Parameters["DeviceCredentialsCertificatePem"].NoEcho)
	assert.True(t, resolved.Template.Parameters["DeviceCredentialsPrivateKey"].NoEcho)
}

func TestResolveCredentials_RewritesReferences(t *testing.T) {
	resolved := buildTemplate(t)

	attachment := resolved.Template.Resources[stack.ThingCredentialsAttachment]
	assert.Equal(t, map[string]any{"Ref": "DeviceCredentialsArn"},
		attachment.Properties["Principal"])

	// DependsOn no longer mentions the removed placeholder.
	assert.Equal(t, []string{stack.SensorThing}, attachment.DependsOn)

	secret := resolved.Template.Resources[stack.DeviceCredentialsSecret]
	assert.Empty(t, secret.DependsOn)
	sub := secret.Properties["SecretString"].(map[string]any)["Fn::Sub"].([]any)
	variables := sub[1].(map[string]any)
	assert.Equal(t, map[string]any{"Ref": "DeviceCredentialsPrivateKey"}, variables["PrivateKey"])
}

func TestResolveCredentials_LeavesInputUntouched(t *testing.T) {
	st, err := stack.New(stack.Config{
		ThingName:                 "RaspberryPi",
		IoTTopicPrefix:            "ruuvitag",
		CloudWatchMetricNamespace: "RuuviTag",
		RuuviTagID:                "f3d619998f38",
	})
	require.NoError(t, err)
	template, err := synth.NewBuilder(st).Build()
	require.NoError(t, err)

	_, err = ResolveCredentials(template)
	require.NoError(t, err)

	assert.Contains(t, template.Resources, stack.DeviceCredentials)
	attachment := template.Resources[stack.ThingCredentialsAttachment]
	assert.Contains(t, attachment.Properties["Principal"], "Fn::GetAtt")
	assert.Contains(t, attachment.DependsOn, stack.DeviceCredentials)
}
