package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/stack"
)

func testStack(t *testing.T) *stack.Stack {
	t.Helper()
	st, err := stack.New(stack.Config{
		ThingName:                 "RaspberryPi",
		IoTTopicPrefix:            "ruuvitag",
		CloudWatchMetricNamespace: "RuuviTag",
		RuuviTagID:                "f3d619998f38",
	})
	require.NoError(t, err)
	return st
}

func TestBuild(t *testing.T) {
	template, err := NewBuilder(testStack(t)).Build()
	require.NoError(t, err)

	assert.Equal(t, "2010-09-09", template.AWSTemplateFormatVersion)
	assert.Len(t, template.Resources, 10)

	thing, ok := template.Resources[stack.SensorThing]
	require.True(t, ok)
	assert.Equal(t, "AWS::IoT::Thing", thing.Type)
	assert.Equal(t, "RaspberryPi", thing.Properties["ThingName"])

	rule := template.Resources[stack.SensorDataRule]
	assert.Equal(t, "AWS::IoT::TopicRule", rule.Type)
	assert.ElementsMatch(t, []string{stack.RuleErrorLogs, stack.RuleExecutionRole}, rule.DependsOn)

	attachment := template.Resources[stack.ThingCredentialsAttachment]
	assert.Contains(t, attachment.DependsOn, stack.SensorThing)
	assert.Contains(t, attachment.DependsOn, stack.DeviceCredentials)
}

func TestBuild_Deterministic(t *testing.T) {
	first, err := NewBuilder(testStack(t)).Build()
	require.NoError(t, err)
	second, err := NewBuilder(testStack(t)).Build()
	require.NoError(t, err)

	firstJSON, err := ToJSON(first)
	require.NoError(t, err)
	secondJSON, err := ToJSON(second)
	require.NoError(t, err)

	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestOrder(t *testing.T) {
	order, err := NewBuilder(testStack(t)).Order()
	require.NoError(t, err)
	require.Len(t, order, 10)

	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}

	// Explicit edges.
	assert.Less(t, position[stack.SensorThing], position[stack.ThingCredentialsAttachment])
	assert.Less(t, position[stack.DeviceCredentials], position[stack.ThingCredentialsAttachment])
	assert.Less(t, position[stack.DevicePolicy], position[stack.PolicyCredentialsAttachment])
	assert.Less(t, position[stack.RuleErrorLogs], position[stack.SensorDataRule])
	assert.Less(t, position[stack.RuleExecutionRole], position[stack.SensorDataRule])

	// Implicit edge: the secret embeds GetAtt references to the credentials.
	assert.Less(t, position[stack.DeviceCredentials], position[stack.DeviceCredentialsSecret])
}

func TestDependencies_IncludesIntrinsicEdges(t *testing.T) {
	deps, err := NewBuilder(testStack(t)).Dependencies()
	require.NoError(t, err)

	// GetAtt inside TopicRulePayload actions points at the role and log group.
	assert.Contains(t, deps[stack.SensorDataRule], stack.RuleExecutionRole)
	assert.Contains(t, deps[stack.SensorDataRule], stack.RuleErrorLogs)

	// The secret references the credentials through Sub variables too; the
	// merged edge set stays deduplicated.
	assert.Equal(t, []string{stack.DeviceCredentials}, deps[stack.DeviceCredentialsSecret])

	// The thing depends on nothing.
	assert.Empty(t, deps[stack.SensorThing])
}

func TestToYAML(t *testing.T) {
	template, err := NewBuilder(testStack(t)).Build()
	require.NoError(t, err)

	data, err := ToYAML(template)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "AWSTemplateFormatVersion:")
	assert.Contains(t, out, "AWS::IoT::TopicRule")
	assert.Contains(t, out, "SELECT temperature, humidity FROM 'ruuvitag/f3d619998f38'")
}
