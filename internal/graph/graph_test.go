package graph

import (
	"strings"
	"testing"

	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/stack"
)

func monitoringStack(t *testing.T) *stack.Stack {
	t.Helper()
	st, err := stack.New(stack.Config{
		ThingName:                 "RaspberryPi",
		IoTTopicPrefix:            "ruuvitag",
		CloudWatchMetricNamespace: "RuuviTag",
		RuuviTagID:                "f3d619998f38",
	})
	if err != nil {
		t.Fatalf("building stack: %v", err)
	}
	return st
}

func TestGenerator_Generate_DOT(t *testing.T) {
	gen := &Generator{}
	var sb strings.Builder
	if err := gen.Generate(monitoringStack(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	if !strings.Contains(output, "digraph") {
		t.Error("expected digraph declaration")
	}
	for _, name := range []string{stack.SensorThing, stack.DeviceCredentials, stack.SensorDataRule, stack.MonitoringDashboard} {
		if !strings.Contains(output, name) {
			t.Errorf("expected %s node", name)
		}
	}

	// Intrinsic-only edges (e.g. the dashboard's namespace is fixed text,
	// but the attachments use GetAtt) render blue.
	if !strings.Contains(output, "blue") {
		t.Error("expected blue color for intrinsic reference edge")
	}
}

func TestGenerator_Generate_ClusterByService(t *testing.T) {
	gen := &Generator{ClusterByService: true}
	var sb strings.Builder
	if err := gen.Generate(monitoringStack(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	// Five IoT resources share a cluster.
	if !strings.Contains(output, "cluster_IoT") {
		t.Error("expected IoT cluster subgraph")
	}
}

func TestGenerator_Generate_MermaidFormat(t *testing.T) {
	gen := &Generator{Format: FormatMermaid}
	var sb strings.Builder
	if err := gen.Generate(monitoringStack(t), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := sb.String()

	if !strings.Contains(output, "graph") && !strings.Contains(output, "flowchart") {
		t.Errorf("expected mermaid graph/flowchart, got:\n%s", output)
	}
	if strings.Contains(output, "digraph") {
		t.Error("expected mermaid format, not DOT")
	}
}

func TestGenerator_GenerateString(t *testing.T) {
	gen := &Generator{}
	output, err := gen.GenerateString(monitoringStack(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(output, stack.RuleExecutionRole) {
		t.Errorf("expected %s in output", stack.RuleExecutionRole)
	}
}

func TestExtractService(t *testing.T) {
	cases := map[string]string{
		"AWS::IoT::Thing":               "IoT",
		"AWS::SecretsManager::Secret":   "SecretsManager",
		"Custom::IoTKeysAndCertificate": "Custom",
		"AWS::CloudWatch::Dashboard":    "CloudWatch",
	}
	for cfType, want := range cases {
		if got := extractService(cfType); got != want {
			t.Errorf("extractService(%q) = %q, want %q", cfType, got, want)
		}
	}
}
