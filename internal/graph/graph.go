// Package graph renders the stack's dependency graph in DOT and Mermaid
// formats.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/synth"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/stack"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator renders dependency graphs from a declared stack.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate writes the stack's dependency graph to w. Edges cover both the
// explicit DependsOn declarations and references made through intrinsics.
func (g *Generator) Generate(st *stack.Stack, w io.Writer) error {
	deps, err := synth.NewBuilder(st).Dependencies()
	if err != nil {
		return err
	}

	graph := g.buildGraph(st, deps)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err = w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(st *stack.Stack) (string, error) {
	var sb strings.Builder
	if err := g.Generate(st, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) buildGraph(st *stack.Stack, deps map[string][]string) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByService {
		g.addClusteredNodes(graph, st)
	} else {
		g.addNodes(graph, st)
	}

	for _, entry := range st.Entries() {
		declared := make(map[string]bool, len(entry.DependsOn))
		for _, dep := range entry.DependsOn {
			declared[dep] = true
		}
		for _, dep := range deps[entry.Name] {
			from := graph.Node(entry.Name)
			to := graph.Node(dep)
			e := graph.Edge(from, to)

			// Intrinsic-only edges render blue, declared edges black.
			if !declared[dep] {
				e.Attr("color", "blue")
			}
		}
	}

	return graph
}

func (g *Generator) addNodes(graph *dot.Graph, st *stack.Stack) {
	for _, entry := range st.Entries() {
		n := graph.Node(entry.Name)
		n.Label(entry.Name + "\\n[" + entry.Resource.ResourceType() + "]")
	}
}

// addClusteredNodes adds resource nodes grouped by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, st *stack.Stack) {
	serviceEntries := make(map[string][]stack.Entry)
	var services []string

	for _, entry := range st.Entries() {
		service := extractService(entry.Resource.ResourceType())
		if _, seen := serviceEntries[service]; !seen {
			services = append(services, service)
		}
		serviceEntries[service] = append(serviceEntries[service], entry)
	}

	for _, service := range services {
		entries := serviceEntries[service]
		if len(entries) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, entry := range entries {
				n := cluster.Node(entry.Name)
				n.Label(entry.Name + "\\n[" + entry.Resource.ResourceType() + "]")
			}
		} else {
			for _, entry := range entries {
				n := graph.Node(entry.Name)
				n.Label(entry.Name + "\\n[" + entry.Resource.ResourceType() + "]")
			}
		}
	}
}

// extractService extracts the service name from a CloudFormation type.
// e.g. "AWS::IoT::Thing" -> "IoT", "Custom::IoTKeysAndCertificate" -> "Custom".
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	if len(parts) > 0 && parts[0] == "Custom" {
		return "Custom"
	}
	return "Other"
}
