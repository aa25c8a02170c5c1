package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var (
		configPath       string
		outputFormat     string
		clusterByService bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

The output can be rendered with Graphviz:
    ruuvitag-stack graph -c ruuvitag.yaml | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    ruuvitag-stack graph -c ruuvitag.yaml -f mermaid

Examples:
    ruuvitag-stack graph -c ruuvitag.yaml
    ruuvitag-stack graph -c ruuvitag.yaml --cluster     # cluster by service
    ruuvitag-stack graph -c ruuvitag.yaml -f mermaid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(configPath, outputFormat, clusterByService)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ruuvitag.yaml", "Config file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVar(&clusterByService, "cluster", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(configPath, format string, cluster bool) error {
	st, err := loadStack(configPath)
	if err != nil {
		return err
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:           graphFormat,
		ClusterByService: cluster,
	}
	return gen.Generate(st, os.Stdout)
}
