package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/synth"
)

func newListCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List declared resources",
		Long: `List displays the stack's resources in dependency order, with the
edges each resource waits on.

Examples:
    ruuvitag-stack list -c ruuvitag.yaml
    ruuvitag-stack list -c ruuvitag.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(configPath, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ruuvitag.yaml", "Config file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(configPath, format string) error {
	st, err := loadStack(configPath)
	if err != nil {
		return err
	}

	builder := synth.NewBuilder(st)
	order, err := builder.Order()
	if err != nil {
		return err
	}
	deps, err := builder.Dependencies()
	if err != nil {
		return err
	}

	listResult := ruuvitag.ListResult{
		Resources: make([]ruuvitag.ListResource, 0, len(order)),
	}
	for _, name := range order {
		entry, ok := st.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown resource %s", name)
		}
		listResult.Resources = append(listResult.Resources, ruuvitag.ListResource{
			Name:      name,
			Type:      entry.Resource.ResourceType(),
			DependsOn: deps[name],
		})
	}

	return outputListResult(listResult, format)
}

func outputListResult(result ruuvitag.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		fmt.Printf("Declared resources (%d):\n\n", len(result.Resources))
		for _, res := range result.Resources {
			if len(res.DependsOn) > 0 {
				fmt.Printf("  %s: %s (after %s)\n", res.Name, res.Type, strings.Join(res.DependsOn, ", "))
			} else {
				fmt.Printf("  %s: %s\n", res.Name, res.Type)
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
