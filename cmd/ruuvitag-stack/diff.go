package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/differ"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/synth"
)

func newDiffCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "diff <template-file>",
		Short: "Compare the rendered template against a saved one",
		Long: `Diff renders the stack from the config file and compares it against a
previously saved template, reporting added, removed, and modified
resources.

Exit code is 1 when the templates differ.

Examples:
    ruuvitag-stack synth -c ruuvitag.yaml -o template.json
    # ... edit the config ...
    ruuvitag-stack diff -c ruuvitag.yaml template.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(configPath, args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ruuvitag.yaml", "Config file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runDiff(configPath, templateFile, format string) error {
	st, err := loadStack(configPath)
	if err != nil {
		return err
	}

	template, err := synth.NewBuilder(st).Build()
	if err != nil {
		return err
	}
	current, err := differ.Normalize(template)
	if err != nil {
		return err
	}

	saved, err := differ.LoadTemplate(templateFile)
	if err != nil {
		return err
	}

	result := differ.Compare(saved, current)

	switch format {
	case "json":
		data, err := json.MarshalIndent(result.Diff, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if !result.Changed() {
			fmt.Println("No differences.")
			return nil
		}
		for _, entry := range result.Diff.Added {
			fmt.Printf("+ %s (%s)\n", entry.Resource, entry.Type)
		}
		for _, entry := range result.Diff.Removed {
			fmt.Printf("- %s (%s)\n", entry.Resource, entry.Type)
		}
		for _, entry := range result.Diff.Modified {
			fmt.Printf("~ %s (%s)\n", entry.Resource, entry.Type)
			for _, change := range entry.Changes {
				fmt.Printf("    %s\n", change)
			}
		}
		fmt.Printf("\n%d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Changed() {
		os.Exit(1)
	}
	return nil
}
