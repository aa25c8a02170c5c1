package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/synth"
)

func newSynthCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Render the CloudFormation template",
		Long: `Synth builds the stack from the config file and renders it as a
CloudFormation template.

The template still contains the Custom::IoTKeysAndCertificate placeholder;
deploy resolves it by provisioning a real certificate.

Examples:
    ruuvitag-stack synth -c ruuvitag.yaml
    ruuvitag-stack synth -c ruuvitag.yaml -o template.json
    ruuvitag-stack synth -c ruuvitag.yaml --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSynth(configPath, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ruuvitag.yaml", "Config file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runSynth(configPath, format, outputFile string) error {
	st, err := loadStack(configPath)
	if err != nil {
		return outputSynthResult(ruuvitag.SynthResult{
			Success: false,
			Errors:  []string{err.Error()},
		}, format, outputFile)
	}

	builder := synth.NewBuilder(st)
	template, err := builder.Build()
	if err != nil {
		return outputSynthResult(ruuvitag.SynthResult{
			Success: false,
			Errors:  []string{err.Error()},
		}, format, outputFile)
	}

	// Order cannot fail once Build has succeeded.
	order, _ := builder.Order()

	return outputSynthResult(ruuvitag.SynthResult{
		Success:   true,
		Template:  *template,
		Resources: order,
	}, format, outputFile)
}

func outputSynthResult(result ruuvitag.SynthResult, format, outputFile string) error {
	// Failures go to stderr, never into the template output.
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("synth failed")
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = synth.ToJSON(&result.Template)
	case "yaml":
		data, err = synth.ToYAML(&result.Template)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFile, data, 0644)
}
