package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/orchestrate"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/synth"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/validation"
)

// newValidateCmd creates the "validate" subcommand.
func newValidateCmd() *cobra.Command {
	var (
		configPath   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the rendered template",
		Long: `Validate builds the stack, checks the dependency graph, and lints the
CloudFormation template with cfn-lint.

The lint runs against the deploy-ready template, with the credential
placeholder resolved into parameters, so every linted resource is a real
CloudFormation type.

Examples:
    ruuvitag-stack validate -c ruuvitag.yaml
    ruuvitag-stack validate -c ruuvitag.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(configPath, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ruuvitag.yaml", "Config file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runValidate(configPath, format string) error {
	st, err := loadStack(configPath)
	if err != nil {
		return err
	}

	result := ruuvitag.ValidateResult{Resources: st.Len()}

	template, err := synth.NewBuilder(st).Build()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return outputValidateResult(result, format)
	}

	resolved, err := orchestrate.ResolveCredentials(template)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return outputValidateResult(result, format)
	}

	lintResult, err := validation.LintTemplate(resolved.Template)
	if err != nil {
		return err
	}

	result.Success = lintResult.Passed
	result.Errors = append(result.Errors, lintResult.Errors...)
	result.Warnings = append(result.Warnings, lintResult.Warnings...)

	return outputValidateResult(result, format)
}

func outputValidateResult(result ruuvitag.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK\n", result.Resources)
			for _, warnMsg := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", warnMsg)
			}
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
