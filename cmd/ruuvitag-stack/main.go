// Command ruuvitag-stack manages the AWS monitoring stack for a RuuviTag
// sensor: a thing, its credentials, an IoT rule forwarding temperature and
// humidity to CloudWatch, and a dashboard to look at them.
//
// Usage:
//
//	ruuvitag-stack synth -c ruuvitag.yaml      Render the CloudFormation template
//	ruuvitag-stack validate -c ruuvitag.yaml   Lint the rendered template
//	ruuvitag-stack deploy -c ruuvitag.yaml     Reconcile the stack on AWS
//	ruuvitag-stack version                     Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/stack"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ruuvitag-stack",
		Short: "Manage the RuuviTag AWS IoT monitoring stack",
		Long: `ruuvitag-stack declares a monitoring stack for one RuuviTag sensor and
renders it as a CloudFormation template.

The stack is driven by four values in a YAML config file:

    thingName: RaspberryPi
    iotTopicPrefix: ruuvitag
    cloudWatchMetricNameSpace: RuuviTag
    ruuviTagId: f3d619998f38

Then render and deploy:

    ruuvitag-stack synth -c ruuvitag.yaml
    ruuvitag-stack deploy -c ruuvitag.yaml`,
	}

	rootCmd.AddCommand(
		newSynthCmd(),
		newValidateCmd(),
		newListCmd(),
		newGraphCmd(),
		newDiffCmd(),
		newWatchCmd(),
		newDeployCmd(),
		newDestroyCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadStack reads the config file, applies environment overrides, and
// builds the stack.
func loadStack(configPath string) (*stack.Stack, error) {
	cfg, err := stack.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return stack.New(cfg)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ruuvitag-stack %s\n", getVersion())
		},
	}
}
