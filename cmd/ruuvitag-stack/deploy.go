package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/orchestrate"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/synth"
)

const defaultStackName = "ruuvitag-monitoring"

func newDeployCmd() *cobra.Command {
	var (
		configPath string
		stackName  string
		profile    string
		region     string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create or update the stack on AWS",
		Long: `Deploy renders the template and reconciles it with CloudFormation.

On first deploy the device certificate is provisioned through the IoT
control plane; its private key is handed to CloudFormation as a NoEcho
parameter and ends up only in the Secrets Manager secret. Later deploys
reuse the existing certificate.

Credentials come from the usual AWS chain (AWS_PROFILE, shared config,
environment, IMDS).

Examples:
    ruuvitag-stack deploy -c ruuvitag.yaml
    ruuvitag-stack deploy -c ruuvitag.yaml --stack-name home-sensors --region eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, configPath, stackName, profile, region)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ruuvitag.yaml", "Config file")
	cmd.Flags().StringVar(&stackName, "stack-name", defaultStackName, "CloudFormation stack name")
	cmd.Flags().StringVar(&profile, "profile", "", "AWS shared config profile")
	cmd.Flags().StringVar(&region, "region", "", "AWS region override")

	return cmd
}

func runDeploy(cmd *cobra.Command, configPath, stackName, profile, region string) error {
	st, err := loadStack(configPath)
	if err != nil {
		return err
	}

	template, err := synth.NewBuilder(st).Build()
	if err != nil {
		return err
	}

	deployer, err := newDeployer(cmd, stackName, profile, region)
	if err != nil {
		return err
	}

	result, err := deployer.Deploy(cmd.Context(), template)
	if err != nil {
		return err
	}

	if result.Created {
		fmt.Println("Stack created.")
		fmt.Println("The device certificate and private key are stored in the stack's Secrets Manager secret.")
	} else if result.Changed {
		fmt.Println("Stack updated.")
	}
	return nil
}

func newDeployer(cmd *cobra.Command, stackName, profile, region string) (*orchestrate.Deployer, error) {
	var opts []orchestrate.Option
	if profile != "" {
		opts = append(opts, orchestrate.WithProfile(profile))
	}
	if region != "" {
		opts = append(opts, orchestrate.WithRegion(region))
	}

	awsCfg, err := orchestrate.LoadAWSConfig(cmd.Context(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &orchestrate.Deployer{
		CloudFormation: orchestrate.NewCloudFormation(awsCfg),
		IoT:            orchestrate.NewIoT(awsCfg),
		StackName:      stackName,
		Out:            os.Stdout,
	}, nil
}
