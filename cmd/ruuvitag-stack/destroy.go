package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newDestroyCmd() *cobra.Command {
	var (
		stackName string
		profile   string
		region    string
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the stack from AWS",
		Long: `Destroy deletes the CloudFormation stack and retires the device
certificate afterwards. The attachments are stack resources, so deletion
detaches the certificate before it is deactivated and removed.

Certificate cleanup is best effort: if it fails, the stack is still gone
and a warning names the leftover certificate.

Examples:
    ruuvitag-stack destroy
    ruuvitag-stack destroy --stack-name home-sensors --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestroy(cmd, stackName, profile, region, yes)
		},
	}

	cmd.Flags().StringVar(&stackName, "stack-name", defaultStackName, "CloudFormation stack name")
	cmd.Flags().StringVar(&profile, "profile", "", "AWS shared config profile")
	cmd.Flags().StringVar(&region, "region", "", "AWS region override")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runDestroy(cmd *cobra.Command, stackName, profile, region string, yes bool) error {
	if !yes {
		fmt.Printf("Delete stack %s and its device certificate? [y/N]: ", stackName)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if answer = strings.ToLower(strings.TrimSpace(answer)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deployer, err := newDeployer(cmd, stackName, profile, region)
	if err != nil {
		return err
	}

	return deployer.Destroy(cmd.Context())
}
