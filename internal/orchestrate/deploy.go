package orchestrate

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cfntypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"

	ruuvitag "github.com/siipimutteri/ruuvitag-aws-iot-monitoring"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/internal/synth"
)

const stackWaitTimeout = 15 * time.Minute

// CloudFormationAPI is the subset of CloudFormation used for stack
// reconciliation. It satisfies the waiter client interfaces.
type CloudFormationAPI interface {
	CreateStack(ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
}

// Deployer reconciles the synthesized template with a CloudFormation stack.
type Deployer struct {
	CloudFormation CloudFormationAPI
	IoT            IoTAPI
	StackName      string

	// Out receives progress messages. Defaults to io.Discard.
	Out io.Writer
}

// DeployResult reports what the deploy did.
type DeployResult struct {
	StackID        string
	Created        bool
	Changed        bool
	CertificateArn string
}

// Deploy creates the stack, or updates it if it already exists.
//
// On first creation the device certificate is provisioned through the IoT
// control plane and its material passed in as template parameters; the
// private key travels NoEcho and is stored only in the stack's secret.
// Updates reuse the previous parameter values, so the certificate survives
// template changes.
func (d *Deployer) Deploy(ctx context.Context, t *ruuvitag.Template) (*DeployResult, error) {
	resolved, err := ResolveCredentials(t)
	if err != nil {
		return nil, err
	}

	body, err := synth.ToJSON(resolved.Template)
	if err != nil {
		return nil, fmt.Errorf("serializing template: %w", err)
	}

	exists, err := d.stackExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return d.update(ctx, resolved, string(body))
	}
	return d.create(ctx, resolved, string(body))
}

func (d *Deployer) create(ctx context.Context, resolved *Resolved, body string) (*DeployResult, error) {
	d.printf("provisioning device certificate\n")
	creds, err := ProvisionCredentials(ctx, d.IoT)
	if err != nil {
		return nil, err
	}
	d.printf("certificate %s created\n", creds.CertificateID)

	params := make([]cfntypes.Parameter, 0, len(resolved.Params))
	for _, name := range resolved.ParameterNames() {
		value, err := creds.Attribute(resolved.Params[name].Attribute)
		if err != nil {
			return nil, err
		}
		params = append(params, cfntypes.Parameter{
			ParameterKey:   aws.String(name),
			ParameterValue: aws.String(value),
		})
	}

	d.printf("creating stack %s\n", d.StackName)
	out, err := d.CloudFormation.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:    aws.String(d.StackName),
		TemplateBody: aws.String(body),
		Parameters:   params,
		Capabilities: []cfntypes.Capability{cfntypes.CapabilityCapabilityNamedIam},
	})
	if err != nil {
		// The certificate is orphaned if the stack never starts; take it
		// back down so retries start clean.
		if retireErr := RetireCredentials(ctx, d.IoT, creds.Arn); retireErr != nil {
			d.printf("warning: could not retire certificate %s: %v\n", creds.CertificateID, retireErr)
		}
		return nil, fmt.Errorf("creating stack: %w", err)
	}

	waiter := cloudformation.NewStackCreateCompleteWaiter(d.CloudFormation)
	if err := waiter.Wait(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(d.StackName),
	}, stackWaitTimeout); err != nil {
		return nil, fmt.Errorf("waiting for stack creation: %w", err)
	}

	d.printf("stack %s created\n", d.StackName)
	return &DeployResult{
		StackID:        aws.ToString(out.StackId),
		Created:        true,
		Changed:        true,
		CertificateArn: creds.Arn,
	}, nil
}

func (d *Deployer) update(ctx context.Context, resolved *Resolved, body string) (*DeployResult, error) {
	params := make([]cfntypes.Parameter, 0, len(resolved.Params))
	for _, name := range resolved.ParameterNames() {
		params = append(params, cfntypes.Parameter{
			ParameterKey:     aws.String(name),
			UsePreviousValue: aws.Bool(true),
		})
	}

	d.printf("updating stack %s\n", d.StackName)
	out, err := d.CloudFormation.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(d.StackName),
		TemplateBody: aws.String(body),
		Parameters:   params,
		Capabilities: []cfntypes.Capability{cfntypes.CapabilityCapabilityNamedIam},
	})
	if err != nil {
		if strings.Contains(err.Error(), "No updates are to be performed") {
			d.printf("stack %s is up to date\n", d.StackName)
			return &DeployResult{Changed: false}, nil
		}
		return nil, fmt.Errorf("updating stack: %w", err)
	}

	waiter := cloudformation.NewStackUpdateCompleteWaiter(d.CloudFormation)
	if err := waiter.Wait(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(d.StackName),
	}, stackWaitTimeout); err != nil {
		return nil, fmt.Errorf("waiting for stack update: %w", err)
	}

	d.printf("stack %s updated\n", d.StackName)
	return &DeployResult{StackID: aws.ToString(out.StackId), Changed: true}, nil
}

// Destroy deletes the stack and retires the device certificate afterwards.
// The attachments are stack resources, so deletion detaches the certificate
// before it is deactivated. Certificate cleanup is best effort: a failure
// is reported as a warning, not an error.
func (d *Deployer) Destroy(ctx context.Context) error {
	desc, err := d.CloudFormation.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(d.StackName),
	})
	if err != nil {
		if isStackMissing(err) {
			d.printf("stack %s does not exist\n", d.StackName)
			return nil
		}
		return fmt.Errorf("describing stack: %w", err)
	}

	// The certificate ARN parameter is plain text; key material is NoEcho
	// and unreadable here, which is fine since deletion only needs the id.
	var certificateArn string
	if len(desc.Stacks) > 0 {
		for _, param := range desc.Stacks[0].Parameters {
			value := aws.ToString(param.ParameterValue)
			if strings.Contains(value, ":cert/") {
				certificateArn = value
				break
			}
		}
	}

	d.printf("deleting stack %s\n", d.StackName)
	_, err = d.CloudFormation.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(d.StackName),
	})
	if err != nil {
		return fmt.Errorf("deleting stack: %w", err)
	}

	waiter := cloudformation.NewStackDeleteCompleteWaiter(d.CloudFormation)
	if err := waiter.Wait(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(d.StackName),
	}, stackWaitTimeout); err != nil {
		return fmt.Errorf("waiting for stack deletion: %w", err)
	}
	d.printf("stack %s deleted\n", d.StackName)

	if certificateArn == "" {
		d.printf("warning: no certificate ARN recorded on the stack, skipping certificate cleanup\n")
		return nil
	}
	if err := RetireCredentials(ctx, d.IoT, certificateArn); err != nil {
		d.printf("warning: could not retire certificate: %v\n", err)
	} else {
		d.printf("certificate retired\n")
	}

	return nil
}

// stackExists reports whether the stack is present, in any state.
func (d *Deployer) stackExists(ctx context.Context) (bool, error) {
	_, err := d.CloudFormation.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(d.StackName),
	})
	if err != nil {
		if isStackMissing(err) {
			return false, nil
		}
		return false, fmt.Errorf("describing stack: %w", err)
	}
	return true, nil
}

// isStackMissing matches the ValidationError CloudFormation returns for
// DescribeStacks on a nonexistent stack.
func isStackMissing(err error) bool {
	return err != nil && strings.Contains(err.Error(), "does not exist")
}

func (d *Deployer) printf(format string, args ...any) {
	out := d.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, format, args...)
}
