// Package logs provides CloudFormation resource types for the AWS::Logs service.
package logs

// LogGroup represents an AWS::Logs::LogGroup resource.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-logs-loggroup.html
type LogGroup struct {
	// LogGroupName is the name of the log group.
	LogGroupName any

	// RetentionInDays is how long log events are kept. Valid values are the
	// discrete set CloudWatch Logs accepts (1, 3, 5, 7, 14, 30, ...).
	RetentionInDays int
}

// ResourceType returns the CloudFormation resource type.
func (r LogGroup) ResourceType() string {
	return "AWS::Logs::LogGroup"
}
