// Package cloudwatch provides CloudFormation resource types for the
// AWS::CloudWatch service, plus the dashboard body widget model.
package cloudwatch

// Dashboard represents an AWS::CloudWatch::Dashboard resource.
//
// DashboardBody is a JSON string; build it with DashboardBody from this
// package and wrap it in Sub when it contains ${AWS::Region} style variables.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-cloudwatch-dashboard.html
type Dashboard struct {
	// DashboardBody is the JSON widget layout.
	DashboardBody any

	// DashboardName is the name of the dashboard.
	DashboardName any
}

// ResourceType returns the CloudFormation resource type.
func (r Dashboard) ResourceType() string {
	return "AWS::CloudWatch::Dashboard"
}
