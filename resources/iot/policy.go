package iot

// Policy represents an AWS::IoT::Policy resource: the authorization rules
// scoping broker actions to a device's topics.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-iot-policy.html
type Policy struct {
	// PolicyDocument is the JSON policy document.
	PolicyDocument any

	// PolicyName is the name of the policy.
	PolicyName any
}

// ResourceType returns the CloudFormation resource type.
func (r Policy) ResourceType() string {
	return "AWS::IoT::Policy"
}
