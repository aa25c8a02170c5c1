package iam

// Role represents an AWS::IAM::Role resource.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-iam-role.html
type Role struct {
	// AssumeRolePolicyDocument is the trust policy.
	AssumeRolePolicyDocument any

	// Description describes the role.
	Description string

	// ManagedPolicyArns are ARNs of managed policies to attach.
	ManagedPolicyArns []any

	// MaxSessionDuration is the maximum session duration in seconds.
	MaxSessionDuration int

	// Path is the IAM path for the role.
	Path string

	// Policies are inline policies embedded in the role.
	Policies []Role_Policy

	// RoleName is the name of the role.
	RoleName any
}

// ResourceType returns the CloudFormation resource type.
func (r Role) ResourceType() string {
	return "AWS::IAM::Role"
}

// Role_Policy is the Policy property type for Role.
type Role_Policy struct {
	// PolicyDocument is the inline policy document.
	PolicyDocument any

	// PolicyName is the name of the inline policy.
	PolicyName any
}
