package iot

// ThingPrincipalAttachment represents an AWS::IoT::ThingPrincipalAttachment
// resource: it binds credential material to a thing.
//
// The thing is referenced by plain name, so CloudFormation cannot infer the
// ordering; declare an explicit DependsOn edge on the thing.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-iot-thingprincipalattachment.html
type ThingPrincipalAttachment struct {
	// Principal is the principal ARN, usually a certificate ARN.
	Principal any

	// ThingName is the name of the thing to attach to.
	ThingName any
}

// ResourceType returns the CloudFormation resource type.
func (r ThingPrincipalAttachment) ResourceType() string {
	return "AWS::IoT::ThingPrincipalAttachment"
}

// PolicyPrincipalAttachment represents an AWS::IoT::PolicyPrincipalAttachment
// resource: it attaches an access policy to credential material.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-iot-policyprincipalattachment.html
type PolicyPrincipalAttachment struct {
	// PolicyName is the name of the policy to attach.
	PolicyName any

	// Principal is the principal ARN, usually a certificate ARN.
	Principal any
}

// ResourceType returns the CloudFormation resource type.
func (r PolicyPrincipalAttachment) ResourceType() string {
	return "AWS::IoT::PolicyPrincipalAttachment"
}
