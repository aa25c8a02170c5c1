package iot

// Thing represents an AWS::IoT::Thing resource: the registry entry for a
// physical device authorized to connect to the message broker.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-iot-thing.html
type Thing struct {
	// AttributePayload holds up to three name/value attribute pairs.
	AttributePayload *Thing_AttributePayload

	// ThingName is the name of the thing.
	ThingName any
}

// ResourceType returns the CloudFormation resource type.
func (r Thing) ResourceType() string {
	return "AWS::IoT::Thing"
}

// Thing_AttributePayload is the AttributePayload property type for Thing.
type Thing_AttributePayload struct {
	// Attributes is a JSON string of up to three name/value pairs.
	Attributes map[string]any
}
