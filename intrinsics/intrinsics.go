// Package intrinsics provides the CloudFormation intrinsic functions used by
// the monitoring stack.
//
// The core intrinsic types come from cloudformation-schema-go and are
// re-exported here, together with IAM policy document types.
//
// Core intrinsic functions:
//
//	Ref{LogicalName: "SensorThing"} → {"Ref": "SensorThing"}
//	GetAtt{LogicalName: "RuleExecutionRole", Attribute: "Arn"} → {"Fn::GetAtt": [...]}
//	Sub{String: "${AWS::StackName}-sensor"} → {"Fn::Sub": "${AWS::StackName}-sensor"}
//
// Pseudo-parameters:
//
//	AWS_REGION, AWS_ACCOUNT_ID, AWS_STACK_NAME, etc.
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

// Re-export the intrinsic types the stack declarations use.
type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// SubWithMap is Fn::Sub with a variable map.
	SubWithMap = intrinsics.SubWithMap

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)
