// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM and IoT policy document types and helpers.
package intrinsics

import (
	"encoding/json"
)

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like Condition blocks.
//
// Example:
//
//	Condition: Json{
//	    StringEquals: Json{"cloudwatch:namespace": "RuuviTag/f3d619998f38"},
//	}
type Json = map[string]any

// PolicyDocument represents an IAM or IoT policy document.
//
// Example:
//
//	var trust = PolicyDocument{
//	    Version:   PolicyVersion,
//	    Statement: []any{assumeStatement},
//	}
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// PolicyVersion is the current IAM policy language version.
const PolicyVersion = "2012-10-17"

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument(statements ...any) PolicyDocument {
	return PolicyDocument{Version: PolicyVersion, Statement: statements}
}

// PolicyStatement represents a policy statement.
//
// Example:
//
//	PolicyStatement{
//	    Effect:    "Allow",
//	    Principal: ServicePrincipal{"iot.amazonaws.com"},
//	    Action:    "sts:AssumeRole",
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// ServicePrincipal represents a service principal (e.g., iot.amazonaws.com).
// Serializes to {"Service": ...} format.
//
// Examples:
//
//	ServicePrincipal{"iot.amazonaws.com"}
//	ServicePrincipal{"iot.amazonaws.com", "lambda.amazonaws.com"}
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}

// IAM condition operator keys used in Condition maps.
const (
	StringEquals = "StringEquals"
	StringLike   = "StringLike"
	ArnLike      = "ArnLike"
	Bool         = "Bool"
)
