// Package iam provides CloudFormation resource types for the AWS::IAM service.
package iam
