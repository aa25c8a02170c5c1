// Package secretsmanager provides CloudFormation resource types for the
// AWS::SecretsManager service.
package secretsmanager

// Secret represents an AWS::SecretsManager::Secret resource.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-secretsmanager-secret.html
type Secret struct {
	// Description describes the secret.
	Description string

	// KmsKeyId is the KMS key used for encryption. Omit to use the
	// account's default aws/secretsmanager key.
	KmsKeyId any

	// Name is the friendly name of the secret.
	Name any

	// SecretString is the secret value as a string, commonly a JSON object.
	SecretString any
}

// ResourceType returns the CloudFormation resource type.
func (r Secret) ResourceType() string {
	return "AWS::SecretsManager::Secret"
}
