package iot

// KeysAndCertificate represents a Custom::IoTKeysAndCertificate resource: the
// device credential material (X.509 certificate plus private key).
//
// CloudFormation has no resource that generates a private key, so the
// credential is declared as a custom resource backed by the
// iot:CreateKeysAndCertificate API. The deploy command acts as its provider:
// it performs the API call before stack submission, records the certificate id
// as the physical identifier, and substitutes the attribute references with
// NoEcho parameters. On teardown the certificate is deactivated and deleted by
// that identifier, best effort.
//
// Attributes: Arn, CertificateId, CertificatePem, PrivateKey.
type KeysAndCertificate struct {
	// SetAsActive activates the certificate on creation.
	SetAsActive bool
}

// ResourceType returns the CloudFormation resource type.
func (r KeysAndCertificate) ResourceType() string {
	return "Custom::IoTKeysAndCertificate"
}
