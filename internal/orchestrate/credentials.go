package orchestrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iot"
	iottypes "github.com/aws/aws-sdk-go-v2/service/iot/types"
)

// IoTAPI is the subset of the IoT control plane used for certificate
// lifecycle management.
type IoTAPI interface {
	CreateKeysAndCertificate(ctx context.Context, params *iot.CreateKeysAndCertificateInput, optFns ...func(*iot.Options)) (*iot.CreateKeysAndCertificateOutput, error)
	UpdateCertificate(ctx context.Context, params *iot.UpdateCertificateInput, optFns ...func(*iot.Options)) (*iot.UpdateCertificateOutput, error)
	DeleteCertificate(ctx context.Context, params *iot.DeleteCertificateInput, optFns ...func(*iot.Options)) (*iot.DeleteCertificateOutput, error)
}

// Credentials is the key material returned by iot:CreateKeysAndCertificate.
// The private key exists only in this response and is never retrievable again.
type Credentials struct {
	CertificateID string
	Arn           string
	Pem           string
	PrivateKey    string
}

// Attribute returns the credential value for a placeholder attribute name.
func (c Credentials) Attribute(name string) (string, error) {
	switch name {
	case "Arn":
		return c.Arn, nil
	case "CertificateId":
		return c.CertificateID, nil
	case "CertificatePem":
		return c.Pem, nil
	case "PrivateKey":
		return c.PrivateKey, nil
	}
	return "", fmt.Errorf("unknown credential attribute %q", name)
}

// ProvisionCredentials creates an activated certificate with a fresh key pair.
func ProvisionCredentials(ctx context.Context, api IoTAPI) (*Credentials, error) {
	out, err := api.CreateKeysAndCertificate(ctx, &iot.CreateKeysAndCertificateInput{
		SetAsActive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating keys and certificate: %w", err)
	}

	creds := &Credentials{
		CertificateID: aws.ToString(out.CertificateId),
		Arn:           aws.ToString(out.CertificateArn),
		Pem:           aws.ToString(out.CertificatePem),
	}
	if out.KeyPair != nil {
		creds.PrivateKey = aws.ToString(out.KeyPair.PrivateKey)
	}
	if creds.PrivateKey == "" {
		return nil, fmt.Errorf("certificate %s created without a private key", creds.CertificateID)
	}

	return creds, nil
}

// RetireCredentials deactivates and deletes the certificate behind the given
// ARN. The certificate must already be detached from things and policies;
// stack deletion removes the attachments first.
func RetireCredentials(ctx context.Context, api IoTAPI, certificateArn string) error {
	id, err := certificateIDFromArn(certificateArn)
	if err != nil {
		return err
	}

	_, err = api.UpdateCertificate(ctx, &iot.UpdateCertificateInput{
		CertificateId: aws.String(id),
		NewStatus:     iottypes.CertificateStatusInactive,
	})
	if err != nil {
		return fmt.Errorf("deactivating certificate %s: %w", id, err)
	}

	_, err = api.DeleteCertificate(ctx, &iot.DeleteCertificateInput{
		CertificateId: aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("deleting certificate %s: %w", id, err)
	}

	return nil
}

// certificateIDFromArn extracts the certificate id from an ARN of the form
// arn:aws:iot:region:account:cert/<id>.
func certificateIDFromArn(arn string) (string, error) {
	_, id, found := strings.Cut(arn, ":cert/")
	if !found || id == "" {
		return "", fmt.Errorf("not a certificate ARN: %s", arn)
	}
	return id, nil
}
