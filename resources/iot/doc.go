// Package iot provides CloudFormation resource types for the AWS::IoT service,
// plus the Custom::IoTKeysAndCertificate credential resource CloudFormation
// itself cannot express.
//
// Only the resource types the monitoring stack declares are maintained here.
package iot
