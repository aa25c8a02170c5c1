package stack

import (
	"fmt"

	. "github.com/siipimutteri/ruuvitag-aws-iot-monitoring/intrinsics"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/resources/cloudwatch"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/resources/iam"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/resources/iot"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/resources/logs"
	"github.com/siipimutteri/ruuvitag-aws-iot-monitoring/resources/secretsmanager"
)

// IoT SQL dialect version the routing rule is pinned to.
const sqlVersion = "2016-03-23"

// How long rule evaluation failures are kept.
const errorLogRetentionDays = 14

// New produces the resource graph for the given configuration. It is a pure
// function: identical inputs yield structurally identical stacks. Invalid
// configuration fails before any resource is declared.
func New(cfg Config) (*Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	namespace := cfg.MetricNamespace()
	topic := cfg.SensorTopic()

	s := &Stack{
		Description: fmt.Sprintf("RuuviTag %s monitoring: %s publishing on %s",
			cfg.RuuviTagID, cfg.ThingName, topic),
	}

	s.add(SensorThing, iot.Thing{
		ThingName: cfg.ThingName,
	})

	s.add(DeviceCredentials, iot.KeysAndCertificate{
		SetAsActive: true,
	})

	s.add(DeviceCredentialsSecret, secretsmanager.Secret{
		Description: fmt.Sprintf("Device credentials for %s", cfg.ThingName),
		SecretString: SubWithMap{
			String: `{"certificatePem":"${CertificatePem}","privateKey":"${PrivateKey}"}`,
			Variables: map[string]any{
				"CertificatePem": GetAtt{LogicalName: DeviceCredentials, Attribute: "CertificatePem"},
				"PrivateKey":     GetAtt{LogicalName: DeviceCredentials, Attribute: "PrivateKey"},
			},
		},
	}, DeviceCredentials)

	// The thing is referenced by name, not by Ref, so the edge on the thing
	// must be explicit for CloudFormation to sequence the attachment.
	s.add(ThingCredentialsAttachment, iot.ThingPrincipalAttachment{
		ThingName: cfg.ThingName,
		Principal: GetAtt{LogicalName: DeviceCredentials, Attribute: "Arn"},
	}, SensorThing, DeviceCredentials)

	s.add(DevicePolicy, iot.Policy{
		PolicyDocument: NewPolicyDocument(
			PolicyStatement{
				Effect: "Allow",
				Action: "iot:Connect",
				Resource: Sub{String: fmt.Sprintf(
					"arn:aws:iot:${AWS::Region}:${AWS::AccountId}:client/%s", cfg.ThingName)},
			},
			PolicyStatement{
				Effect: "Allow",
				Action: "iot:Publish",
				Resource: Sub{String: fmt.Sprintf(
					"arn:aws:iot:${AWS::Region}:${AWS::AccountId}:topic/%s/*", cfg.IoTTopicPrefix)},
			},
		),
	})

	s.add(PolicyCredentialsAttachment, iot.PolicyPrincipalAttachment{
		PolicyName: Ref{LogicalName: DevicePolicy},
		Principal:  GetAtt{LogicalName: DeviceCredentials, Attribute: "Arn"},
	}, DevicePolicy, DeviceCredentials)

	s.add(RuleErrorLogs, logs.LogGroup{
		LogGroupName:    Sub{String: "/aws/iot/${AWS::StackName}-rule-errors"},
		RetentionInDays: errorLogRetentionDays,
	})

	s.add(RuleExecutionRole, iam.Role{
		Description: "Lets the sensor data rule publish metrics and error logs",
		AssumeRolePolicyDocument: NewPolicyDocument(PolicyStatement{
			Effect:    "Allow",
			Principal: ServicePrincipal{"iot.amazonaws.com"},
			Action:    "sts:AssumeRole",
		}),
		Policies: []iam.Role_Policy{
			{
				PolicyName: "sensor-data-forwarding",
				PolicyDocument: NewPolicyDocument(
					PolicyStatement{
						Effect:   "Allow",
						Action:   "cloudwatch:PutMetricData",
						Resource: "*",
						Condition: Json{
							StringEquals: Json{"cloudwatch:namespace": namespace},
						},
					},
					PolicyStatement{
						Effect:   "Allow",
						Action:   []any{"logs:CreateLogStream", "logs:PutLogEvents"},
						Resource: GetAtt{LogicalName: RuleErrorLogs, Attribute: "Arn"},
					},
				),
			},
		},
	})

	s.add(SensorDataRule, iot.TopicRule{
		TopicRulePayload: iot.TopicRule_TopicRulePayload{
			Description:      fmt.Sprintf("Forwards %s sensor readings to CloudWatch", cfg.RuuviTagID),
			AwsIotSqlVersion: sqlVersion,
			Sql:              fmt.Sprintf("SELECT temperature, humidity FROM '%s'", topic),
			Actions: []iot.TopicRule_Action{
				{CloudwatchMetric: metricAction(namespace, "temperature")},
				{CloudwatchMetric: metricAction(namespace, "humidity")},
			},
			ErrorAction: &iot.TopicRule_Action{
				CloudwatchLogs: &iot.TopicRule_CloudwatchLogsAction{
					LogGroupName: Ref{LogicalName: RuleErrorLogs},
					RoleArn:      GetAtt{LogicalName: RuleExecutionRole, Attribute: "Arn"},
				},
			},
		},
	}, RuleErrorLogs, RuleExecutionRole)

	dash, err := dashboard(cfg, namespace)
	if err != nil {
		return nil, fmt.Errorf("building dashboard: %w", err)
	}
	s.add(MonitoringDashboard, dash)

	return s, nil
}

// metricAction forwards one named message field as a metric data point.
// The ${field} substitution template is resolved by the rule engine against
// the message payload, not by CloudFormation.
func metricAction(namespace, field string) *iot.TopicRule_CloudwatchMetricAction {
	return &iot.TopicRule_CloudwatchMetricAction{
		MetricNamespace: namespace,
		MetricName:      field,
		MetricUnit:      "None",
		MetricValue:     fmt.Sprintf("${%s}", field),
		RoleArn:         GetAtt{LogicalName: RuleExecutionRole, Attribute: "Arn"},
	}
}

// dashboard renders both series on one graph: temperature on the left axis,
// humidity on the right, with a freezing band below 0.
func dashboard(cfg Config, namespace string) (cloudwatch.Dashboard, error) {
	body := cloudwatch.DashboardBody{
		Widgets: []cloudwatch.Widget{
			{
				Type:  "metric",
				Width: 12, Height: 6,
				Properties: cloudwatch.GraphWidgetProperties{
					Title:  fmt.Sprintf("%s temperature and humidity", cfg.ThingName),
					View:   "timeSeries",
					Region: "${AWS::Region}",
					Metrics: []cloudwatch.MetricRow{
						{namespace, "temperature"},
						{namespace, "humidity", cloudwatch.MetricOptions{YAxis: "right"}},
					},
					Stat:   "Average",
					Period: 300,
					YAxis: &cloudwatch.YAxis{
						Left:  &cloudwatch.AxisRange{Min: cloudwatch.Float(-40), Max: cloudwatch.Float(60)},
						Right: &cloudwatch.AxisRange{Min: cloudwatch.Float(0), Max: cloudwatch.Float(100)},
					},
					Annotations: &cloudwatch.Annotations{
						Horizontal: []cloudwatch.HorizontalAnnotation{
							{Label: "Freezing", Value: 0, Fill: "below"},
						},
					},
				},
			},
		},
	}

	rendered, err := body.JSON()
	if err != nil {
		return cloudwatch.Dashboard{}, err
	}

	return cloudwatch.Dashboard{
		DashboardName: Sub{String: "${AWS::StackName}-" + cfg.RuuviTagID},
		DashboardBody: Sub{String: rendered},
	}, nil
}
