package iot

// TopicRule represents an AWS::IoT::TopicRule resource: a filter-and-forward
// rule that extracts fields from inbound messages and dispatches them to one
// or more sinks.
//
// See: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/aws-resource-iot-topicrule.html
type TopicRule struct {
	// RuleName is the name of the rule. Alphanumeric and underscore only;
	// omit to let CloudFormation generate one.
	RuleName any

	// TopicRulePayload is the rule definition.
	TopicRulePayload TopicRule_TopicRulePayload
}

// ResourceType returns the CloudFormation resource type.
func (r TopicRule) ResourceType() string {
	return "AWS::IoT::TopicRule"
}

// TopicRule_TopicRulePayload is the TopicRulePayload property type for TopicRule.
type TopicRule_TopicRulePayload struct {
	// Actions are performed when the rule's SQL statement matches a message.
	Actions []TopicRule_Action

	// AwsIotSqlVersion is the IoT SQL dialect version (e.g., "2016-03-23").
	AwsIotSqlVersion string

	// Description describes the rule.
	Description string

	// ErrorAction is performed when a matched action fails.
	ErrorAction *TopicRule_Action

	// RuleDisabled disables the rule when true.
	RuleDisabled bool

	// Sql is the filter expression (e.g.,
	// "SELECT temperature, humidity FROM 'ruuvitag/f3d619998f38'").
	Sql any
}

// TopicRule_Action is the Action property type for TopicRule.
// Exactly one of the action fields is set.
type TopicRule_Action struct {
	// CloudwatchLogs writes the message to a CloudWatch Logs log group.
	CloudwatchLogs *TopicRule_CloudwatchLogsAction

	// CloudwatchMetric captures a CloudWatch metric from the message.
	CloudwatchMetric *TopicRule_CloudwatchMetricAction

	// Republish publishes the message to another MQTT topic.
	Republish *TopicRule_RepublishAction
}

// TopicRule_CloudwatchLogsAction forwards messages to a log group.
type TopicRule_CloudwatchLogsAction struct {
	// LogGroupName is the destination log group.
	LogGroupName any

	// RoleArn grants access to the log group.
	RoleArn any
}

// TopicRule_CloudwatchMetricAction emits one metric data point per message.
// MetricValue supports IoT substitution templates ("${temperature}"), which
// the rule engine resolves against the message payload at evaluation time.
type TopicRule_CloudwatchMetricAction struct {
	// MetricName is the name of the metric.
	MetricName any

	// MetricNamespace is the namespace the metric is published under.
	MetricNamespace any

	// MetricTimestamp is an optional Unix timestamp expression.
	MetricTimestamp any

	// MetricUnit is the CloudWatch metric unit (e.g., "None").
	MetricUnit any

	// MetricValue is the value expression evaluated against the message.
	MetricValue any

	// RoleArn grants cloudwatch:PutMetricData.
	RoleArn any
}

// TopicRule_RepublishAction publishes the message to another topic.
type TopicRule_RepublishAction struct {
	// Qos is the MQTT quality of service (0 or 1).
	Qos int

	// RoleArn grants iot:Publish on the target topic.
	RoleArn any

	// Topic is the target MQTT topic.
	Topic any
}
