package cloudwatch

import (
	"encoding/json"
)

// DashboardBody is the widget layout of a dashboard. It marshals to the JSON
// string the DashboardBody property expects.
//
// See: https://docs.aws.amazon.com/AmazonCloudWatch/latest/APIReference/CloudWatch-Dashboard-Body-Structure.html
type DashboardBody struct {
	Widgets []Widget `json:"widgets"`
}

// JSON renders the body as the dashboard body string.
func (b DashboardBody) JSON() (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Widget is a single dashboard panel.
type Widget struct {
	// Type is the widget type ("metric", "text", "log", ...).
	Type string `json:"type"`

	// X and Y position the widget on the 24-column grid.
	X int `json:"x"`
	Y int `json:"y"`

	// Width and Height size the widget in grid units.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Properties is the type-specific widget configuration.
	Properties GraphWidgetProperties `json:"properties"`
}

// GraphWidgetProperties configures a metric graph widget.
type GraphWidgetProperties struct {
	// Title is shown above the graph.
	Title string `json:"title,omitempty"`

	// View is the rendering mode ("timeSeries" or "singleValue").
	View string `json:"view,omitempty"`

	// Region is the region the metrics are read from. May contain a
	// ${AWS::Region} variable when the body string is wrapped in Sub.
	Region string `json:"region,omitempty"`

	// Metrics are rows of [namespace, metric name, options...].
	Metrics []MetricRow `json:"metrics,omitempty"`

	// Stat is the statistic applied to each series.
	Stat string `json:"stat,omitempty"`

	// Period is the aggregation period in seconds.
	Period int `json:"period,omitempty"`

	// YAxis bounds the left and right axes.
	YAxis *YAxis `json:"yAxis,omitempty"`

	// Annotations draws threshold lines and bands over the graph.
	Annotations *Annotations `json:"annotations,omitempty"`
}

// MetricRow is one series in a graph widget: namespace, metric name, and
// optional dimension pairs, terminated by an optional options object.
type MetricRow []any

// MetricOptions is the trailing options object of a metric row.
type MetricOptions struct {
	// Label overrides the series legend entry.
	Label string `json:"label,omitempty"`

	// YAxis selects the axis: "left" or "right".
	YAxis string `json:"yAxis,omitempty"`

	// Color is a hex color for the series.
	Color string `json:"color,omitempty"`
}

// YAxis bounds the vertical axes of a graph widget.
type YAxis struct {
	Left  *AxisRange `json:"left,omitempty"`
	Right *AxisRange `json:"right,omitempty"`
}

// AxisRange is a min/max bound for one axis.
type AxisRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Annotations holds threshold annotations for a graph widget.
type Annotations struct {
	Horizontal []HorizontalAnnotation `json:"horizontal,omitempty"`
}

// HorizontalAnnotation is a threshold line. When Fill is set ("above" or
// "below") the region past the line is shaded as a band.
type HorizontalAnnotation struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
	Fill  string  `json:"fill,omitempty"`
	Color string  `json:"color,omitempty"`
	YAxis string  `json:"yAxis,omitempty"`
}

// Float is a pointer helper for axis bounds.
func Float(f float64) *float64 {
	return &f
}
