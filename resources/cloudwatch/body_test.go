package cloudwatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardBody_JSON(t *testing.T) {
	body := DashboardBody{
		Widgets: []Widget{
			{
				Type:  "metric",
				Width: 12, Height: 6,
				Properties: GraphWidgetProperties{
					Title:  "RaspberryPi sensors",
					View:   "timeSeries",
					Region: "${AWS::Region}",
					Metrics: []MetricRow{
						{"RuuviTag/f3d619998f38", "temperature"},
						{"RuuviTag/f3d619998f38", "humidity", MetricOptions{YAxis: "right"}},
					},
					Stat:   "Average",
					Period: 300,
					YAxis: &YAxis{
						Left:  &AxisRange{Min: Float(-40), Max: Float(60)},
						Right: &AxisRange{Min: Float(0), Max: Float(100)},
					},
					Annotations: &Annotations{
						Horizontal: []HorizontalAnnotation{
							{Label: "Freezing", Value: 0, Fill: "below"},
						},
					},
				},
			},
		},
	}

	s, err := body.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &decoded))

	widgets := decoded["widgets"].([]any)
	require.Len(t, widgets, 1)

	props := widgets[0].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "timeSeries", props["view"])
	assert.Equal(t, float64(300), props["period"])

	metrics := props["metrics"].([]any)
	require.Len(t, metrics, 2)
	first := metrics[0].([]any)
	assert.Equal(t, "RuuviTag/f3d619998f38", first[0])
	assert.Equal(t, "temperature", first[1])

	// humidity rides the right axis
	second := metrics[1].([]any)
	opts := second[2].(map[string]any)
	assert.Equal(t, "right", opts["yAxis"])
}

func TestDashboardBody_OmitsEmptyOptions(t *testing.T) {
	body := DashboardBody{
		Widgets: []Widget{
			{Type: "metric", Properties: GraphWidgetProperties{
				Metrics: []MetricRow{{"NS", "temperature"}},
			}},
		},
	}

	s, err := body.JSON()
	require.NoError(t, err)
	assert.NotContains(t, s, "yAxis")
	assert.NotContains(t, s, "annotations")
}
