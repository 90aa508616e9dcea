package domain

// FormatReport is the request format that selects the prose report
// branch; every other format produces a chart.
const FormatReport = "full ai report"

// ChartShape selects which chart JSON template is sent to the model.
type ChartShape string

const (
	ChartShapePie     ChartShape = "pie"
	ChartShapeBarLine ChartShape = "bar_line"
)

// ShapeForFormat maps a request format string to a chart shape.
// Only the exact string "pie chart" selects the pie shape; everything
// else, including "line graph", falls through to bar/line.
func ShapeForFormat(format string) ChartShape {
	if format == "pie chart" {
		return ChartShapePie
	}
	return ChartShapeBarLine
}
