package charts

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/jobbotwork/jobbot/internal/model"
)

// ChartGenerator renders conversation-facing charts as PNG buffers.
type ChartGenerator struct{}

func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// statusOrder keeps the bars in funnel order rather than map order.
var statusOrder = []model.ApplicationStatus{
	model.ApplicationPending,
	model.ApplicationSubmitted,
	model.ApplicationRejected,
	model.ApplicationAccepted,
}

// GenerateApplicationsChart draws a bar per application status. Returns
// nil when there is nothing to draw.
func (g *ChartGenerator) GenerateApplicationsChart(applications []model.Application) ([]byte, error) {
	if len(applications) == 0 {
		return nil, nil
	}

	counts := make(map[model.ApplicationStatus]int)
	for _, a := range applications {
		counts[a.Status]++
	}

	bars := make([]chart.Value, 0, len(statusOrder))
	for _, status := range statusOrder {
		if counts[status] == 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: string(status),
			Value: float64(counts[status]),
		})
	}

	graph := chart.BarChart{
		Title:    "Your applications",
		Width:    800,
		Height:   400,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
