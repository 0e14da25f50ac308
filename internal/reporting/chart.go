package reporting

import (
	"fmt"
	"io"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// RenderFormChart renders one team's rolling form as a PNG time series:
// points_ma_5 and points_weighted_ma_5 over its match dates. Rows should come
// from FeatureStore.GetByTeam so they are date-ordered; NULL cells (cold
// start, unranked history) are skipped.
func RenderFormChart(w io.Writer, team string, rows []*domain.FeatureRow, width, height int) error {
	var pointsX, weightedX []time.Time
	var points, weighted []float64

	for _, r := range rows {
		v, ok := vectorFor(r, team)
		if !ok {
			continue
		}
		if v.PointsMA5 != nil {
			pointsX = append(pointsX, r.Date)
			points = append(points, *v.PointsMA5)
		}
		if v.PointsWeightedMA5 != nil {
			weightedX = append(weightedX, r.Date)
			weighted = append(weighted, *v.PointsWeightedMA5)
		}
	}

	// go-chart cannot draw a line through fewer than two points.
	if len(points) < 2 {
		return fmt.Errorf("team %q has %d matches with form data, need at least 2", team, len(points))
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "points_ma_5",
			XValues: pointsX,
			YValues: points,
		},
	}
	if len(weighted) >= 2 {
		series = append(series, chart.TimeSeries{
			Name:    "points_weighted_ma_5",
			XValues: weightedX,
			YValues: weighted,
		})
	}

	formFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	graph := chart.Chart{
		Title:  fmt.Sprintf("%s form", team),
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Points (MA-5)",
			ValueFormatter: formFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// SaveFormChart renders the form chart to a file path.
func SaveFormChart(path, team string, rows []*domain.FeatureRow, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := RenderFormChart(f, team, rows, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// vectorFor picks the side of the row the team played on.
func vectorFor(r *domain.FeatureRow, team string) (domain.FeatureVector, bool) {
	switch team {
	case r.HomeTeam:
		return r.Home, true
	case r.AwayTeam:
		return r.Away, true
	default:
		return domain.FeatureVector{}, false
	}
}
