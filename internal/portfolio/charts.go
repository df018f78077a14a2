package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Point is one label/value pair of a chart series.
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Series is a named list of points, in the order they should be drawn.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// ValueDistribution is the share of current value per group (pie chart).
func ValueDistribution(rows []SummaryRow) Series {
	s := Series{Name: "current", Points: make([]Point, 0, len(rows))}
	for _, r := range rows {
		s.Points = append(s.Points, Point{Label: r.Group, Value: r.Current})
	}
	return s
}

// ReturnSeries is the return per group (bar chart).
func ReturnSeries(rows []SummaryRow) Series {
	s := Series{Name: "return_pct", Points: make([]Point, 0, len(rows))}
	for _, r := range rows {
		s.Points = append(s.Points, Point{Label: r.Group, Value: r.ReturnPct})
	}
	return s
}

// CostVsValue returns the invested and current series of a grouped bar chart.
func CostVsValue(rows []SummaryRow) []Series {
	invested := Series{Name: "invested", Points: make([]Point, 0, len(rows))}
	current := Series{Name: "current", Points: make([]Point, 0, len(rows))}
	for _, r := range rows {
		invested.Points = append(invested.Points, Point{Label: r.Group, Value: r.Invested})
		current.Points = append(current.Points, Point{Label: r.Group, Value: r.Current})
	}
	return []Series{invested, current}
}

// TopPerformers returns the n rows with the highest return, best first.
// n <= 0 returns every row.
func TopPerformers(rows []DetailRow, n int) []DetailRow {
	out := make([]DetailRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReturnPct.GreaterThan(out[j].ReturnPct)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// MetricRow is the average portfolio metric of one group.
type MetricRow struct {
	Group   string  `json:"group"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// AverageMetrics averages the Metrics field per group. Holdings without the
// field are ignored and groups without any value are omitted.
func AverageMetrics(holdings []Holding, key GroupKey) []MetricRow {
	values := map[string][]float64{}
	for _, h := range holdings {
		if !h.Metrics.Valid {
			continue
		}
		g := key.Value(h)
		values[g] = append(values[g], h.Metrics.Decimal.InexactFloat64())
	}
	groups := make([]string, 0, len(values))
	for g := range values {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	out := make([]MetricRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, MetricRow{Group: g, Count: len(values[g]), Average: stat.Mean(values[g], nil)})
	}
	return out
}
