package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"folio/internal/ingest"
	"folio/internal/models"
	"folio/internal/portfolio"

	"github.com/sirupsen/logrus"
)

// DetailEntry is a detail row with its holding period when known.
type DetailEntry struct {
	portfolio.DetailRow
	HoldingDays *int `json:"holding_days,omitempty"`
}

type Charts struct {
	Distribution       portfolio.Series   `json:"distribution"`
	Returns            portfolio.Series   `json:"returns"`
	SectorDistribution portfolio.Series   `json:"sector_distribution"`
	BrokerComparison   []portfolio.Series `json:"broker_comparison"`
}

// Report holds every table of the dashboard for one query.
type Report struct {
	Dataset       models.Dataset         `json:"dataset"`
	Query         Query                  `json:"query"`
	Empty         bool                   `json:"empty"`
	Summary       []portfolio.SummaryRow `json:"summary"`
	Total         portfolio.SummaryRow   `json:"total"`
	Detail        []DetailEntry          `json:"detail"`
	Stats         portfolio.Stats        `json:"stats"`
	Charts        Charts                 `json:"charts"`
	TopPerformers []portfolio.DetailRow  `json:"top_performers"`
	Metrics       []portfolio.MetricRow  `json:"metrics"`
}

type Dashboard struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

func NewDashboard(s Store, log *logrus.Logger) *Dashboard {
	return &Dashboard{store: s, log: log, now: time.Now}
}

// Import reads a holdings CSV and stores it as a new dataset.
func (d *Dashboard) Import(ctx context.Context, name, source string, r io.Reader) (models.Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return models.Dataset{}, err
	}
	holdings, err := ingest.Read(bytes.NewReader(b), d.log)
	if err != nil {
		return models.Dataset{}, err
	}
	ds, err := d.store.CreateDataset(ctx, name, source, checksum(b), holdings)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("store dataset: %w", err)
	}
	d.log.Infof("imported dataset %s (%s) with %d holdings", ds.ID, name, len(holdings))
	return ds, nil
}

// Options lists the filter values available in a dataset.
func (d *Dashboard) Options(ctx context.Context, datasetID string) (portfolio.Options, error) {
	holdings, err := d.store.GetHoldings(ctx, datasetID)
	if err != nil {
		return portfolio.Options{}, err
	}
	return portfolio.FilterOptions(holdings), nil
}

// Build computes the report of a dataset for q. A query matching no holding is
// not an error: the report is marked Empty.
func (d *Dashboard) Build(ctx context.Context, datasetID string, q Query) (*Report, error) {
	ds, err := d.store.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	holdings, err := d.store.GetHoldings(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	if q.GroupBy == "" {
		q.GroupBy = portfolio.ByMember
	}
	if q.SortBy == "" {
		q.SortBy = q.GroupBy
	}
	if q.AsOf.IsZero() {
		q.AsOf = d.now().UTC()
	}
	return BuildReport(ds, holdings, q), nil
}

// BuildReport computes the report of holdings without touching the store.
func BuildReport(ds models.Dataset, holdings []portfolio.Holding, q Query) *Report {
	filtered := portfolio.Sort(q.Filter.Apply(holdings), q.SortBy)
	summary, total := portfolio.Summarize(filtered, q.GroupBy)
	brokers, _ := portfolio.Summarize(filtered, portfolio.ByBroker)
	sectors, _ := portfolio.Summarize(filtered, portfolio.BySector)
	details := portfolio.Detail(filtered)

	entries := make([]DetailEntry, len(details))
	for i, row := range details {
		entries[i] = DetailEntry{DetailRow: row}
		if days, ok := portfolio.HoldingPeriodDays(row.Holding, q.AsOf); ok {
			entries[i].HoldingDays = &days
		}
	}

	return &Report{
		Dataset: ds,
		Query:   q,
		Empty:   len(filtered) == 0,
		Summary: summary,
		Total:   total,
		Detail:  entries,
		Stats:   portfolio.ComputeStats(filtered),
		Charts: Charts{
			Distribution:       portfolio.ValueDistribution(summary),
			Returns:            portfolio.ReturnSeries(summary),
			SectorDistribution: portfolio.ValueDistribution(sectors),
			BrokerComparison:   portfolio.CostVsValue(brokers),
		},
		TopPerformers: portfolio.TopPerformers(details, q.Top),
		Metrics:       portfolio.AverageMetrics(filtered, q.GroupBy),
	}
}

func checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
