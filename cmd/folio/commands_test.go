package main

import (
	"bytes"
	"flag"
	"testing"
	"time"

	"folio/internal/models"
	"folio/internal/portfolio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCmd_Query(t *testing.T) {
	p := &reportCmd{}
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	p.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-group", "sector", "-member", "Ravi", "-member", "Asha", "-stock", "Reliance Industries, Ltd.", "-top", "3", "-as-of", "2024-05-01"}))

	q, err := p.query()
	require.NoError(t, err)
	assert.Equal(t, portfolio.BySector, q.GroupBy)
	assert.Equal(t, portfolio.BySector, q.SortBy)
	assert.Equal(t, []string{"Ravi", "Asha"}, q.Filter.Members)
	assert.Equal(t, []string{"Reliance Industries, Ltd."}, q.Filter.Stocks)
	assert.Nil(t, q.Filter.Brokers)
	assert.Equal(t, 3, q.Top)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), q.AsOf)
}

func TestReportCmd_BadGroup(t *testing.T) {
	p := &reportCmd{}
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	p.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"-group", "colour"}))

	_, err := p.query()
	assert.Error(t, err)
}

func TestWriteDatasets(t *testing.T) {
	var buf bytes.Buffer
	writeDatasets(&buf, []models.Dataset{
		{ID: "ds-1", Name: "family.csv", Rows: 4, Source: "upload", CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
	})
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "ds-1")
	assert.Contains(t, out, "2024-03-01 09:30")
}
