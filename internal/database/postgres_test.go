package database

import (
	"context"
	"os"
	"testing"

	"folio/internal/portfolio"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_SummaryFromStoredHoldings(t *testing.T) {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL is not set; skipping integration tests")
	}
	db, err := Open("postgres", url)
	require.NoError(t, err)
	defer db.Close()

	r := New(db, testLogger())
	ctx := context.Background()
	require.NoError(t, r.Migrate(ctx))

	source := "postgres-integration-test"
	ds, err := r.ReplaceDataset(ctx, "integration", source, "", testHoldings())
	require.NoError(t, err)
	defer r.DeleteDataset(ctx, ds.ID)

	holdings, err := r.GetHoldings(ctx, ds.ID)
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	// Expected: invested 10000.25 + 0, current 12000 + 7500.75
	_, total := portfolio.Summarize(holdings, portfolio.ByMember)
	assert.True(t, total.Invested.Equal(decimal.RequireFromString("10000.25")), "invested %s", total.Invested)
	assert.True(t, total.Current.Equal(decimal.RequireFromString("19500.75")), "current %s", total.Current)
}
