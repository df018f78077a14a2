package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleHoldings() []Holding {
	return []Holding{
		{Portfolio: "MBPS", Member: "John", Broker: "ICICI Direct", Sector: "Tech", StockCode: "INFY", CompanyName: "Infosys", Quantity: d("10"), Invested: d("10000"), Current: d("12000")},
		{Portfolio: "MBPS", Member: "Mary", Broker: "Zerodha", Sector: "Tech", StockCode: "TCS", CompanyName: "Tata Consultancy", Quantity: d("2"), Invested: d("5000"), Current: d("4000")},
		{Portfolio: "MBPS", Member: "John", Broker: "Zerodha", Sector: "Energy", StockCode: "RELIANCE", CompanyName: "Reliance Industries", Quantity: d("4"), Invested: d("8000.50"), Current: d("9100.25")},
		{Portfolio: "FAM", Member: "Mary", Broker: "ICICI Direct", Sector: "Banking", StockCode: "HDFC", CompanyName: "HDFC Bank", Quantity: d("0"), Invested: d("0"), Current: d("1500")},
	}
}

func TestSummarize_TechSector(t *testing.T) {
	holdings := []Holding{
		{Sector: "Tech", Invested: d("10000"), Current: d("12000")},
		{Sector: "Tech", Invested: d("5000"), Current: d("4000")},
	}
	rows, total := Summarize(holdings, BySector)

	require.Len(t, rows, 1)
	assert.Equal(t, "Tech", rows[0].Group)
	assert.Equal(t, 2, rows[0].Count)
	assert.True(t, rows[0].Invested.Equal(d("15000")))
	assert.True(t, rows[0].Current.Equal(d("16000")))
	assert.True(t, rows[0].GainLoss.Equal(d("1000")))
	assert.Equal(t, "6.67", rows[0].ReturnPct.StringFixed(2))

	assert.Equal(t, TotalLabel, total.Group)
	assert.True(t, total.Invested.Equal(rows[0].Invested))
	assert.True(t, total.Current.Equal(rows[0].Current))
	assert.True(t, total.ReturnPct.Equal(rows[0].ReturnPct))
}

func TestSummarize_SumsMatchForEveryKey(t *testing.T) {
	holdings := sampleHoldings()
	invested, current := decimal.Zero, decimal.Zero
	for _, h := range holdings {
		invested = invested.Add(h.Invested)
		current = current.Add(h.Current)
	}

	for _, key := range append(GroupKeys, ByPortfolio) {
		t.Run(string(key), func(t *testing.T) {
			rows, total := Summarize(holdings, key)
			sumInvested, sumCurrent, count := decimal.Zero, decimal.Zero, 0
			for _, r := range rows {
				sumInvested = sumInvested.Add(r.Invested)
				sumCurrent = sumCurrent.Add(r.Current)
				count += r.Count
			}
			assert.True(t, sumInvested.Equal(invested), "invested %s != %s", sumInvested, invested)
			assert.True(t, sumCurrent.Equal(current), "current %s != %s", sumCurrent, current)
			assert.Equal(t, len(holdings), count)

			assert.True(t, total.Invested.Equal(invested))
			assert.True(t, total.Current.Equal(current))
			assert.Equal(t, len(holdings), total.Count)
		})
	}
}

func TestSummarize_GroupsAreOrdered(t *testing.T) {
	rows, _ := Summarize(sampleHoldings(), ByStock)
	groups := []string{}
	for _, r := range rows {
		groups = append(groups, r.Group)
	}
	assert.Equal(t, []string{"HDFC", "INFY", "RELIANCE", "TCS"}, groups)
}

func TestSummarize_ZeroCost(t *testing.T) {
	holdings := []Holding{
		{Member: "A", Invested: d("0"), Current: d("100")},
		{Member: "B", Invested: d("0"), Current: d("0")},
	}
	require.NotPanics(t, func() {
		rows, total := Summarize(holdings, ByMember)
		for _, r := range rows {
			assert.True(t, r.ReturnPct.Equal(ZeroCostReturn), "group %s", r.Group)
		}
		assert.True(t, total.ReturnPct.Equal(ZeroCostReturn))
	})
}

func TestSummarize_Empty(t *testing.T) {
	rows, total := Summarize(nil, BySector)
	assert.Empty(t, rows)
	assert.Equal(t, TotalLabel, total.Group)
	assert.Equal(t, 0, total.Count)
	assert.True(t, total.Invested.IsZero())
	assert.True(t, total.ReturnPct.Equal(ZeroCostReturn))
}

func TestSummarize_Deterministic(t *testing.T) {
	holdings := sampleHoldings()
	rows1, total1 := Summarize(holdings, ByBroker)
	rows2, total2 := Summarize(holdings, ByBroker)

	b1, err := json.Marshal(Rows(rows1, total1))
	require.NoError(t, err)
	b2, err := json.Marshal(Rows(rows2, total2))
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestRows_TotalLast(t *testing.T) {
	rows, total := Summarize(sampleHoldings(), ByMember)
	all := Rows(rows, total)
	require.Len(t, all, len(rows)+1)
	assert.Equal(t, TotalLabel, all[len(all)-1].Group)
}

func TestDetail(t *testing.T) {
	holdings := sampleHoldings()
	rows := Detail(holdings)
	require.Len(t, rows, len(holdings))

	for i, r := range rows {
		assert.Equal(t, holdings[i].CompanyName, r.CompanyName, "order must be preserved")
		if holdings[i].Invested.IsPositive() {
			want := holdings[i].Current.Sub(holdings[i].Invested).Div(holdings[i].Invested).Mul(decimal.NewFromInt(100))
			assert.True(t, r.ReturnPct.Equal(want), "row %d: %s != %s", i, r.ReturnPct, want)
		}
	}
	assert.Equal(t, "20.00", rows[0].ReturnPct.StringFixed(2))
	assert.Equal(t, "-20.00", rows[1].ReturnPct.StringFixed(2))
	assert.True(t, rows[3].ReturnPct.Equal(ZeroCostReturn))
	assert.True(t, rows[3].GainLoss.Equal(d("1500")))
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(sampleHoldings())
	assert.Equal(t, 4, s.Count)
	assert.True(t, s.Invested.Equal(d("23000.50")))
	assert.True(t, s.Current.Equal(d("26600.25")))
	assert.True(t, s.GainLoss.Equal(d("3599.75")))
	assert.Equal(t, "15.65", s.ReturnPct.StringFixed(2))
}
