package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TotalLabel is the group value of the total row.
const TotalLabel = "Total"

// ZeroCostReturn is the return reported for any row whose invested amount is zero.
var ZeroCostReturn = decimal.Zero

var hundred = decimal.NewFromInt(100)

// SummaryRow aggregates all holdings sharing a group value.
type SummaryRow struct {
	Group     string          `json:"group"`
	Count     int             `json:"count"`
	Invested  decimal.Decimal `json:"invested"`
	Current   decimal.Decimal `json:"current"`
	GainLoss  decimal.Decimal `json:"gain_loss"`
	ReturnPct decimal.Decimal `json:"return_pct"`
}

// DetailRow is a holding together with its own return.
type DetailRow struct {
	Holding
	GainLoss  decimal.Decimal `json:"gain_loss"`
	ReturnPct decimal.Decimal `json:"return_pct"`
}

// Return computes the holding period return in percent. A zero invested amount
// yields ZeroCostReturn.
func Return(invested, current decimal.Decimal) decimal.Decimal {
	if invested.IsZero() {
		return ZeroCostReturn
	}
	return current.Sub(invested).Div(invested).Mul(hundred)
}

func newSummaryRow(group string, count int, invested, current decimal.Decimal) SummaryRow {
	return SummaryRow{
		Group:     group,
		Count:     count,
		Invested:  invested,
		Current:   current,
		GainLoss:  current.Sub(invested),
		ReturnPct: Return(invested, current),
	}
}

// Summarize partitions holdings by key and returns one row per group, ordered by
// group value, along with the total row over all holdings.
func Summarize(holdings []Holding, key GroupKey) ([]SummaryRow, SummaryRow) {
	type acc struct {
		count             int
		invested, current decimal.Decimal
	}
	groups := map[string]*acc{}
	var total acc
	for _, h := range holdings {
		g := key.Value(h)
		a, ok := groups[g]
		if !ok {
			a = &acc{}
			groups[g] = a
		}
		a.count++
		a.invested = a.invested.Add(h.Invested)
		a.current = a.current.Add(h.Current)

		total.count++
		total.invested = total.invested.Add(h.Invested)
		total.current = total.current.Add(h.Current)
	}

	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	rows := make([]SummaryRow, 0, len(names))
	for _, g := range names {
		a := groups[g]
		rows = append(rows, newSummaryRow(g, a.count, a.invested, a.current))
	}
	return rows, newSummaryRow(TotalLabel, total.count, total.invested, total.current)
}

// Rows returns the summary rows followed by the total row.
func Rows(summary []SummaryRow, total SummaryRow) []SummaryRow {
	out := make([]SummaryRow, 0, len(summary)+1)
	out = append(out, summary...)
	return append(out, total)
}

// Detail computes the return of every holding. Order is preserved.
func Detail(holdings []Holding) []DetailRow {
	out := make([]DetailRow, len(holdings))
	for i, h := range holdings {
		out[i] = DetailRow{
			Holding:   h,
			GainLoss:  h.Current.Sub(h.Invested),
			ReturnPct: Return(h.Invested, h.Current),
		}
	}
	return out
}

// Stats are the headline figures of a holding set.
type Stats struct {
	Count     int             `json:"count"`
	Invested  decimal.Decimal `json:"invested"`
	Current   decimal.Decimal `json:"current"`
	GainLoss  decimal.Decimal `json:"gain_loss"`
	ReturnPct decimal.Decimal `json:"return_pct"`
}

func ComputeStats(holdings []Holding) Stats {
	_, total := Summarize(holdings, ByMember)
	return Stats{
		Count:     total.Count,
		Invested:  total.Invested,
		Current:   total.Current,
		GainLoss:  total.GainLoss,
		ReturnPct: total.ReturnPct,
	}
}
