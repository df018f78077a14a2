package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"folio/internal/labels"
	"folio/internal/portfolio"
	"folio/internal/service"

	"github.com/vmihailenco/msgpack/v5"
)

// Table is a fully formatted table ready for display.
type Table struct {
	Title  string     `json:"title" msgpack:"title"`
	Header []string   `json:"header" msgpack:"header"`
	Rows   [][]string `json:"rows" msgpack:"rows"`
}

// SummaryTable formats the summary rows of r, numbered, with the total last.
func SummaryTable(r *service.Report, l labels.Set, f portfolio.Formatter) Table {
	t := Table{
		Title: l.Get("summary"),
		Header: []string{
			l.Get("s_no"), l.Get(string(r.Query.GroupBy)), l.Get("count"),
			l.Get("invested"), l.Get("current"), l.Get("gain_loss"), l.Get("return_pct"),
		},
	}
	for i, row := range portfolio.Rows(r.Summary, r.Total) {
		group := row.Group
		if i == len(r.Summary) {
			group = l.Get("total")
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1), group, strconv.Itoa(row.Count),
			f.Currency(row.Invested), f.Currency(row.Current), f.SignedCurrency(row.GainLoss), f.Percentage(row.ReturnPct),
		})
	}
	return t
}

// DetailTable formats the detail rows of r in report order.
func DetailTable(r *service.Report, l labels.Set, f portfolio.Formatter) Table {
	t := Table{
		Title: l.Get("detail"),
		Header: []string{
			l.Get("member"), l.Get("broker"), l.Get("sector"), l.Get("stock"), l.Get("company_name"),
			l.Get("quantity"), l.Get("invested"), l.Get("current"), l.Get("return_pct"), l.Get("holding_days"),
		},
	}
	for _, e := range r.Detail {
		days := ""
		if e.HoldingDays != nil {
			days = strconv.Itoa(*e.HoldingDays)
		}
		t.Rows = append(t.Rows, []string{
			e.Member, e.Broker, e.Sector, e.StockCode, e.CompanyName,
			e.Quantity.String(), f.Currency(e.Invested), f.Currency(e.Current), f.Percentage(e.ReturnPct), days,
		})
	}
	return t
}

// TopTable formats the top performers of r.
func TopTable(r *service.Report, l labels.Set, f portfolio.Formatter) Table {
	t := Table{
		Title:  l.Get("top_performers"),
		Header: []string{l.Get("stock"), l.Get("member"), l.Get("return_pct")},
	}
	for _, d := range r.TopPerformers {
		t.Rows = append(t.Rows, []string{d.Instrument(), d.Member, f.Percentage(d.ReturnPct)})
	}
	return t
}

// MetricsTable formats the average portfolio metrics of r.
func MetricsTable(r *service.Report, l labels.Set) Table {
	t := Table{
		Title:  l.Get("metrics"),
		Header: []string{l.Get(string(r.Query.GroupBy)), l.Get("metrics")},
	}
	for _, m := range r.Metrics {
		t.Rows = append(t.Rows, []string{m.Group, strconv.FormatFloat(m.Average, 'f', 2, 64)})
	}
	return t
}

// WriteCSV writes the header and rows of t.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func MarshalMsgpack(t Table) ([]byte, error) {
	return msgpack.Marshal(t)
}
