package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"folio/internal/portfolio"
)

// Query is the user's current selection on a dataset.
type Query struct {
	Filter  portfolio.Filter   `json:"filter"`
	GroupBy portfolio.GroupKey `json:"group_by"`
	SortBy  portfolio.GroupKey `json:"sort_by"`
	Top     int                `json:"top"`
	AsOf    time.Time          `json:"as_of"`
}

const defaultTop = 10

// DefaultQuery groups and sorts by member without filters.
func DefaultQuery() Query {
	return Query{GroupBy: portfolio.ByMember, SortBy: portfolio.ByMember, Top: defaultTop}
}

// ParseQuery reads a query from request parameters. Filter parameters are
// repeated to select several values; each value is taken whole.
func ParseQuery(v url.Values) (Query, error) {
	q := DefaultQuery()
	if s := v.Get("group"); s != "" {
		k, err := portfolio.ParseGroupKey(s)
		if err != nil {
			return Query{}, err
		}
		q.GroupBy = k
		q.SortBy = k
	}
	if s := v.Get("sort"); s != "" {
		k, err := portfolio.ParseGroupKey(s)
		if err != nil {
			return Query{}, err
		}
		q.SortBy = k
	}
	if s := v.Get("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Query{}, fmt.Errorf("invalid top %q", s)
		}
		q.Top = n
	}
	if s := v.Get("as_of"); s != "" {
		ts, err := time.Parse("2006-01-02", s)
		if err != nil {
			return Query{}, fmt.Errorf("invalid as_of %q: %w", s, err)
		}
		q.AsOf = ts
	}
	q.Filter = portfolio.Filter{
		Portfolios: values(v["portfolio"]),
		Members:    values(v["member"]),
		Brokers:    values(v["broker"]),
		Sectors:    values(v["sector"]),
		Stocks:     values(v["stock"]),
	}
	return q, nil
}

// allValues selects everything when it is the only value of a filter.
const allValues = "All"

func values(raw []string) []string {
	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 1 && out[0] == allValues {
		return nil
	}
	return out
}
