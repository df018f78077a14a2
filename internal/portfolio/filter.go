package portfolio

import "sort"

// Filter keeps the holdings matching every non empty selection. An empty
// selection matches everything.
type Filter struct {
	Portfolios []string `json:"portfolios,omitempty"`
	Members    []string `json:"members,omitempty"`
	Brokers    []string `json:"brokers,omitempty"`
	Sectors    []string `json:"sectors,omitempty"`
	Stocks     []string `json:"stocks,omitempty"`
}

func (f Filter) IsZero() bool {
	return len(f.Portfolios)+len(f.Members)+len(f.Brokers)+len(f.Sectors)+len(f.Stocks) == 0
}

// Apply returns the matching holdings in their original order.
func (f Filter) Apply(holdings []Holding) []Holding {
	sel := []struct {
		key    GroupKey
		values map[string]bool
	}{
		{ByPortfolio, set(f.Portfolios)},
		{ByMember, set(f.Members)},
		{ByBroker, set(f.Brokers)},
		{BySector, set(f.Sectors)},
		{ByStock, set(f.Stocks)},
	}
	out := make([]Holding, 0, len(holdings))
next:
	for _, h := range holdings {
		for _, s := range sel {
			if s.values != nil && !s.values[s.key.Value(h)] {
				continue next
			}
		}
		out = append(out, h)
	}
	return out
}

func set(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// Sort returns a copy of holdings ordered by key, then by company name. Ties
// keep their input order.
func Sort(holdings []Holding, key GroupKey) []Holding {
	out := make([]Holding, len(holdings))
	copy(out, holdings)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key.Value(out[i]), key.Value(out[j])
		if a != b {
			return a < b
		}
		return out[i].CompanyName < out[j].CompanyName
	})
	return out
}

// Options lists the distinct values available to each filter.
type Options struct {
	Portfolios []string `json:"portfolios"`
	Members    []string `json:"members"`
	Brokers    []string `json:"brokers"`
	Sectors    []string `json:"sectors"`
	Stocks     []string `json:"stocks"`
}

func FilterOptions(holdings []Holding) Options {
	return Options{
		Portfolios: distinct(holdings, ByPortfolio),
		Members:    distinct(holdings, ByMember),
		Brokers:    distinct(holdings, ByBroker),
		Sectors:    distinct(holdings, BySector),
		Stocks:     distinct(holdings, ByStock),
	}
}

func distinct(holdings []Holding, key GroupKey) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, h := range holdings {
		v := key.Value(h)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
