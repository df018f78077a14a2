// Package portfolio aggregates portfolio holdings into summary, detail and chart
// tables. Every function in this package is a pure function of its inputs.
package portfolio

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one position held by a member at a broker.
type Holding struct {
	Portfolio       string              `json:"portfolio,omitempty"`
	Member          string              `json:"member"`
	Broker          string              `json:"broker"`
	Sector          string              `json:"sector"`
	StockCode       string              `json:"stock_code,omitempty"`
	CompanyName     string              `json:"company_name,omitempty"`
	Quantity        decimal.Decimal     `json:"quantity"`
	Invested        decimal.Decimal     `json:"invested"`
	Current         decimal.Decimal     `json:"current"`
	TransactionDate time.Time           `json:"transaction_date"`
	Metrics         decimal.NullDecimal `json:"metrics"`
}

// Instrument returns the stock code, or the company name when no code is known.
func (h Holding) Instrument() string {
	if h.StockCode != "" {
		return h.StockCode
	}
	return h.CompanyName
}

// GroupKey selects the attribute holdings are partitioned by.
type GroupKey string

const (
	ByMember    GroupKey = "member"
	ByBroker    GroupKey = "broker"
	BySector    GroupKey = "sector"
	ByStock     GroupKey = "stock"
	ByPortfolio GroupKey = "portfolio"
)

// GroupKeys lists the keys a summary can be requested by, in display order.
var GroupKeys = []GroupKey{ByMember, BySector, ByBroker, ByStock}

// Value returns the holding's value for key.
func (k GroupKey) Value(h Holding) string {
	switch k {
	case ByMember:
		return h.Member
	case ByBroker:
		return h.Broker
	case BySector:
		return h.Sector
	case ByStock:
		return h.Instrument()
	case ByPortfolio:
		return h.Portfolio
	}
	return ""
}

func (k GroupKey) Valid() bool {
	switch k {
	case ByMember, ByBroker, BySector, ByStock, ByPortfolio:
		return true
	}
	return false
}

// ParseGroupKey accepts the canonical key names as well as the column headers
// used by the dashboard CSV exports ("family member name", "sector code", ...).
func ParseGroupKey(s string) (GroupKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "member", "family member", "family member name":
		return ByMember, nil
	case "broker", "broker name":
		return ByBroker, nil
	case "sector", "sector code":
		return BySector, nil
	case "stock", "stock code", "company", "company name":
		return ByStock, nil
	case "portfolio":
		return ByPortfolio, nil
	}
	return "", fmt.Errorf("unknown group key %q", s)
}

// HoldingPeriodDays returns the number of whole days the holding was held as of
// asOf. It reports false when the holding has no transaction date.
func HoldingPeriodDays(h Holding, asOf time.Time) (int, bool) {
	if h.TransactionDate.IsZero() {
		return 0, false
	}
	from := h.TransactionDate.UTC().Truncate(24 * time.Hour)
	to := asOf.UTC().Truncate(24 * time.Hour)
	return int(to.Sub(from) / (24 * time.Hour)), true
}
