package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"folio/internal/portfolio"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type column int

const (
	colPortfolio column = iota
	colMember
	colBroker
	colSector
	colStockCode
	colCompanyName
	colQuantity
	colInvested
	colCurrent
	colTransactionDate
	colMetrics
	numColumns
)

var columnNames = [numColumns]string{
	"portfolio", "member", "broker", "sector", "stock code", "company name",
	"quantity", "invested amount", "current value", "transaction date", "portfolio metrics",
}

// headers maps normalized header text to a column. Both dashboard export
// layouts are accepted.
var headers = map[string]column{
	"portfolio":              colPortfolio,
	"member":                 colMember,
	"family member":          colMember,
	"family member name":     colMember,
	"broker":                 colBroker,
	"broker name":            colBroker,
	"sector":                 colSector,
	"sector code":            colSector,
	"stock code":             colStockCode,
	"symbol":                 colStockCode,
	"company name":           colCompanyName,
	"company":                colCompanyName,
	"qty":                    colQuantity,
	"quantity":               colQuantity,
	"value at cost":          colInvested,
	"invested amount":        colInvested,
	"invested":               colInvested,
	"value at market price":  colCurrent,
	"current value":          colCurrent,
	"transaction date":       colTransactionDate,
	"portfolio metrics":      colMetrics,
	"portfolio metrics code": colMetrics,
	"beta":                   colMetrics,
}

var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006", "2006/01/02", time.RFC3339}

// MissingColumnsError reports required columns absent from the CSV header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

func normalize(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// Read parses holdings from CSV. Malformed amounts and quantities become zero
// and are logged, they never fail the import.
func Read(r io.Reader, log *logrus.Logger) ([]portfolio.Holding, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingColumnsError{Columns: requiredNames(nil)}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		if c, ok := headers[normalize(h)]; ok && idx[c] < 0 {
			idx[c] = i
		}
	}
	if missing := requiredNames(&idx); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	res := []portfolio.Holding{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		field := func(c column) string {
			if idx[c] < 0 || idx[c] >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx[c]])
		}
		amount := func(c column) decimal.Decimal {
			v, ok := parseAmount(field(c))
			if !ok {
				log.Warnf("line %d: invalid %s %q, using 0", line, columnNames[c], field(c))
			}
			return v
		}

		h := portfolio.Holding{
			Portfolio:   field(colPortfolio),
			Member:      field(colMember),
			Broker:      field(colBroker),
			Sector:      field(colSector),
			StockCode:   field(colStockCode),
			CompanyName: field(colCompanyName),
			Quantity:    amount(colQuantity),
			Invested:    amount(colInvested),
			Current:     amount(colCurrent),
		}
		if s := field(colTransactionDate); s != "" {
			if ts, ok := parseDate(s); ok {
				h.TransactionDate = ts
			} else {
				log.Warnf("line %d: invalid transaction date %q, ignored", line, s)
			}
		}
		if s := field(colMetrics); s != "" {
			if m, err := decimal.NewFromString(cleanNumber(s)); err == nil {
				h.Metrics = decimal.NewNullDecimal(m)
			} else {
				log.Warnf("line %d: invalid portfolio metrics %q, ignored", line, s)
			}
		}
		res = append(res, h)
	}
	return res, nil
}

// ReadFile parses the CSV file at path.
func ReadFile(path string, log *logrus.Logger) ([]portfolio.Holding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, log)
}

// requiredNames returns the required columns not found in idx. A nil idx
// reports all of them.
func requiredNames(idx *[numColumns]int) []string {
	found := func(c column) bool { return idx != nil && idx[c] >= 0 }
	missing := []string{}
	for _, c := range []column{colMember, colBroker, colSector} {
		if !found(c) {
			missing = append(missing, columnNames[c])
		}
	}
	if !found(colStockCode) && !found(colCompanyName) {
		missing = append(missing, columnNames[colStockCode]+" or "+columnNames[colCompanyName])
	}
	for _, c := range []column{colInvested, colCurrent} {
		if !found(c) {
			missing = append(missing, columnNames[c])
		}
	}
	return missing
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// currencyPrefixes are stripped from the front of amounts, longest first.
var currencyPrefixes = []string{"INR", "Rs.", "Rs", "₹"}

// cleanNumber drops a leading currency token, thousands separators and spaces.
// Anything else is left for the decimal parser to reject.
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range currencyPrefixes {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			s = s[len(p):]
			break
		}
	}
	return strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' {
			return -1
		}
		return r
	}, s)
}

// parseAmount reports false when s is not a non-negative number. Empty fields
// are a valid zero.
func parseAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, true
	}
	v, err := decimal.NewFromString(cleanNumber(s))
	if err != nil || v.IsNegative() {
		return decimal.Zero, false
	}
	return v, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
