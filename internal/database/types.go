package database

import (
	"database/sql"
	"fmt"
	"time"

	"folio/internal/models"
	"folio/internal/portfolio"

	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"
	// fixed width so that SQLite text timestamps sort chronologically
	timestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

type datasetRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Source    string `db:"source"`
	Checksum  string `db:"checksum"`
	Rows      int    `db:"row_count"`
	CreatedAt dbTime `db:"created_at"`
}

func (d datasetRow) model() models.Dataset {
	return models.Dataset{
		ID:        d.ID,
		Name:      d.Name,
		Source:    d.Source,
		Checksum:  d.Checksum,
		Rows:      d.Rows,
		CreatedAt: time.Time(d.CreatedAt),
	}
}

type holdingRow struct {
	Portfolio       string              `db:"portfolio"`
	Member          string              `db:"member"`
	Broker          string              `db:"broker"`
	Sector          string              `db:"sector"`
	StockCode       string              `db:"stock_code"`
	CompanyName     string              `db:"company_name"`
	Quantity        decimal.Decimal     `db:"quantity"`
	Invested        decimal.Decimal     `db:"invested_amount"`
	Current         decimal.Decimal     `db:"current_value"`
	TransactionDate sql.NullString      `db:"transaction_date"`
	Metrics         decimal.NullDecimal `db:"metrics"`
}

func toRow(h portfolio.Holding) holdingRow {
	row := holdingRow{
		Portfolio:   h.Portfolio,
		Member:      h.Member,
		Broker:      h.Broker,
		Sector:      h.Sector,
		StockCode:   h.StockCode,
		CompanyName: h.CompanyName,
		Quantity:    h.Quantity,
		Invested:    h.Invested,
		Current:     h.Current,
		Metrics:     h.Metrics,
	}
	if !h.TransactionDate.IsZero() {
		row.TransactionDate = sql.NullString{String: h.TransactionDate.Format(dateLayout), Valid: true}
	}
	return row
}

func (r holdingRow) holding() portfolio.Holding {
	h := portfolio.Holding{
		Portfolio:   r.Portfolio,
		Member:      r.Member,
		Broker:      r.Broker,
		Sector:      r.Sector,
		StockCode:   r.StockCode,
		CompanyName: r.CompanyName,
		Quantity:    r.Quantity,
		Invested:    r.Invested,
		Current:     r.Current,
		Metrics:     r.Metrics,
	}
	if r.TransactionDate.Valid {
		if ts, err := time.Parse(dateLayout, r.TransactionDate.String); err == nil {
			h.TransactionDate = ts
		}
	}
	return h
}

// dbTime scans timestamps from Postgres (time.Time) and SQLite (text).
type dbTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

func (t *dbTime) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case time.Time:
		*t = dbTime(v.UTC())
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*t = dbTime{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			*t = dbTime(ts.UTC())
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}
