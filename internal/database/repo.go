package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"folio/internal/models"
	"folio/internal/portfolio"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a dataset does not exist.
var ErrNotFound = errors.New("dataset not found")

//go:embed migrations
var migrations embed.FS

type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

// Migrate creates the schema for the repo's driver.
func (r *Repo) Migrate(ctx context.Context) error {
	dialect := "postgres"
	if r.db.DriverName() == "sqlite" {
		dialect = "sqlite"
	}
	files, err := migrations.ReadDir("migrations/" + dialect)
	if err != nil {
		return err
	}
	for _, f := range files {
		b, err := migrations.ReadFile("migrations/" + dialect + "/" + f.Name())
		if err != nil {
			return err
		}
		if _, err := r.db.ExecContext(ctx, string(b)); err != nil {
			return fmt.Errorf("migration %s: %w", f.Name(), err)
		}
		r.log.Debugf("applied migration %s/%s", dialect, f.Name())
	}
	return nil
}

const datasetColumns = `id, name, source, checksum, row_count, created_at`

// CreateDataset stores holdings as a new dataset.
func (r *Repo) CreateDataset(ctx context.Context, name, source, checksum string, holdings []portfolio.Holding) (models.Dataset, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Dataset{}, err
	}
	defer tx.Rollback()

	ds, err := r.insertDataset(ctx, tx, name, source, checksum, holdings)
	if err != nil {
		return models.Dataset{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}

// ReplaceDataset removes every dataset imported from source and stores holdings
// in its place, in a single transaction.
func (r *Repo) ReplaceDataset(ctx context.Context, name, source, checksum string, holdings []portfolio.Holding) (models.Dataset, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Dataset{}, err
	}
	defer tx.Rollback()

	var ids []string
	if err := tx.SelectContext(ctx, &ids, r.db.Rebind(`SELECT id FROM datasets WHERE source = ?`), source); err != nil {
		return models.Dataset{}, err
	}
	for _, id := range ids {
		if err := r.deleteDataset(ctx, tx, id); err != nil {
			return models.Dataset{}, err
		}
	}

	ds, err := r.insertDataset(ctx, tx, name, source, checksum, holdings)
	if err != nil {
		return models.Dataset{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Dataset{}, err
	}
	if len(ids) > 0 {
		r.log.Infof("replaced %d dataset(s) from %s with %s", len(ids), source, ds.ID)
	}
	return ds, nil
}

func (r *Repo) insertDataset(ctx context.Context, tx *sqlx.Tx, name, source, checksum string, holdings []portfolio.Holding) (models.Dataset, error) {
	ds := models.Dataset{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		Checksum:  checksum,
		Rows:      len(holdings),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	q := r.db.Rebind(`INSERT INTO datasets (` + datasetColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, q, ds.ID, ds.Name, ds.Source, ds.Checksum, ds.Rows, ds.CreatedAt.Format(timestampLayout)); err != nil {
		return models.Dataset{}, fmt.Errorf("insert dataset: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, r.db.Rebind(`INSERT INTO holdings (dataset_id, position, portfolio, member, broker, sector, stock_code, company_name, quantity, invested_amount, current_value, transaction_date, metrics) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return models.Dataset{}, err
	}
	defer stmt.Close()
	for i, h := range holdings {
		row := toRow(h)
		if _, err := stmt.ExecContext(ctx, ds.ID, i, row.Portfolio, row.Member, row.Broker, row.Sector, row.StockCode, row.CompanyName,
			row.Quantity, row.Invested, row.Current, row.TransactionDate, row.Metrics); err != nil {
			return models.Dataset{}, fmt.Errorf("insert holding %d: %w", i, err)
		}
	}
	return ds, nil
}

func (r *Repo) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT `+datasetColumns+` FROM datasets ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.Dataset{}
	for rows.Next() {
		var d datasetRow
		if err := rows.StructScan(&d); err != nil {
			r.log.Warnf("scan dataset failed: %v", err)
			continue
		}
		res = append(res, d.model())
	}
	return res, rows.Err()
}

func (r *Repo) GetDataset(ctx context.Context, id string) (models.Dataset, error) {
	var d datasetRow
	err := r.db.GetContext(ctx, &d, r.db.Rebind(`SELECT `+datasetColumns+` FROM datasets WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dataset{}, ErrNotFound
	}
	if err != nil {
		return models.Dataset{}, err
	}
	return d.model(), nil
}

// LatestDataset returns the most recently imported dataset.
func (r *Repo) LatestDataset(ctx context.Context) (models.Dataset, error) {
	var d datasetRow
	err := r.db.GetContext(ctx, &d, `SELECT `+datasetColumns+` FROM datasets ORDER BY created_at DESC, id LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dataset{}, ErrNotFound
	}
	if err != nil {
		return models.Dataset{}, err
	}
	return d.model(), nil
}

// GetHoldings returns the holdings of a dataset in import order.
func (r *Repo) GetHoldings(ctx context.Context, datasetID string) ([]portfolio.Holding, error) {
	if _, err := r.GetDataset(ctx, datasetID); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(`SELECT portfolio, member, broker, sector, stock_code, company_name, quantity, invested_amount, current_value, transaction_date, metrics FROM holdings WHERE dataset_id = ? ORDER BY position`), datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []portfolio.Holding{}
	for rows.Next() {
		var h holdingRow
		if err := rows.StructScan(&h); err != nil {
			r.log.Warnf("scan holding failed: %v", err)
			continue
		}
		res = append(res, h.holding())
	}
	return res, rows.Err()
}

func (r *Repo) DeleteDataset(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := r.deleteDataset(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) deleteDataset(ctx context.Context, tx *sqlx.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM holdings WHERE dataset_id = ?`), id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM datasets WHERE id = ?`), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected reports ErrNotFound when res touched no rows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
