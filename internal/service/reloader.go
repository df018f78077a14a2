package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"folio/internal/ingest"
	"folio/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reloader keeps the dataset of a CSV file on disk in sync with the file.
type Reloader struct {
	store    Store
	path     string
	schedule string
	log      *logrus.Logger

	mu   sync.Mutex
	last string
}

func NewReloader(s Store, path, schedule string, log *logrus.Logger) *Reloader {
	return &Reloader{store: s, path: path, schedule: schedule, log: log}
}

// Reload imports the file when its content changed since the last import. It
// reports whether a new dataset was stored.
func (r *Reloader) Reload(ctx context.Context) (models.Dataset, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		return models.Dataset{}, false, err
	}
	sum := checksum(b)
	if r.last == "" {
		r.last = r.storedChecksum(ctx)
	}
	if sum == r.last {
		return models.Dataset{}, false, nil
	}

	holdings, err := ingest.Read(bytes.NewReader(b), r.log)
	if err != nil {
		return models.Dataset{}, false, err
	}
	ds, err := r.store.ReplaceDataset(ctx, filepath.Base(r.path), r.path, sum, holdings)
	if err != nil {
		return models.Dataset{}, false, err
	}
	r.last = sum
	r.log.Infof("reloaded %s into dataset %s (%d holdings)", r.path, ds.ID, len(holdings))
	return ds, true, nil
}

func (r *Reloader) storedChecksum(ctx context.Context) string {
	list, err := r.store.ListDatasets(ctx)
	if err != nil {
		r.log.Warnf("list datasets failed: %v", err)
		return ""
	}
	for _, ds := range list {
		if ds.Source == r.path {
			return ds.Checksum
		}
	}
	return ""
}

// Start reloads once, then on every tick of the cron schedule until ctx is done.
func (r *Reloader) Start(ctx context.Context) error {
	if _, _, err := r.Reload(ctx); err != nil {
		r.log.Warnf("initial load of %s failed: %v", r.path, err)
	}
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() {
		if _, _, err := r.Reload(ctx); err != nil {
			r.log.Warnf("reload of %s failed: %v", r.path, err)
		}
	}); err != nil {
		return err
	}
	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		r.log.Info("reloader stopping")
	}()
	return nil
}
