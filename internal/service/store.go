package service

//go:generate mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks

import (
	"context"

	"folio/internal/models"
	"folio/internal/portfolio"
)

// Store persists imported datasets. *database.Repo implements it.
type Store interface {
	CreateDataset(ctx context.Context, name, source, checksum string, holdings []portfolio.Holding) (models.Dataset, error)
	ReplaceDataset(ctx context.Context, name, source, checksum string, holdings []portfolio.Holding) (models.Dataset, error)
	ListDatasets(ctx context.Context) ([]models.Dataset, error)
	GetDataset(ctx context.Context, id string) (models.Dataset, error)
	LatestDataset(ctx context.Context) (models.Dataset, error)
	GetHoldings(ctx context.Context, datasetID string) ([]portfolio.Holding, error)
	DeleteDataset(ctx context.Context, id string) error
}
