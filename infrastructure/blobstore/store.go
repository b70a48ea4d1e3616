package blobstore

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
)

// Blob é um arquivo gerado pelo otimizador, disponível até ExpiresAt
type Blob struct {
	ID        string
	Name      string
	Data      []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired indica se o arquivo já não pode mais ser baixado
func (b *Blob) Expired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Store guarda as planilhas geradas por um tempo limitado. Open precisa ser
// chamado antes de qualquer operação e Close libera os recursos do driver.
type Store interface {
	Open(ctx context.Context) error
	Close() error
	Put(ctx context.Context, name string, data []byte, ttl time.Duration) (*Blob, error)
	Get(ctx context.Context, id string) (*Blob, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// New escolhe o driver configurado. conn só é usado pelo driver postgres.
func New(cfg config.Blob, conn *postgres.Connection) (Store, error) {
	switch cfg.Driver {
	case "", config.BlobDriverPostgres:
		if conn == nil {
			return nil, fmt.Errorf("driver postgres exige uma conexão com o banco")
		}
		return NewPostgresStore(conn), nil
	case config.BlobDriverS3:
		return NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix), nil
	}

	return nil, fmt.Errorf("driver de blob desconhecido: %s", cfg.Driver)
}
