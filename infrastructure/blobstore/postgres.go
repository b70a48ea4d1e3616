package blobstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

const (
	blobsTable  = "report_blobs"
	blobColumns = "id, name, content, created_at, expires_at"
)

type postgresStore struct {
	conn *postgres.Connection
	now  func() time.Time
}

// NewPostgresStore guarda os arquivos na tabela report_blobs
func NewPostgresStore(conn *postgres.Connection) Store {
	return &postgresStore{
		conn: conn,
		now:  time.Now,
	}
}

func (s *postgresStore) Open(ctx context.Context) error {
	if err := s.conn.Ping(ctx); err != nil {
		return errors.Wrap(err, "erro ao conectar no banco de blobs")
	}
	return nil
}

func (s *postgresStore) Close() error {
	return s.conn.Close()
}

func (s *postgresStore) Put(ctx context.Context, name string, data []byte, ttl time.Duration) (*Blob, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar identificador do arquivo")
	}

	now := s.now().UTC()
	blob := &Blob{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	query, args, err := squirrel.
		Insert(blobsTable).
		Columns("id", "name", "content", "created_at", "expires_at").
		Values(blob.ID, blob.Name, data, blob.CreatedAt, blob.ExpiresAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, errors.Wrapf(err, "erro ao salvar arquivo %s", name)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"blob_id": blob.ID,
		"bytes":   len(data),
	}).Debug("Arquivo salvo no banco")

	return blob, nil
}

func (s *postgresStore) Get(ctx context.Context, id string) (*Blob, error) {
	query, args, err := squirrel.
		Select(blobColumns).
		From(blobsTable).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"expires_at": s.now().UTC()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	blob := &Blob{}
	err = s.conn.QueryRowContext(ctx, query, args...).
		Scan(&blob.ID, &blob.Name, &blob.Data, &blob.CreatedAt, &blob.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(domain.ErrBlobNotFound, "arquivo %s", id)
		}
		return nil, errors.Wrapf(err, "erro ao buscar arquivo %s", id)
	}

	return blob, nil
}

func (s *postgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(blobsTable).
		Where(squirrel.LtOrEq{"expires_at": now.UTC()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao remover arquivos expirados")
	}

	return result.RowsAffected()
}
