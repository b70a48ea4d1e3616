package migration

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
)

type step struct {
	name  string
	query string
}

var steps = []step{
	{
		name: "create_report_blobs",
		query: `CREATE TABLE IF NOT EXISTS report_blobs (
	id         VARCHAR(21) PRIMARY KEY,
	name       TEXT        NOT NULL,
	content    BYTEA       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ NOT NULL
)`,
	},
	{
		name:  "index_report_blobs_expires_at",
		query: `CREATE INDEX IF NOT EXISTS idx_report_blobs_expires_at ON report_blobs (expires_at)`,
	},
}

// Apply cria as tabelas usadas pelo driver postgres de blobs. Todos os passos
// rodam na mesma transação e podem ser reaplicados.
func Apply(ctx context.Context, conn postgres.Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, s := range steps {
			if _, err := tx.ExecContext(ctx, s.query); err != nil {
				return errors.Wrapf(err, "erro no passo %s", s.name)
			}
			logrus.WithField("step", s.name).Info("Passo de migração aplicado")
		}
		return nil
	})
}
