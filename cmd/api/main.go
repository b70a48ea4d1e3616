package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/blobstore"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/api"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/exporting"
	"github.com/vfg2006/ads-optimizer-api/internal/scheduler"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/optimizing"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// só o driver postgres precisa do banco
	var pgConn *postgres.Connection
	if cfg.Blob.Driver == "" || cfg.Blob.Driver == config.BlobDriverPostgres {
		pgConn = pgconn(ctx, cfg.Database)
	}

	store, err := blobstore.New(cfg.Blob, pgConn)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o armazenamento de planilhas")
	}

	if err := store.Open(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o armazenamento de planilhas")
	}
	defer store.Close()

	logrus.WithField("driver", cfg.Blob.Driver).Info("Armazenamento de planilhas pronto")

	authenticator := authenticating.NewService(cfg)
	optimizer := optimizing.NewService(store, exporting.NewExporter(), cfg.Blob.TTL)

	blobCleanupService := scheduler.NewBlobCleanupService(store, cfg)
	if err := blobCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de planilhas")
	} else {
		logrus.Info("Agendador de limpeza de planilhas iniciado com sucesso")
	}

	server, err := api.New(cfg, optimizer, authenticator, blobCleanupService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource garante que o .env ao lado do main seja encontrado
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
