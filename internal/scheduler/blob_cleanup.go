package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/blobstore"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/pkg/metrics"
)

// cleanupTimeout limita uma rodada de limpeza para não segurar o agendador
const cleanupTimeout = 5 * time.Minute

// BlobCleanupService remove periodicamente as planilhas geradas que já expiraram
type BlobCleanupService struct {
	scheduler           *gocron.Scheduler
	config              config.BlobCleanup
	ttl                 time.Duration
	store               blobstore.Store
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastPurged          int64
}

// NewBlobCleanupService cria o serviço de limpeza com base na config global
func NewBlobCleanupService(store blobstore.Store, appConfig *config.Config) *BlobCleanupService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.BlobCleanup.CronSchedule,
		"sync_enabled":  appConfig.BlobCleanup.Enabled,
		"blob_ttl":      appConfig.Blob.TTL.String(),
	}).Info("Configuração do agendador de limpeza de planilhas carregada")

	return &BlobCleanupService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    appConfig.BlobCleanup,
		ttl:       appConfig.Blob.TTL,
		store:     store,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *BlobCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de planilhas expiradas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de planilhas expiradas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.purgeExpired()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de planilhas expiradas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de planilhas expiradas")
		s.scheduler.Stop()
	}()

	return nil
}

// purgeExpired apaga as planilhas expiradas. Rodadas concorrentes são ignoradas.
func (s *BlobCleanupService) purgeExpired() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de planilhas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	startTime := s.now()
	purged, err := s.store.DeleteExpired(ctx, startTime)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover planilhas expiradas")
		return
	}

	metrics.BlobsPurgedTotal.Add(float64(purged))

	logrus.WithFields(logrus.Fields{
		"purged":   purged,
		"duration": time.Since(startTime).String(),
	}).Info("Limpeza de planilhas expiradas concluída")

	s.syncMutex.Lock()
	s.lastPurged = purged
	s.lastSyncCompletedAt = s.now()
	s.syncMutex.Unlock()
}

// TriggerManualSync dispara uma limpeza fora do horário agendado
func (s *BlobCleanupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de planilhas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de planilhas expiradas")
	go s.purgeExpired()
}

// GetStatus retorna o status atual do agendador
func (s *BlobCleanupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"retention_policy":       fmt.Sprintf("planilhas mantidas por %s", s.ttl),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_purged":            s.lastPurged,
	}
}
