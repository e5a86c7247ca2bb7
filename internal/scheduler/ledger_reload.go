package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/infrastructure/source"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/insighting"
	"github.com/vfg2006/sales-ledger-api/pkg/metrics"
)

// ErrReloadInProgress é retornado quando já existe uma recarga em andamento
var ErrReloadInProgress = errors.New("ledger reload already in progress")

// LedgerReloadConfig representa a configuração do agendador de recarga do razão
type LedgerReloadConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// LedgerReloadService busca o razão, executa o pipeline e publica o snapshot atual.
// Uma recarga com erro mantém o snapshot anterior.
type LedgerReloadService struct {
	scheduler *gocron.Scheduler
	config    LedgerReloadConfig
	source    source.LedgerSource
	pipeline  insighting.Pipeline
	metrics   *metrics.Recorder

	snapshotMutex sync.RWMutex
	current       *domain.LedgerSnapshot

	syncMutex             sync.Mutex
	syncRunning           bool
	lastReloadStartedAt   time.Time
	lastReloadCompletedAt time.Time
	lastError             string
}

// NewLedgerReloadService cria uma nova instância do serviço de recarga
func NewLedgerReloadService(
	ledgerSource source.LedgerSource,
	pipeline insighting.Pipeline,
	recorder *metrics.Recorder,
	appConfig *config.Config,
) *LedgerReloadService {
	reloadConfig := LedgerReloadConfig{
		CronSchedule: appConfig.Reload.CronSchedule,
		SyncEnabled:  appConfig.Reload.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reloadConfig.CronSchedule,
		"sync_enabled":  reloadConfig.SyncEnabled,
		"source":        ledgerSource.Name(),
	}).Info("Configuração do agendador de recarga do razão carregada")

	if recorder == nil {
		recorder = metrics.NewRecorder()
	}

	return &LedgerReloadService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    reloadConfig,
		source:    ledgerSource,
		pipeline:  pipeline,
		metrics:   recorder,
	}
}

// Start inicia o agendador
func (s *LedgerReloadService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recarga agendada do razão desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga do razão")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Reload(ctx); err != nil && !errors.Is(err, ErrReloadInProgress) {
			logrus.WithError(err).Error("Erro na recarga agendada do razão")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do razão: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga do razão")
		s.scheduler.Stop()
	}()

	return nil
}

// Reload busca o texto na fonte, processa e troca o snapshot atual
func (s *LedgerReloadService) Reload(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga do razão já em andamento, ignorando")
		return ErrReloadInProgress
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastReloadStartedAt = startTime
	s.syncMutex.Unlock()

	snapshot, err := s.load(ctx)
	duration := time.Since(startTime)

	// a troca do snapshot acontece antes de liberar syncRunning
	if err == nil {
		s.snapshotMutex.Lock()
		s.current = snapshot
		s.snapshotMutex.Unlock()
	}

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastReloadCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.syncMutex.Unlock()

	if err != nil {
		s.metrics.ObserveReload(metrics.ReloadFailure, duration)
		logrus.WithError(err).WithField("source", s.source.Name()).Error("Erro ao recarregar o razão, mantendo snapshot anterior")
		return err
	}

	s.metrics.ObserveReload(metrics.ReloadSuccess, duration)
	s.metrics.ObserveSnapshot(len(snapshot.Records), len(snapshot.Issues), len(snapshot.Stats))

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"duration":    duration.String(),
		"records":     len(snapshot.Records),
		"skipped":     len(snapshot.Issues),
	}).Info("Recarga do razão concluída")

	return nil
}

func (s *LedgerReloadService) load(ctx context.Context) (*domain.LedgerSnapshot, error) {
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar o razão: %w", err)
	}

	return s.pipeline.Run(s.source.Name(), raw)
}

// Current retorna o snapshot publicado (nil antes da primeira recarga bem sucedida)
func (s *LedgerReloadService) Current() *domain.LedgerSnapshot {
	s.snapshotMutex.RLock()
	defer s.snapshotMutex.RUnlock()
	return s.current
}

// TriggerManualReload inicia manualmente uma recarga em background
func (s *LedgerReloadService) TriggerManualReload() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga do razão já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual do razão")
	go func() {
		_ = s.Reload(context.Background())
	}()
}

// GetStatus retorna o status atual do agendador
func (s *LedgerReloadService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	status := map[string]any{
		"sync_enabled":             s.config.SyncEnabled,
		"sync_cron":                s.config.CronSchedule,
		"sync_running":             s.syncRunning,
		"source":                   s.source.Name(),
		"last_reload_started_at":   s.lastReloadStartedAt,
		"last_reload_completed_at": s.lastReloadCompletedAt,
		"last_error":               s.lastError,
	}
	s.syncMutex.Unlock()

	if snapshot := s.Current(); snapshot != nil {
		status["snapshot_id"] = snapshot.ID
		status["snapshot_loaded_at"] = snapshot.LoadedAt
	}

	return status
}
