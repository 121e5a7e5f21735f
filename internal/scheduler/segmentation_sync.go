// Package scheduler contém o agendamento da segmentação recorrente
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/rfm-segmentation-api/internal/config"
	"github.com/vfg2006/rfm-segmentation-api/internal/usecases/segmenting"
	"github.com/vfg2006/rfm-segmentation-api/pkg/utils"
)

type SegmentationSyncConfig struct {
	CronSchedule string
	Enabled      bool
}

// SyncStatus é o estado exposto pela rota de status das crons
type SyncStatus struct {
	Enabled         bool       `json:"enabled"`
	CronSchedule    string     `json:"cron_schedule"`
	Running         bool       `json:"running"`
	LastRunID       string     `json:"last_run_id,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	LastStartedAt   *time.Time `json:"last_started_at,omitempty"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
}

// SegmentationSyncService executa a segmentação RFM de forma recorrente e
// também sob demanda via API
type SegmentationSyncService struct {
	scheduler           *gocron.Scheduler
	segmenter           segmenting.Segmenter
	config              SegmentationSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastRunID           string
	lastError           error
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewSegmentationSyncService(
	segmenter segmenting.Segmenter,
	cfg *config.Config,
) *SegmentationSyncService {
	syncConfig := SegmentationSyncConfig{
		CronSchedule: cfg.SegmentationSync.CronSchedule, // Default: 3h da manhã todos os dias
		Enabled:      cfg.SegmentationSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador de segmentação carregada")

	return &SegmentationSyncService{
		scheduler: scheduler,
		segmenter: segmenter,
		config:    syncConfig,
	}
}

func (s *SegmentationSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de segmentação desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de segmentação RFM")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunSync(); err != nil {
			logrus.WithError(err).Error("Erro na execução agendada da segmentação")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar segmentação: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de segmentação")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSync executa uma segmentação completa; chamadas concorrentes são
// descartadas com aviso
func (s *SegmentationSyncService) RunSync() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Segmentação já está em execução, ignorando disparo")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando segmentação agendada")

	result, err := s.segmenter.RunSegmentation(segmenting.RunOptions{})

	s.syncMutex.Lock()
	s.lastError = err
	if result != nil && result.Run != nil {
		s.lastRunID = result.Run.ID
	}
	s.syncMutex.Unlock()

	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"run_id":    result.Run.ID,
		"customers": result.Run.CustomerCount,
	}).Info("Segmentação agendada concluída")

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debug("Resumo por segmento: ", utils.PrettyJson(result.Summary))
	}

	return nil
}

// TriggerManualSync dispara a segmentação em background, para a rota de cron
func (s *SegmentationSyncService) TriggerManualSync() {
	go func() {
		if err := s.RunSync(); err != nil {
			logrus.WithError(err).Error("Erro na execução manual da segmentação")
		}
	}()
}

// Status retorna o estado atual do agendador
func (s *SegmentationSyncService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := SyncStatus{
		Enabled:      s.config.Enabled,
		CronSchedule: s.config.CronSchedule,
		Running:      s.syncRunning,
		LastRunID:    s.lastRunID,
	}

	if s.lastError != nil {
		status.LastError = s.lastError.Error()
	}
	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastStartedAt = &startedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastCompletedAt = &completedAt
	}

	return status
}
