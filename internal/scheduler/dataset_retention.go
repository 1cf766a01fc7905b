package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-compare-api/infrastructure/repository"
	"github.com/vfg2006/revenue-compare-api/internal/config"
)

// RetentionJobType identifica o job de limpeza nas rotas de cron
const RetentionJobType = "retention"

// DatasetRetentionService remove periodicamente datasets importados mais antigos que o prazo configurado
type DatasetRetentionService struct {
	scheduler   *gocron.Scheduler
	config      config.Retention
	datasetRepo repository.DatasetRepository

	runMutex       sync.Mutex
	running        bool
	lastStartedAt  time.Time
	lastFinishedAt time.Time
	lastDeleted    int64
	lastError      string
}

func NewDatasetRetentionService(datasetRepo repository.DatasetRepository, cfg config.Retention) *DatasetRetentionService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":     cfg.CronSchedule,
		"retention_days":    cfg.Days,
		"retention_enabled": cfg.Enabled,
	}).Info("Configuração da limpeza de datasets carregada")

	return &DatasetRetentionService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      cfg,
		datasetRepo: datasetRepo,
	}
}

// Start agenda a limpeza e para o agendador quando o contexto for cancelado
func (s *DatasetRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de datasets desabilitada por configuração")
		return nil
	}

	if s.config.Days <= 0 {
		return fmt.Errorf("prazo de retenção inválido: %d dias", s.config.Days)
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunRetention(ctx); err != nil {
			logrus.WithError(err).Error("Erro na limpeza agendada de datasets")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de datasets: %w", err)
	}

	s.scheduler.StartAsync()
	logrus.WithField("cron", s.config.CronSchedule).Info("Agendador de limpeza de datasets iniciado")

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de datasets")
		s.scheduler.Stop()
	}()

	return nil
}

// RunRetention executa a limpeza uma vez; retorna false se já havia uma execução em andamento
func (s *DatasetRetentionService) RunRetention(ctx context.Context) (bool, error) {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("Limpeza de datasets já em andamento, ignorando")
		return false, nil
	}
	s.running = true
	s.lastStartedAt = time.Now()
	s.runMutex.Unlock()

	deleted, err := s.datasetRepo.DeleteOlderThan(ctx, s.config.Days)

	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.running = false
	s.lastFinishedAt = time.Now()
	s.lastDeleted = deleted
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
		return true, err
	}

	logrus.WithFields(logrus.Fields{
		"deleted":        deleted,
		"retention_days": s.config.Days,
		"duration":       s.lastFinishedAt.Sub(s.lastStartedAt).String(),
	}).Info("Limpeza de datasets concluída")

	return true, nil
}

// TriggerManualRun dispara a limpeza em segundo plano; retorna false se já estiver rodando
func (s *DatasetRetentionService) TriggerManualRun() bool {
	s.runMutex.Lock()
	running := s.running
	s.runMutex.Unlock()

	if running {
		logrus.Info("Limpeza de datasets já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando limpeza manual de datasets")
	go func() {
		if _, err := s.RunRetention(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na limpeza manual de datasets")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *DatasetRetentionService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"retention_enabled":  s.config.Enabled,
		"retention_cron":     s.config.CronSchedule,
		"retention_days":     s.config.Days,
		"running":            s.running,
		"last_started_at":    s.lastStartedAt,
		"last_finished_at":   s.lastFinishedAt,
		"last_deleted_count": s.lastDeleted,
		"last_error":         s.lastError,
	}
}
