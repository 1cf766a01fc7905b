package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-compare-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-compare-api/infrastructure/migration"
	"github.com/vfg2006/revenue-compare-api/infrastructure/repository"
	"github.com/vfg2006/revenue-compare-api/internal/api"
	"github.com/vfg2006/revenue-compare-api/internal/api/handler"
	"github.com/vfg2006/revenue-compare-api/internal/config"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/exporting"
	"github.com/vfg2006/revenue-compare-api/internal/ingest"
	"github.com/vfg2006/revenue-compare-api/internal/scheduler"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/authenticating"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/comparing"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := migration.Run(ctx, pgConn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if err := migration.SeedAdmin(ctx, pgConn, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			logrus.WithError(err).Error("Erro ao criar usuário administrador")
		}
	}

	datasetRepo := repository.NewDatasetRepository(pgConn)
	comparisonRepo := repository.NewComparisonRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg.Auth)

	var dataFile comparing.SeriesSource
	if fileSource := watchedDataFile(ctx, cfg.DataFile); fileSource != nil {
		dataFile = fileSource
	}

	archiver, err := exporting.NewArchiver(ctx, cfg.Export)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar arquivamento das exportações")
	}

	comparer := comparing.NewService(datasetRepo, comparisonRepo, dataFile, ingest.NewSampleCache(), archiver, cfg)

	retentionService := scheduler.NewDatasetRetentionService(datasetRepo, cfg.Retention)
	if err := retentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de datasets")
	}

	server := api.New(cfg, comparer, authenticator, handler.NewCronJobServices(retentionService))
	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// watchedDataFile carrega o arquivo de dados padrão e acompanha alterações.
// Sem caminho configurado, o dataset "default" fica indisponível.
func watchedDataFile(ctx context.Context, cfg config.DataFile) *ingest.FileSource {
	if cfg.Path == "" {
		logrus.Info("Nenhum arquivo de dados configurado")
		return nil
	}

	source, err := ingest.NewFileSource(cfg.Path)
	if err != nil {
		logrus.WithError(err).Warn("Arquivo de dados com formato não suportado")
		return nil
	}

	if err := source.Load(); err != nil {
		logrus.WithError(err).Warnf("Arquivo de dados %s indisponível", cfg.Path)
	}

	source.OnReload(func(series domain.RevenueSeries) {
		logrus.WithField("dataset_points", len(series)).Infof("Arquivo de dados %s recarregado", cfg.Path)
	})

	if cfg.Watch {
		go func() {
			if err := source.Watch(ctx); err != nil {
				logrus.WithError(err).Error("Erro ao monitorar arquivo de dados")
			}
		}()
	}

	return source
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
