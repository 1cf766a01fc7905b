package comparing

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/vfg2006/revenue-compare-api/infrastructure/repository"
	"github.com/vfg2006/revenue-compare-api/internal/config"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/exporting"
	"github.com/vfg2006/revenue-compare-api/internal/growth"
	"github.com/vfg2006/revenue-compare-api/internal/ingest"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type Service struct {
	datasetRepo    repository.DatasetRepository
	comparisonRepo repository.ComparisonRepository
	file           SeriesSource
	samples        *ingest.SampleCache
	archiver       exporting.Archiver
	cfg            *config.Config
	now            func() time.Time
}

func NewService(
	datasetRepo repository.DatasetRepository,
	comparisonRepo repository.ComparisonRepository,
	file SeriesSource,
	samples *ingest.SampleCache,
	archiver exporting.Archiver,
	cfg *config.Config,
) Comparer {
	if archiver == nil {
		archiver = exporting.NopArchiver{}
	}
	if samples == nil {
		samples = ingest.NewSampleCache()
	}

	return &Service{
		datasetRepo:    datasetRepo,
		comparisonRepo: comparisonRepo,
		file:           file,
		samples:        samples,
		archiver:       archiver,
		cfg:            cfg,
		now:            time.Now,
	}
}

func (s *Service) DefaultThresholds() domain.GrowthThresholds {
	return s.cfg.Analysis.Thresholds()
}

// ValidateYears confere os anos contra [minYear, maxYear], a ordem entre eles e os limiares
func ValidateYears(input domain.YearComparison, minYear, maxYear int) error {
	for _, year := range []int{input.ReferenceYear, input.CurrentYear} {
		if year < minYear || year > maxYear {
			return domain.NewRevenueError(domain.ErrInvalidArgument,
				fmt.Sprintf("ano %d fora do intervalo [%d, %d]", year, minYear, maxYear))
		}
	}

	if input.ReferenceYear >= input.CurrentYear {
		return domain.NewRevenueError(domain.ErrInvalidArgument, "o ano de referência deve ser anterior ao ano atual")
	}

	return input.Thresholds.Validate()
}

func (s *Service) classifyYears(input domain.YearComparison) (*domain.YearComparisonReport, error) {
	return ClassifyYears(input, s.cfg.Analysis.MinYear, s.now().Year())
}

// ClassifyYears valida a entrada e classifica a variação entre os dois anos, sem registrar
func ClassifyYears(input domain.YearComparison, minYear, maxYear int) (*domain.YearComparisonReport, error) {
	if err := ValidateYears(input, minYear, maxYear); err != nil {
		return nil, err
	}

	result, err := growth.Classify(input.ReferenceRevenue, input.CurrentRevenue, input.Thresholds)
	if err != nil {
		return nil, err
	}

	return &domain.YearComparisonReport{
		ReferenceYear: input.ReferenceYear,
		CurrentYear:   input.CurrentYear,
		Thresholds:    input.Thresholds,
		Result:        result,
	}, nil
}

func (s *Service) CompareYears(ctx context.Context, input domain.YearComparison, userID int) (*domain.YearComparisonReport, error) {
	report, err := s.classifyYears(input)
	if err != nil {
		return nil, err
	}

	report.CreatedBy = userID
	if err := s.comparisonRepo.Save(ctx, report); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":  userID,
		"category": report.Result.Category,
	}).Infof("comparação %d x %d registrada: %.2f%%", report.ReferenceYear, report.CurrentYear, report.Result.PercentChange)

	return report, nil
}

func (s *Service) ExportYearComparison(ctx context.Context, input domain.YearComparison) (*exporting.Workbook, error) {
	report, err := s.classifyYears(input)
	if err != nil {
		return nil, err
	}

	wb, err := exporting.BuildYearComparisonWorkbook(s.cfg.Export.SheetName, report)
	if err != nil {
		return nil, err
	}

	s.archive(ctx, wb)
	return wb, nil
}

func (s *Service) ListComparisonHistory(ctx context.Context, limit int) ([]*domain.YearComparisonReport, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	return s.comparisonRepo.ListRecent(ctx, limit)
}

func (s *Service) CreateDataset(ctx context.Context, name, filename string, r io.Reader) (*domain.Dataset, error) {
	format, err := ingest.FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	series, err := ingest.ReadSeries(r, format)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = filename
	}

	dataset, err := s.datasetRepo.Create(ctx, &domain.Dataset{Name: name, Source: format.Source()}, series)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"dataset_id":     dataset.ID,
		"dataset_points": dataset.PointCount,
	}).Info("dataset importado")

	return dataset, nil
}

func (s *Service) ListDatasets(ctx context.Context) ([]*domain.Dataset, error) {
	datasets, err := s.datasetRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.file != nil {
		if series, err := s.file.Series(); err == nil {
			datasets = append([]*domain.Dataset{s.fileDataset(series)}, datasets...)
		}
	}

	return datasets, nil
}

func (s *Service) DeleteDataset(ctx context.Context, id string) error {
	if id == domain.DefaultDatasetID {
		return domain.NewRevenueError(domain.ErrInvalidArgument, "o arquivo de dados monitorado não pode ser removido")
	}

	if err := s.datasetRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.ForContext(ctx).WithField("dataset_id", id).Info("dataset removido")
	return nil
}

func (s *Service) GetSeries(ctx context.Context, id string, dateRange domain.DateRange) (*domain.DatasetAnalysis, error) {
	dataset, series, err := s.load(ctx, id, dateRange)
	if err != nil {
		return nil, err
	}

	return &domain.DatasetAnalysis{Dataset: dataset, Series: series}, nil
}

func (s *Service) DescribeDataset(ctx context.Context, id string, dateRange domain.DateRange) (*domain.DatasetAnalysis, error) {
	dataset, series, err := s.load(ctx, id, dateRange)
	if err != nil {
		return nil, err
	}

	stats, err := growth.Describe(series)
	if err != nil {
		return nil, err
	}

	return &domain.DatasetAnalysis{Dataset: dataset, Series: series, Statistics: &stats}, nil
}

func (s *Service) GrowthForDataset(ctx context.Context, id string, window int, dateRange domain.DateRange) (*domain.DatasetAnalysis, error) {
	dataset, series, err := s.load(ctx, id, dateRange)
	if err != nil {
		return nil, err
	}

	diff, err := growth.WindowedDiff(series, s.windowOrDefault(window))
	if err != nil {
		return nil, err
	}

	return &domain.DatasetAnalysis{Dataset: dataset, Series: series, Growth: &diff}, nil
}

func (s *Service) ExportDataset(ctx context.Context, id string, window int, dateRange domain.DateRange) (*exporting.Workbook, error) {
	_, series, err := s.load(ctx, id, dateRange)
	if err != nil {
		return nil, err
	}

	diff, err := growth.WindowedDiff(series, s.windowOrDefault(window))
	if err != nil {
		return nil, err
	}

	wb, err := exporting.BuildSeriesWorkbook(s.cfg.Export.SheetName, series, &diff)
	if err != nil {
		return nil, err
	}

	s.archive(ctx, wb)
	return wb, nil
}

func (s *Service) SampleAnalysis(ctx context.Context, params ingest.SampleParams, window int) (*SampleReport, error) {
	sample, err := s.samples.Get(params)
	if err != nil {
		return nil, err
	}
	return s.sampleReport(sample, window)
}

func (s *Service) RegenerateSample(ctx context.Context, params ingest.SampleParams, window int) (*SampleReport, error) {
	sample, err := s.samples.Regenerate(params)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithField("window", window).Infof("amostra regenerada com semente %d", sample.Seed)
	return s.sampleReport(sample, window)
}

func (s *Service) sampleReport(sample *ingest.Sample, window int) (*SampleReport, error) {
	stats, err := growth.Describe(sample.Series)
	if err != nil {
		return nil, err
	}

	diff, err := growth.WindowedDiff(sample.Series, s.windowOrDefault(window))
	if err != nil {
		return nil, err
	}

	return &SampleReport{
		Params:     sample.SampleParams,
		Series:     sample.Series,
		Statistics: stats,
		Growth:     diff,
	}, nil
}

func (s *Service) windowOrDefault(window int) int {
	if window == 0 && s.cfg.Analysis.DefaultWindow > 0 {
		return s.cfg.Analysis.DefaultWindow
	}
	return window
}

// load busca a série do dataset já filtrada pelo intervalo
func (s *Service) load(ctx context.Context, id string, dateRange domain.DateRange) (*domain.Dataset, domain.RevenueSeries, error) {
	if dateRange.StartDate != nil && dateRange.EndDate != nil && dateRange.StartDate.After(*dateRange.EndDate) {
		return nil, nil, domain.NewRevenueError(domain.ErrInvalidArgument, "a data inicial deve ser anterior ou igual à data final")
	}

	if id == domain.DefaultDatasetID {
		return s.loadFile(dateRange)
	}

	dataset, err := s.datasetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	series, err := s.datasetRepo.GetPoints(ctx, id, dateRange)
	if err != nil {
		return nil, nil, err
	}

	return dataset, series, nil
}

func (s *Service) loadFile(dateRange domain.DateRange) (*domain.Dataset, domain.RevenueSeries, error) {
	if s.file == nil {
		return nil, nil, domain.NewRevenueError(domain.ErrMissingDataSource, "nenhum arquivo de dados configurado")
	}

	series, err := s.file.Series()
	if err != nil {
		return nil, nil, err
	}
	dataset := s.fileDataset(series)

	first, last, ok := series.Bounds()
	if !ok || (dateRange.StartDate == nil && dateRange.EndDate == nil) {
		return dataset, series, nil
	}

	start, end := first, last
	if dateRange.StartDate != nil {
		start = *dateRange.StartDate
	}
	if dateRange.EndDate != nil {
		end = *dateRange.EndDate
	}

	filtered, err := growth.FilterByDateRange(series, start, end)
	if err != nil {
		return nil, nil, err
	}

	return dataset, filtered, nil
}

func (s *Service) fileDataset(series domain.RevenueSeries) *domain.Dataset {
	dataset := &domain.Dataset{
		ID:         domain.DefaultDatasetID,
		Name:       filepath.Base(s.file.Path()),
		Source:     domain.DatasetSourceFile,
		PointCount: len(series),
	}
	if first, last, ok := series.Bounds(); ok {
		dataset.FirstDate = &first
		dataset.LastDate = &last
	}
	return dataset
}

// archive guarda uma cópia da exportação; falha não impede o download
func (s *Service) archive(ctx context.Context, wb *exporting.Workbook) {
	key, err := s.archiver.Archive(ctx, wb)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warnf("falha ao arquivar %s", wb.Filename)
		return
	}
	if key != "" {
		log.ForContext(ctx).Infof("exportação arquivada em %s", key)
	}
}
