package comparing

import (
	"context"
	"io"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/exporting"
	"github.com/vfg2006/revenue-compare-api/internal/ingest"
)

// YearComparer compara o faturamento de dois anos
type YearComparer interface {
	// CompareYears valida, classifica e registra a comparação no histórico
	CompareYears(ctx context.Context, input domain.YearComparison, userID int) (*domain.YearComparisonReport, error)

	// ExportYearComparison gera a planilha results_<ref>_<cur>.xlsx com gráfico de colunas
	ExportYearComparison(ctx context.Context, input domain.YearComparison) (*exporting.Workbook, error)

	// ListComparisonHistory retorna as últimas comparações registradas
	ListComparisonHistory(ctx context.Context, limit int) ([]*domain.YearComparisonReport, error)

	// DefaultThresholds retorna os limiares configurados para os controles
	DefaultThresholds() domain.GrowthThresholds
}

// DatasetAnalyzer importa séries e calcula estatísticas e variações.
// O id "default" aponta para o arquivo de dados monitorado.
type DatasetAnalyzer interface {
	CreateDataset(ctx context.Context, name, filename string, r io.Reader) (*domain.Dataset, error)
	ListDatasets(ctx context.Context) ([]*domain.Dataset, error)
	DeleteDataset(ctx context.Context, id string) error

	// GetSeries retorna a série bruta filtrada pelo intervalo
	GetSeries(ctx context.Context, id string, dateRange domain.DateRange) (*domain.DatasetAnalysis, error)

	// DescribeDataset calcula min/max/média/mediana sobre o intervalo
	DescribeDataset(ctx context.Context, id string, dateRange domain.DateRange) (*domain.DatasetAnalysis, error)

	// GrowthForDataset calcula a variação por janela; window 0 usa a janela padrão
	GrowthForDataset(ctx context.Context, id string, window int, dateRange domain.DateRange) (*domain.DatasetAnalysis, error)

	// ExportDataset gera results.xlsx com a série, a variação e gráfico de linhas
	ExportDataset(ctx context.Context, id string, window int, dateRange domain.DateRange) (*exporting.Workbook, error)
}

// SampleAnalyzer trabalha com as séries sintéticas de demonstração
type SampleAnalyzer interface {
	SampleAnalysis(ctx context.Context, params ingest.SampleParams, window int) (*SampleReport, error)
	RegenerateSample(ctx context.Context, params ingest.SampleParams, window int) (*SampleReport, error)
}

type Comparer interface {
	YearComparer
	DatasetAnalyzer
	SampleAnalyzer
}

// SeriesSource fornece a série do arquivo de dados em disco
type SeriesSource interface {
	Series() (domain.RevenueSeries, error)
	Path() string
}

// SampleReport é a amostra gerada com estatísticas e variação
type SampleReport struct {
	Params     ingest.SampleParams      `json:"params"`
	Series     domain.RevenueSeries     `json:"series"`
	Statistics domain.StatisticsSummary `json:"statistics"`
	Growth     domain.GrowthSeries      `json:"growth"`
}
