package domain

import "time"

type DatasetSource string

const (
	DatasetSourceCSV    DatasetSource = "csv"
	DatasetSourceXLSX   DatasetSource = "xlsx"
	DatasetSourceManual DatasetSource = "manual"
	DatasetSourceSample DatasetSource = "sample"
	DatasetSourceFile   DatasetSource = "file"
)

// DefaultDatasetID identifica o arquivo de dados monitorado em disco
const DefaultDatasetID = "default"

// Dataset representa uma série de faturamento importada
type Dataset struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Source     DatasetSource `json:"source"`
	PointCount int           `json:"point_count"`
	FirstDate  *time.Time    `json:"first_date,omitempty"`
	LastDate   *time.Time    `json:"last_date,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// DateRange filtra uma série por datas inclusivas; campos nil não limitam
type DateRange struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// DatasetAnalysis agrupa a série, as estatísticas e a variação de um dataset
type DatasetAnalysis struct {
	Dataset    *Dataset           `json:"dataset"`
	Series     RevenueSeries      `json:"series"`
	Statistics *StatisticsSummary `json:"statistics,omitempty"`
	Growth     *GrowthSeries      `json:"growth,omitempty"`
}
