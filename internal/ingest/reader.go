// Package ingest lê séries de faturamento de arquivos csv/xlsx, gera amostras
// sintéticas e acompanha o arquivo de dados em disco.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// Format é o formato de um arquivo de faturamento
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	DateColumn    = "Date"
	RevenueColumn = "Sales Revenue"
)

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
}

// FormatFromFilename deduz o formato pela extensão
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", domain.NewRevenueError(domain.ErrMissingDataSource, fmt.Sprintf("formato não suportado: %q", name))
	}
}

// Source converte o formato na origem do dataset
func (f Format) Source() domain.DatasetSource {
	if f == FormatXLSX {
		return domain.DatasetSourceXLSX
	}
	return domain.DatasetSourceCSV
}

// ReadSeries lê as colunas Date e Sales Revenue e devolve a série ordenada por data
func ReadSeries(r io.Reader, format Format) (domain.RevenueSeries, error) {
	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		return nil, domain.NewRevenueError(domain.ErrMissingDataSource, fmt.Sprintf("formato não suportado: %q", format))
	}
	if err != nil {
		return nil, err
	}

	return parseRows(rows, format)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.NewRevenueError(domain.ErrMissingDataSource, err.Error())
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewRevenueError(domain.ErrMissingDataSource, err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewRevenueError(domain.ErrEmptyInput, "planilha sem abas")
	}

	// valores crus: datas chegam como número serial do Excel
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewRevenueError(domain.ErrMissingDataSource, err.Error())
	}
	return rows, nil
}

func parseRows(rows [][]string, format Format) (domain.RevenueSeries, error) {
	if len(rows) == 0 {
		return nil, domain.NewRevenueError(domain.ErrEmptyInput, "arquivo vazio")
	}

	dateIdx, revenueIdx := -1, -1
	for i, header := range rows[0] {
		switch normalizeHeader(header) {
		case normalizeHeader(DateColumn):
			dateIdx = i
		case normalizeHeader(RevenueColumn):
			revenueIdx = i
		}
	}
	if dateIdx < 0 || revenueIdx < 0 {
		return nil, domain.NewRevenueError(domain.ErrMissingDataSource,
			fmt.Sprintf("colunas obrigatórias ausentes: %q e %q", DateColumn, RevenueColumn))
	}

	series := make(domain.RevenueSeries, 0, len(rows)-1)
	for lineNo, row := range rows[1:] {
		rawDate := cell(row, dateIdx)
		rawRevenue := cell(row, revenueIdx)
		if rawDate == "" && rawRevenue == "" {
			continue
		}

		date, err := parseDate(rawDate, format)
		if err != nil {
			return nil, domain.NewRevenueError(domain.ErrInvalidArgument,
				fmt.Sprintf("data inválida na linha %d: %q", lineNo+2, rawDate))
		}

		revenue, err := parseRevenue(rawRevenue)
		if err != nil {
			return nil, domain.NewRevenueError(domain.ErrInvalidArgument,
				fmt.Sprintf("faturamento inválido na linha %d: %q", lineNo+2, rawRevenue))
		}

		series = append(series, domain.RevenuePoint{Date: date, Revenue: revenue})
	}

	if len(series) == 0 {
		return nil, domain.NewRevenueError(domain.ErrEmptyInput, "nenhuma linha de dados")
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	if err := series.Validate(); err != nil {
		return nil, err
	}

	return series, nil
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimPrefix(h, "\ufeff"))), " ")
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDate aceita número serial do Excel apenas em xlsx
func parseDate(raw string, format Format) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return utils.TruncateToDay(t), nil
		}
	}

	if format != FormatXLSX {
		return time.Time{}, errors.New("formato de data desconhecido")
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return utils.TruncateToDay(t), nil
	}

	return time.Time{}, errors.New("formato de data desconhecido")
}

// parseRevenue aceita "1234.56", "1234,56" e "1,234.56"
func parseRevenue(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, " ", "")
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, err
	}
	return value.InexactFloat64(), nil
}
