// Package exporting gera as planilhas xlsx com gráficos e arquiva as exportações.
package exporting

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultSheetName = "Data"
	ContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	chartAnchor    = "D2"
	seriesFilename = "results.xlsx"
	chartWidth     = 640
	chartHeight    = 360
)

// Workbook é uma planilha pronta para download
type Workbook struct {
	Filename string
	Data     []byte
}

// Table é o conteúdo tabular de uma aba: cabeçalho na linha 1 e dados a partir da linha 2
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]any
}

func (t Table) RowCount() int {
	return len(t.Rows)
}

// ChartRanges devolve as referências de categoria (primeira coluna) e de valores
// para a coluna valueColumn (base zero).
func (t Table) ChartRanges(valueColumn int) (categories, values string, err error) {
	if valueColumn <= 0 || valueColumn >= len(t.Columns) {
		return "", "", fmt.Errorf("coluna de valores fora da tabela: %d", valueColumn)
	}
	if t.RowCount() == 0 {
		return "", "", domain.NewRevenueError(domain.ErrEmptyInput, "tabela sem linhas")
	}

	valueName, err := excelize.ColumnNumberToName(valueColumn + 1)
	if err != nil {
		return "", "", err
	}

	last := t.RowCount() + 1
	sheet := quoteSheetName(t.Sheet)

	categories = fmt.Sprintf("%s!$A$2:$A$%d", sheet, last)
	values = fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, valueName, valueName, last)
	return categories, values, nil
}

// SeriesName referencia o cabeçalho da coluna, usado como legenda do gráfico
func (t Table) SeriesName(valueColumn int) string {
	name, _ := excelize.ColumnNumberToName(valueColumn + 1)
	return fmt.Sprintf("%s!$%s$1", quoteSheetName(t.Sheet), name)
}

func quoteSheetName(sheet string) string {
	for _, r := range sheet {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
		}
	}
	return sheet
}

// write grava a tabela na primeira aba do arquivo, renomeada para t.Sheet
func (t Table) write(f *excelize.File) error {
	if err := f.SetSheetName(f.GetSheetName(0), t.Sheet); err != nil {
		return err
	}

	header := make([]any, len(t.Columns))
	for i, column := range t.Columns {
		header[i] = column
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(t.Sheet, "A", "C", 18)
}

func chartTitle(text string) []excelize.RichTextRun {
	return []excelize.RichTextRun{{Text: text}}
}

// BuildYearComparisonWorkbook gera Year/Revenue com gráfico de colunas em D2
func BuildYearComparisonWorkbook(sheet string, report *domain.YearComparisonReport) (*Workbook, error) {
	if sheet == "" {
		sheet = DefaultSheetName
	}

	table := Table{
		Sheet:   sheet,
		Columns: []string{"Year", "Revenue"},
		Rows: [][]any{
			{report.ReferenceYear, report.Result.Previous},
			{report.CurrentYear, report.Result.Current},
		},
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := table.write(f); err != nil {
		return nil, err
	}

	// resumo abaixo da tabela, fora das referências do gráfico
	summary := [][]any{
		{"Percent Change", report.Result.PercentChange},
		{"Absolute Delta", report.Result.AbsoluteDelta},
		{"Category", string(report.Result.Category)},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, table.RowCount()+3+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	categories, values, err := table.ChartRanges(1)
	if err != nil {
		return nil, err
	}

	err = f.AddChart(sheet, chartAnchor, &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       table.SeriesName(1),
			Categories: categories,
			Values:     values,
		}},
		Title:     chartTitle(fmt.Sprintf("Revenue %d vs %d", report.ReferenceYear, report.CurrentYear)),
		Legend:    excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
	})
	if err != nil {
		return nil, err
	}

	return finish(f, YearComparisonFilename(report.ReferenceYear, report.CurrentYear))
}

// YearComparisonFilename segue o padrão results_<referência>_<atual>.xlsx
func YearComparisonFilename(referenceYear, currentYear int) string {
	return fmt.Sprintf("results_%d_%d.xlsx", referenceYear, currentYear)
}

// BuildSeriesWorkbook gera Date/Sales Revenue e, se houver, a coluna de variação,
// com gráfico de linhas em D2.
func BuildSeriesWorkbook(sheet string, series domain.RevenueSeries, growth *domain.GrowthSeries) (*Workbook, error) {
	if len(series) == 0 {
		return nil, domain.NewRevenueError(domain.ErrEmptyInput, "série vazia")
	}
	if growth != nil && len(growth.Points) != len(series) {
		return nil, domain.NewRevenueError(domain.ErrInvalidArgument, "série de variação desalinhada")
	}
	if sheet == "" {
		sheet = DefaultSheetName
	}

	table := Table{
		Sheet:   sheet,
		Columns: []string{"Date", "Sales Revenue"},
		Rows:    make([][]any, len(series)),
	}
	if growth != nil {
		table.Columns = append(table.Columns, growth.ColumnName)
	}

	for i, point := range series {
		row := []any{point.Date.Format(time.DateOnly), point.Revenue}
		if growth != nil {
			var value any
			if v := growth.Points[i].Value; v != nil {
				value = *v
			}
			row = append(row, value)
		}
		table.Rows[i] = row
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := table.write(f); err != nil {
		return nil, err
	}

	chartSeries := make([]excelize.ChartSeries, 0, 2)
	for col := 1; col < len(table.Columns); col++ {
		categories, values, err := table.ChartRanges(col)
		if err != nil {
			return nil, err
		}
		chartSeries = append(chartSeries, excelize.ChartSeries{
			Name:       table.SeriesName(col),
			Categories: categories,
			Values:     values,
		})
	}

	err := f.AddChart(sheet, chartAnchor, &excelize.Chart{
		Type:         excelize.Line,
		Series:       chartSeries,
		Title:        chartTitle("Sales Revenue"),
		Legend:       excelize.ChartLegend{Position: "bottom"},
		Dimension:    excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
		ShowBlanksAs: "gap",
	})
	if err != nil {
		return nil, err
	}

	return finish(f, seriesFilename)
}

func finish(f *excelize.File, filename string) (*Workbook, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &Workbook{Filename: filename, Data: buf.Bytes()}, nil
}
