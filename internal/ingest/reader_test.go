package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"times_series.csv", FormatCSV, false},
		{"Vendas.XLSX", FormatXLSX, false},
		{"notas.txt", "", true},
		{"sem_extensao", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromFilename(tt.name)
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrMissingDataSource))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSeries_CSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.RevenueSeries
		wantErr error
	}{
		{
			name:  "ordena por data e ignora colunas extras",
			input: "Store,Date,Sales Revenue\nA,2024-02-01,200.5\nA,2024-01-01,100\n",
			want: domain.RevenueSeries{
				{Date: date(2024, 1, 1), Revenue: 100},
				{Date: date(2024, 2, 1), Revenue: 200.5},
			},
		},
		{
			name:  "cabeçalho com espaços e caixa diferente",
			input: "  DATE , sales   revenue\n2024-01-01, 10\n",
			want: domain.RevenueSeries{
				{Date: date(2024, 1, 1), Revenue: 10},
			},
		},
		{
			name:    "separador ponto e vírgula não é reconhecido",
			input:   "Date;Sales Revenue\n2024-01-01;10\n",
			wantErr: domain.ErrMissingDataSource,
		},
		{
			name:  "vírgula decimal entre aspas",
			input: "Date,Sales Revenue\n2024-01-01,\"1234,5\"\n2024-01-02,\"1,000.25\"\n",
			want: domain.RevenueSeries{
				{Date: date(2024, 1, 1), Revenue: 1234.5},
				{Date: date(2024, 1, 2), Revenue: 1000.25},
			},
		},
		{
			name:    "arquivo vazio",
			input:   "",
			wantErr: domain.ErrEmptyInput,
		},
		{
			name:    "só cabeçalho",
			input:   "Date,Sales Revenue\n",
			wantErr: domain.ErrEmptyInput,
		},
		{
			name:    "coluna ausente",
			input:   "Date,Revenue\n2024-01-01,10\n",
			wantErr: domain.ErrMissingDataSource,
		},
		{
			name:    "faturamento negativo",
			input:   "Date,Sales Revenue\n2024-01-01,-10\n",
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "data duplicada",
			input:   "Date,Sales Revenue\n2024-01-01,10\n2024-01-01,20\n",
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "faturamento não numérico",
			input:   "Date,Sales Revenue\n2024-01-01,abc\n",
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "data inválida",
			input:   "Date,Sales Revenue\nontem,10\n",
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "ano isolado em csv",
			input:   "Date,Sales Revenue\n2024,10\n",
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "número serial só vale para xlsx",
			input:   "Date,Sales Revenue\n45292,10\n",
			wantErr: domain.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSeries(strings.NewReader(tt.input), FormatCSV)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "erro inesperado: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSeries_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Date"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Sales Revenue"))
	require.NoError(t, f.SetCellValue(sheet, "A2", date(2024, 1, 1)))
	require.NoError(t, f.SetCellValue(sheet, "B2", 1500.75))
	require.NoError(t, f.SetCellValue(sheet, "A3", "2024-02-01"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 900))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	series, err := ReadSeries(bytes.NewReader(buf.Bytes()), FormatXLSX)

	require.NoError(t, err)
	assert.Equal(t, domain.RevenueSeries{
		{Date: date(2024, 1, 1), Revenue: 1500.75},
		{Date: date(2024, 2, 1), Revenue: 900},
	}, series)
}

func TestReadSeries_XLSXInvalid(t *testing.T) {
	_, err := ReadSeries(strings.NewReader("isto não é uma planilha"), FormatXLSX)
	assert.True(t, errors.Is(err, domain.ErrMissingDataSource))
}
