package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "times_series.csv")

	source, err := NewFileSource(path)
	require.NoError(t, err)

	t.Run("arquivo ausente", func(t *testing.T) {
		assert.True(t, errors.Is(source.Load(), domain.ErrMissingDataSource))

		_, err := source.Series()
		assert.True(t, errors.Is(err, domain.ErrMissingDataSource))
	})

	t.Run("carrega e mantém a série anterior em falha", func(t *testing.T) {
		writeFile(t, path, "Date,Sales Revenue\n2024-01-01,10\n2024-02-01,20\n")
		require.NoError(t, source.Load())

		writeFile(t, path, "Date,Revenue\n2024-01-01,10\n")
		assert.Error(t, source.Load())

		series, err := source.Series()
		require.NoError(t, err)
		assert.Equal(t, []float64{10, 20}, series.Revenues())
	})
}

func TestNewFileSource_UnsupportedFormat(t *testing.T) {
	_, err := NewFileSource("dados.json")
	assert.True(t, errors.Is(err, domain.ErrMissingDataSource))
}

// waitForRevenues consome recargas até encontrar a série esperada
func waitForRevenues(t *testing.T, reloaded <-chan domain.RevenueSeries, want []float64) {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case series := <-reloaded:
			if slices.Equal(series.Revenues(), want) {
				return
			}
		case <-timeout:
			t.Fatalf("arquivo não foi recarregado com %v", want)
		}
	}
}

func TestFileSource_Watch(t *testing.T) {
	log.SetupTestLogger()

	dir := t.TempDir()
	path := filepath.Join(dir, "times_series.csv")
	writeFile(t, path, "Date,Sales Revenue\n2024-01-01,10\n")

	source, err := NewFileSource(path)
	require.NoError(t, err)
	require.NoError(t, source.Load())

	reloaded := make(chan domain.RevenueSeries, 16)
	source.OnReload(func(series domain.RevenueSeries) {
		select {
		case reloaded <- series:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- source.Watch(ctx) }()

	// espera o watcher registrar o diretório antes de escrever
	time.Sleep(100 * time.Millisecond)

	writeFile(t, path, "Date,Sales Revenue\n2024-01-01,10\n2024-02-01,30\n")
	waitForRevenues(t, reloaded, []float64{10, 30})

	// salvamento atômico: grava um temporário e renomeia por cima
	tmp := filepath.Join(dir, "times_series.tmp")
	writeFile(t, tmp, "Date,Sales Revenue\n2024-01-01,10\n2024-02-01,40\n")
	require.NoError(t, os.Rename(tmp, path))
	waitForRevenues(t, reloaded, []float64{10, 40})

	// o monitoramento continua depois do rename
	writeFile(t, path, "Date,Sales Revenue\n2024-01-01,10\n2024-02-01,50\n")
	waitForRevenues(t, reloaded, []float64{10, 50})

	// outros arquivos do diretório são ignorados
	writeFile(t, filepath.Join(dir, "outro.csv"), "Date,Sales Revenue\n2024-01-01,99\n")
	time.Sleep(100 * time.Millisecond)
	series, err := source.Series()
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 50}, series.Revenues())

	cancel()
	assert.NoError(t, <-done)
}
