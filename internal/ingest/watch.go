package ingest

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
)

// FileSource mantém em memória a última série válida do arquivo de dados
type FileSource struct {
	path   string
	format Format

	mu       sync.RWMutex
	series   domain.RevenueSeries
	loaded   bool
	onReload func(domain.RevenueSeries)
}

func NewFileSource(path string) (*FileSource, error) {
	format, err := FormatFromFilename(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, format: format}, nil
}

func (s *FileSource) Path() string {
	return s.path
}

// OnReload registra um callback chamado após cada recarga bem-sucedida
func (s *FileSource) OnReload(fn func(domain.RevenueSeries)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = fn
}

// Load lê o arquivo e substitui a série em memória só se a leitura der certo
func (s *FileSource) Load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return domain.NewRevenueError(domain.ErrMissingDataSource, err.Error())
	}
	defer f.Close()

	series, err := ReadSeries(f, s.format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.series = series
	s.loaded = true
	callback := s.onReload
	s.mu.Unlock()

	if callback != nil {
		callback(slices.Clone(series))
	}
	return nil
}

// Series devolve a última série carregada
func (s *FileSource) Series() (domain.RevenueSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, domain.NewRevenueError(domain.ErrMissingDataSource, s.path)
	}
	return slices.Clone(s.series), nil
}

// Watch recarrega o arquivo a cada escrita até ctx ser cancelado.
// O diretório é monitorado para que um rename sobre o arquivo também dispare a recarga.
// Falhas de leitura são registradas e a série anterior continua valendo.
func (s *FileSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(s.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	logger := log.L.WithField("dataset_path", s.path)
	logger.Info("Monitorando arquivo de dados")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if err := s.Load(); err != nil {
				logger.WithError(err).Warn("Falha ao recarregar arquivo de dados, mantendo série anterior")
				continue
			}

			logger.Info("Arquivo de dados recarregado")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Error("Erro no monitoramento do arquivo de dados")
		}
	}
}
