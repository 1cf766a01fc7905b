package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/comparing"
	"github.com/vfg2006/revenue-compare-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
)

// CreateDataset recebe um upload multipart com o campo "file" (csv ou xlsx) e "name" opcional
func CreateDataset(service comparing.DatasetAnalyzer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Arquivo excede o tamanho máximo permitido", map[string]any{
					"max_bytes": maxBytes,
				})
				return
			}
			logger.WithError(err).Warn("datasets: invalid multipart form")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido", nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo file é obrigatório", nil)
			return
		}
		defer file.Close()

		logger.WithFields(log.Fields{
			"filename": header.Filename,
			"size":     header.Size,
		}).Info("datasets: importing upload")

		dataset, err := service.CreateDataset(r.Context(), r.FormValue("name"), header.Filename, file)
		if err != nil {
			writeServiceError(w, r, "datasets import", err)
			return
		}

		writeJSON(w, r, http.StatusCreated, dataset)
	}
}

func ListDatasets(service comparing.DatasetAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		datasets, err := service.ListDatasets(r.Context())
		if err != nil {
			writeServiceError(w, r, "datasets list", err)
			return
		}

		if datasets == nil {
			datasets = []*domain.Dataset{}
		}
		writeJSON(w, r, http.StatusOK, datasets)
	}
}

func DeleteDataset(service comparing.DatasetAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteDataset(r.Context(), id); err != nil {
			writeServiceError(w, r, "datasets delete", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GetDatasetPoints(service comparing.DatasetAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		dateRange, err := parseDateRange(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		analysis, err := service.GetSeries(r.Context(), id, dateRange)
		if err != nil {
			writeServiceError(w, r, "datasets points", err)
			return
		}

		writeJSON(w, r, http.StatusOK, analysis)
	}
}

func GetDatasetStatistics(service comparing.DatasetAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		dateRange, err := parseDateRange(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		analysis, err := service.DescribeDataset(r.Context(), id, dateRange)
		if err != nil {
			writeServiceError(w, r, "datasets statistics", err)
			return
		}

		writeJSON(w, r, http.StatusOK, analysis)
	}
}

func GetDatasetGrowth(service comparing.DatasetAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		window, err := parseWindow(r)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		dateRange, err := parseDateRange(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		analysis, err := service.GrowthForDataset(r.Context(), id, window, dateRange)
		if err != nil {
			writeServiceError(w, r, "datasets growth", err)
			return
		}

		writeJSON(w, r, http.StatusOK, analysis)
	}
}

func ExportDataset(service comparing.DatasetAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		window, err := parseWindow(r)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		dateRange, err := parseDateRange(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		wb, err := service.ExportDataset(r.Context(), id, window, dateRange)
		if err != nil {
			writeServiceError(w, r, "datasets export", err)
			return
		}

		writeWorkbook(w, r, wb)
	}
}
