package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/revenue-compare-api/internal/ingest"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/comparing"
	"github.com/vfg2006/revenue-compare-api/pkg/apiErrors"
)

const defaultSamplePeriod = 12

// parseSampleParams lê period, trend e seed da query; period padrão 12, seed 0 usa a semente em cache
func parseSampleParams(r *http.Request) (ingest.SampleParams, error) {
	query := r.URL.Query()
	params := ingest.SampleParams{Period: defaultSamplePeriod, Trend: ingest.Trend(query.Get("trend"))}

	if raw := query.Get("period"); raw != "" {
		period, err := strconv.Atoi(raw)
		if err != nil {
			return params, err
		}
		params.Period = period
	}

	if raw := query.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return params, err
		}
		params.Seed = seed
	}

	return params, nil
}

func GetSample(service comparing.SampleAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseSampleParams(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "period e seed devem ser inteiros", nil)
			return
		}

		window, err := parseWindow(r)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		report, err := service.SampleAnalysis(r.Context(), params, window)
		if err != nil {
			writeServiceError(w, r, "samples", err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func RegenerateSample(service comparing.SampleAnalyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parseSampleParams(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "period e seed devem ser inteiros", nil)
			return
		}

		window, err := parseWindow(r)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		report, err := service.RegenerateSample(r.Context(), params, window)
		if err != nil {
			writeServiceError(w, r, "samples regenerate", err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}
