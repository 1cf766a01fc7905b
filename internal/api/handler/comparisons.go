package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/usecases/comparing"
	"github.com/vfg2006/revenue-compare-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
	"github.com/vfg2006/revenue-compare-api/pkg/middleware"
)

// YearComparisonRequest aceita limiares opcionais; ausentes usam os padrões configurados
type YearComparisonRequest struct {
	ReferenceYear    int                      `json:"reference_year"`
	CurrentYear      int                      `json:"current_year"`
	ReferenceRevenue *float64                 `json:"reference_revenue"`
	CurrentRevenue   *float64                 `json:"current_revenue"`
	Thresholds       *domain.GrowthThresholds `json:"thresholds,omitempty"`
}

func decodeYearComparison(w http.ResponseWriter, r *http.Request, service comparing.YearComparer) (domain.YearComparison, bool) {
	var req YearComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return domain.YearComparison{}, false
	}

	if req.ReferenceYear == 0 || req.CurrentYear == 0 || req.ReferenceRevenue == nil || req.CurrentRevenue == nil {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData,
			"reference_year, current_year, reference_revenue e current_revenue são obrigatórios", nil)
		return domain.YearComparison{}, false
	}

	input := domain.YearComparison{
		ReferenceYear:    req.ReferenceYear,
		CurrentYear:      req.CurrentYear,
		ReferenceRevenue: *req.ReferenceRevenue,
		CurrentRevenue:   *req.CurrentRevenue,
		Thresholds:       service.DefaultThresholds(),
	}
	if req.Thresholds != nil {
		input.Thresholds = *req.Thresholds
	}

	return input, true
}

func GetDefaultThresholds(service comparing.YearComparer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.DefaultThresholds())
	}
}

func CompareYears(service comparing.YearComparer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeYearComparison(w, r, service)
		if !ok {
			return
		}

		var userID int
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			userID = claims.UserID
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"reference_year": input.ReferenceYear,
			"current_year":   input.CurrentYear,
		}).Info("comparisons: comparing years")

		report, err := service.CompareYears(r.Context(), input, userID)
		if err != nil {
			writeServiceError(w, r, "comparisons", err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func ExportYearComparison(service comparing.YearComparer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeYearComparison(w, r, service)
		if !ok {
			return
		}

		wb, err := service.ExportYearComparison(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, "comparisons export", err)
			return
		}

		writeWorkbook(w, r, wb)
	}
}

func ListComparisonHistory(service comparing.YearComparer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		reports, err := service.ListComparisonHistory(r.Context(), limit)
		if err != nil {
			writeServiceError(w, r, "comparisons history", err)
			return
		}

		if reports == nil {
			reports = []*domain.YearComparisonReport{}
		}
		writeJSON(w, r, http.StatusOK, reports)
	}
}
