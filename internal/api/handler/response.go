package handler

import (
	"fmt"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/internal/exporting"
	"github.com/vfg2006/revenue-compare-api/internal/growth"
	"github.com/vfg2006/revenue-compare-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
	"github.com/vfg2006/revenue-compare-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("erro ao enviar resposta")
	}
}

func writeWorkbook(w http.ResponseWriter, r *http.Request, wb *exporting.Workbook) {
	w.Header().Set("Content-Type", exporting.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", wb.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(wb.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(wb.Data); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("erro ao enviar planilha")
	}
}

// writeServiceError registra e responde erros vindos dos casos de uso
func writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	logger := log.ForContext(r.Context()).WithError(err)
	if apiErrors.CodeFor(err) != apiErrors.ErrInternalServer {
		logger.Warnf("%s: requisição rejeitada", operation)
		apiErrors.WriteFromError(w, err)
		return
	}

	logger.Errorf("%s: falha inesperada", operation)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", map[string]any{
		"correlation_id": log.GetCorrelationID(r.Context()),
	})
}

// parseDateRange lê start_date e end_date (yyyy-mm-dd), ambos opcionais
func parseDateRange(r *http.Request) (domain.DateRange, error) {
	query := r.URL.Query()

	start, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("start_date inválida: %w", err)
	}

	end, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("end_date inválida: %w", err)
	}

	return domain.DateRange{StartDate: start, EndDate: end}, nil
}

// parseWindow lê o parâmetro window; ausente retorna 0 para usar a janela padrão
func parseWindow(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("window")
	if raw == "" {
		return 0, nil
	}
	return growth.ParseWindow(raw)
}
