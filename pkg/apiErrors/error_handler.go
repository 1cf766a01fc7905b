package apiErrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
)

// Códigos de erro da API
const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidArgument     = "VAL_004" // Parâmetro fora do domínio aceito
	ErrRouteNotFound       = "VAL_005" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_006" // Método não suportado pela rota

	// Erros de cálculo
	ErrDivisionByZero = "CALC_001" // Faturamento de referência zerado
	ErrEmptyInput     = "CALC_002" // Série vazia

	// Erros de dados
	ErrMissingDataSource = "DATA_001" // Arquivo ausente, ilegível ou sem colunas obrigatórias
	ErrDatasetNotFound   = "DATA_002" // Dataset não encontrado

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInvalidArgument:       http.StatusBadRequest,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrDivisionByZero:        http.StatusUnprocessableEntity,
	ErrEmptyInput:            http.StatusUnprocessableEntity,
	ErrMissingDataSource:     http.StatusBadRequest,
	ErrDatasetNotFound:       http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFor traduz os erros de domínio para códigos da API
func CodeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return ErrInvalidArgument
	case errors.Is(err, domain.ErrDivisionByZero):
		return ErrDivisionByZero
	case errors.Is(err, domain.ErrEmptyInput):
		return ErrEmptyInput
	case errors.Is(err, domain.ErrMissingDataSource):
		return ErrMissingDataSource
	case errors.Is(err, domain.ErrNotFound):
		return ErrDatasetNotFound
	default:
		return ErrInternalServer
	}
}

// WriteFromError escreve a resposta a partir de um erro Go.
// Erros internos não expõem a mensagem original.
func WriteFromError(w http.ResponseWriter, err error) {
	code := CodeFor(err)
	if code == ErrInternalServer {
		WriteError(w, code, "Erro interno do servidor", nil)
		return
	}
	WriteError(w, code, err.Error(), nil)
}
