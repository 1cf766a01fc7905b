package domain

import (
	"errors"
	"fmt"
)

// Erros das computações de faturamento
var (
	ErrInvalidArgument   = errors.New("argumento inválido")
	ErrDivisionByZero    = errors.New("faturamento de referência igual a zero")
	ErrEmptyInput        = errors.New("série de faturamento vazia")
	ErrMissingDataSource = errors.New("fonte de dados ausente ou ilegível")
	ErrNotFound          = errors.New("dataset não encontrado")
)

// RevenueError é um erro com contexto adicional para as computações
type RevenueError struct {
	Err     error  // Erro base
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *RevenueError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *RevenueError) Unwrap() error {
	return e.Err
}

// NewRevenueError cria um novo RevenueError
func NewRevenueError(err error, details string) *RevenueError {
	return &RevenueError{
		Err:     err,
		Details: details,
	}
}
