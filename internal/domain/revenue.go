// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"fmt"
	"math"
	"time"
)

// RevenuePoint representa o faturamento registrado em uma data
type RevenuePoint struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
}

// RevenueSeries é uma sequência de pontos ordenada por data crescente
type RevenueSeries []RevenuePoint

// Validate garante datas estritamente crescentes e faturamentos finitos e não negativos
func (s RevenueSeries) Validate() error {
	for i, point := range s {
		if math.IsNaN(point.Revenue) || math.IsInf(point.Revenue, 0) {
			return NewRevenueError(ErrInvalidArgument, fmt.Sprintf("faturamento não numérico na linha %d", i+1))
		}

		if point.Revenue < 0 {
			return NewRevenueError(ErrInvalidArgument, fmt.Sprintf("faturamento negativo em %s", point.Date.Format(time.DateOnly)))
		}

		if i > 0 && !point.Date.After(s[i-1].Date) {
			return NewRevenueError(ErrInvalidArgument, fmt.Sprintf("datas fora de ordem ou duplicadas em %s", point.Date.Format(time.DateOnly)))
		}
	}

	return nil
}

// Revenues retorna apenas os valores de faturamento
func (s RevenueSeries) Revenues() []float64 {
	values := make([]float64, len(s))
	for i, point := range s {
		values[i] = point.Revenue
	}
	return values
}

// Bounds retorna a primeira e a última data da série
func (s RevenueSeries) Bounds() (first, last time.Time, ok bool) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s[0].Date, s[len(s)-1].Date, true
}
