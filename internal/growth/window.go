package growth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
)

// ParseWindow converte o texto informado pelo usuário em tamanho de janela
func ParseWindow(raw string) (int, error) {
	window, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.NewRevenueError(domain.ErrInvalidArgument, fmt.Sprintf("a janela deve ser um número inteiro: %q", raw))
	}

	if window <= 0 {
		return 0, domain.NewRevenueError(domain.ErrInvalidArgument, "a janela deve ser maior que zero")
	}

	return window, nil
}

// WindowedDiff calcula a diferença entre cada ponto e o ponto `window` posições antes.
// A defasagem é por posição na série, não por meses de calendário.
func WindowedDiff(series domain.RevenueSeries, window int) (domain.GrowthSeries, error) {
	if window <= 0 {
		return domain.GrowthSeries{}, domain.NewRevenueError(domain.ErrInvalidArgument, "a janela deve ser maior que zero")
	}

	points := make([]domain.GrowthPoint, len(series))
	for i, point := range series {
		points[i] = domain.GrowthPoint{Date: point.Date}
		if i < window {
			continue
		}

		diff := point.Revenue - series[i-window].Revenue
		points[i].Value = &diff
		points[i].Increase = diff > 0
	}

	return domain.GrowthSeries{
		Window:     window,
		ColumnName: domain.GrowthColumnName(window),
		Points:     points,
	}, nil
}
