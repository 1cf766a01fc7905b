package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/revenue-compare-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
)

const yearComparisonsTable = "year_comparisons"

type ComparisonRepository interface {
	Save(ctx context.Context, report *domain.YearComparisonReport) error
	ListRecent(ctx context.Context, limit int) ([]*domain.YearComparisonReport, error)
}

type comparisonRepository struct {
	conn *postgres.Connection
}

func NewComparisonRepository(conn *postgres.Connection) ComparisonRepository {
	return &comparisonRepository{
		conn: conn,
	}
}

// Save registra o relatório e preenche ID e CreatedAt
func (r *comparisonRepository) Save(ctx context.Context, report *domain.YearComparisonReport) error {
	createdBy := sql.NullInt64{Int64: int64(report.CreatedBy), Valid: report.CreatedBy > 0}

	query, args, err := squirrel.
		Insert(yearComparisonsTable).
		Columns(
			"reference_year",
			"current_year",
			"reference_revenue",
			"current_revenue",
			"percent_change",
			"absolute_delta",
			"category",
			"direction",
			"high_growth",
			"moderate_growth",
			"mild_decline",
			"moderate_decline",
			"created_by",
		).
		Values(
			report.ReferenceYear,
			report.CurrentYear,
			report.Result.Previous,
			report.Result.Current,
			report.Result.PercentChange,
			report.Result.AbsoluteDelta,
			string(report.Result.Category),
			string(report.Result.Direction),
			report.Thresholds.HighGrowth,
			report.Thresholds.ModerateGrowth,
			report.Thresholds.MildDecline,
			report.Thresholds.ModerateDecline,
			createdBy,
		).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&report.ID, &report.CreatedAt); err != nil {
		return fmt.Errorf("erro ao salvar comparação: %w", err)
	}

	return nil
}

// ListRecent retorna as últimas comparações, mais recentes primeiro
func (r *comparisonRepository) ListRecent(ctx context.Context, limit int) ([]*domain.YearComparisonReport, error) {
	query, args, err := squirrel.
		Select(
			"id",
			"reference_year",
			"current_year",
			"reference_revenue",
			"current_revenue",
			"percent_change",
			"absolute_delta",
			"category",
			"direction",
			"high_growth",
			"moderate_growth",
			"mild_decline",
			"moderate_decline",
			"created_by",
			"created_at",
		).
		From(yearComparisonsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.YearComparisonReport, 0)
	for rows.Next() {
		var (
			report    domain.YearComparisonReport
			category  string
			direction string
			createdBy sql.NullInt64
		)

		if err := rows.Scan(
			&report.ID,
			&report.ReferenceYear,
			&report.CurrentYear,
			&report.Result.Previous,
			&report.Result.Current,
			&report.Result.PercentChange,
			&report.Result.AbsoluteDelta,
			&category,
			&direction,
			&report.Thresholds.HighGrowth,
			&report.Thresholds.ModerateGrowth,
			&report.Thresholds.MildDecline,
			&report.Thresholds.ModerateDecline,
			&createdBy,
			&report.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}

		report.Result.Category = domain.GrowthCategory(category)
		report.Result.Direction = domain.Direction(direction)
		if createdBy.Valid {
			report.CreatedBy = int(createdBy.Int64)
		}

		reports = append(reports, &report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return reports, nil
}
