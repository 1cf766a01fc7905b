package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/revenue-compare-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/pkg/utils"
)

const (
	datasetsTable      = "datasets"
	revenuePointsTable = "revenue_points"

	// pontos por INSERT; 3 parâmetros por ponto
	pointsBatchSize = 500
)

var datasetColumns = []string{"id", "name", "source", "point_count", "first_date", "last_date", "created_at"}

type DatasetRepository interface {
	Create(ctx context.Context, dataset *domain.Dataset, series domain.RevenueSeries) (*domain.Dataset, error)
	GetByID(ctx context.Context, id string) (*domain.Dataset, error)
	List(ctx context.Context) ([]*domain.Dataset, error)
	GetPoints(ctx context.Context, id string, dateRange domain.DateRange) (domain.RevenueSeries, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type datasetRepository struct {
	conn *postgres.Connection
}

func NewDatasetRepository(conn *postgres.Connection) DatasetRepository {
	return &datasetRepository{
		conn: conn,
	}
}

// Create grava o dataset e seus pontos na mesma transação
func (r *datasetRepository) Create(ctx context.Context, dataset *domain.Dataset, series domain.RevenueSeries) (*domain.Dataset, error) {
	if dataset.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id do dataset: %w", err)
		}
		dataset.ID = id
	}

	dataset.PointCount = len(series)
	if first, last, ok := series.Bounds(); ok {
		dataset.FirstDate = &first
		dataset.LastDate = &last
	}

	insertDataset, args, err := squirrel.
		Insert(datasetsTable).
		Columns("id", "name", "source", "point_count", "first_date", "last_date").
		Values(dataset.ID, dataset.Name, string(dataset.Source), dataset.PointCount, dataset.FirstDate, dataset.LastDate).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertDataset, args...).Scan(&dataset.CreatedAt); err != nil {
			return fmt.Errorf("erro ao inserir dataset: %w", err)
		}

		for start := 0; start < len(series); start += pointsBatchSize {
			end := min(start+pointsBatchSize, len(series))

			builder := squirrel.
				Insert(revenuePointsTable).
				Columns("dataset_id", "date", "revenue").
				PlaceholderFormat(squirrel.Dollar)
			for _, point := range series[start:end] {
				builder = builder.Values(dataset.ID, point.Date, point.Revenue)
			}

			pointsSQL, pointsArgs, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query de pontos: %w", err)
			}

			if _, err := tx.ExecContext(ctx, pointsSQL, pointsArgs...); err != nil {
				return fmt.Errorf("erro ao inserir pontos: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return dataset, nil
}

func (r *datasetRepository) GetByID(ctx context.Context, id string) (*domain.Dataset, error) {
	query, args, err := squirrel.
		Select(datasetColumns...).
		From(datasetsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	dataset, err := scanDataset(r.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewRevenueError(domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return dataset, nil
}

func (r *datasetRepository) List(ctx context.Context) ([]*domain.Dataset, error) {
	query, args, err := squirrel.
		Select(datasetColumns...).
		From(datasetsTable).
		OrderBy("created_at DESC").
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

	datasets := make([]*domain.Dataset, 0)
	for rows.Next() {
		dataset, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return datasets, nil
}

// GetPoints retorna os pontos em ordem de data; limites nil não filtram
func (r *datasetRepository) GetPoints(ctx context.Context, id string, dateRange domain.DateRange) (domain.RevenueSeries, error) {
	builder := squirrel.
		Select("date", "revenue").
		From(revenuePointsTable).
		Where(squirrel.Eq{"dataset_id": id}).
		OrderBy("date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if dateRange.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": *dateRange.StartDate})
	}
	if dateRange.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": *dateRange.EndDate})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	series := make(domain.RevenueSeries, 0)
	for rows.Next() {
		var point domain.RevenuePoint
		if err := rows.Scan(&point.Date, &point.Revenue); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		point.Date = utils.TruncateToDay(point.Date)
		series = append(series, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return series, nil
}

// Delete remove o dataset; os pontos caem pela FK em cascata
func (r *datasetRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(datasetsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover dataset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewRevenueError(domain.ErrNotFound, id)
	}

	return nil
}

// DeleteOlderThan remove datasets criados há mais de days dias e retorna quantos saíram
func (r *datasetRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	query, args, err := squirrel.
		Delete(datasetsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover datasets antigos: %w", err)
	}

	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(row rowScanner) (*domain.Dataset, error) {
	var (
		dataset   domain.Dataset
		source    string
		firstDate sql.NullTime
		lastDate  sql.NullTime
	)

	if err := row.Scan(
		&dataset.ID,
		&dataset.Name,
		&source,
		&dataset.PointCount,
		&firstDate,
		&lastDate,
		&dataset.CreatedAt,
	); err != nil {
		return nil, err
	}

	dataset.Source = domain.DatasetSource(source)
	if firstDate.Valid {
		dataset.FirstDate = &firstDate.Time
	}
	if lastDate.Valid {
		dataset.LastDate = &lastDate.Time
	}

	return &dataset, nil
}
