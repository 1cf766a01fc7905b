// Package migration cria e evolui o schema do banco de forma idempotente
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/revenue-compare-api/infrastructure/database/postgres"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type step struct {
	name string
	sql  string
}

// steps são aplicados em ordem e registrados em schema_migrations
var steps = []step{
	{
		name: "001_create_roles_and_users",
		sql: `CREATE TABLE IF NOT EXISTS roles (
			id INTEGER PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE
		);
		INSERT INTO roles (id, name) VALUES (1, 'admin'), (2, 'analyst') ON CONFLICT (id) DO NOTHING;
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			lastname VARCHAR(100) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			role_id INTEGER NOT NULL REFERENCES roles(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "002_create_datasets",
		sql: `CREATE TABLE IF NOT EXISTS datasets (
			id VARCHAR(32) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			source VARCHAR(16) NOT NULL,
			point_count INTEGER NOT NULL DEFAULT 0,
			first_date DATE,
			last_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS revenue_points (
			dataset_id VARCHAR(32) NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			revenue DOUBLE PRECISION NOT NULL CHECK (revenue >= 0),
			PRIMARY KEY (dataset_id, date)
		);
		CREATE INDEX IF NOT EXISTS datasets_created_at_idx ON datasets (created_at)`,
	},
	{
		name: "003_create_year_comparisons",
		sql: `CREATE TABLE IF NOT EXISTS year_comparisons (
			id BIGSERIAL PRIMARY KEY,
			reference_year INTEGER NOT NULL,
			current_year INTEGER NOT NULL,
			reference_revenue DOUBLE PRECISION NOT NULL,
			current_revenue DOUBLE PRECISION NOT NULL,
			percent_change DOUBLE PRECISION NOT NULL,
			absolute_delta DOUBLE PRECISION NOT NULL,
			category VARCHAR(32) NOT NULL,
			direction VARCHAR(16) NOT NULL,
			high_growth DOUBLE PRECISION NOT NULL,
			moderate_growth DOUBLE PRECISION NOT NULL,
			mild_decline DOUBLE PRECISION NOT NULL,
			moderate_decline DOUBLE PRECISION NOT NULL,
			created_by INTEGER REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
}

// Run aplica os passos pendentes; cada passo roda na sua própria transação
func Run(ctx context.Context, conn *postgres.Connection) error {
	logger := log.ForContext(ctx)
	startTime := time.Now()

	if _, err := conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name VARCHAR(100) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return fmt.Errorf("erro ao criar schema_migrations: %w", err)
	}

	applied := 0
	for _, s := range steps {
		var exists bool
		err := conn.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, s.name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("erro ao verificar migração %s: %w", s.name, err)
		}
		if exists {
			continue
		}

		err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, s.sql); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, s.name)
			return err
		})
		if err != nil {
			return fmt.Errorf("erro ao aplicar migração %s: %w", s.name, err)
		}

		logger.Infof("Migração aplicada: %s", s.name)
		applied++
	}

	logger.Infof("Migrações concluídas em %v. Aplicadas: %d, total: %d", time.Since(startTime), applied, len(steps))
	return nil
}

// SeedAdmin cria o administrador inicial se o e-mail ainda não existir
func SeedAdmin(ctx context.Context, conn *postgres.Connection, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	query, args, err := squirrel.
		Insert("users").
		Columns("name", "lastname", "email", "password_hash", "active", "role_id").
		Values("Admin", "", email, string(hash), true, domain.RoleAdmin).
		Suffix("ON CONFLICT (email) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao criar administrador: %w", err)
	}

	if n, _ := result.RowsAffected(); n > 0 {
		log.ForContext(ctx).WithField("user_email", email).Info("Administrador inicial criado")
	}
	return nil
}
