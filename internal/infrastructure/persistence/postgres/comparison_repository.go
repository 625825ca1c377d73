package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/repository"
)

var _ repository.ComparisonRepository = (*ComparisonRepository)(nil)

// ComparisonRepository lưu lịch sử so sánh, rows nằm trong cột jsonb.
type ComparisonRepository struct {
	pool *pgxpool.Pool

	mu         sync.Mutex
	tableReady bool
}

func NewComparisonRepository(pool *pgxpool.Pool) *ComparisonRepository {
	return &ComparisonRepository{pool: pool}
}

// RecordComparison upserts a summary by id.
func (r *ComparisonRepository) RecordComparison(ctx context.Context, s domain.Summary) error {
	if s.ID == "" {
		return fmt.Errorf("summary id is empty")
	}

	rows, err := json.Marshal(s.Rows)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}

	const query = `
		INSERT INTO order_comparisons (id, factory_order_id, shop_order_name, store_prefix, factory_address, shop_address, rows, compared_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET factory_order_id = EXCLUDED.factory_order_id,
			shop_order_name = EXCLUDED.shop_order_name,
			store_prefix = EXCLUDED.store_prefix,
			factory_address = EXCLUDED.factory_address,
			shop_address = EXCLUDED.shop_address,
			rows = EXCLUDED.rows,
			compared_at = EXCLUDED.compared_at;
	`

	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		s.ID,
		s.FactoryOrderID,
		s.ShopOrderName,
		s.StorePrefix,
		s.FactoryAddress,
		s.ShopAddress,
		rows,
		s.ComparedAt,
	)
	if err != nil {
		return fmt.Errorf("save comparison %s: %w", s.ID, err)
	}
	return nil
}

// FindByID returns domain.ErrNotFound for an unknown id.
func (r *ComparisonRepository) FindByID(ctx context.Context, id string) (*domain.Summary, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	const query = `
		SELECT id, factory_order_id, shop_order_name, store_prefix, factory_address, shop_address, rows, compared_at
		FROM order_comparisons
		WHERE id = $1;
	`
	var (
		s    domain.Summary
		rows []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.FactoryOrderID,
		&s.ShopOrderName,
		&s.StorePrefix,
		&s.FactoryAddress,
		&s.ShopAddress,
		&rows,
		&s.ComparedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load comparison %s: %w", id, err)
	}

	if err := json.Unmarshal(rows, &s.Rows); err != nil {
		return nil, fmt.Errorf("decode rows of %s: %w", id, err)
	}
	s.ComparedAt = s.ComparedAt.UTC()
	return &s, nil
}

func (r *ComparisonRepository) ensureTable(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tableReady {
		return nil
	}

	const stmt = `
		CREATE TABLE IF NOT EXISTS order_comparisons (
			id TEXT PRIMARY KEY,
			factory_order_id TEXT NOT NULL,
			shop_order_name TEXT NOT NULL,
			store_prefix TEXT NOT NULL,
			factory_address TEXT NOT NULL,
			shop_address TEXT NOT NULL,
			rows JSONB NOT NULL,
			compared_at TIMESTAMPTZ NOT NULL
		);
	`
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("ensure order_comparisons table: %w", err)
	}
	r.tableReady = true
	return nil
}
