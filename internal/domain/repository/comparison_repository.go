package repository

import (
	"context"

	"order_compare/internal/domain/comparison"
)

type ComparisonRepository interface {
	RecordComparison(ctx context.Context, summary comparison.Summary) error
	FindByID(ctx context.Context, id string) (*comparison.Summary, error)
}
