package comparison

import (
	"context"
	"sync"
	"time"

	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/order"
)

// BatchResult is the outcome of one pair of a batch.
type BatchResult struct {
	Pair     order.OrderPair
	Result   *domain.Result
	Err      error
	Duration time.Duration
}

type batchJob struct {
	index int
	pair  order.OrderPair
}

// workerPool chạy CompareOrders trên một số worker cố định, mỗi worker xử lý
// tuần tự từng cặp.
type workerPool struct {
	workers  int
	requests chan batchJob
	out      []BatchResult
	wg       sync.WaitGroup
}

// CompareBatch compares every pair and returns results in input order.
// workers <= 1 compares one pair at a time.
func (s *Service) CompareBatch(ctx context.Context, pairs []order.OrderPair, workers int) []BatchResult {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}

	wp := &workerPool{
		workers:  workers,
		requests: make(chan batchJob, len(pairs)),
		out:      make([]BatchResult, len(pairs)),
	}

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, s)
	}

	for i, p := range pairs {
		wp.requests <- batchJob{index: i, pair: p}
	}
	close(wp.requests)
	wp.wg.Wait()

	return wp.out
}

func (wp *workerPool) worker(ctx context.Context, s *Service) {
	defer wp.wg.Done()

	for job := range wp.requests {
		start := time.Now()
		res := BatchResult{Pair: job.pair}

		if err := ctx.Err(); err != nil {
			res.Err = err
		} else {
			res.Result, res.Err = s.CompareOrders(ctx, job.pair)
		}
		res.Duration = time.Since(start)

		// mỗi index chỉ một worker ghi
		wp.out[job.index] = res
	}
}
