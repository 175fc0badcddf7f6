package workers

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexKordic/threading/pkg/fifo"
)

const (
	defaultWorkers   = 1
	defaultBatchSize = 64
)

// Pool drains a fifo.Queue with a fixed set of consumer goroutines.
//
// Each worker blocks for the first available item, opportunistically collects
// up to Config.BatchSize more, and hands the batch to the Consumer. Consumer
// errors are logged and do not stop the pool; closing the queue does. When
// the queue is closed, workers finish draining the remaining elements before
// Run returns.
type Pool[T any] struct {
	queue  *fifo.Queue[T]
	cons   Consumer[T]
	cfg    Config
	logger *zap.Logger
}

// New creates a Pool consuming from q. A nil logger disables logging.
func New[T any](q *fifo.Queue[T], cons Consumer[T], cfg Config, logger *zap.Logger) *Pool[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool[T]{
		queue:  q,
		cons:   cons,
		cfg:    cfg,
		logger: logger,
	}
}

// Run starts the workers and blocks until the queue is closed and drained,
// or ctx is canceled. It returns the context error on cancellation, nil on a
// clean drain.
func (p *Pool[T]) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.cfg.Workers; i++ {
		id := i
		g.Go(func() error {
			return p.worker(ctx, id)
		})
	}
	return g.Wait()
}

func (p *Pool[T]) worker(ctx context.Context, id int) error {
	log := p.logger.With(zap.Int("worker", id))
	log.Debug("worker started")

	batch := make([]T, 0, p.cfg.BatchSize)
	for {
		v, err := p.queue.PopContext(ctx)
		switch {
		case err == nil:
		case errors.Is(err, fifo.ErrClosed):
			log.Debug("queue closed, worker exiting")
			return nil
		default:
			log.Debug("worker canceled", zap.Error(err))
			return err
		}

		batch = append(batch[:0], v)
		for len(batch) < p.cfg.BatchSize {
			v, err := p.queue.TryPop()
			if err != nil {
				break
			}
			batch = append(batch, v)
		}

		if err := p.cons.Consume(batch); err != nil {
			log.Error("consume batch failed",
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
		}
	}
}
