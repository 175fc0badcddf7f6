package workers

// Consumer is the interface that must be implemented by users of the Pool.
// It is responsible for processing a batch of items taken from the queue.
type Consumer[T any] interface {
	// Consume processes a batch of items.
	// The batch slice is reused between calls and must not be retained.
	// Returns an error if processing fails.
	Consume(batch []T) error
}

// ConsumerFunc adapts a plain function to the Consumer interface.
type ConsumerFunc[T any] func(batch []T) error

// Consume calls f(batch).
func (f ConsumerFunc[T]) Consume(batch []T) error { return f(batch) }

// Config holds configuration for the Pool.
type Config struct {
	// Workers is the number of consumer goroutines. Defaults to 1.
	Workers int `mapstructure:"workers"`

	// BatchSize is the maximum number of items handed to Consume at once.
	// A worker blocks for the first item, then collects up to BatchSize
	// without waiting. Defaults to 64.
	BatchSize int `mapstructure:"batch_size"`
}
