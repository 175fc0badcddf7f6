package fifo

import (
	"sync"
	"testing"
)

// ===========================================================================
// Benchmark Configuration
// ===========================================================================

// queueBenchConfig holds benchmark test configuration.
type queueBenchConfig struct {
	name     string
	capacity int
}

// benchConfigs defines the capacities for benchmarking.
var benchConfigs = []queueBenchConfig{
	{"Small/Cap64", 64},
	{"Medium/Cap1K", 1024},
	{"Large/Cap64K", 64 * 1024},
}

// ===========================================================================
// Single-Threaded Benchmarks
// ===========================================================================

// BenchmarkTryPush measures non-blocking push performance.
func BenchmarkTryPush(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewBounded[int](cfg.capacity)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				q.TryPush(i)
				// Drain to avoid full queue
				if i%cfg.capacity == cfg.capacity-1 {
					b.StopTimer()
					for j := 0; j < cfg.capacity; j++ {
						q.TryPop()
					}
					b.StartTimer()
				}
			}
		})
	}
}

// BenchmarkTryPop measures non-blocking pop performance.
func BenchmarkTryPop(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewBounded[int](cfg.capacity)
			for i := 0; i < cfg.capacity; i++ {
				q.TryPush(i)
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := q.TryPop(); err != nil {
					b.StopTimer()
					for j := 0; j < cfg.capacity; j++ {
						q.TryPush(j)
					}
					b.StartTimer()
				}
			}
		})
	}
}

// BenchmarkPushPop measures roundtrip push+pop.
func BenchmarkPushPop(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			q := NewBounded[int](cfg.capacity)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				q.Push(i)
				q.Pop()
			}
		})
	}
}

// BenchmarkGet measures predicate scan cost at varying queue depth.
func BenchmarkGet(b *testing.B) {
	depths := []struct {
		name  string
		depth int
	}{
		{"Depth16", 16},
		{"Depth256", 256},
		{"Depth4K", 4096},
	}

	for _, d := range depths {
		b.Run(d.name, func(b *testing.B) {
			q := New[int]()
			for i := 0; i < d.depth; i++ {
				q.TryPush(i)
			}
			target := d.depth - 1 // worst case: tail element

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				v, err := q.Get(func(x int) bool { return x == target })
				if err != nil {
					b.Fatal(err)
				}
				q.TryPush(v)
			}
		})
	}
}

// ===========================================================================
// Concurrent Benchmarks
// ===========================================================================

// concurrencyConfigs defines producer/consumer count combinations.
var concurrencyConfigs = []struct {
	name      string
	producers int
	consumers int
}{
	{"1P1C", 1, 1},
	{"2P2C", 2, 2},
	{"4P4C", 4, 4},
	{"8P8C", 8, 8},
}

// BenchmarkConcurrent_PushPop measures blocking throughput under contention.
func BenchmarkConcurrent_PushPop(b *testing.B) {
	const capacity = 1024
	const itemsPerProducer = 10000

	for _, cc := range concurrencyConfigs {
		b.Run(cc.name, func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				q := NewBounded[int](capacity)
				var wg sync.WaitGroup
				total := cc.producers * itemsPerProducer

				wg.Add(cc.producers)
				for p := 0; p < cc.producers; p++ {
					go func(id int) {
						defer wg.Done()
						for i := 0; i < itemsPerProducer; i++ {
							q.Push(id*itemsPerProducer + i)
						}
					}(p)
				}

				var consumed sync.WaitGroup
				consumed.Add(total)
				wg.Add(cc.consumers)
				for c := 0; c < cc.consumers; c++ {
					go func() {
						defer wg.Done()
						for {
							if _, err := q.Pop(); err != nil {
								return
							}
							consumed.Done()
						}
					}()
				}

				consumed.Wait()
				q.Close()
				wg.Wait()
			}
		})
	}
}
