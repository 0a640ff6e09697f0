package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nmehta6/paisatrail/internal/model"
)

// Config holds tuning options for the batch/stream processor.
type Config struct {
	ChunkSize    int
	Concurrency  int
	Timeout      time.Duration
	CacheSize    int
	CacheEnabled bool
}

// DefaultConfig returns the default processor configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    50,
		Concurrency:  4,
		Timeout:      2 * time.Second,
		CacheSize:    1000,
		CacheEnabled: true,
	}
}

// Processor wraps an orchestrator for high-volume processing: bounded
// chunked concurrency, per-message timeouts and a dedup cache.
type Processor struct {
	orchestrator Orchestrator
	cache        *resultCache
	flight       singleflight.Group
	cfg          Config
}

// NewProcessor creates a processor with the given configuration.
func NewProcessor(orchestrator Orchestrator, cfg Config) *Processor {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	p := &Processor{orchestrator: orchestrator, cfg: cfg}
	if cfg.CacheEnabled {
		p.cache = newResultCache(cfg.CacheSize)
	}
	return p
}

// ProcessBatch runs all messages through the pipeline and returns
// results in input order. Chunks are processed sequentially; messages
// within a chunk run concurrently, and each chunk's results are
// reassembled by index before the next chunk starts, so output order
// always matches input order.
func (p *Processor) ProcessBatch(ctx context.Context, messages []model.RawMessage) []model.ExtractionResult {
	results := make([]model.ExtractionResult, len(messages))
	if len(messages) == 0 {
		return results
	}

	slog.Info("processing batch",
		"count", len(messages),
		"chunk_size", p.cfg.ChunkSize,
		"concurrency", p.cfg.Concurrency)

	for start := 0; start < len(messages); start += p.cfg.ChunkSize {
		end := start + p.cfg.ChunkSize
		if end > len(messages) {
			end = len(messages)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.cfg.Concurrency)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				results[i] = p.processOne(gctx, messages[i])
				return nil
			})
		}
		// Workers never return errors; failures are values.
		_ = g.Wait()
	}

	return results
}

// ProcessStream consumes messages from a channel and emits results as
// they complete. Result order is completion order, not input order. The
// output channel closes once the input drains or the context ends; the
// processor keeps no replay buffer.
func (p *Processor) ProcessStream(ctx context.Context, in <-chan model.RawMessage) <-chan model.ExtractionResult {
	out := make(chan model.ExtractionResult, p.cfg.Concurrency)

	g := new(errgroup.Group)
	for i := 0; i < p.cfg.Concurrency; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case msg, ok := <-in:
					if !ok {
						return nil
					}
					select {
					case out <- p.processOne(ctx, msg):
					case <-ctx.Done():
						return nil
					}
				}
			}
		})
	}

	go func() {
		_ = g.Wait()
		close(out)
	}()

	return out
}

// processOne applies the dedup cache and the per-message timeout around
// a single orchestrator call. Concurrent duplicates within a chunk are
// collapsed through singleflight so identical messages are extracted
// exactly once.
func (p *Processor) processOne(ctx context.Context, msg model.RawMessage) model.ExtractionResult {
	if p.cache == nil {
		return p.runOne(ctx, msg)
	}

	key := msg.Hash()
	if res, ok := p.cache.get(key); ok {
		slog.Debug("dedup cache hit", "sender", msg.Sender)
		return res
	}

	v, _, _ := p.flight.Do(key, func() (any, error) {
		res := p.runOne(ctx, msg)
		// Timeouts reflect load, not message content, so they are not
		// worth remembering.
		if res.Reason != model.FailureTimeout {
			p.cache.put(key, res)
		}
		return res, nil
	})
	return v.(model.ExtractionResult)
}

// runOne wraps a single orchestrator call with the per-message timeout.
// A timed-out message is reported as a distinct failure, never silently
// dropped, and does not disturb its siblings. A parent-context
// cancellation (shutdown) carries its own detail so callers can tell it
// apart from overload.
func (p *Processor) runOne(ctx context.Context, msg model.RawMessage) model.ExtractionResult {
	start := time.Now()
	mctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	done := make(chan model.ExtractionResult, 1)
	go func() {
		done <- p.orchestrator.Process(mctx, msg)
	}()

	select {
	case res := <-done:
		return res
	case <-mctx.Done():
		detail := "processing timeout"
		if !errors.Is(mctx.Err(), context.DeadlineExceeded) {
			detail = "processing canceled"
		}
		return model.Failuref(model.FailureTimeout, detail, 0.0,
			model.Diagnostics{Elapsed: time.Since(start)})
	}
}

// CacheSize reports the number of cached results, for observability.
func (p *Processor) CacheSize() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.size()
}
