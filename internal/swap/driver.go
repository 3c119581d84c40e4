package swap

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"avnu-swapbot/internal/dex/avnu"
	"avnu-swapbot/internal/metrics"
)

type Quoter interface {
	Fetch(ctx context.Context) (string, error)
}

type Builder interface {
	Build(ctx context.Context, quoteID string) ([]avnu.Call, error)
}

// Executor submits built calls and returns once the transaction is confirmed.
type Executor interface {
	Execute(ctx context.Context, calls []avnu.Call) (string, error)
}

// State is the driver's position within a cycle.
type State int32

const (
	Idle State = iota
	Quoting
	Building
	Executing
	Success
	Failed
)

func (s State) String() string {
	return [...]string{"idle", "quoting", "building", "executing", "success", "failed"}[s]
}

// Tally is a snapshot of the cycle counters.
type Tally struct {
	Success uint64
	Failed  uint64
}

// Driver repeats quote, build, execute forever. Counters live only as long as the driver.
type Driver struct {
	quoter   Quoter
	builder  Builder
	executor Executor
	log      zerolog.Logger
	cooldown time.Duration
	sleep    func(ctx context.Context, d time.Duration) error

	state   atomic.Int32
	success atomic.Uint64
	failed  atomic.Uint64
}

type Option func(*Driver)

// WithCooldown overrides the pause after a failed cycle.
func WithCooldown(d time.Duration) Option {
	return func(dr *Driver) {
		if d >= 0 {
			dr.cooldown = d
		}
	}
}

// WithSleep replaces the cooldown wait, for tests.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(dr *Driver) {
		if fn != nil {
			dr.sleep = fn
		}
	}
}

func NewDriver(q Quoter, b Builder, e Executor, log zerolog.Logger, opts ...Option) *Driver {
	d := &Driver{
		quoter:   q,
		builder:  b,
		executor: e,
		log:      log,
		cooldown: DefaultCooldown,
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) State() State { return State(d.state.Load()) }

func (d *Driver) Tally() Tally {
	return Tally{Success: d.success.Load(), Failed: d.failed.Load()}
}

// Run cycles until ctx is cancelled. Failed cycles are followed by the cooldown; successful ones are not.
func (d *Driver) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		if err := d.Step(ctx); err != nil {
			if d.sleep(ctx, d.cooldown) != nil {
				break
			}
		}
		d.setState(Idle)
	}
	d.setState(Idle)
	return ctx.Err()
}

// Step runs exactly one cycle, updates the counters and reports them. It never sleeps; a failed
// cycle leaves the driver in Failed until the caller moves on.
func (d *Driver) Step(ctx context.Context) error {
	log := d.log.With().Str("cycle", uuid.NewString()).Logger()
	log.Info().Msg("cycle start")

	tx, err := d.cycle(ctx, log)
	if err != nil {
		d.setState(Failed)

		var se *StageError
		if errors.As(err, &se) && se.Submitted() {
			// The hash may still land; the next cycle starts from a fresh quote rather than rechecking it.
			log.Warn().Str("tx", se.TxHash).Msg("transaction submitted but outcome unknown")
		}
		if ctx.Err() != nil {
			log.Warn().Err(err).Msg("cycle interrupted")
			return err
		}

		kind := KindOf(err).String()
		n := d.failed.Add(1)
		metrics.CyclesTotal.WithLabelValues("failed").Inc()
		metrics.StageFailures.WithLabelValues(kind).Inc()
		log.Error().Err(err).Str("kind", kind).Uint64("success", d.success.Load()).Uint64("failed", n).Msg("cycle failed")
		return err
	}

	d.setState(Success)
	n := d.success.Add(1)
	metrics.CyclesTotal.WithLabelValues("success").Inc()
	log.Info().Str("tx", tx).Uint64("success", n).Uint64("failed", d.failed.Load()).Msg("cycle succeeded")
	d.setState(Idle)
	return nil
}

func (d *Driver) cycle(ctx context.Context, log zerolog.Logger) (string, error) {
	d.setState(Quoting)
	quoteID, err := timed("quote", func() (string, error) { return d.quoter.Fetch(ctx) })
	if err != nil {
		return "", asStage(QuoteUnavailable, err)
	}

	d.setState(Building)
	calls, err := timed("build", func() ([]avnu.Call, error) { return d.builder.Build(ctx, quoteID) })
	if err != nil {
		return "", asStage(BuildFailed, err)
	}

	d.setState(Executing)
	tx, err := timed("execute", func() (string, error) { return d.executor.Execute(ctx, calls) })
	if err != nil {
		return "", asStage(ExecutionFailed, err)
	}
	log.Debug().Str("quote", quoteID).Int("calls", len(calls)).Msg("cycle stages complete")
	return tx, nil
}

func (d *Driver) setState(s State) { d.state.Store(int32(s)) }

func timed[T any](stage string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	return v, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
