package events

import (
	"context"
	"errors"
	"time"

	"talentbridge/internal/metrics"
	"talentbridge/internal/worker"

	"go.uber.org/zap"
)

// Sink receives events. Realtime sinks must return quickly; outbound sinks
// run on the dispatcher's worker pool.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, e Event) error
}

type Dispatcher struct {
	realtime []Sink
	outbound []Sink
	pool     *worker.Pool
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *metrics.Registry
}

type DispatcherOptions struct {
	Realtime []Sink
	Outbound []Sink
	Pool     *worker.Pool
	// Timeout bounds each outbound delivery.
	Timeout time.Duration
	Logger  *zap.Logger
	Metrics *metrics.Registry
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Dispatcher{
		realtime: opts.Realtime,
		outbound: opts.Outbound,
		pool:     opts.Pool,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
}

func (d *Dispatcher) Publish(ctx context.Context, e Event) {
	if d == nil {
		return
	}
	for _, s := range d.realtime {
		if err := s.Deliver(ctx, e); err != nil {
			d.logger.Debug("[Events] realtime delivery failed",
				zap.String("sink", s.Name()),
				zap.String("type", string(e.Type)),
				zap.Error(err),
			)
		}
	}

	if d.pool == nil {
		return
	}
	for _, s := range d.outbound {
		sink := s
		err := d.pool.TrySubmit(func(workerCtx context.Context) error {
			c, cancel := context.WithTimeout(workerCtx, d.timeout)
			defer cancel()
			if err := sink.Deliver(c, e); err != nil {
				return &DeliveryError{Sink: sink.Name(), Event: e, Err: err}
			}
			return nil
		})
		if err != nil {
			d.metrics.NotificationResult(sink.Name(), "dropped")
			d.logger.Warn("[Events] outbound delivery dropped",
				zap.String("sink", sink.Name()),
				zap.String("type", string(e.Type)),
				zap.Error(err),
			)
		}
	}
}

// HandleError is meant as the worker pool's error callback.
func (d *Dispatcher) HandleError(err error) {
	var de *DeliveryError
	if errors.As(err, &de) {
		d.logger.Warn("[Events] outbound delivery failed",
			zap.String("sink", de.Sink),
			zap.String("type", string(de.Event.Type)),
			zap.String("event_id", de.Event.ID.String()),
			zap.Error(de.Err),
		)
		return
	}
	d.logger.Warn("[Events] worker error", zap.Error(err))
}

type DeliveryError struct {
	Sink  string
	Event Event
	Err   error
}

func (e *DeliveryError) Error() string {
	return e.Sink + ": " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
