package analytics

import (
	"context"
	"time"

	"github.com/agentprompts/backend/pkg/metrics"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Event is a best-effort product analytics record. Delivery is at most once:
// a full buffer drops the event and bumps a counter, and the request path
// never blocks or fails on dispatch.
type Event struct {
	Name       string         `json:"name"`
	UserID     string         `json:"user_id,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	At         time.Time      `json:"at"`
}

type Dispatcher struct {
	ch  chan Event
	log *zap.SugaredLogger
}

const bufferSize = 256

func New(lc fx.Lifecycle, log *zap.SugaredLogger) *Dispatcher {
	d := &Dispatcher{ch: make(chan Event, bufferSize), log: log}

	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go d.drain(done)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(d.ch)
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
	return d
}

// Track enqueues an event without blocking. Failure to enqueue is swallowed.
func (d *Dispatcher) Track(name, userID string, props map[string]any) {
	ev := Event{Name: name, UserID: userID, Properties: props, At: time.Now()}
	select {
	case d.ch <- ev:
	default:
		metrics.AnalyticsDropped.Inc()
	}
}

// drain consumes the buffer. The sink is the structured log stream; an
// external pipeline picks events up from there.
func (d *Dispatcher) drain(done chan<- struct{}) {
	defer close(done)
	for ev := range d.ch {
		d.log.Infow("analytics_event",
			"name", ev.Name,
			"user_id", ev.UserID,
			"properties", ev.Properties,
			"at", ev.At,
		)
	}
}

var Module = fx.Options(
	fx.Provide(New),
)
