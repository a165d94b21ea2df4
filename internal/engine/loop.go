// Package engine drives strategy evaluation on a single owner goroutine.
// The frame graph is not internally synchronized for concurrent mutation:
// every evaluation pass and every async completion runs on the loop's
// goroutine, with Post marshaling background work back onto it.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spatialkit/anchorage/pkg/types"
)

// Evaluator is implemented by strategies that re-derive their pose from
// other frames each pass, chiefly the multi-parent strategy.
type Evaluator interface {
	Evaluate()
}

// defaultInterval is the tick period when none is configured.
const defaultInterval = 16 * time.Millisecond

// Loop owns a frame graph and evaluates it once per tick, writing every
// derived pose through the host transform sink. It is the transform-write
// boundary: nothing else pushes poses into the host scene graph.
type Loop struct {
	graph    *types.Graph
	sink     types.TransformSink
	interval time.Duration
	mailbox  chan func()
	logger   *zap.Logger
}

// NewLoop builds a loop over the graph. The sink may be nil when no host
// scene graph is attached; a nil logger disables logging; a non-positive
// interval selects the default tick period.
func NewLoop(graph *types.Graph, sink types.TransformSink, interval time.Duration, logger *zap.Logger) *Loop {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loop{
		graph:    graph,
		sink:     sink,
		interval: interval,
		mailbox:  make(chan func(), 64),
		logger:   logger,
	}
	for _, f := range graph.Frames() {
		l.watch(f)
	}
	return l
}

// watch logs the frame's state transitions.
func (l *Loop) watch(f *types.Frame) {
	id := f.ID()
	s := f.Strategy()
	s.Subscribe(func(state types.State) {
		l.logger.Debug("state change",
			zap.String("frame", id),
			zap.String("kind", s.Kind()),
			zap.String("state", string(state)),
		)
	})
}

// Post schedules fn to run on the owner goroutine. Native persistence
// completions and tracking-subsystem callbacks arriving on background
// goroutines must go through here before touching any frame or strategy.
// The mailbox is bounded and only drained by Run: callers must not Post
// unless Run is active, or Post blocks once the mailbox fills.
func (l *Loop) Post(fn func()) {
	if fn != nil {
		l.mailbox <- fn
	}
}

// Tick runs one evaluation pass: re-evaluate the composite strategies,
// refresh every frame's derived pose, and hand the poses to the host sink.
func (l *Loop) Tick() {
	for _, f := range l.graph.Frames() {
		if ev, ok := f.Strategy().(Evaluator); ok {
			ev.Evaluate()
		}
	}
	for _, f := range l.graph.Frames() {
		f.Refresh()
		if l.sink == nil {
			continue
		}
		if pose, ok := f.Pose(); ok {
			l.sink.SetPose(f.ID(), pose)
		}
	}
}

// Run ticks the loop until the context ends, draining posted work between
// ticks. Returns the context's error.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.mailbox:
			fn()
		case <-ticker.C:
			l.Tick()
		}
	}
}
