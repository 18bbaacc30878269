package pipeline

import (
	"sync"

	"github.com/dudu/gazetrack/internal/frame"
)

// Runner drives a Pipeline from a push-based frame source with a
// keep-only-latest policy: a one-slot mailbox holds the pending frame, and
// a newly submitted frame replaces an unprocessed predecessor. Nothing
// queues unboundedly and a superseded frame is dropped, never cancelled
// mid-flight. The pipeline is touched only from the runner goroutine, which
// serializes all access to the gaze history.
type Runner struct {
	pipeline *Pipeline
	in       chan *frame.Gray
	out      chan Result
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewRunner starts a runner over the given pipeline.
func NewRunner(p *Pipeline) *Runner {
	r := &Runner{
		pipeline: p,
		in:       make(chan *frame.Gray, 1),
		out:      make(chan Result, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.loop()
	return r
}

// Submit offers a frame for processing. It never blocks; if an unprocessed
// frame is pending it is discarded in favor of the new one. Returns false
// when a pending frame was dropped.
func (r *Runner) Submit(f *frame.Gray) bool {
	fresh := true
	for {
		select {
		case r.in <- f:
			return fresh
		default:
		}
		select {
		case <-r.in:
			fresh = false
		default:
		}
	}
}

// Results returns the channel of per-frame results. Like the input side it
// holds only the latest unread result.
func (r *Runner) Results() <-chan Result {
	return r.out
}

// Stop shuts the runner down and waits for the in-flight frame to finish.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
	<-r.done
}

func (r *Runner) loop() {
	defer close(r.done)
	for {
		select {
		case <-r.quit:
			return
		case f := <-r.in:
			res := r.pipeline.Process(f)
			r.publish(res)
		}
	}
}

// publish replaces any unread result with the newest one.
func (r *Runner) publish(res Result) {
	for {
		select {
		case r.out <- res:
			return
		default:
		}
		select {
		case <-r.out:
		default:
		}
	}
}
