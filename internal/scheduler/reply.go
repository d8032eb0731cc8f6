package scheduler

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// DefaultReplyDelayMin is the shortest simulated typing delay
	DefaultReplyDelayMin = 900 * time.Millisecond
	// DefaultReplyDelayMax is the longest simulated typing delay
	DefaultReplyDelayMax = 2 * time.Second
)

// ErrReplyCancelled is returned by Reply.Wait when the reply was
// superseded or cancelled before its delay elapsed.
var ErrReplyCancelled = errors.New("reply cancelled")

// ReplyScheduler holds at most one pending chat reply per visitor.
// Scheduling a new reply cancels the previous one.
type ReplyScheduler struct {
	min, max time.Duration

	mu      sync.Mutex
	pending map[string]*Reply // visitorID -> Reply
	closed  bool
}

// NewReplyScheduler creates a scheduler with delays jittered in [min, max].
func NewReplyScheduler(min, max time.Duration) *ReplyScheduler {
	if min <= 0 {
		min = DefaultReplyDelayMin
	}
	if max < min {
		max = min
	}
	return &ReplyScheduler{
		min:     min,
		max:     max,
		pending: make(map[string]*Reply),
	}
}

// Delay returns a uniformly jittered typing delay.
func (rs *ReplyScheduler) Delay() time.Duration {
	if rs.max == rs.min {
		return rs.min
	}
	return rs.min + rand.N(rs.max-rs.min+1)
}

// Schedule starts a one-shot timer for visitorID, cancelling the pending
// reply of that visitor if any. After Close the returned reply is already
// cancelled.
func (rs *ReplyScheduler) Schedule(visitorID string, delay time.Duration) *Reply {
	r := &Reply{
		done:      make(chan struct{}),
		cancelled: make(chan struct{}),
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.closed {
		r.finish(r.cancelled)
		return r
	}

	if prev, ok := rs.pending[visitorID]; ok {
		prev.Cancel()
	}
	rs.pending[visitorID] = r

	// release takes rs.mu, so the callback cannot run ahead of this insert
	r.timer = time.AfterFunc(delay, func() {
		if r.finish(r.done) {
			rs.release(visitorID, r)
		}
	})

	return r
}

// Cancel drops the pending reply of a visitor. It reports whether one
// was pending.
func (rs *ReplyScheduler) Cancel(visitorID string) bool {
	rs.mu.Lock()
	r, ok := rs.pending[visitorID]
	if ok {
		delete(rs.pending, visitorID)
	}
	rs.mu.Unlock()

	return ok && r.Cancel()
}

// CancelAll drops every pending reply, as on shutdown.
func (rs *ReplyScheduler) CancelAll() int {
	rs.mu.Lock()
	pending := rs.pending
	rs.pending = make(map[string]*Reply)
	rs.mu.Unlock()

	n := 0
	for _, r := range pending {
		if r.Cancel() {
			n++
		}
	}
	return n
}

// Close cancels every pending reply and makes later Schedule calls return
// cancelled replies. It returns the number of replies it cancelled.
func (rs *ReplyScheduler) Close() int {
	rs.mu.Lock()
	rs.closed = true
	rs.mu.Unlock()

	return rs.CancelAll()
}

// Pending returns the number of replies waiting on their timer.
func (rs *ReplyScheduler) Pending() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return len(rs.pending)
}

func (rs *ReplyScheduler) release(visitorID string, r *Reply) {
	rs.mu.Lock()
	if rs.pending[visitorID] == r {
		delete(rs.pending, visitorID)
	}
	rs.mu.Unlock()
}

// Reply is a handle on one scheduled reply.
type Reply struct {
	timer     *time.Timer
	once      sync.Once
	done      chan struct{}
	cancelled chan struct{}
}

// finish closes ch if the reply has not settled yet.
func (r *Reply) finish(ch chan struct{}) bool {
	settled := false
	r.once.Do(func() {
		close(ch)
		settled = true
	})
	return settled
}

// Cancel stops the reply. It reports false if the reply already fired.
func (r *Reply) Cancel() bool {
	if !r.finish(r.cancelled) {
		return false
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	return true
}

// Wait blocks until the delay elapses (nil), the reply is cancelled
// (ErrReplyCancelled) or ctx is done (ctx.Err(), and the reply is
// cancelled).
func (r *Reply) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-r.cancelled:
		return ErrReplyCancelled
	case <-ctx.Done():
		if r.Cancel() {
			return ctx.Err()
		}
		select {
		case <-r.done:
			return nil
		default:
			return ErrReplyCancelled
		}
	}
}
