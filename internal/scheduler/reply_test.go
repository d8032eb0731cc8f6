package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestReplyScheduler_Delay(t *testing.T) {
	rs := NewReplyScheduler(900*time.Millisecond, 2*time.Second)
	for i := 0; i < 200; i++ {
		d := rs.Delay()
		if d < 900*time.Millisecond || d > 2*time.Second {
			t.Fatalf("Delay() = %v, out of [900ms, 2s]", d)
		}
	}

	fixed := NewReplyScheduler(time.Second, time.Second)
	if d := fixed.Delay(); d != time.Second {
		t.Errorf("Delay() = %v, want 1s", d)
	}
}

func TestReplyScheduler_Defaults(t *testing.T) {
	rs := NewReplyScheduler(0, 0)
	if rs.min != DefaultReplyDelayMin || rs.max != DefaultReplyDelayMin {
		t.Errorf("min=%v max=%v", rs.min, rs.max)
	}
}

func TestReply_Fires(t *testing.T) {
	rs := NewReplyScheduler(time.Millisecond, time.Millisecond)

	r := rs.Schedule("v1", 10*time.Millisecond)
	if err := r.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for rs.Pending() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if rs.Pending() != 0 {
		t.Errorf("Pending() = %d after firing, want 0", rs.Pending())
	}
	if r.Cancel() {
		t.Error("Cancel() after firing should report false")
	}
}

func TestReply_SupersededByNewSchedule(t *testing.T) {
	rs := NewReplyScheduler(time.Millisecond, time.Millisecond)

	first := rs.Schedule("v1", time.Hour)
	second := rs.Schedule("v1", 10*time.Millisecond)

	if err := first.Wait(context.Background()); !errors.Is(err, ErrReplyCancelled) {
		t.Errorf("first.Wait() error = %v, want ErrReplyCancelled", err)
	}
	if err := second.Wait(context.Background()); err != nil {
		t.Errorf("second.Wait() error = %v", err)
	}
}

func TestReply_OtherVisitorsIndependent(t *testing.T) {
	rs := NewReplyScheduler(time.Millisecond, time.Millisecond)

	a := rs.Schedule("a", 10*time.Millisecond)
	rs.Schedule("b", time.Hour)
	rs.Cancel("b")

	if err := a.Wait(context.Background()); err != nil {
		t.Errorf("a.Wait() error = %v", err)
	}
}

func TestReplyScheduler_Cancel(t *testing.T) {
	rs := NewReplyScheduler(time.Millisecond, time.Millisecond)

	r := rs.Schedule("v1", time.Hour)
	if rs.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", rs.Pending())
	}

	if !rs.Cancel("v1") {
		t.Error("Cancel() = false, want true")
	}
	if rs.Cancel("v1") {
		t.Error("second Cancel() = true, want false")
	}
	if err := r.Wait(context.Background()); !errors.Is(err, ErrReplyCancelled) {
		t.Errorf("Wait() error = %v, want ErrReplyCancelled", err)
	}
}

func TestReply_ContextCancelled(t *testing.T) {
	rs := NewReplyScheduler(time.Millisecond, time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	r := rs.Schedule("v1", time.Hour)
	if err := r.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want deadline exceeded", err)
	}
	if r.Cancel() {
		t.Error("reply should already be cancelled")
	}
}

func TestReplyScheduler_CancelAll(t *testing.T) {
	rs := NewReplyScheduler(time.Millisecond, time.Millisecond)
	a := rs.Schedule("v1", time.Hour)
	b := rs.Schedule("v2", time.Hour)

	if n := rs.CancelAll(); n != 2 {
		t.Errorf("CancelAll() = %d, want 2", n)
	}
	if rs.Pending() != 0 {
		t.Errorf("Pending() = %d after CancelAll", rs.Pending())
	}
	for _, r := range []*Reply{a, b} {
		if err := r.Wait(context.Background()); !errors.Is(err, ErrReplyCancelled) {
			t.Errorf("Wait() error = %v, want ErrReplyCancelled", err)
		}
	}
}

func TestReplyScheduler_CloseRefusesNewReplies(t *testing.T) {
	rs := NewReplyScheduler(time.Millisecond, time.Millisecond)
	pending := rs.Schedule("v1", time.Hour)

	if n := rs.Close(); n != 1 {
		t.Errorf("Close() = %d, want 1", n)
	}

	late := rs.Schedule("v2", time.Hour)
	if rs.Pending() != 0 {
		t.Errorf("Pending() = %d after Close", rs.Pending())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for name, r := range map[string]*Reply{"pending": pending, "late": late} {
		if err := r.Wait(ctx); !errors.Is(err, ErrReplyCancelled) {
			t.Errorf("%s Wait() error = %v, want ErrReplyCancelled", name, err)
		}
	}
}
