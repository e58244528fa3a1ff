package main

import (
	"testing"
	"time"
)

func TestSchedulerStartsPaused(t *testing.T) {
	s := NewFrameScheduler()
	if s.Playing() {
		t.Error("scheduler must start paused")
	}
	if s.Frame() != 0 {
		t.Errorf("initial frame should be 0, got %d", s.Frame())
	}
}

func TestSchedulerToggle(t *testing.T) {
	s := NewFrameScheduler()
	now := time.Now()
	if !s.Toggle(now) {
		t.Error("first toggle should enter playback")
	}
	if s.Toggle(now) {
		t.Error("second toggle should pause")
	}
}

func TestSchedulerStep(t *testing.T) {
	s := NewFrameScheduler()

	if !s.Step(1) {
		t.Error("step while paused should trigger a composite pass")
	}
	if s.Frame() != 1 {
		t.Errorf("frame after forward step: got %d, want 1", s.Frame())
	}
	s.Step(-1)
	s.Step(-1)
	if s.Frame() != -1 {
		t.Errorf("frame after two back steps: got %d, want -1", s.Frame())
	}
	if s.DisplayFrame() != -1 {
		t.Errorf("display should follow manual steps, got %d", s.DisplayFrame())
	}

	s.Toggle(time.Now())
	if s.Step(1) {
		t.Error("step while playing should be ignored")
	}
	if s.Frame() != -1 {
		t.Errorf("frame changed by ignored step: %d", s.Frame())
	}
}

func TestSchedulerTickHonorsInterval(t *testing.T) {
	s := NewFrameScheduler()
	base := time.Now()
	s.Toggle(base)
	interval := 50 * time.Millisecond

	if s.Tick(base.Add(10*time.Millisecond), interval) {
		t.Error("tick before the interval elapsed should not advance")
	}
	if !s.Tick(base.Add(60*time.Millisecond), interval) {
		t.Error("tick after the interval elapsed should advance")
	}
	if s.Frame() != 1 {
		t.Errorf("frame after one accepted tick: got %d, want 1", s.Frame())
	}
	// The baseline resets on an accepted frame.
	if s.Tick(base.Add(70*time.Millisecond), interval) {
		t.Error("tick 10ms after an accepted frame should not advance")
	}
}

func TestSchedulerTickWhilePaused(t *testing.T) {
	s := NewFrameScheduler()
	if s.Tick(time.Now(), time.Millisecond) {
		t.Error("ticks must be ignored while paused")
	}
}

func TestSchedulerDisplayEveryTenFrames(t *testing.T) {
	s := NewFrameScheduler()
	now := time.Now()
	s.Toggle(now)
	interval := 10 * time.Millisecond

	for i := 1; i <= 9; i++ {
		now = now.Add(interval)
		if !s.Tick(now, interval) {
			t.Fatalf("tick %d did not advance", i)
		}
	}
	if s.DisplayFrame() != 0 {
		t.Errorf("display should hold at 0 through frame 9, got %d", s.DisplayFrame())
	}

	now = now.Add(interval)
	s.Tick(now, interval)
	if s.DisplayFrame() != 10 {
		t.Errorf("display should refresh at frame 10, got %d", s.DisplayFrame())
	}
}
