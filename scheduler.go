package main

import "time"

// FrameScheduler paces composite passes. It starts paused; while playing
// each host tick advances at most one frame once the configured interval
// has elapsed. Step is only meaningful while paused and moves the frame
// counter by exactly one in either direction.
type FrameScheduler struct {
	playing bool
	frame   int
	display int // frame counter shown in the UI, refreshed every 10 frames
	last    time.Time
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (s *FrameScheduler) Playing() bool {
	return s.playing
}

func (s *FrameScheduler) Frame() int {
	return s.frame
}

// DisplayFrame is the bounded-frequency counter for the status line.
func (s *FrameScheduler) DisplayFrame() int {
	return s.display
}

// Toggle flips between Playing and Paused and reports the new state.
// Entering playback resets the elapsed-time baseline so the first frame
// waits a full interval instead of firing immediately.
func (s *FrameScheduler) Toggle(now time.Time) bool {
	s.playing = !s.playing
	if s.playing {
		s.last = now
	}
	return s.playing
}

// Step advances or retreats the frame counter by one while paused and
// reports whether a composite pass should run. Steps while playing are
// ignored.
func (s *FrameScheduler) Step(direction int) bool {
	if s.playing {
		return false
	}
	if direction >= 0 {
		s.frame++
	} else {
		s.frame--
	}
	s.display = s.frame
	return true
}

// Tick is the per-tick callback body: if the active interval has elapsed
// since the last accepted frame, advance one frame, reset the baseline,
// and report that a composite pass is due.
func (s *FrameScheduler) Tick(now time.Time, interval time.Duration) bool {
	if !s.playing {
		return false
	}
	if now.Sub(s.last) < interval {
		return false
	}
	s.frame++
	s.last = now
	if s.frame%10 == 0 {
		s.display = s.frame
	}
	return true
}
