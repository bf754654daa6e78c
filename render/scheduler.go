// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "sync/atomic"

// FrameScheduler asks the host to run another tick soon. The driver calls
// RequestNextFrame once at the end of every tick, including skipped frames.
type FrameScheduler interface {
	RequestNextFrame()
}

// IdleHost delivers out-of-band wakeups: the host calls back into the loop
// once it is idle, passing back the token.
type IdleHost interface {
	ScheduleIdle(token uint64)
}

// InvalidateHost redraws when the current frame is marked dirty.
// gpucontext.WindowProvider satisfies it.
type InvalidateHost interface {
	RequestRedraw()
}

// IdleScheduler requests frames through idle callbacks. Each request
// carries a fresh token so the host can drop stale wakeups.
type IdleScheduler struct {
	host  IdleHost
	token atomic.Uint64
}

// NewIdleScheduler creates a scheduler over host.
func NewIdleScheduler(host IdleHost) *IdleScheduler {
	return &IdleScheduler{host: host}
}

// RequestNextFrame implements FrameScheduler.
func (s *IdleScheduler) RequestNextFrame() {
	s.host.ScheduleIdle(s.token.Add(1))
}

// LastToken returns the token of the most recent request.
func (s *IdleScheduler) LastToken() uint64 {
	return s.token.Load()
}

// InvalidateScheduler requests frames by invalidating the host window.
type InvalidateScheduler struct {
	host InvalidateHost
}

// NewInvalidateScheduler creates a scheduler over host.
func NewInvalidateScheduler(host InvalidateHost) *InvalidateScheduler {
	return &InvalidateScheduler{host: host}
}

// RequestNextFrame implements FrameScheduler.
func (s *InvalidateScheduler) RequestNextFrame() {
	s.host.RequestRedraw()
}

// SchedulerFunc adapts a function to FrameScheduler.
type SchedulerFunc func()

// RequestNextFrame implements FrameScheduler.
func (f SchedulerFunc) RequestNextFrame() { f() }

// Capabilities describes what the host windowing system offers.
type Capabilities struct {
	// IdleCallbacks is set when the host delivers idle wakeups.
	IdleCallbacks bool
}

// SelectScheduler picks the strategy the host supports. Idle callbacks are
// preferred when advertised; otherwise the host must support invalidation.
func SelectScheduler(host any, caps Capabilities) (FrameScheduler, error) {
	if ih, ok := host.(IdleHost); ok && caps.IdleCallbacks {
		return NewIdleScheduler(ih), nil
	}
	if inv, ok := host.(InvalidateHost); ok {
		return NewInvalidateScheduler(inv), nil
	}
	return nil, ErrNoScheduler
}
