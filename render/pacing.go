// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"time"
)

// Pacing limits how often the driver presents.
type Pacing struct {
	interval time.Duration
}

// PacingUncapped presents as fast as the host schedules frames.
var PacingUncapped = Pacing{}

// PacingLimited presents at most once per interval.
func PacingLimited(interval time.Duration) Pacing {
	return Pacing{interval: max(interval, 0)}
}

// PacingFPS presents at most fps frames per second. Zero or negative
// means uncapped.
func PacingFPS(fps float64) Pacing {
	if fps <= 0 {
		return PacingUncapped
	}
	return PacingLimited(time.Duration(float64(time.Second) / fps))
}

// Interval returns the minimum time between presents.
func (p Pacing) Interval() time.Duration { return p.interval }

// Uncapped reports whether p never waits.
func (p Pacing) Uncapped() bool { return p.interval == 0 }

// delay returns how long to wait after a present at last, given now.
func (p Pacing) delay(last, now time.Time) time.Duration {
	if p.interval == 0 || last.IsZero() {
		return 0
	}
	return max(last.Add(p.interval).Sub(now), 0)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
