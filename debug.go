package sitecam

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and activity metrics.
// Only populated when debug mode is on.
type debugStats struct {
	tickTime time.Duration
	tasks    int
	actions  int
}

// SetDebugMode enables per-frame stats and state transition logging on
// stderr.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// debugLog prints frame stats to stderr. Idle frames are skipped.
func (c *Controller) debugLog(stats debugStats) {
	if !c.debug || (stats.tasks == 0 && stats.actions == 0) {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[sitecam] tick: %v | tasks: %d | actions: %d | radius: %.3f yaw: %.4f pitch: %.4f\n",
		stats.tickTime, stats.tasks, stats.actions, c.state.Radius, c.state.Yaw, c.state.Pitch)
}

// debugf prints one prefixed line to stderr in debug mode.
func (c *Controller) debugf(format string, args ...any) {
	if !c.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[sitecam] "+format+"\n", args...)
}
