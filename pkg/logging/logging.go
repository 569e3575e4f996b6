package logging

import "github.com/go-logr/logr"

// Log keys used by the reactive runtime's structured logging calls.
const (
	Watch        = "watch"
	WatchID      = "watch_id"
	Generation   = "generation"
	FrameID      = "frame_id"
	FramePending = "frame_pending"
	FrameLimit   = "frame_limit"
	SyncBit      = "sync_bit"
	CycleWatches = "cycle_watches"
	DebugLevel   = 1 // logger.Info(foo) == logger.V(logging.DebugLevel).Info(foo)
)

// LogCycleReport logs a cycle-diagnostic report at error level under the
// CycleWatches key. An empty report logs nothing: the diagnostic package
// itself distinguishes "no cycle identified" (still worth a report) from
// "nothing was attached at all" (report == ""), and only the latter is
// silent here.
func LogCycleReport(logger logr.Logger, report, msg string) {
	if report == "" {
		return
	}
	logger.Error(nil, msg, CycleWatches, report)
}
