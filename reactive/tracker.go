/*

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reactive

import "weak"

// Tracker is handed to a running watch's closure so it can record which
// cells it reads (Cell.Observe calls back into it) and, transitively,
// notify other watches when a value changes (Cell.Set).
//
// A Tracker is a field of its owning Scheduler, not a process-global: two
// independent Schedulers each carry their own, so nesting or running
// multiple reactive graphs on the same goroutine never cross-contaminates
// dependency tracking.
type Tracker struct {
	// current is the watch presently executing, or nil if no watch is
	// running (a top-level mutation made outside any watch body).
	current *watch

	// pending is a weak handle to this Tracker's Scheduler's accumulator
	// box. It is captured once, when the Tracker is constructed, and
	// handed out to every WatchSet that observes a cell while this
	// Tracker's current watch is running. Because the accumulator box's
	// identity never changes across frame drains (see pendingFrameBox),
	// a WatchSet that captures this handle on its very first Observe call
	// stays correct for the lifetime of the program.
	pending weak.Pointer[pendingFrameBox]

	// totalWatches points at the owning Scheduler's total watch counter
	// (every watch ever spawned; see Scheduler.TotalWatches),
	// read by watchSet.add to size its compaction threshold.
	totalWatches *int
}

func newTracker(accum *pendingFrameBox, totalWatches *int) *Tracker {
	return &Tracker{pending: weak.Make(accum), totalWatches: totalWatches}
}

// track records the currently running watch as a subscriber of subs, and
// is a no-op if no watch is running or the owning Scheduler is gone.
func (t *Tracker) track(subs *watchSet) {
	ref, ok := t.currentWatch()
	if !ok {
		return
	}
	accum := t.pending.Value()
	if accum == nil {
		return
	}
	total := 0
	if t.totalWatches != nil {
		total = *t.totalWatches
	}
	subs.add(ref, accum, total)
}

// notifyFilter returns the drainInto filter appropriate to the current
// call site: excluding the running watch when one is running (the
// "notify from inside a watch" case), accepting everything otherwise
// (an external mutation made with a Tracker in hand but no watch active).
func (t *Tracker) notifyFilter() func(WatchRef) bool {
	if t.current == nil {
		return acceptAll
	}
	return excludeWatch(t.current)
}

// enter installs w as the current watch for the duration of fn, restoring
// whatever was current beforehand even if fn panics. Watch bodies nest
// when a watch's closure itself calls AddWatch or Update on the same
// Scheduler — restoring the previous watch on exit, rather than clearing
// to nil, keeps that case correct.
func (t *Tracker) enter(w *watch, fn func(*Tracker)) {
	prev := t.current
	t.current = w
	defer func() { t.current = prev }()
	fn(t)
}

// currentWatch returns the WatchRef for whichever watch is running, and
// ok=false if nothing is (observe/notify calls made outside any watch
// body are legal — they simply have nothing to record or suppress).
func (t *Tracker) currentWatch() (ref WatchRef, ok bool) {
	if t.current == nil {
		return WatchRef{}, false
	}
	return newWatchRef(t.current), true
}
