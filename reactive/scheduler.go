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

import (
	"github.com/go-logr/logr"

	"github.com/wetpaint-run/wetpaint/pkg/logging"
)

// SyncDrainer lets a Scheduler drain an external cross-thread bridge at
// the start of every Update, without this package importing the bridge's
// implementation (reactive/syncbridge imports reactive, not the reverse).
type SyncDrainer interface {
	DrainInto(t *Tracker)
}

// DiagnosticHook lets a Scheduler hand frame state to a cycle-diagnostic
// implementation (reactive/diagnostic), again without an import cycle.
type DiagnosticHook interface {
	// CaptureFrame records one drain iteration's triggered watches, once
	// the frame limit has counted down to five or fewer remaining
	// iterations, so the last handful of frames are available on
	// overflow.
	CaptureFrame(frame []TriggeredWatch)
	// Report produces the text to attach to a FrameLimitError. An empty
	// string is valid: absence of an identified cycle isn't conclusive,
	// and the diagnostic may say so instead of naming one.
	Report() string
}

// Scheduler is the non-generic drain-loop core: it deals only in *watch
// records and func(*Tracker) closures. Typed[O] is the ergonomic wrapper
// most callers reach for instead, which threads a user-owned value O
// through every watch closure.
type Scheduler struct {
	accum   *pendingFrameBox
	scratch *pendingFrameBox
	tracker *Tracker

	totalWatches int
	frameID      uint8
	frameLimit   *int // nil = no limit

	logger logr.Logger
	sync   SyncDrainer
	diag   DiagnosticHook

	// homeGoroutine is only read/written under the wetpaint_debug build
	// tag; see goroutine_check.go.
	homeGoroutine uint64
}

// NewScheduler constructs an empty Scheduler with no watches registered.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		accum:   &pendingFrameBox{},
		scratch: &pendingFrameBox{},
		logger:  logr.Discard(),
	}
	s.tracker = newTracker(s.accum, &s.totalWatches)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AttachSyncBridge registers d to be drained at the start of every
// Update, before any locally pending watch runs.
func (s *Scheduler) AttachSyncBridge(d SyncDrainer) {
	s.sync = d
}

// AttachDiagnostics registers d to capture the last few frames before an
// overflow and to produce the text of the resulting *FrameLimitError.
func (s *Scheduler) AttachDiagnostics(d DiagnosticHook) {
	s.diag = d
}

// HasFrameLimit reports whether a frame limit has been set, so callers
// such as reactive/diagnostic's Install can apply a default without
// clobbering one the caller already configured.
func (s *Scheduler) HasFrameLimit() bool {
	return s.frameLimit != nil
}

// TotalWatches returns the number of watches ever spawned against this
// Scheduler (top-level AddWatch/AddWatchProducingHolder calls plus any a
// produced Holder went on to register). It never decreases: a watch
// whose holder was dropped is still counted here, and is only ever
// removed lazily from whichever WatchSets still reference it.
func (s *Scheduler) TotalWatches() int {
	return s.totalWatches
}

// FrameID returns the scheduler's frame counter, which advances once per
// drained frame and wraps modulo 256: while Update is draining a frame it
// is that frame's id, and between Updates it is the id the next drained
// frame will carry. External collaborators (a pop-once-per-frame queue,
// for instance) use it to deduplicate against repeated reads within one
// frame.
func (s *Scheduler) FrameID() uint8 {
	return s.frameID
}

// SetFrameLimit bounds how many drain iterations a single Update call
// may take before it panics with a *FrameLimitError. nil disables the
// limit.
func (s *Scheduler) SetFrameLimit(limit *int) {
	s.frameLimit = limit
}

// Tracker returns the Scheduler's dependency tracker, for callers that
// need to observe or notify a cell outside of a running watch (for
// example, while constructing initial state before the first AddWatch).
func (s *Scheduler) Tracker() *Tracker {
	return s.tracker
}

// AddWatch registers fn as a watch, running it once immediately to
// establish its initial dependencies.
func (s *Scheduler) AddWatch(name string, fn func(*Tracker)) Handle {
	s.bindHomeGoroutine()
	w := &watch{name: name, fn: fn}
	s.totalWatches++
	s.tracker.enter(w, w.fn)
	return Handle{w: w}
}

// AddWatchProducingHolder is AddWatch's counterpart for watches that
// construct a Holder: once fn's initial run returns a non-nil Holder,
// that holder is recursively initialized against this same Scheduler,
// letting it register watches of its own.
func (s *Scheduler) AddWatchProducingHolder(name string, fn func(*Tracker) Holder) (Handle, Holder) {
	s.bindHomeGoroutine()
	var produced Holder
	w := &watch{name: name}
	w.fn = func(t *Tracker) {
		if h := fn(t); h != nil {
			produced = h
		}
	}
	s.totalWatches++
	s.tracker.enter(w, w.fn)
	if produced != nil {
		produced.init(s)
	}
	return Handle{w: w}, produced
}

// Update drains pending watches to fixpoint, or until the frame limit
// (if set) is exhausted, in which case it panics with a
// *FrameLimitError.
func (s *Scheduler) Update() {
	s.bindHomeGoroutine()
	if s.sync != nil {
		s.sync.DrainInto(s.tracker)
	}

	s.scratch.takeAndSwap(s.accum)
	if s.scratch.empty() {
		return
	}

	remaining := -1
	if s.frameLimit != nil {
		remaining = *s.frameLimit
	}

	for !s.scratch.empty() {
		if s.frameLimit != nil {
			if remaining <= 0 {
				s.overflow()
			}
			if remaining <= 5 && s.diag != nil {
				s.diag.CaptureFrame(append([]TriggeredWatch(nil), s.scratch.items...))
			}
		}

		s.logger.V(logging.DebugLevel).Info("draining frame", logging.FrameID, s.frameID, logging.FramePending, len(s.scratch.items))

		for _, tw := range s.scratch.items {
			if !tw.Ref.fresh() {
				continue
			}
			w := tw.Ref.w
			w.generation.Add(1)
			s.tracker.enter(w, w.fn)
		}

		s.scratch.takeAndSwap(s.accum)
		s.frameID++
		if remaining >= 0 {
			remaining--
		}
	}
}

func (s *Scheduler) overflow() {
	report := ""
	if s.diag != nil {
		report = s.diag.Report()
	}
	err := &FrameLimitError{Limit: *s.frameLimit, Report: report}
	if report == "" {
		s.logger.Error(err, "update exceeded frame limit", logging.FrameLimit, *s.frameLimit)
	} else {
		logging.LogCycleReport(s.logger, report, "update exceeded frame limit")
	}
	panic(err)
}

// Typed wraps a Scheduler with a user-owned value of type O, threading it
// through every watch closure — the generic counterpart of
// scheduler_new(owner).
type Typed[O any] struct {
	*Scheduler
	owner O
}

// NewTyped constructs a Typed scheduler around owner.
func NewTyped[O any](owner O, opts ...Option) *Typed[O] {
	return &Typed[O]{Scheduler: NewScheduler(opts...), owner: owner}
}

// Owner returns the value this scheduler was constructed with.
func (t *Typed[O]) Owner() O {
	return t.owner
}

// AddWatch registers fn as a watch, passing it this scheduler's owner
// alongside the Tracker.
func (t *Typed[O]) AddWatch(name string, fn func(O, *Tracker)) Handle {
	return t.Scheduler.AddWatch(name, func(tr *Tracker) {
		fn(t.owner, tr)
	})
}

// AddWatchProducingHolder is AddWatch's Holder-producing counterpart.
func (t *Typed[O]) AddWatchProducingHolder(name string, fn func(O, *Tracker) Holder) (Handle, Holder) {
	return t.Scheduler.AddWatchProducingHolder(name, func(tr *Tracker) Holder {
		return fn(t.owner, tr)
	})
}
