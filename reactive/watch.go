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
	"fmt"
	"sync/atomic"
)

// watch is a registered closure plus a monotonically increasing generation
// counter. Identity is the stable address of this record: two WatchRefs
// refer to the same watch iff their *watch pointers are equal.
//
// A watch is owned by whichever Scheduler spawned it (via AddWatch) or,
// for watches attached through a Holder, by the holder's content — the
// scheduler only ever sees it through a WatchRef.
type watch struct {
	name       string
	generation atomic.Uint64
	fn         func(*Tracker)
}

// Name returns the watch's debug name, falling back to a description of
// where it isn't named, for diagnostic output.
func (w *watch) Name() string {
	if w.name != "" {
		return w.name
	}
	return "<anonymous watch>"
}

// WatchRef is a (watch, captured-generation) pair. A WatchRef is fresh if
// its captured generation still matches the watch's current generation; a
// stale WatchRef is silently skipped wherever it's encountered.
type WatchRef struct {
	w          *watch
	generation uint64
}

func newWatchRef(w *watch) WatchRef {
	return WatchRef{w: w, generation: w.generation.Load()}
}

// fresh reports whether this ref's captured generation still matches the
// watch's live generation.
func (r WatchRef) fresh() bool {
	return r.w != nil && r.generation == r.w.generation.Load()
}

// ID returns a string uniquely identifying the watch this ref points at
// (its heap address), stable across generations. Exists for consumers
// outside this package — notably reactive/diagnostic — that need a
// comparable vertex key but cannot see the unexported *watch type.
func (r WatchRef) ID() string {
	return fmt.Sprintf("%p", r.w)
}

// Name returns the ref's watch's debug name.
func (r WatchRef) Name() string {
	if r.w == nil {
		return "<nil watch>"
	}
	return r.w.Name()
}

// sameWatch reports whether two refs point at the same watch record,
// regardless of generation — used to drop self-references on notify.
func (r WatchRef) sameWatch(other WatchRef) bool {
	return r.w == other.w
}

// bump advances the watch's generation, invalidating every WatchRef to it
// captured before this call (including r itself).
func (r WatchRef) bump() WatchRef {
	gen := r.w.generation.Add(1)
	return WatchRef{w: r.w, generation: gen}
}

// Handle is returned by AddWatch / AddWatchProducingHolder. It exists so
// callers have something to hold and inspect (its debug Name), but holding
// or dropping a Handle has no effect on the watch's lifetime — per spec,
// top-level watches live as long as their owning Scheduler; watches
// attached to a Holder live only as long as the holder's content does.
type Handle struct {
	w *watch
}

// Name returns the watch's debug name.
func (h Handle) Name() string {
	if h.w == nil {
		return "<nil watch>"
	}
	return h.w.Name()
}
