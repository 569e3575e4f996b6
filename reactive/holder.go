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

// Holder is the scheduler-facing half of a user-owned watcher: returning
// one from an AddWatchProducingHolder closure tells the Scheduler to
// recursively register whatever watches the holder's content owns.
type Holder interface {
	// init runs once, immediately after this holder is produced, so it
	// can spawn its own watches against s. Unexported: the only
	// supported way to satisfy Holder is via ContentHolder.
	init(s *Scheduler)
}

// ContentHolder wraps user content of type C behind a weak reference. The
// caller keeps the one strong reference to the content (embedded in its
// own struct, held on a stack, whatever its application owns); the
// Scheduler retains only a weak.Pointer, so dropping the caller's last
// strong reference is the sole cancellation path for watches spawned
// against this content — a later GetMut, or a pending watch re-run that
// calls it, silently does nothing.
type ContentHolder[C any] struct {
	content weak.Pointer[C]
	spawn   func(s *Scheduler, h *ContentHolder[C])
}

// NewContentHolder constructs a holder over content. spawn is invoked
// once, when this holder is handed to a Scheduler (directly via
// AddWatchProducingHolder's return value, or nested inside another
// Holder's own spawn), to register content's own watches.
func NewContentHolder[C any](content *C, spawn func(s *Scheduler, h *ContentHolder[C])) *ContentHolder[C] {
	return &ContentHolder[C]{content: weak.Make(content), spawn: spawn}
}

func (h *ContentHolder[C]) init(s *Scheduler) {
	if h.spawn != nil {
		h.spawn(s, h)
	}
}

// GetMut resolves the weak content pointer and, if it's still alive,
// invokes fn with exclusive access. If the content has been dropped,
// GetMut does nothing — the documented silent-skip behavior for a watch
// whose holder no longer exists.
func (h *ContentHolder[C]) GetMut(fn func(*C)) {
	c := h.content.Value()
	if c == nil {
		return
	}
	fn(c)
}
