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

import "fmt"

// triggerReason records why a watch was enqueued. It is a single pointer,
// cheap enough to fill in on every enqueue; only a DiagnosticHook (see
// reactive/diagnostic) ever reads it.
type triggerReason struct {
	// source is the watch whose Set/Mut call enqueued the target, or nil
	// if the trigger came from outside any watch (a mutation made with no
	// watch running, a NotifyExternal/Close call, or a SyncBridge drain).
	source *watch
}

// TriggeredWatch pairs a WatchRef awaiting execution with the reason it
// was enqueued.
type TriggeredWatch struct {
	Ref    WatchRef
	reason triggerReason
}

// SourceID returns the string identity of the watch whose mutation
// produced this trigger, and ok=false when it was an external mutation
// (no watch was running).
func (t TriggeredWatch) SourceID() (id string, ok bool) {
	if t.reason.source == nil {
		return "", false
	}
	return fmt.Sprintf("%p", t.reason.source), true
}

// SourceName returns the debug name of the watch whose mutation produced
// this trigger, or "" for an external mutation.
func (t TriggeredWatch) SourceName() string {
	if t.reason.source == nil {
		return ""
	}
	return t.reason.source.Name()
}

// pendingFrameBox is a fixed-identity container for a slice of
// TriggeredWatch. Its address never changes for the lifetime of a
// Scheduler: draining a frame exchanges the *contents* of two
// pendingFrameBoxes (the accumulator and the scratch buffer), never their
// identity. This is what lets a WatchSet cache a weak.Pointer to the
// accumulator once and keep using it correctly across every subsequent
// drain (spec: "installed on first use").
type pendingFrameBox struct {
	items []TriggeredWatch
}

func (b *pendingFrameBox) push(t TriggeredWatch) {
	b.items = append(b.items, t)
}

func (b *pendingFrameBox) empty() bool {
	return len(b.items) == 0
}

// takeAndSwap moves other's contents into this box and hands other this
// box's old backing array truncated to zero length (whatever this box
// held is discarded), so no allocation is needed on the common path.
func (b *pendingFrameBox) takeAndSwap(other *pendingFrameBox) {
	b.items, other.items = other.items, b.items[:0]
}
