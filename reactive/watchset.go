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
	"math/bits"
	"weak"
)

// watchSetBucketSize is the number of WatchRef slots per node. Typical
// subscriber counts are small, so chunking avoids a per-subscriber
// allocation while keeping traversal cache-friendly.
const watchSetBucketSize = 4

type watchSetNode struct {
	slots [watchSetBucketSize]WatchRef
	next  *watchSetNode
}

// watchSet is an intrusive, lazily-allocated bucket list of WatchRefs
// attached to one reactive value, plus a weak handle to the owning
// Scheduler's pending-frame accumulator. The handle is installed once, by
// whichever add call first populates the set, and is never recomputed
// afterward — see pendingFrameBox for why that's safe.
type watchSet struct {
	head      *watchSetNode
	nodeCount int
	pending   weak.Pointer[pendingFrameBox]
	installed bool
}

// compactionThreshold bounds the number of nodes a watchSet may hold
// before it's repacked, as a function of the scheduler's total watch
// count: min(total+1, 64*(log2(total)+1)).
func compactionThreshold(totalWatchCount int) int {
	if totalWatchCount < 0 {
		totalWatchCount = 0
	}
	byCount := totalWatchCount + 1
	byMagnitude := 64 * bits.Len(uint(totalWatchCount))
	if byMagnitude < byCount {
		return byMagnitude
	}
	return byCount
}

// add inserts ref, merging with any existing entry for the same watch
// (keeping the newer generation) and compacting once the node count
// crosses the threshold for the scheduler's current watch count.
func (s *watchSet) add(ref WatchRef, accum *pendingFrameBox, totalWatchCount int) {
	if !s.installed {
		s.pending = weak.Make(accum)
		s.installed = true
	}

	var emptySlot *WatchRef
	for n := s.head; n != nil; n = n.next {
		for i, slot := range n.slots {
			if slot.w == nil {
				if emptySlot == nil {
					emptySlot = &n.slots[i]
				}
				continue
			}
			if slot.sameWatch(ref) {
				n.slots[i] = ref
				return
			}
		}
	}
	if emptySlot != nil {
		*emptySlot = ref
		return
	}

	node := &watchSetNode{}
	node.slots[0] = ref
	node.next = s.head
	s.head = node
	s.nodeCount++

	if s.nodeCount > compactionThreshold(totalWatchCount) {
		s.compact()
	}
}

// compact collects every live (fresh) ref, deduplicated by watch address
// keeping the newest generation, drops stale refs entirely, and repacks
// the survivors into the minimum number of nodes.
func (s *watchSet) compact() {
	seen := make(map[*watch]WatchRef)
	for n := s.head; n != nil; n = n.next {
		for _, slot := range n.slots {
			if slot.w == nil || !slot.fresh() {
				continue
			}
			if existing, ok := seen[slot.w]; !ok || slot.generation > existing.generation {
				seen[slot.w] = slot
			}
		}
	}

	s.head = nil
	s.nodeCount = 0
	var cur *watchSetNode
	i := 0
	for _, ref := range seen {
		slot := i % watchSetBucketSize
		if slot == 0 {
			node := &watchSetNode{next: s.head}
			s.head = node
			s.nodeCount++
			cur = node
		}
		cur.slots[slot] = ref
		i++
	}
}

// upgradeAccum resolves the weak accumulator handle, returning ok=false
// if it's never been installed or the scheduler it pointed at is gone.
func (s *watchSet) upgradeAccum() (accum *pendingFrameBox, ok bool) {
	if !s.installed {
		return nil, false
	}
	accum = s.pending.Value()
	return accum, accum != nil
}

// drainInto pushes a TriggeredWatch for every live ref accepted by
// filter. source identifies the watch whose mutation produced this
// drain (nil for external mutations), purely for diagnostic reporting.
func (s *watchSet) drainInto(source *watch, filter func(WatchRef) bool) {
	accum, ok := s.upgradeAccum()
	if !ok {
		return
	}
	for n := s.head; n != nil; n = n.next {
		for _, slot := range n.slots {
			if slot.w == nil || !slot.fresh() {
				continue
			}
			if !filter(slot) {
				continue
			}
			accum.push(TriggeredWatch{Ref: slot, reason: triggerReason{source: source}})
		}
	}
}

// acceptAll is the drainInto filter for notify_external: every live
// subscriber is enqueued unconditionally.
func acceptAll(WatchRef) bool { return true }

// excludeWatch is the drainInto filter for notify from inside a running
// watch: the mutating watch itself is never re-enqueued by its own write.
func excludeWatch(self *watch) func(WatchRef) bool {
	return func(r WatchRef) bool { return r.w != self }
}
