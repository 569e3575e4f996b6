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

import "testing"

func countLive(s *watchSet) int {
	n := 0
	for node := s.head; node != nil; node = node.next {
		for _, slot := range node.slots {
			if slot.w != nil && slot.fresh() {
				n++
			}
		}
	}
	return n
}

func TestWatchSet_addDedupesByWatchKeepingNewestGeneration(t *testing.T) {
	accum := &pendingFrameBox{}
	w := &watch{name: "w"}

	var s watchSet
	s.add(newWatchRef(w), accum, 1)
	if got := countLive(&s); got != 1 {
		t.Fatalf("countLive = %d, want 1", got)
	}

	// Bumping the generation and re-adding must overwrite the stale
	// slot in place, not append a second one.
	ref := newWatchRef(w).bump()
	s.add(ref, accum, 1)
	if got := countLive(&s); got != 1 {
		t.Fatalf("countLive after re-add = %d, want 1 (deduped)", got)
	}
}

func TestWatchSet_autoCompactionPreservesLiveDropsStale(t *testing.T) {
	accum := &pendingFrameBox{}
	var s watchSet

	// totalWatchCount 0 makes compactionThreshold(0) == 0, so every add
	// that grows the node list triggers a compaction immediately —
	// a stress test of repeated compaction rather than the common case.
	if got := compactionThreshold(0); got != 0 {
		t.Fatalf("compactionThreshold(0) = %d, want 0", got)
	}

	const n = 10
	watches := make([]*watch, n)
	for i := range watches {
		watches[i] = &watch{name: "w"}
		s.add(newWatchRef(watches[i]), accum, 0)
	}
	if got := countLive(&s); got != n {
		t.Fatalf("countLive = %d, want %d (all fresh, none dropped)", got, n)
	}

	// Advance half the watches past their captured generation from
	// outside this watchSet (as a drain elsewhere would), then compact
	// explicitly — compaction is the only point that actually drops a
	// stale slot; add() merely skips over it until then.
	for i := 0; i < n/2; i++ {
		watches[i].generation.Add(1)
	}
	s.compact()

	if got, want := countLive(&s), n/2; got != want {
		t.Fatalf("countLive after staling half and compacting = %d, want %d", got, want)
	}
}

func TestWatchSet_compactionDropsStaleGenerations(t *testing.T) {
	var s watchSet

	w := &watch{name: "w"}
	stale := newWatchRef(w)
	w.generation.Add(1) // stale now refers to a superseded generation

	other := &watch{name: "other"}
	fresh := newWatchRef(other)

	s.head = &watchSetNode{slots: [watchSetBucketSize]WatchRef{stale, fresh}}
	s.nodeCount = 1

	s.compact()

	if got := countLive(&s); got != 1 {
		t.Fatalf("countLive after compact = %d, want 1 (stale ref dropped)", got)
	}
}

func TestWatchRef_freshness(t *testing.T) {
	w := &watch{name: "w"}
	ref := newWatchRef(w)
	if !ref.fresh() {
		t.Fatal("freshly captured ref should be fresh")
	}
	w.generation.Add(1)
	if ref.fresh() {
		t.Fatal("ref captured before a generation bump must become stale")
	}
}
