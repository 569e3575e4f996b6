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

// Package syncbridge lets goroutines that cannot enter a single-threaded
// reactive.Scheduler post wake-up signals into it anyway: a fixed-width
// atomic bitmask where each registered Meta claims one bit, posted to
// with a lock-free fetch-or and drained once per frame into ordinary
// internal reactive.Cells.
package syncbridge

import (
	"sync/atomic"

	"github.com/wetpaint-run/wetpaint/reactive"
)

// bridgeWidth is the bit width of the shared atomic word: one bit per
// concurrently-registered Meta before aliasing begins.
const bridgeWidth = 64

// Bridge is a fixed-size array of internal reactive cells, indexed by
// bit position, plus one shared atomic word. The owning Scheduler holds
// a strong reference to the Bridge (typically via AttachSyncBridge);
// every Trigger produced from it holds only a weak reference to the word,
// so the Bridge going away silently turns further triggers into no-ops.
type Bridge struct {
	flag          *atomic.Uint64
	cells         [bridgeWidth]reactive.Cell[struct{}]
	nextIndex     int
	registrations int
}

// NewBridge constructs an empty Bridge with no bits claimed.
func NewBridge() *Bridge {
	return &Bridge{flag: new(atomic.Uint64)}
}

// DrainInto implements reactive.SyncDrainer: it swaps the shared word to
// zero and fires NotifyExternal on the internal cell of every bit that
// was set. The Tracker argument is accepted (not used) solely to satisfy
// the SyncDrainer contract — posted bits are always treated as external
// mutations, per the no-self-suppression rule for off-thread triggers.
func (b *Bridge) DrainInto(_ *reactive.Tracker) {
	bits := b.flag.Swap(0)
	if bits == 0 {
		return
	}
	for i := 0; i < bridgeWidth; i++ {
		if bits&(uint64(1)<<uint(i)) != 0 {
			b.cells[i].NotifyExternal()
		}
	}
}

// allocateIndex hands out the next bit position, wrapping to 0 once the
// bridge's width is exhausted. Wrapping aliases bits across Metas,
// trading precision for an unbounded number of registrations: an aliased
// bit produces spurious wake-ups, never missed ones.
func (b *Bridge) allocateIndex() int {
	idx := b.nextIndex
	b.nextIndex = (b.nextIndex + 1) % bridgeWidth
	b.registrations++
	return idx
}

// AliasedBits reports how many registrations have landed on a bit already
// claimed by an earlier Meta — zero until a bridge has handed out more
// than bridgeWidth bits, after which every further registration aliases
// one that came before it. Purely observational, for reactive/metrics.
func (b *Bridge) AliasedBits() int {
	if b.registrations <= bridgeWidth {
		return 0
	}
	return b.registrations - bridgeWidth
}
