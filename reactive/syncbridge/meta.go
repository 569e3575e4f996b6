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

package syncbridge

import (
	"weak"

	"github.com/wetpaint-run/wetpaint/reactive"
)

// Meta is the per-source half of a Bridge: Watched binds the currently
// running watch to this Meta's bit, and CreateTrigger hands out a
// cross-thread Trigger for that same bit.
//
// A Meta claims its bit lazily, on whichever of Watched or CreateTrigger
// is called first. Using -1 rather than a sentinel max value keeps the
// "not yet claimed" check a plain comparison.
type Meta struct {
	bridge *Bridge
	index  int
}

// NewMeta constructs a Meta bound to b, with no bit claimed yet.
func NewMeta(b *Bridge) *Meta {
	return &Meta{bridge: b, index: -1}
}

func (m *Meta) ensureClaimed() {
	if m.index < 0 {
		m.index = m.bridge.allocateIndex()
	}
}

// Watched registers t's currently running watch (if any) as a subscriber
// of this Meta's underlying cell.
func (m *Meta) Watched(t *reactive.Tracker) {
	m.ensureClaimed()
	m.bridge.cells[m.index].Observe(t)
}

// CreateTrigger returns a Trigger that, from any goroutine, wakes
// watches bound to this Meta via Watched.
func (m *Meta) CreateTrigger() Trigger {
	m.ensureClaimed()
	return Trigger{
		flag: weak.Make(m.bridge.flag),
		mask: uint64(1) << uint(m.index),
	}
}
