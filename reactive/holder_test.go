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

package reactive_test

import (
	"runtime"
	"testing"

	"github.com/onsi/gomega"

	"github.com/wetpaint-run/wetpaint/reactive"
)

// child is user content whose own watches get recursively registered
// via AddWatchProducingHolder, mirroring spec §6's WatcherHolder contract.
type child struct {
	count reactive.Cell[int]
}

func newChildHolder(source *reactive.Cell[int]) *reactive.ContentHolder[child] {
	c := &child{}
	return reactive.NewContentHolder(c, func(s *reactive.Scheduler, h *reactive.ContentHolder[child]) {
		s.AddWatch("child-observer", func(tr *reactive.Tracker) {
			v := source.Observe(tr)
			h.GetMut(func(c *child) {
				c.count.Set(tr, v)
			})
		})
	})
}

func TestAddWatchProducingHolder_recursivelyInitializes(t *testing.T) {
	g := gomega.NewWithT(t)

	s := reactive.NewScheduler()
	source := reactive.NewCell(0)

	_, holder := s.AddWatchProducingHolder("spawn-child", func(tr *reactive.Tracker) reactive.Holder {
		return newChildHolder(source)
	})
	g.Expect(holder).NotTo(gomega.BeNil())
	g.Expect(s.TotalWatches()).To(gomega.Equal(2), "the spawning watch plus the child's own watch")

	ch := holder.(*reactive.ContentHolder[child])
	var observed int
	ch.GetMut(func(c *child) { observed = c.count.Get() })
	g.Expect(observed).To(gomega.Equal(0))

	source.Set(s.Tracker(), 9)
	s.Update()

	ch.GetMut(func(c *child) { observed = c.count.Get() })
	g.Expect(observed).To(gomega.Equal(9))
}

// Boundary scenario 6: dropping a watcher's holder mid-use causes
// subsequent re-runs to silently skip its content, without panicking.
func TestContentHolder_getMutSkipsSilentlyOnceContentIsUnreachable(t *testing.T) {
	g := gomega.NewWithT(t)

	var holder *reactive.ContentHolder[child]
	func() {
		c := &child{}
		holder = reactive.NewContentHolder(c, func(*reactive.Scheduler, *reactive.ContentHolder[child]) {})
		// c's only strong reference is this local; it goes out of scope
		// at the end of this func literal.
	}()

	runtime.GC()
	runtime.GC() // weak.Pointer clearing happens during GC; finalizer-adjacent queues can lag by one cycle.

	called := false
	holder.GetMut(func(*child) { called = true })
	g.Expect(called).To(gomega.BeFalse(), "GetMut must silently do nothing once the content is gone")
}
