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

package diagnostic_test

import (
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/require"

	"github.com/wetpaint-run/wetpaint/reactive"
	"github.com/wetpaint-run/wetpaint/reactive/diagnostic"
)

func TestCycleDiagnostic_reportsNamesAndCycleOnOverflow(t *testing.T) {
	g := gomega.NewWithT(t)

	diag := diagnostic.New(0)
	s := reactive.NewScheduler(
		reactive.WithFrameLimit(50),
		reactive.WithDiagnostics(diag),
	)

	left := reactive.NewCell(0)
	right := reactive.NewCell(0)
	s.AddWatch("left-from-right", func(tr *reactive.Tracker) {
		left.Set(tr, right.Observe(tr))
	})
	s.AddWatch("right-from-left", func(tr *reactive.Tracker) {
		right.Set(tr, left.Observe(tr))
	})

	left.Set(s.Tracker(), 1)

	var caught *reactive.FrameLimitError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			var ok bool
			caught, ok = r.(*reactive.FrameLimitError)
			require.True(t, ok, "panic value should be a *reactive.FrameLimitError, got %T", r)
		}()
		s.Update()
	}()

	g.Expect(caught.Report).To(gomega.ContainSubstring("left-from-right"))
	g.Expect(caught.Report).To(gomega.ContainSubstring("right-from-left"))
	g.Expect(caught.Report).To(gomega.ContainSubstring("cycle:"))
}

func TestCycleDiagnostic_inconclusiveWhenNoCycleFound(t *testing.T) {
	g := gomega.NewWithT(t)

	diag := diagnostic.New(0)
	s := reactive.NewScheduler(
		reactive.WithFrameLimit(3),
		reactive.WithDiagnostics(diag),
	)

	// A straight-line chain one hop longer than the frame limit: it
	// overflows on its own, with no retained edge ever closing a loop.
	a := reactive.NewCell(0)
	b := reactive.NewCell(0)
	c := reactive.NewCell(0)
	d := reactive.NewCell(0)
	e := reactive.NewCell(0)
	s.AddWatch("a-to-b", func(tr *reactive.Tracker) { b.Set(tr, a.Observe(tr)+1) })
	s.AddWatch("b-to-c", func(tr *reactive.Tracker) { c.Set(tr, b.Observe(tr)+1) })
	s.AddWatch("c-to-d", func(tr *reactive.Tracker) { d.Set(tr, c.Observe(tr)+1) })
	s.AddWatch("d-to-e", func(tr *reactive.Tracker) { e.Set(tr, d.Observe(tr)+1) })

	a.Set(s.Tracker(), 1)

	var caught *reactive.FrameLimitError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			var ok bool
			caught, ok = r.(*reactive.FrameLimitError)
			require.True(t, ok, "panic value should be a *reactive.FrameLimitError, got %T", r)
		}()
		s.Update()
	}()

	g.Expect(caught.Report).To(gomega.ContainSubstring("no cycle identified"))
}

func TestInstall_noopOutsideDebugBuild(t *testing.T) {
	g := gomega.NewWithT(t)

	s := reactive.NewScheduler()
	g.Expect(s.HasFrameLimit()).To(gomega.BeFalse())

	diagnostic.Install(s)

	// This test binary isn't built with -tags wetpaint_cycle_debug, so
	// Install must be a no-op: no default frame limit applied.
	g.Expect(s.HasFrameLimit()).To(gomega.BeFalse())
}

func TestInstall_doesNotClobberExplicitFrameLimit(t *testing.T) {
	g := gomega.NewWithT(t)

	s := reactive.NewScheduler(reactive.WithFrameLimit(7))
	diagnostic.Install(s)
	g.Expect(s.HasFrameLimit()).To(gomega.BeTrue())
}
