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

// Package diagnostic reconstructs why a Scheduler's Update failed to
// reach fixpoint within its frame limit: a retained graph of trigger
// causality, searched for the cycle (or cycles) responsible once the
// limit is exhausted.
package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/wetpaint-run/wetpaint/reactive"
	"github.com/wetpaint-run/wetpaint/version"
)

// externalVertex stands in for "no watch was running" as a trigger
// source, so external mutations still show up as graph edges rather
// than being silently dropped from the report.
const externalVertex = "<external>"

// CycleDiagnostic implements reactive.DiagnosticHook. It retains trigger
// edges from the last handful of frames before an overflow in a directed
// graph, checking for cycles incrementally as edges are added — the same
// pattern gatekeeper's expansion template database uses for its own
// dependency graph — and, on overflow, reports every cycle it can find
// rather than stopping at the first.
type CycleDiagnostic struct {
	g      graph.Graph[string, string]
	names  map[string]string
	cyclic bool

	frames    [][]reactive.TriggeredWatch
	maxFrames int
}

// New constructs a CycleDiagnostic. maxFrames bounds how many of the
// most recent captured frames are kept for the report; 0 uses the
// spec's "last handful" default of 5.
func New(maxFrames int) *CycleDiagnostic {
	if maxFrames <= 0 {
		maxFrames = 5
	}
	d := &CycleDiagnostic{
		g:         graph.New(graph.StringHash, graph.Directed()),
		names:     make(map[string]string),
		maxFrames: maxFrames,
	}
	_ = d.g.AddVertex(externalVertex)
	d.names[externalVertex] = "<external mutation>"
	return d
}

func (d *CycleDiagnostic) ensureVertex(id, name string) {
	if _, err := d.g.Vertex(id); err != nil {
		_ = d.g.AddVertex(id)
	}
	d.names[id] = name
}

// CaptureFrame implements reactive.DiagnosticHook.
func (d *CycleDiagnostic) CaptureFrame(frame []reactive.TriggeredWatch) {
	d.frames = append(d.frames, frame)
	if len(d.frames) > d.maxFrames {
		d.frames = d.frames[len(d.frames)-d.maxFrames:]
	}

	for _, tw := range frame {
		targetID := tw.Ref.ID()
		d.ensureVertex(targetID, tw.Ref.Name())

		sourceID, ok := tw.SourceID()
		if !ok {
			sourceID = externalVertex
		} else {
			d.ensureVertex(sourceID, tw.SourceName())
		}

		if sourceID == targetID {
			continue
		}

		if created, err := graph.CreatesCycle(d.g, sourceID, targetID); err == nil && created {
			d.cyclic = true
		}
		_ = d.g.AddEdge(sourceID, targetID)
	}
}

// Report implements reactive.DiagnosticHook: a human-readable summary of
// the captured frames plus, when one was found, every cycle in the
// retained graph. Absence of an identified cycle is reported explicitly
// as inconclusive rather than omitted silently — the frame limit may
// simply have been set too low.
func (d *CycleDiagnostic) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", version.String())
	fmt.Fprintf(&b, "captured %d frame(s) before overflow:\n", len(d.frames))
	for i, frame := range d.frames {
		fmt.Fprintf(&b, "  frame %d: %d triggered watch(es)\n", i, len(frame))
		for _, name := range describeFrame(frame) {
			fmt.Fprintf(&b, "    %s\n", name)
		}
	}

	cycles := d.findCycles()
	if len(cycles) == 0 {
		b.WriteString("no cycle identified in the retained graph; the frame limit may simply be too low\n")
		return b.String()
	}

	errs := make(errorList, 0, len(cycles))
	for _, c := range cycles {
		errs = append(errs, fmt.Errorf("cycle: %s", strings.Join(c, " -> ")))
	}
	b.WriteString(errs.Error())
	return b.String()
}

// describeFrame renders each triggered watch with its trigger source,
// sorted for stable output and with repeated names collapsed into an
// "and N more" tail.
func describeFrame(frame []reactive.TriggeredWatch) []string {
	names := make([]string, 0, len(frame))
	for _, tw := range frame {
		name := tw.Ref.Name()
		if src := tw.SourceName(); src != "" {
			name = fmt.Sprintf("%s (because %s)", name, src)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return collapseRepeats(names)
}

// findCycles locates every strongly-connected component of size greater
// than one — a genuine cycle, as opposed to an isolated vertex that
// trivially forms its own singleton component.
func (d *CycleDiagnostic) findCycles() [][]string {
	if !d.cyclic {
		return nil
	}
	sccs, err := graph.StronglyConnectedComponents(d.g)
	if err != nil {
		return nil
	}
	var cycles [][]string
	for _, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		names := make([]string, 0, len(scc))
		for _, id := range scc {
			names = append(names, d.names[id])
		}
		sort.Strings(names)
		cycles = append(cycles, names)
	}
	return cycles
}

func collapseRepeats(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	count := 1
	for i := 1; i <= len(names); i++ {
		if i < len(names) && names[i] == names[i-1] {
			count++
			continue
		}
		if count > 1 {
			out = append(out, fmt.Sprintf("%s (and %d more)", names[i-1], count-1))
		} else {
			out = append(out, names[i-1])
		}
		count = 1
	}
	return out
}
