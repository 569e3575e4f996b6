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

package diagnostic

import "github.com/wetpaint-run/wetpaint/reactive"

// defaultFrameLimit is spec §9's empirically-chosen default: large
// enough not to false-positive on deep but legitimate pipelines, small
// enough to catch a runaway cascade within about a second of wall clock.
const defaultFrameLimit = 1024

// Install wires up a CycleDiagnostic and spec's diagnostic-build default
// frame limit of 1024 against s, but only under the wetpaint_cycle_debug
// build tag (compiledIn) and only when the caller hasn't already called
// SetFrameLimit themselves — an explicit caller-set limit always wins,
// mirroring spec's "default 1024 in diagnostic builds, none otherwise"
// while still letting WithFrameLimit override it.
//
// Outside the wetpaint_cycle_debug tag, Install is a no-op: nothing is
// attached and no frame limit is applied, matching the non-diagnostic
// build's "none otherwise" default.
func Install(s *reactive.Scheduler) {
	if !compiledIn || s.HasFrameLimit() {
		return
	}
	limit := defaultFrameLimit
	s.SetFrameLimit(&limit)
	s.AttachDiagnostics(New(0))
}
