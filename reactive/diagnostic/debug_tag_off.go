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

//go:build !wetpaint_cycle_debug

package diagnostic

// compiledIn is the build-time half of the cycle-debug switch outside the
// wetpaint_cycle_debug tag: Install attaches no CycleDiagnostic and sets
// no default frame limit, so a release build that never hits the frame
// limit pays nothing for it. CycleDiagnostic itself is still compiled
// and can be attached explicitly with reactive.WithDiagnostics.
const compiledIn = false
