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

// Package reactive implements a single-threaded reactive runtime: a set of
// watched values ("cells") and closures ("watches") that are automatically
// re-run whenever a cell they previously read is mutated.
//
// The dataflow graph is rebuilt on every run: a watch's dependencies are
// whatever cells it happened to read during its last execution, tracked at
// runtime rather than wired up ahead of time. Mutations land in a pending
// frame, and Scheduler.Update drains frames until no watch remains pending
// (a fixpoint), detecting non-terminating cascades once a configurable
// frame limit is exceeded.
//
// Everything in this package must run on a single goroutine — the one that
// owns the Scheduler. The only operations safe to call from elsewhere are
// Trigger.Trigger and a Sender's Guard/SendGuard.Send/Close, in the
// reactive/syncbridge subpackage.
package reactive
