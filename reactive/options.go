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

import "github.com/go-logr/logr"

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithFrameLimit bounds how many drain iterations a single Update call
// may take; exceeding it panics with a *FrameLimitError. Omitting this
// option leaves the scheduler unlimited.
func WithFrameLimit(limit int) Option {
	return func(s *Scheduler) {
		l := limit
		s.frameLimit = &l
	}
}

// WithLogger attaches a structured logger for frame-drain diagnostics.
// The default is a discard logger.
func WithLogger(logger logr.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithDiagnostics attaches a DiagnosticHook, typically
// reactive/diagnostic's CycleDiagnostic, used to capture the last few
// frames before an overflow and to produce the panic's report text.
func WithDiagnostics(diag DiagnosticHook) Option {
	return func(s *Scheduler) {
		s.diag = diag
	}
}

// WithSyncBridge attaches d to be drained at the start of every Update,
// equivalent to calling Scheduler.AttachSyncBridge after construction.
func WithSyncBridge(d SyncDrainer) Option {
	return func(s *Scheduler) {
		s.sync = d
	}
}
