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
	"sync/atomic"
	"weak"
)

// Trigger is a thread-safe, no-argument signal produced by
// Meta.CreateTrigger. Together with the Sender and SendGuard channel
// halves built on it, it is what this package offers for use from outside
// the home goroutine.
//
// Triggering is a lock-free fetch-or against a weak reference to the
// bridge's shared atomic word: if the Bridge (and with it the word) no
// longer exists, Trigger is a silent no-op, matching the documented
// "stale weak reference" contract.
type Trigger struct {
	flag weak.Pointer[atomic.Uint64]
	mask uint64
}

// NewInertTrigger returns a Trigger bound to no Bridge; calling Trigger
// on it always does nothing. Useful as a placeholder value where a
// Trigger is required but no bridge exists yet.
func NewInertTrigger() Trigger {
	return Trigger{}
}

// Trigger posts this Trigger's bit. Safe to call concurrently with other
// Triggers and with the owning Bridge's DrainInto.
func (tr Trigger) Trigger() {
	flag := tr.flag.Value()
	if flag == nil {
		return
	}
	flag.Or(tr.mask)
}

// TriggerFunc returns a zero-argument func wrapping tr.Trigger, so a
// Meta's trigger can be handed directly to any event-source callback
// that expects a plain func() — an fsnotify watcher's event channel
// handler, a webhook informer's OnAdd/OnUpdate/OnDelete, or similar —
// without the caller hand-rolling a goroutine to bridge it in.
func (tr Trigger) TriggerFunc() func() {
	return tr.Trigger
}
