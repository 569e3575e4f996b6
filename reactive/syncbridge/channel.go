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

import "github.com/wetpaint-run/wetpaint/reactive"

// NewChannel binds a user-provided channel pair to b, returning a
// Sender/Receiver pair that share one Meta (and therefore one bit):
// sending wakes watches bound to the receiver.
func NewChannel[S, R any](b *Bridge, send chan<- S, recv <-chan R) (*Sender[S], *Receiver[R]) {
	meta := NewMeta(b)
	sender := &Sender[S]{ch: send, trigger: meta.CreateTrigger()}
	receiver := &Receiver[R]{ch: recv, meta: meta}
	return sender, receiver
}

// Sender is the sending half of a watched channel. It has no Close
// destructor to rely on (Go has none); callers that replace the channel
// Go's scope-based drop would otherwise cover should call Close
// explicitly, typically via defer.
type Sender[S any] struct {
	ch      chan<- S
	trigger Trigger
	closed  bool
}

// Guard opens a SendGuard over this Sender's channel. The caller must
// arrange for Close to run (normally `defer guard.Close()`) so the
// bridge is triggered exactly once regardless of how many sends happen
// inside the guarded scope.
func (s *Sender[S]) Guard() *SendGuard[S] {
	return &SendGuard[S]{ch: s.ch, trigger: s.trigger}
}

// Close triggers the bridge once. Safe to call more than once; only the
// first call has any effect, mirroring the source's drop-fires-once
// contract for a sender going out of scope.
func (s *Sender[S]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.trigger.Trigger()
}

// SendGuard lets a caller send zero or more values and guarantees
// exactly one Trigger fire when the guard is closed.
type SendGuard[S any] struct {
	ch      chan<- S
	trigger Trigger
}

// Send forwards v to the underlying channel.
func (g *SendGuard[S]) Send(v S) {
	g.ch <- v
}

// Close triggers the bridge once, whether or not Send was ever called.
func (g *SendGuard[S]) Close() {
	g.trigger.Trigger()
}

// Receiver is the receiving half of a watched channel.
type Receiver[R any] struct {
	ch   <-chan R
	meta *Meta
}

// Get binds t's currently running watch to this receiver's bit, then
// performs a single non-blocking read. ok=false means "nothing new right
// now" — including when the underlying channel has been closed — not a
// distinct error condition; per the bridge's hint semantics, callers
// should treat any wake-up as "go check", not as a precise delivery.
func (r *Receiver[R]) Get(t *reactive.Tracker) (value R, ok bool) {
	r.meta.Watched(t)
	select {
	case v, open := <-r.ch:
		if !open {
			var zero R
			return zero, false
		}
		return v, true
	default:
		var zero R
		return zero, false
	}
}
