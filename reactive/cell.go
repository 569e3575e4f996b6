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

// Value is a reactive cell with exclusive-access mutation: Set and Mut
// always notify, since an arbitrary T offers no equality check to
// short-circuit on. Use Cell instead when T is comparable and you want
// SetIfNeq's change-suppression.
type Value[T any] struct {
	value T
	subs  watchSet
}

// NewValue constructs a Value holding initial, with no subscribers yet.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Observe reads the value, registering the currently running watch (if
// any) as a subscriber.
func (v *Value[T]) Observe(t *Tracker) T {
	t.track(&v.subs)
	return v.value
}

// Get reads the value without establishing a dependency, regardless of
// whether a watch is currently running.
func (v *Value[T]) Get() T {
	return v.value
}

// Mut exposes the value for in-place mutation through fn, then notifies.
func (v *Value[T]) Mut(t *Tracker, fn func(*T)) {
	fn(&v.value)
	v.subs.drainInto(t.current, t.notifyFilter())
}

// Set replaces the value and notifies.
func (v *Value[T]) Set(t *Tracker, value T) {
	v.value = value
	v.subs.drainInto(t.current, t.notifyFilter())
}

// NotifyExternal marks this value changed from outside any watch,
// unconditionally enqueuing every subscriber.
func (v *Value[T]) NotifyExternal() {
	v.subs.drainInto(nil, acceptAll)
}

// Close notifies subscribers that this value is going away, so
// dependents re-run and, unable to observe it further, drop it from
// their dependency set on that run.
func (v *Value[T]) Close() {
	v.NotifyExternal()
}

// Cell is an interior-mutable reactive cell over a comparable T: Set and
// Get don't require exclusive access, and SetIfNeq short-circuits
// notification when the new value equals the old — the canonical escape
// hatch for mutual-consistency watch pairs that would otherwise cycle
// forever.
type Cell[T comparable] struct {
	value T
	subs  watchSet
}

// NewCell constructs a Cell holding initial, with no subscribers yet.
func NewCell[T comparable](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Observe reads the value, registering the currently running watch (if
// any) as a subscriber.
func (c *Cell[T]) Observe(t *Tracker) T {
	t.track(&c.subs)
	return c.value
}

// Get reads the value without establishing a dependency.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set replaces the value unconditionally and notifies.
func (c *Cell[T]) Set(t *Tracker, value T) {
	c.value = value
	c.subs.drainInto(t.current, t.notifyFilter())
}

// SetIfNeq sets the value and notifies only if it differs from the
// current value by ==.
func (c *Cell[T]) SetIfNeq(t *Tracker, value T) {
	if c.value == value {
		return
	}
	c.Set(t, value)
}

// NotifyExternal marks this cell changed from outside any watch,
// unconditionally enqueuing every subscriber.
func (c *Cell[T]) NotifyExternal() {
	c.subs.drainInto(nil, acceptAll)
}

// Close notifies subscribers that this cell is going away.
func (c *Cell[T]) Close() {
	c.NotifyExternal()
}
