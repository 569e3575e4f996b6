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

//go:build wetpaint_debug

package reactive

import (
	"bytes"
	"fmt"
	"runtime"
)

// goroutineID extracts the calling goroutine's id from its stack trace
// header ("goroutine 37 [running]:"). It's only ever compiled in under
// the wetpaint_debug build tag — nothing in the non-debug build pays for
// parsing a stack dump on every call.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	var id uint64
	fmt.Sscanf(string(buf), "%d", &id)
	return id
}

// bindHomeGoroutine records the goroutine that first touches this
// Scheduler, so later calls can assert they're still on it.
func (s *Scheduler) bindHomeGoroutine() {
	if s.homeGoroutine == 0 {
		s.homeGoroutine = goroutineID()
		return
	}
	if got := goroutineID(); got != s.homeGoroutine {
		panic(fmt.Sprintf("reactive: Scheduler touched from goroutine %d, owned by goroutine %d", got, s.homeGoroutine))
	}
}
