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

import "fmt"

// FrameLimitError is the panic value Update raises when its frame limit
// is exhausted without reaching fixpoint. Report holds whatever cycle
// diagnostic text a DiagnosticHook produced, or "" if none was attached.
type FrameLimitError struct {
	Limit  int
	Report string
}

func (e *FrameLimitError) Error() string {
	if e.Report == "" {
		return fmt.Sprintf("reactive: frame limit (%d) exceeded without reaching fixpoint", e.Limit)
	}
	return fmt.Sprintf("reactive: frame limit (%d) exceeded without reaching fixpoint\n%s", e.Limit, e.Report)
}
