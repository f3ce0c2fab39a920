// Copyright 2019 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diag

// MigrationReport is the frozen, external-facing result of one Update call:
// the full event stream, ready for a host to render however it likes.
type MigrationReport struct {
	Events []Event
}

// FixNames returns the FixStarted names in emission order.
func (r MigrationReport) FixNames() []string {
	var names []string
	for _, e := range r.Events {
		if e.Kind == FixStarted {
			names = append(names, e.FixName)
		}
	}
	return names
}

// Warnings returns every Warning message, in emission order.
func (r MigrationReport) Warnings() []string {
	var out []string
	for _, e := range r.Events {
		if e.Kind == Warning {
			out = append(out, e.Message)
		}
	}
	return out
}

// Succeeded reports whether a MigrationCompleted event was emitted.
func (r MigrationReport) Succeeded() bool {
	for _, e := range r.Events {
		if e.Kind == MigrationCompleted {
			return true
		}
	}
	return false
}
