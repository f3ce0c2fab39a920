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

// Options controls how much detail an Update call records.
type Options struct {
	// CaptureRuleDetails emits one RuleApplied event per applied fix, named
	// after the fix and recording whether its rule matched; rules nested
	// inside that rule are not reported separately.
	CaptureRuleDetails bool
	// CaptureSnapshots attaches before/after tree snapshots to FixCompleted
	// events.
	CaptureSnapshots bool
}

// Sink accumulates the Event stream for exactly one Update call.
type Sink struct {
	opts   Options
	events []Event
}

// NewSink creates an empty Sink configured by opts.
func NewSink(opts Options) *Sink {
	return &Sink{opts: opts}
}

// Options reports the Options this Sink was built with.
func (s *Sink) Options() Options { return s.opts }

// Emit appends e to the stream.
func (s *Sink) Emit(e Event) { s.events = append(s.events, e) }

// Report freezes the accumulated events into a MigrationReport.
func (s *Sink) Report() MigrationReport {
	return MigrationReport{Events: append([]Event{}, s.events...)}
}
