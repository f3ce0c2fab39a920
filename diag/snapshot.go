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

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Snapshot renders v for inclusion in a FixCompleted event's before/after
// fields. It deliberately renders to a plain string rather than retaining
// the tree value itself, so a Sink never outlives (or pins) the engine's
// own tree/domain values.
func Snapshot(v any) string {
	return fmt.Sprintf("%#v", v)
}

// Diff renders a human-readable structural difference between before and
// after, using go-cmp (the teacher's own deep-comparison dependency) rather
// than a hand-rolled recursive equality check.
func Diff(before, after any) string {
	return cmp.Diff(before, after)
}
