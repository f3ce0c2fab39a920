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

package typedsl

import (
	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/tree"
)

// mergeIntoPrefix folds a map-shaped template's built value out into the
// codec's prefix argument. spec.md §4.2 allows prefix to be "empty() or a
// map under construction" — when it is a genuine map under construction
// (a RecordCodecBuilder field threading values left-to-right through
// codec.Record), it must be merged in; when it is the un-constructed
// empty() a bare EncodeStart passes, there is nothing to merge into and
// out is the whole answer. Every format adapter's MergeToMap requires both
// arguments to already be map-shaped, so this distinguishes the two cases
// by asking ops.IsMap(prefix) rather than letting a non-map prefix turn
// into a spurious CodecError on every top-level And/Choice encode.
func mergeIntoPrefix[V any](ops tree.Ops[V], prefix, out V) result.R[V] {
	if !ops.IsMap(prefix) {
		return result.Ok(out)
	}
	merged, err := ops.MergeToMap(prefix, out)
	if err != nil {
		return result.Err[V](migerr.CodecErrorf("merge into prefix: %v", err))
	}
	return result.Ok(merged)
}
